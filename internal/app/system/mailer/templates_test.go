package mailer

import (
	"strings"
	"testing"
)

func TestBuildActivationEmail(t *testing.T) {
	email := BuildActivationEmail(ActivationEmailData{
		SiteName:       "Example Network",
		UserLogin:      "newuser",
		ActivationLink: "https://example.com/activate?key=abc123",
	})

	if !strings.Contains(email.Subject, "Example Network") {
		t.Errorf("subject missing site name: %q", email.Subject)
	}
	for name, body := range map[string]string{"text": email.TextBody, "html": email.HTMLBody} {
		if !strings.Contains(body, "https://example.com/activate?key=abc123") {
			t.Errorf("%s body missing activation link", name)
		}
		if !strings.Contains(body, "newuser") {
			t.Errorf("%s body missing user login", name)
		}
	}
}

func TestBuildActivationEmailEscapesHTML(t *testing.T) {
	email := BuildActivationEmail(ActivationEmailData{
		SiteName:  "Example",
		UserLogin: `<script>alert("x")</script>`,
	})

	if strings.Contains(email.HTMLBody, "<script>") {
		t.Error("HTML body did not escape the user login")
	}
}

func TestBuildMessageMultipart(t *testing.T) {
	msg := string(buildMessage("noreply@example.com", Email{
		To:       "user@example.com",
		Subject:  "Activate",
		TextBody: "plain part",
		HTMLBody: "<p>html part</p>",
	}))

	if !strings.Contains(msg, "multipart/alternative") {
		t.Error("expected multipart/alternative content type")
	}
	if !strings.Contains(msg, "plain part") || !strings.Contains(msg, "<p>html part</p>") {
		t.Error("message missing a body part")
	}
	if !strings.Contains(msg, "To: user@example.com\r\n") {
		t.Error("missing To header")
	}
}

func TestBuildMessagePlainOnly(t *testing.T) {
	msg := string(buildMessage("noreply@example.com", Email{
		To:       "user@example.com",
		Subject:  "Activate",
		TextBody: "plain only",
	}))

	if strings.Contains(msg, "multipart") {
		t.Error("plain email should not be multipart")
	}
	if !strings.Contains(msg, "text/plain") {
		t.Error("missing text/plain content type")
	}
}
