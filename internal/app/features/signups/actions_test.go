package signups_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/boonebg/unconfirmed/internal/app/features/signups"
	signupstore "github.com/boonebg/unconfirmed/internal/app/store/signups"
	"github.com/boonebg/unconfirmed/internal/app/system/auditlog"
	"github.com/boonebg/unconfirmed/internal/app/system/mailer"
	"github.com/boonebg/unconfirmed/internal/app/system/paging"
	"github.com/boonebg/unconfirmed/internal/testutil"
	"go.uber.org/zap"
)

// fakeSender records outgoing mail and can be told to fail.
type fakeSender struct {
	sent []mailer.Email
	err  error
}

func (f *fakeSender) Send(_ context.Context, e mailer.Email) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, e)
	return nil
}

func newTestHandler(t *testing.T) (*signups.Handler, *fakeSender, *signupstore.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	store := signupstore.New(db)
	sender := &fakeSender{}
	audit := auditlog.New(nil, logger, auditlog.Config{Auth: "off", Admin: "off"})
	handler := signups.NewHandler(store, sender, audit, logger, paging.DefaultKeys(), "Unconfirmed", "https://unconfirmed.example.com")
	return handler, sender, store, testutil.NewFixtures(t, db)
}

func postAction(handler *signups.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/signups/action", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithUser(req, testutil.AdminUser())

	rec := httptest.NewRecorder()
	handler.HandleAction(rec, req)
	return rec
}

// locationStatus parses the redirect target and returns its path and
// the status code carried in the query.
func locationStatus(t *testing.T, rec *httptest.ResponseRecorder) (string, url.Values) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("bad redirect location: %v", err)
	}
	return loc.Path, loc.Query()
}

func TestHandleAction_ActivateSuccess(t *testing.T) {
	handler, _, store, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	signup := fixtures.CreateSignup(ctx, "alice", "alice@example.com", time.Now())

	rec := postAction(handler, url.Values{
		"unconfirmed_action": {"activate"},
		"key":                {signup.ActivationKey},
	})

	path, q := locationStatus(t, rec)
	if path != "/signups" {
		t.Errorf("redirect path: got %q, want %q", path, "/signups")
	}
	if got := q.Get("unconfirmed_status"); got != "activated" {
		t.Errorf("status: got %q, want %q", got, "activated")
	}

	updated, err := store.GetByKey(ctx, signup.ActivationKey)
	if err != nil {
		t.Fatalf("GetByKey failed: %v", err)
	}
	if !updated.Active {
		t.Error("expected signup to be active")
	}
}

func TestHandleAction_ActivatePreservesViewState(t *testing.T) {
	handler, _, _, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	signup := fixtures.CreateSignup(ctx, "bob", "bob@example.com", time.Now())

	rec := postAction(handler, url.Values{
		"unconfirmed_action": {"activate"},
		"key":                {signup.ActivationKey},
		"paged":              {"3"},
		"per_page":           {"25"},
		"orderby":            {"user_login"},
		"order":              {"asc"},
	})

	_, q := locationStatus(t, rec)
	want := map[string]string{
		"paged":              "3",
		"per_page":           "25",
		"orderby":            "user_login",
		"order":              "asc",
		"unconfirmed_status": "activated",
	}
	for k, v := range want {
		if got := q.Get(k); got != v {
			t.Errorf("%s: got %q, want %q", k, got, v)
		}
	}
}

func TestHandleAction_ActivateAlreadyActive(t *testing.T) {
	handler, _, _, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	signup := fixtures.CreateActivatedSignup(ctx, "carol", "carol@example.com")

	rec := postAction(handler, url.Values{
		"unconfirmed_action": {"activate"},
		"key":                {signup.ActivationKey},
	})

	_, q := locationStatus(t, rec)
	if got := q.Get("unconfirmed_status"); got != "couldnt_activate" {
		t.Errorf("status: got %q, want %q", got, "couldnt_activate")
	}
}

func TestHandleAction_ActivateUnknownKey(t *testing.T) {
	handler, _, _, _ := newTestHandler(t)

	rec := postAction(handler, url.Values{
		"unconfirmed_action": {"activate"},
		"key":                {"no-such-key"},
	})

	_, q := locationStatus(t, rec)
	if got := q.Get("unconfirmed_status"); got != "no_user" {
		t.Errorf("status: got %q, want %q", got, "no_user")
	}
}

func TestHandleAction_MissingKey(t *testing.T) {
	handler, _, _, _ := newTestHandler(t)

	rec := postAction(handler, url.Values{
		"unconfirmed_action": {"activate"},
	})

	_, q := locationStatus(t, rec)
	if got := q.Get("unconfirmed_status"); got != "nokey" {
		t.Errorf("status: got %q, want %q", got, "nokey")
	}
}

func TestHandleAction_ResendSuccess(t *testing.T) {
	handler, sender, store, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	signup := fixtures.CreateSignup(ctx, "dave", "dave@example.com", time.Now())

	rec := postAction(handler, url.Values{
		"unconfirmed_action": {"resend"},
		"key":                {signup.ActivationKey},
	})

	_, q := locationStatus(t, rec)
	if got := q.Get("unconfirmed_status"); got != "resent" {
		t.Errorf("status: got %q, want %q", got, "resent")
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email sent, got %d", len(sender.sent))
	}
	email := sender.sent[0]
	if email.To != "dave@example.com" {
		t.Errorf("email to: got %q, want %q", email.To, "dave@example.com")
	}
	if !strings.Contains(email.TextBody, signup.ActivationKey) {
		t.Error("expected activation key in email body")
	}

	updated, err := store.GetByKey(ctx, signup.ActivationKey)
	if err != nil {
		t.Fatalf("GetByKey failed: %v", err)
	}
	if updated.ResendCount != 1 {
		t.Errorf("resend count: got %d, want 1", updated.ResendCount)
	}
	if updated.LastSentAt == nil {
		t.Error("expected last_sent_at to be stamped")
	}
}

func TestHandleAction_ResendUnknownKey(t *testing.T) {
	handler, sender, _, _ := newTestHandler(t)

	rec := postAction(handler, url.Values{
		"unconfirmed_action": {"resend"},
		"key":                {"no-such-key"},
	})

	_, q := locationStatus(t, rec)
	if got := q.Get("unconfirmed_status"); got != "no_user" {
		t.Errorf("status: got %q, want %q", got, "no_user")
	}
	if len(sender.sent) != 0 {
		t.Errorf("expected no email sent, got %d", len(sender.sent))
	}
}

func TestHandleAction_ResendAlreadyActive(t *testing.T) {
	handler, sender, _, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	signup := fixtures.CreateActivatedSignup(ctx, "erin", "erin@example.com")

	rec := postAction(handler, url.Values{
		"unconfirmed_action": {"resend"},
		"key":                {signup.ActivationKey},
	})

	_, q := locationStatus(t, rec)
	if got := q.Get("unconfirmed_status"); got != "no_user" {
		t.Errorf("status: got %q, want %q", got, "no_user")
	}
	if len(sender.sent) != 0 {
		t.Errorf("expected no email sent, got %d", len(sender.sent))
	}
}

func TestHandleAction_ResendSendFailure(t *testing.T) {
	handler, sender, store, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sender.err = errors.New("smtp connection refused")
	signup := fixtures.CreateSignup(ctx, "frank", "frank@example.com", time.Now())

	rec := postAction(handler, url.Values{
		"unconfirmed_action": {"resend"},
		"key":                {signup.ActivationKey},
	})

	_, q := locationStatus(t, rec)
	if got := q.Get("unconfirmed_status"); got != "unsent" {
		t.Errorf("status: got %q, want %q", got, "unsent")
	}

	updated, err := store.GetByKey(ctx, signup.ActivationKey)
	if err != nil {
		t.Fatalf("GetByKey failed: %v", err)
	}
	if updated.ResendCount != 0 {
		t.Errorf("resend count: got %d, want 0 after send failure", updated.ResendCount)
	}
}

func TestHandleAction_UnknownAction(t *testing.T) {
	handler, _, _, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	signup := fixtures.CreateSignup(ctx, "grace", "grace@example.com", time.Now())

	rec := postAction(handler, url.Values{
		"unconfirmed_action": {"delete"},
		"key":                {signup.ActivationKey},
	})

	path, q := locationStatus(t, rec)
	if path != "/signups" {
		t.Errorf("redirect path: got %q, want %q", path, "/signups")
	}
	if q.Has("unconfirmed_status") {
		t.Errorf("expected no status code, got %q", q.Get("unconfirmed_status"))
	}
}
