// internal/app/features/signups/actions.go
package signups

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	signupstore "github.com/boonebg/unconfirmed/internal/app/store/signups"
	"github.com/boonebg/unconfirmed/internal/app/system/auth"
	"github.com/boonebg/unconfirmed/internal/app/system/mailer"
	"github.com/boonebg/unconfirmed/internal/app/system/timeouts"
	"github.com/boonebg/unconfirmed/internal/domain/models"
	"go.uber.org/zap"
)

// HandleAction handles POST /signups/action: the activate and resend
// buttons on the list page. Whatever the outcome, the browser goes
// back to the list with a status code in the query string; the list
// renders the outcome as a banner. CSRF protection wraps the route in
// bootstrap.
func (h *Handler) HandleAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithStatus(w, r, StatusNoKey)
		return
	}

	action := strings.TrimSpace(r.PostFormValue(ActionParam))
	key := strings.TrimSpace(r.PostFormValue(KeyParam))

	if key == "" {
		h.redirectWithStatus(w, r, StatusNoKey)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "signup action")
	defer cancel()

	var actorID string
	if u, ok := auth.CurrentUser(r); ok {
		actorID = u.ID
	}

	switch action {
	case ActionActivate:
		h.redirectWithStatus(w, r, h.activate(ctx, r, actorID, key))
	case ActionResend:
		h.redirectWithStatus(w, r, h.resend(ctx, r, actorID, key))
	default:
		// Unknown action: back to the list, no banner.
		h.redirectWithStatus(w, r, "")
	}
}

func (h *Handler) activate(ctx context.Context, r *http.Request, actorID, key string) string {
	signup, err := h.Store.Activate(ctx, key)
	if err != nil {
		if errors.Is(err, signupstore.ErrNotFound) {
			// No signup carries this key: distinct from an activation
			// that failed.
			h.AuditLog.SignupActivateFailed(ctx, r, actorID, key, "not found")
			return StatusNoUser
		}
		reason := "already active"
		if !errors.Is(err, signupstore.ErrAlreadyActive) {
			h.Log.Error("activate signup", zap.String("key", key), zap.Error(err))
			reason = "db error"
		}
		h.AuditLog.SignupActivateFailed(ctx, r, actorID, key, reason)
		return StatusCouldntActivate
	}

	h.AuditLog.SignupActivated(ctx, r, actorID, key, signup.UserLogin)
	return StatusActivated
}

func (h *Handler) resend(ctx context.Context, r *http.Request, actorID, key string) string {
	signup, err := h.Store.GetByKey(ctx, key)
	if err != nil || signup.Active {
		reason := "not found"
		if err == nil {
			reason = "already active"
		} else if !errors.Is(err, signupstore.ErrNotFound) {
			h.Log.Error("load signup for resend", zap.String("key", key), zap.Error(err))
			reason = "db error"
		}
		h.AuditLog.SignupResendFailed(ctx, r, actorID, key, reason)
		return StatusNoUser
	}

	email := h.buildActivationEmail(signup)
	if err := h.Mail.Send(ctx, email); err != nil {
		h.Log.Error("resend activation email",
			zap.String("key", key),
			zap.String("to", signup.UserEmail),
			zap.Error(err))
		h.AuditLog.SignupResendFailed(ctx, r, actorID, key, "send failed")
		return StatusUnsent
	}

	if err := h.Store.MarkResent(ctx, key); err != nil {
		// The email went out; a bookkeeping failure is logged but does
		// not turn the outcome into an error for the admin.
		h.Log.Warn("mark signup resent", zap.String("key", key), zap.Error(err))
	}

	h.AuditLog.SignupResent(ctx, r, actorID, key, signup.UserEmail)
	return StatusResent
}

func (h *Handler) buildActivationEmail(signup *models.Signup) mailer.Email {
	link := strings.TrimRight(h.BaseURL, "/") + "/activate?key=" + url.QueryEscape(signup.ActivationKey)
	email := mailer.BuildActivationEmail(mailer.ActivationEmailData{
		SiteName:       h.SiteName,
		UserLogin:      signup.UserLogin,
		ActivationLink: link,
	})
	email.To = signup.UserEmail
	return email
}

// redirectWithStatus sends the browser back to the list, preserving
// the view state the form carried (page, per-page, sort) and appending
// the status code when there is one.
func (h *Handler) redirectWithStatus(w http.ResponseWriter, r *http.Request, status string) {
	vals := url.Values{}
	for _, k := range []string{h.Keys.Paged, h.Keys.PerPage, h.Keys.OrderBy, h.Keys.Order} {
		if v := strings.TrimSpace(r.PostFormValue(k)); v != "" {
			vals.Set(k, v)
		}
	}
	if status != "" {
		vals.Set(StatusParam, status)
	}

	dest := "/signups"
	if encoded := vals.Encode(); encoded != "" {
		dest += "?" + encoded
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
