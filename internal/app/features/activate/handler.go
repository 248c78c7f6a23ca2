// internal/app/features/activate/handler.go
package activate

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"

	uierrors "github.com/boonebg/unconfirmed/internal/app/features/errors"
	signupstore "github.com/boonebg/unconfirmed/internal/app/store/signups"
	"github.com/boonebg/unconfirmed/internal/app/system/auditlog"
	"github.com/boonebg/unconfirmed/internal/app/system/htmlsanitize"
	"github.com/boonebg/unconfirmed/internal/app/system/timeouts"
	"github.com/boonebg/unconfirmed/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler serves the public activation page linked from signup emails.
type Handler struct {
	Store    *signupstore.Store
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

func NewHandler(store *signupstore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:    store,
		AuditLog: audit,
		Log:      logger,
	}
}

// Page states rendered by the activate template.
const (
	stateForm          = "form"
	stateActivated     = "activated"
	stateAlreadyActive = "already_active"
	stateInvalidKey    = "invalid_key"
)

type activateData struct {
	viewdata.BaseVM
	State     string
	Key       string
	UserLogin string
	SiteTitle template.HTML
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /activate                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeActivate activates the signup named by ?key=… and shows the
// result. Without a key it shows a form that submits the key via GET,
// same as the link in the activation email.
func (h *Handler) ServeActivate(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(query.Get(r, "key"))
	if key == "" {
		h.render(w, r, activateData{
			BaseVM: viewdata.NewBaseVM(r, "Activate your account", "/"),
			State:  stateForm,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	signup, err := h.Store.Activate(ctx, key)
	switch {
	case errors.Is(err, signupstore.ErrAlreadyActive):
		h.AuditLog.SignupActivateFailed(ctx, r, "", key, "already active")
		h.render(w, r, activateData{
			BaseVM: viewdata.NewBaseVM(r, "Account already active", "/"),
			State:  stateAlreadyActive,
			Key:    key,
		})
		return
	case errors.Is(err, signupstore.ErrNotFound):
		h.AuditLog.SignupActivateFailed(ctx, r, "", key, "not found")
		h.render(w, r, activateData{
			BaseVM: viewdata.NewBaseVM(r, "Invalid activation key", "/"),
			State:  stateInvalidKey,
			Key:    key,
		})
		return
	case err != nil:
		uierrors.LogServerError(w, r, h.Log, "activate: update signup", err)
		return
	}

	// Self-service activation has no signed-in actor.
	h.AuditLog.SignupActivated(ctx, r, "", key, signup.UserLogin)

	h.render(w, r, activateData{
		BaseVM:    viewdata.NewBaseVM(r, "Account activated", "/"),
		State:     stateActivated,
		UserLogin: signup.UserLogin,
		SiteTitle: htmlsanitize.SanitizeToHTML(signup.Title),
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data activateData) {
	templates.Render(w, r, "activate", data)
}
