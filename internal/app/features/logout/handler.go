// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/boonebg/unconfirmed/internal/app/system/auditlog"
	"github.com/boonebg/unconfirmed/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

func NewHandler(audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		AuditLog: audit,
		Log:      logger,
	}
}

// HandleLogout handles POST /logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	userID := ""
	if u, signed := auth.CurrentUser(r); signed && u != nil {
		userID = u.ID
	}

	if err := auth.SignOut(w, r); err != nil {
		h.Log.Error("logout: clear session", zap.Error(err))
	}

	h.AuditLog.Logout(r.Context(), r, userID)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
