// internal/app/features/signups/handler.go
package signups

import (
	signupstore "github.com/boonebg/unconfirmed/internal/app/store/signups"
	"github.com/boonebg/unconfirmed/internal/app/system/auditlog"
	"github.com/boonebg/unconfirmed/internal/app/system/mailer"
	"github.com/boonebg/unconfirmed/internal/app/system/paging"
	"go.uber.org/zap"
)

type Handler struct {
	Store    *signupstore.Store
	Mail     mailer.Sender
	AuditLog *auditlog.Logger
	Log      *zap.Logger

	// Keys carries the configured query-parameter names; defaults via
	// paging.DefaultKeys().
	Keys paging.Keys

	// SiteName and BaseURL feed the activation email.
	SiteName string
	BaseURL  string
}

// NewHandler constructs the pending-signups feature handler.
func NewHandler(store *signupstore.Store, mail mailer.Sender, audit *auditlog.Logger, logger *zap.Logger, keys paging.Keys, siteName, baseURL string) *Handler {
	return &Handler{
		Store:    store,
		Mail:     mail,
		AuditLog: audit,
		Log:      logger,
		Keys:     keys,
		SiteName: siteName,
		BaseURL:  baseURL,
	}
}
