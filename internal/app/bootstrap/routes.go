// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	activatefeature "github.com/boonebg/unconfirmed/internal/app/features/activate"
	errorsfeature "github.com/boonebg/unconfirmed/internal/app/features/errors"
	healthfeature "github.com/boonebg/unconfirmed/internal/app/features/health"
	homefeature "github.com/boonebg/unconfirmed/internal/app/features/home"
	loginfeature "github.com/boonebg/unconfirmed/internal/app/features/login"
	logoutfeature "github.com/boonebg/unconfirmed/internal/app/features/logout"
	signupsfeature "github.com/boonebg/unconfirmed/internal/app/features/signups"
	auditstore "github.com/boonebg/unconfirmed/internal/app/store/audit"
	signupstore "github.com/boonebg/unconfirmed/internal/app/store/signups"
	userstore "github.com/boonebg/unconfirmed/internal/app/store/users"
	"github.com/boonebg/unconfirmed/internal/app/system/auditlog"
	"github.com/boonebg/unconfirmed/internal/app/system/auth"
	"github.com/boonebg/unconfirmed/internal/app/system/mailer"
	"github.com/boonebg/unconfirmed/internal/app/system/paging"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed. It initializes the session
// store and template engine, applies session and CSRF middleware, and
// mounts the feature routers: home, login, logout, the public
// activation page, the pending-signups admin list, and health.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"

	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	csrfKey := []byte(appCfg.CSRFKey)
	if len(csrfKey) == 0 {
		// Per-process key: fine for a single instance, invalidates
		// in-flight forms on restart.
		logger.Warn("no csrf_key configured; using a random per-process key")
		csrfKey = securecookie.GenerateRandomKey(32)
	}

	keys := paging.Keys{
		PerPage: appCfg.QueryKeyPerPage,
		Paged:   appCfg.QueryKeyPaged,
		OrderBy: appCfg.QueryKeyOrderBy,
		Order:   appCfg.QueryKeyOrder,
	}

	db := deps.MongoDatabase
	signupStore := signupstore.New(db)
	users := userstore.New(db)

	auditLogger := auditlog.New(auditstore.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	mailSender := mailer.NewFromConfig(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		Username: appCfg.MailSMTPUser,
		Password: appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
	}, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged
	// in, making the current user available via auth.CurrentUser(r).
	r.Use(auth.LoadSessionUser)

	// Every POST in the app is a form submission, so CSRF protection is
	// global. A rejected token renders the forbidden page instead of
	// gorilla's plain-text 403.
	r.Use(csrf.Protect(csrfKey,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			errorsfeature.RenderForbidden(w, req, "Your form session expired or the request was invalid. Please go back and try again.", "")
		})),
	))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	activateHandler := activatefeature.NewHandler(signupStore, auditLogger, logger)
	r.Mount("/activate", activatefeature.Routes(activateHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(users, auditLogger, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(auditLogger, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.NotFound(errorsHandler.NotFound)

	// Pending-signups admin list
	signupsHandler := signupsfeature.NewHandler(signupStore, mailSender, auditLogger, logger, keys, appCfg.SiteName, appCfg.BaseURL)
	r.Mount("/signups", signupsfeature.Routes(signupsHandler))

	return r, nil
}
