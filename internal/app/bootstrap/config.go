// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/boonebg/unconfirmed/internal/app/features/signups"
	"github.com/boonebg/unconfirmed/internal/app/system/sorting"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Unconfirmed.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_domain, etc.
//   - Environment variables: UNCONFIRMED_MONGO_URI, UNCONFIRMED_SESSION_DOMAIN, etc.
//   - Command-line flags: --mongo_uri, --session_domain, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "unconfirmed", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "csrf_key", Default: "", Desc: "32-byte CSRF token key (random per-process key when blank)"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host (blank logs emails instead of sending)"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@localhost", Desc: "From email address"},

	// Site identity and base URL for activation links
	{Name: "site_name", Default: "Unconfirmed", Desc: "Site name shown in pages and emails"},
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for activation links"},

	// Query-parameter names for the signups list
	{Name: "query_key_per_page", Default: "per_page", Desc: "Query parameter for the page size"},
	{Name: "query_key_paged", Default: "paged", Desc: "Query parameter for the page number"},
	{Name: "query_key_orderby", Default: "orderby", Desc: "Query parameter for the sort column"},
	{Name: "query_key_order", Default: "order", Desc: "Query parameter for the sort direction"},

	// Admin seeding
	{Name: "admin_name", Default: "", Desc: "Full name of the seeded administrator"},
	{Name: "admin_email", Default: "", Desc: "Email of the seeded administrator (created on startup when set)"},
	{Name: "admin_password", Default: "", Desc: "Password of the seeded administrator"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, UNCONFIRMED_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "UNCONFIRMED", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionDomain: appValues.String("session_domain"),
		CSRFKey:       appValues.String("csrf_key"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),

		SiteName: appValues.String("site_name"),
		BaseURL:  appValues.String("base_url"),

		QueryKeyPerPage: appValues.String("query_key_per_page"),
		QueryKeyPaged:   appValues.String("query_key_paged"),
		QueryKeyOrderBy: appValues.String("query_key_orderby"),
		QueryKeyOrder:   appValues.String("query_key_order"),

		AdminName:     appValues.String("admin_name"),
		AdminEmail:    appValues.String("admin_email"),
		AdminPassword: appValues.String("admin_password"),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.SessionKey == "" {
		return fmt.Errorf("session_key must be set")
	}

	for name, v := range map[string]string{
		"query_key_per_page": appCfg.QueryKeyPerPage,
		"query_key_paged":    appCfg.QueryKeyPaged,
		"query_key_orderby":  appCfg.QueryKeyOrderBy,
		"query_key_order":    appCfg.QueryKeyOrder,
	} {
		if v == "" {
			return fmt.Errorf("%s must not be blank", name)
		}
	}

	// The column config is static, but a bad edit should stop the app
	// at startup rather than surface as a broken list page.
	if err := sorting.Validate(signups.Columns()); err != nil {
		return fmt.Errorf("signup column config: %w", err)
	}

	return nil
}
