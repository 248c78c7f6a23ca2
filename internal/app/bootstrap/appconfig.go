// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//   - Database connection timeouts
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session and CSRF configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionDomain string // Cookie domain (blank means current host)
	CSRFKey       string // 32-byte key for CSRF tokens; a random key is generated when blank

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username (empty disables auth)
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address (e.g., noreply@example.com)

	// Site identity and base URL for activation links
	SiteName string
	BaseURL  string // e.g., "https://unconfirmed.example.com"

	// Query-parameter names for the signups list. The status and action
	// parameters are fixed; only the paging/sorting keys are
	// configurable.
	QueryKeyPerPage string
	QueryKeyPaged   string
	QueryKeyOrderBy string
	QueryKeyOrder   string

	// Admin seeding: when all three are set, Startup ensures this
	// administrator account exists.
	AdminName     string
	AdminEmail    string
	AdminPassword string

	// Audit logging settings
	AuditLogAuth  string // "all", "db", "log", or "off"
	AuditLogAdmin string
}
