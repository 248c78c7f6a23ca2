// internal/app/features/signups/status.go
package signups

// Query parameters used by the action dispatcher and the status banner.
// These are part of the feature's wire contract and are not
// configurable, unlike the paging keys.
const (
	ActionParam = "unconfirmed_action"
	KeyParam    = "key"
	StatusParam = "unconfirmed_status"
)

// Action values accepted by the dispatcher.
const (
	ActionActivate = "activate"
	ActionResend   = "resend"
)

// Status codes carried in the redirect after an action.
const (
	StatusNoKey           = "nokey"
	StatusCouldntActivate = "couldnt_activate"
	StatusActivated       = "activated"
	StatusNoUser          = "no_user"
	StatusResent          = "resent"
	StatusUnsent          = "unsent"
)

// Severity classes for the banner. The values double as CSS classes.
const (
	SeverityError   = "error"
	SeverityUpdated = "updated"
)

// Status describes one banner entry.
type Status struct {
	Severity string
	Message  string
}

// statusTable is the fixed code vocabulary. Codes outside this table
// render no banner at all.
var statusTable = map[string]Status{
	StatusNoKey: {
		Severity: SeverityError,
		Message:  "You didn't provide an activation key.",
	},
	StatusCouldntActivate: {
		Severity: SeverityError,
		Message:  "The signup could not be activated.",
	},
	StatusActivated: {
		Severity: SeverityUpdated,
		Message:  "Member activated.",
	},
	StatusNoUser: {
		Severity: SeverityError,
		Message:  "No unactivated member could be found with that activation key.",
	},
	StatusResent: {
		Severity: SeverityUpdated,
		Message:  "Activation email resent.",
	},
	StatusUnsent: {
		Severity: SeverityError,
		Message:  "The activation email could not be sent.",
	},
}

// LookupStatus resolves a status code to its banner entry. Unknown
// codes return ok=false and the caller renders nothing.
func LookupStatus(code string) (Status, bool) {
	s, ok := statusTable[code]
	return s, ok
}
