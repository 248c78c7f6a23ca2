// internal/app/features/signups/columns.go
package signups

import "github.com/boonebg/unconfirmed/internal/app/system/sorting"

// Columns returns the signup list's column registry. Registration date
// is the default sort, newest first. The registry is validated at
// startup; see bootstrap.ValidateConfig.
func Columns() []sorting.Column {
	return []sorting.Column{
		{
			Name:         "user_login",
			Title:        "User Login",
			CSSClass:     "login",
			DefaultOrder: sorting.Asc,
		},
		{
			Name:         "user_email",
			Title:        "Email Address",
			CSSClass:     "email",
			DefaultOrder: sorting.Asc,
		},
		{
			Name:         "registered",
			Title:        "Registered",
			CSSClass:     "registered",
			DefaultOrder: sorting.Desc,
			IsDefault:    true,
		},
		{
			Name:         "activation_key",
			Title:        "Activation Key",
			CSSClass:     "activation-key",
			DefaultOrder: sorting.Asc,
		},
	}
}
