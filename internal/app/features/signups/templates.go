// internal/app/features/signups/templates.go
package signups

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "signups",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
