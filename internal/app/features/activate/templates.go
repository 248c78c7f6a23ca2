// internal/app/features/activate/templates.go
package activate

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "activate",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
