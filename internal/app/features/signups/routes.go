// internal/app/features/signups/routes.go
package signups

import (
	"github.com/boonebg/unconfirmed/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the pending-signups routes under the path where this
// router is mounted (typically "/signups" from bootstrap).
//
// Example mount from bootstrap:
//
//	h := signups.NewHandler(store, mail, audit, logger, keys, siteName, baseURL)
//	r.Mount("/signups", signups.Routes(h))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		// Only signed-in admins can see or act on pending signups.
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole("admin"))

		pr.Get("/", h.ServeList)
		pr.Post("/action", h.HandleAction)
	})

	return r
}
