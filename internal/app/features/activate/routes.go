// internal/app/features/activate/routes.go
package activate

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeActivate)
	return r
}
