package rest

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/adapter/rest/middleware"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires every route. All /api routes require a bearer token.
func NewRouter(h *Handler, jwtSecret string) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(middleware.Observe(h.logger, h.metrics))
	mux.Use(chimw.Recoverer)

	mux.Get("/healthz", h.Health)

	reject := func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, r, domain.NewUnauthenticatedError())
	}

	mux.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret, h.logger, reject))

		r.Get("/api/listings", h.GetAllListings)
		r.Get("/api/listings/mine", h.GetFarmerListings)
		r.Get("/api/listings/user/{userId}", h.GetListingsByUser)
		r.Post("/api/listings", h.AddListing)
		r.Post("/api/listings/images", h.UploadListingImage)
		r.Delete("/api/listings/{id}", h.DeleteListing)

		r.Post("/api/suggestions", h.GenerateSuggestion)
		r.Post("/api/recommendations", h.Recommend)

		r.Post("/api/inventory", h.PushInventory)
		r.Get("/api/inventory", h.PullInventory)
	})

	return mux
}
