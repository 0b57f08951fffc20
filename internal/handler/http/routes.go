package http

import (
	"net/http"

	"github.com/MKhiriev/go-voting-server/internal/utils"
	"github.com/MKhiriev/go-voting-server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5, "application/json", "text/plain"))
	router.Use(withGZipBody)

	router.Get("/health", h.health)

	router.Route("/user", func(r chi.Router) {
		r.Post("/signup", h.signup)
		r.Post("/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/profile", h.profile)
			r.Put("/profile/password", h.changePassword)
		})
	})

	router.Route("/candidate", func(r chi.Router) {
		r.Get("/", h.listCandidates)
		r.Get("/vote/count", h.voteCount)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/vote/{candidateID}", h.vote)

			r.Group(func(r chi.Router) {
				r.Use(h.adminOnly)
				r.Post("/", h.createCandidate)
				r.Put("/{candidateID}", h.updateCandidate)
				r.Delete("/{candidateID}", h.deleteCandidate)
			})
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, models.ErrorResponse{Error: errNotFound.Error()}, http.StatusNotFound)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, models.ErrorResponse{Error: errMethodNotAllowed.Error()}, http.StatusMethodNotAllowed)
	})

	return router
}
