package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router builds the HTTP handler with all routes configured.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.Health)

		r.Route("/profiles", func(r chi.Router) {
			r.With(s.authLimiter.middleware, decodeBody[credentialsRequest], s.validateEmail, s.hashPassword).
				Post("/register", s.Register)
			r.With(s.authLimiter.middleware, decodeBody[credentialsRequest], s.validateEmail, s.validatePassword).
				Post("/login", s.Login)
			r.With(decodeBody[usernameRequest], s.validateUsername).
				Patch("/{profile_id}/username", s.RegisterUsername)
			r.With(s.authenticate).
				Get("/me", s.Me)
		})

		r.Route("/game", func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/getAllMessages", s.GetAllMessages)
			r.Get("/stash", s.GetStashedSecrets)
			r.Get("/ranking", s.GetAllRanking)
			r.With(decodeBody[secretRequest], s.validateSecret).
				Post("/postNewSecret", s.PostNewSecret)
			r.Post("/secrets/{secretId}/stash", s.DeleteAndStashSecret)
		})
	})

	return r
}
