package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)
		// The accounts subtree stays outside Authenticate: its handlers read
		// the Authorization header themselves (Basic credentials, or the
		// refresh token, which access-token verification would reject).
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/signup", app.signup)
			r.Post("/login", app.login)
			r.Post("/token/refresh", app.refreshTokens)
		})
		r.Route("/movies", func(r chi.Router) {
			r.Use(app.Authenticate)
			r.Get("/", app.getMovies)
			r.Get("/{id}", app.getMovie)
			r.Group(func(r chi.Router) {
				r.Use(app.requireAuthenticatedUser)
				r.Post("/", app.createMovie)
				r.Patch("/{id}", app.updateMovie)
				r.Delete("/{id}", app.deleteMovie)
			})
		})
		r.Route("/directors", func(r chi.Router) {
			r.Use(app.Authenticate)
			r.Get("/", app.getDirectors)
			r.Get("/{id}", app.getDirector)
			r.Group(func(r chi.Router) {
				r.Use(app.requireAuthenticatedUser)
				r.Post("/", app.createDirector)
				r.Patch("/{id}", app.updateDirector)
				r.Delete("/{id}", app.deleteDirector)
			})
		})
		r.Route("/genres", func(r chi.Router) {
			r.Use(app.Authenticate)
			r.Get("/", app.getGenres)
			r.Get("/{id}", app.getGenre)
			r.Group(func(r chi.Router) {
				r.Use(app.requireAuthenticatedUser)
				r.Post("/", app.createGenre)
				r.Patch("/{id}", app.updateGenre)
				r.Delete("/{id}", app.deleteGenre)
			})
		})
		r.Route("/users", func(r chi.Router) {
			r.Use(app.Authenticate)
			r.Use(app.requireAuthenticatedUser)
			r.Get("/", app.getUsers)
			r.Get("/{id}", app.getUser)
			r.Delete("/{id}", app.deleteUser)
		})
	})
	return router
}
