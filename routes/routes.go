package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/brandscapers/dropbydrop/app"
	"github.com/brandscapers/dropbydrop/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)
	root.Use(cors.New(cors.Options{
		AllowedOrigins: app.Config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)

	root.Mount("/api", apiRouter(app))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Post("/submit", SubmitResponse(app))

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.RequireAuth(app.Verifier))

		r.Get("/list", ListResponses(app))
		r.Get("/summary", SummarizeResponses(app))
		r.Get("/export", ExportResponses(app))
	})

	return api
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}
