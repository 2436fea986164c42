package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func buildRouter(s *stateStore) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	// UI/static
	r.Get("/", s.uiHandler)
	r.Get("/ui/app.js", s.uiHandler)
	r.Get("/ui/shared.js", s.uiHandler)
	r.Get("/favicon.ico", s.uiHandler)

	// Health/info
	r.Get("/healthz", healthzHandler)
	r.Get("/api/v1/server-info", serverInfoHandler)

	// Catalog APIs
	r.Get("/api/v1/scripts", s.listScriptsHandler)
	r.Post("/api/v1/scripts/import", s.importScriptsHandler)
	r.Get("/api/v1/scripts/{id}", s.getScriptHandler)
	r.Get("/api/v1/scripts/{id}/image.svg", s.scriptImageHandler)
	r.Post("/api/v1/scripts/{id}/copy", s.copyScriptHandler)
	r.Post("/api/v1/reset", s.resetHandler)

	// Settings
	r.Get("/api/v1/settings", s.getSettingsHandler)
	r.Put("/api/v1/settings", s.putSettingsHandler)

	// Executors
	r.Get("/api/v1/executors", s.listExecutorsHandler)
	r.Post("/api/v1/executors", s.addExecutorHandler)
	r.Delete("/api/v1/executors/{index}", s.deleteExecutorHandler)
	r.Get("/api/v1/executors/{index}/download", s.downloadExecutorHandler)

	// Reveal sequence
	r.Get("/api/v1/reveal", s.revealStatusHandler)
	r.Post("/api/v1/reveal", s.startRevealHandler)
	r.Post("/api/v1/reveal/cancel", s.cancelRevealHandler)
	r.Post("/api/v1/reveal/copy", s.copyRevealHandler)

	return r
}
