package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	// the event stream hijacks the connection, so it stays outside gzip
	router.Get("/api/events", h.events)

	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		r.Get("/api/version", h.getServerVersion)

		r.Route("/api/collections/{collection}", func(r chi.Router) {
			r.Use(h.withCollection)
			r.Get("/", h.getCollectionState)
			r.Post("/refetch", h.refetch)
			r.With(withETag).Get("/posts", h.getPosts)
			r.Get("/authors", h.getAuthors)
		})

		r.Delete("/api/cache", h.clearAllCaches)
		r.With(h.withCollection).Delete("/api/cache/{collection}", h.clearCache)

		r.Get("/api/stats", h.getStats)
		r.Get("/api/stats/unavailable", h.getUnavailable)

		r.Get("/api/tab", h.getTab)
		r.Put("/api/tab", h.setTab)
	})

	router.NotFound(routeNotFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
