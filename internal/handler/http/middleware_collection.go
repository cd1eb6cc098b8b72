package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/utils"
	"github.com/MKhiriev/sky-shelf/models"
)

// withCollection validates the {collection} URL parameter and stores it in
// the request context together with a logger tagged with it.
func (h *Handler) withCollection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "collection")

		if err := h.validator.Validate(r.Context(), models.Collection(name)); err != nil {
			logger.FromRequest(r).Err(err).Str("func", "*Handler.withCollection").
				Str("collection", name).Msg("invalid collection requested")
			utils.WriteError(w, err.Error(), statusFromError(err))
			return
		}

		l := logger.FromRequest(r).ForCollection(name)
		ctx := context.WithValue(r.Context(), utils.CollectionCtxKey, name)
		next.ServeHTTP(w, r.WithContext(l.WithContext(ctx)))
	})
}

// collectionFromRequest returns the collection stored by withCollection.
func collectionFromRequest(r *http.Request) models.Collection {
	name, _ := utils.GetCollectionFromContext(r.Context())
	return models.Collection(name)
}
