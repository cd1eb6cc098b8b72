package http

import (
	"net/http"

	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/utils"
)

func (h *Handler) clearCache(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.services.Orchestrator.Clear(r.Context(), collectionFromRequest(r)); err != nil {
		log.Err(err).Str("func", "*Handler.clearCache").Msg("error clearing cache")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clearAllCaches(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.services.Orchestrator.ClearAll(r.Context()); err != nil {
		log.Err(err).Str("func", "*Handler.clearAllCaches").Msg("error clearing caches")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
