package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/utils"
	"github.com/MKhiriev/sky-shelf/models"
)

type tabBody struct {
	Collection models.Collection `json:"collection"`
}

func (h *Handler) getTab(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	tab, err := h.services.CacheService.LastTab(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.getTab").Msg("error reading last tab")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, tabBody{Collection: tab}, http.StatusOK)
}

func (h *Handler) setTab(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var body tabBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Str("func", "*Handler.setTab").Msg("Invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validator.Validate(r.Context(), body.Collection); err != nil {
		log.Err(err).Str("func", "*Handler.setTab").Msg("invalid collection")
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.CacheService.SetLastTab(r.Context(), body.Collection); err != nil {
		log.Err(err).Str("func", "*Handler.setTab").Msg("error saving last tab")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
