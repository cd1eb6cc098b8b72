package http

import (
	"net/http"

	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/service"
	"github.com/MKhiriev/sky-shelf/internal/utils"
	"github.com/MKhiriev/sky-shelf/models"
)

// statsResponse adds one page of the per-author counts to the summary.
type statsResponse struct {
	models.LikeStats

	AuthorsPage models.Page[models.AuthorCount] `json:"authorsPage"`
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	filter, flip, err := parseFilter(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getStats").Msg("invalid query parameters")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	stats, err := h.services.StatsService.LikeStats(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.getStats").Msg("error computing statistics")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, statsResponse{
		LikeStats:   stats,
		AuthorsPage: service.AuthorPage(stats.PerAuthor, filter.PageIndex, flip),
	}, http.StatusOK)
}

func (h *Handler) getUnavailable(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	posts, err := h.services.StatsService.Unavailable(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.getUnavailable").Msg("error resolving unavailable likes")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}
	if posts == nil {
		posts = []models.UnavailablePost{}
	}

	utils.WriteJSON(w, posts, http.StatusOK)
}
