package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/pipeline"
	"github.com/MKhiriev/sky-shelf/internal/service"
	"github.com/MKhiriev/sky-shelf/internal/utils"
	"github.com/MKhiriev/sky-shelf/models"
)

func (h *Handler) getCollectionState(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	state, err := h.loadState(r.Context(), collectionFromRequest(r))
	if err != nil {
		log.Err(err).Str("func", "*Handler.getCollectionState").Msg("error loading collection")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, state.Summary(), http.StatusOK)
}

func (h *Handler) refetch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	c := collectionFromRequest(r)

	state, err := h.services.Orchestrator.Refetch(r.Context(), c)
	if err != nil {
		log.Err(err).Str("func", "*Handler.refetch").Msg("error refetching collection")
		if errors.Is(err, service.ErrFetchSuperseded) || errors.Is(err, context.Canceled) {
			utils.WriteError(w, err.Error(), statusFromError(err))
			return
		}
		utils.WriteJSON(w, h.services.Orchestrator.State(c).Summary(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, state.Summary(), http.StatusOK)
}

func (h *Handler) getPosts(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	c := collectionFromRequest(r)

	filter, flip, err := parseFilter(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getPosts").Msg("invalid query parameters")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}
	if err = h.validator.Validate(r.Context(), filter); err != nil {
		log.Err(err).Str("func", "*Handler.getPosts").Msg("invalid filter")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	state, err := h.loadState(r.Context(), c)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getPosts").Msg("error loading collection")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	var posts []models.PostView
	if state.Data != nil {
		posts = state.Data.Posts
	}

	result := pipeline.Run(posts, filter, pipeline.Options{
		Searcher:  h.services.Orchestrator.Searcher(c),
		Fuzziness: h.fuzziness,
		Flip:      flip,
	})

	utils.WriteJSON(w, result.Page, http.StatusOK)
}

func (h *Handler) getAuthors(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	state, err := h.loadState(r.Context(), collectionFromRequest(r))
	if err != nil {
		log.Err(err).Str("func", "*Handler.getAuthors").Msg("error loading collection")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	authors := []models.ProfileViewBasic{}
	if state.Data != nil && state.Data.Authors != nil {
		authors = state.Data.Authors
	}

	utils.WriteJSON(w, authors, http.StatusOK)
}

// loadState returns the state of c, serving it from the cache first when
// nothing was loaded yet.
func (h *Handler) loadState(ctx context.Context, c models.Collection) (models.QueryState, error) {
	state := h.services.Orchestrator.State(c)
	if state.Status != models.QueryIdle || state.Fetching {
		return state, nil
	}
	return h.services.Orchestrator.Fetch(ctx, c, models.FetchOptions{})
}

// parseFilter reads the filter criteria of a post list request:
// q, repeated author and embed values, page and flip.
func parseFilter(r *http.Request) (models.FilterState, bool, error) {
	query := r.URL.Query()

	filter := models.FilterState{
		Query:   query.Get("q"),
		Authors: query["author"],
	}
	for _, kind := range query["embed"] {
		filter.Embeds = append(filter.Embeds, models.EmbedKind(kind))
	}

	if page := query.Get("page"); page != "" {
		index, err := strconv.Atoi(page)
		if err != nil {
			return filter, false, ErrInvalidPageParam
		}
		filter.PageIndex = index
	}

	var flip bool
	if raw := query.Get("flip"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, false, ErrInvalidFlipParam
		}
		flip = parsed
	}

	return filter, flip, nil
}
