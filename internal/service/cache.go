// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/store"
	"github.com/MKhiriev/sky-shelf/models"
)

type cacheService struct {
	cache   store.CacheStore
	session store.CacheStore
	logger  *logger.Logger
}

// NewCacheService returns a CacheService writing collection blobs and the
// last tab to cache and the current page index to session.
func NewCacheService(cache, session store.CacheStore, logger *logger.Logger) CacheService {
	return &cacheService{cache: cache, session: session, logger: logger}
}

// cacheProbe detects blobs written before posts were part of the format.
type cacheProbe struct {
	Posts json.RawMessage `json:"posts"`
}

func (s *cacheService) Load(ctx context.Context, c models.Collection) (*models.FetchData, error) {
	raw, err := s.cache.Get(ctx, store.CacheKey(c))
	if errors.Is(err, store.ErrCacheEntryNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Err(err).Str("func", "cacheService.Load").Str("collection", string(c)).Msg("error reading cache")
		return nil, fmt.Errorf("read %s cache: %w", c, err)
	}

	var probe cacheProbe
	if err = json.Unmarshal(raw, &probe); err != nil || len(probe.Posts) == 0 || string(probe.Posts) == "null" {
		s.logger.Warn().Str("func", "cacheService.Load").Str("collection", string(c)).Msg("cache blob has no posts")
		return nil, ErrMalformedCache
	}

	var data models.FetchData
	if err = json.Unmarshal(raw, &data); err != nil {
		return nil, ErrMalformedCache
	}
	if data.Authors == nil {
		data.Authors = []models.ProfileViewBasic{}
	}
	return &data, nil
}

func (s *cacheService) Save(ctx context.Context, c models.Collection, data *models.FetchData) error {
	if data == nil {
		data = &models.FetchData{}
	}
	out := *data
	if out.Posts == nil {
		out.Posts = []models.PostView{}
	}
	if out.Authors == nil {
		out.Authors = []models.ProfileViewBasic{}
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encode %s cache: %w", c, err)
	}
	if err = s.cache.Set(ctx, store.CacheKey(c), raw); err != nil {
		s.logger.Err(err).Str("func", "cacheService.Save").Str("collection", string(c)).Msg("error writing cache")
		return fmt.Errorf("write %s cache: %w", c, err)
	}
	return nil
}

func (s *cacheService) Clear(ctx context.Context, c models.Collection) error {
	if err := s.cache.Delete(ctx, store.CacheKey(c)); err != nil {
		s.logger.Err(err).Str("func", "cacheService.Clear").Str("collection", string(c)).Msg("error clearing cache")
		return fmt.Errorf("clear %s cache: %w", c, err)
	}
	return nil
}

func (s *cacheService) ClearAll(ctx context.Context) error {
	var errs []error
	for _, c := range models.Collections {
		if err := s.Clear(ctx, c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *cacheService) LastTab(ctx context.Context) (models.Collection, error) {
	raw, err := s.cache.Get(ctx, store.LastTabKey)
	if errors.Is(err, store.ErrCacheEntryNotFound) {
		return models.Collections[0], nil
	}
	if err != nil {
		return "", fmt.Errorf("read last tab: %w", err)
	}

	c, ok := models.ParseCollection(string(raw))
	if !ok {
		return models.Collections[0], nil
	}
	return c, nil
}

func (s *cacheService) SetLastTab(ctx context.Context, c models.Collection) error {
	if _, ok := models.ParseCollection(string(c)); !ok {
		return ErrUnknownCollection
	}
	if err := s.cache.Set(ctx, store.LastTabKey, []byte(c)); err != nil {
		return fmt.Errorf("write last tab: %w", err)
	}
	return nil
}

func (s *cacheService) CurrentIndex(ctx context.Context) (int, error) {
	raw, err := s.session.Get(ctx, store.CurrentIndexKey)
	if errors.Is(err, store.ErrCacheEntryNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read current index: %w", err)
	}

	index, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, nil
	}
	return index, nil
}

func (s *cacheService) SetCurrentIndex(ctx context.Context, index int) error {
	if err := s.session.Set(ctx, store.CurrentIndexKey, []byte(strconv.Itoa(index))); err != nil {
		return fmt.Errorf("write current index: %w", err)
	}
	return nil
}
