// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/sky-shelf/internal/adapter"
	"github.com/MKhiriev/sky-shelf/internal/crypto"
	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/store"
	"github.com/MKhiriev/sky-shelf/internal/utils"
	"github.com/MKhiriev/sky-shelf/models"
)

// accessLeeway treats access tokens this close to expiry as expired.
const accessLeeway = 30 * time.Second

type sessionService struct {
	adapter adapter.RemoteAdapter
	sealer  crypto.SessionSealer
	cache   store.CacheStore
	now     func() time.Time
	logger  *logger.Logger

	mu        sync.Mutex
	persisted models.Session
}

// NewSessionService returns a SessionService that keeps the adapter session
// sealed in cache. Sessions replaced by the adapter itself, such as after
// a transparent refresh, are persisted as well.
func NewSessionService(remote adapter.RemoteAdapter, sealer crypto.SessionSealer, cache store.CacheStore, logger *logger.Logger) SessionService {
	s := &sessionService{
		adapter: remote,
		sealer:  sealer,
		cache:   cache,
		now:     time.Now,
		logger:  logger,
	}
	remote.OnSessionChange(s.onSessionChange)
	return s
}

func (s *sessionService) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	session, err := s.adapter.CreateSession(ctx, creds)
	if err != nil {
		s.logger.Err(err).Str("func", "sessionService.Login").Str("identifier", creds.Identifier).Msg("error creating session")
		return models.Session{}, fmt.Errorf("login: %w", err)
	}

	if err = s.persist(ctx, session); err != nil {
		return models.Session{}, err
	}
	s.logger.Info().Str("did", session.DID).Str("handle", session.Handle).Msg("logged in")
	return session, nil
}

func (s *sessionService) Restore(ctx context.Context) (models.Session, error) {
	sealed, err := s.cache.Get(ctx, store.SessionKey)
	if errors.Is(err, store.ErrCacheEntryNotFound) {
		return models.Session{}, ErrNotAuthenticated
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("read session: %w", err)
	}

	var session models.Session
	if err = s.sealer.Open(sealed, &session); err != nil {
		s.logger.Err(err).Str("func", "sessionService.Restore").Msg("error opening stored session")
		return models.Session{}, fmt.Errorf("open session: %w", err)
	}
	if !session.Valid() {
		return models.Session{}, ErrNotAuthenticated
	}

	s.mu.Lock()
	s.persisted = session
	s.mu.Unlock()
	s.adapter.SetSession(session)

	if !utils.IsJWTExpired(session.AccessJwt, s.now(), accessLeeway) {
		return session, nil
	}

	s.logger.Debug().Str("did", session.DID).Msg("stored session expired, refreshing")
	session, err = s.adapter.RefreshSession(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "sessionService.Restore").Msg("error refreshing session")
		return models.Session{}, fmt.Errorf("refresh session: %w", err)
	}
	if err = s.persist(ctx, session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (s *sessionService) Current() models.Session {
	return s.adapter.Session()
}

func (s *sessionService) Logout(ctx context.Context) error {
	if err := s.cache.Delete(ctx, store.SessionKey); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.mu.Lock()
	s.persisted = models.Session{}
	s.mu.Unlock()
	s.adapter.SetSession(models.Session{})
	return nil
}

func (s *sessionService) onSessionChange(session models.Session) {
	if err := s.persist(context.Background(), session); err != nil {
		s.logger.Warn().Err(err).Str("func", "sessionService.onSessionChange").Msg("refreshed session was not persisted")
	}
}

// persist seals and stores session unless it is the one stored last.
func (s *sessionService) persist(ctx context.Context, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.persisted == session {
		return nil
	}

	sealed, err := s.sealer.Seal(session)
	if err != nil {
		return fmt.Errorf("seal session: %w", err)
	}
	if err = s.cache.Set(ctx, store.SessionKey, sealed); err != nil {
		s.logger.Err(err).Str("func", "sessionService.persist").Msg("error storing session")
		return fmt.Errorf("store session: %w", err)
	}
	s.persisted = session
	return nil
}
