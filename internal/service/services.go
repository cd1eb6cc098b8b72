package service

import (
	"github.com/MKhiriev/sky-shelf/internal/adapter"
	"github.com/MKhiriev/sky-shelf/internal/config"
	"github.com/MKhiriev/sky-shelf/internal/crypto"
	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/store"
)

type Services struct {
	AppInfoService AppInfoService
	SessionService SessionService
	CacheService   CacheService
	Orchestrator   Orchestrator
	StatsService   StatsService
	RefreshJob     RefreshJob
}

func NewServices(storages *store.Storages, remote adapter.RemoteAdapter, cfg config.ClientConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	cacheSvc := NewCacheService(storages.Cache, storages.Session, logger)
	orchestrator := NewOrchestrator(NewSources(remote, cfg.App.LikesSource, logger), cacheSvc, logger)

	return &Services{
		AppInfoService: appInfo,
		SessionService: NewSessionService(remote, crypto.NewSessionSealer(cfg.App.SessionKey), storages.Cache, logger),
		CacheService:   cacheSvc,
		Orchestrator:   orchestrator,
		StatsService:   NewStatsService(orchestrator, remote, nil, logger),
		RefreshJob:     NewRefreshJob(orchestrator, logger),
	}, nil
}
