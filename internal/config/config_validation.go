// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"slices"
)

var knownCollections = []string{"likes", "pins", "bookmarks"}

// validate checks the merged [StructuredConfig] after defaults have been
// applied. Only value ranges are checked here; required fields are checked
// by the per-process views.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.LikesSource != LikesSourceRecords && cfg.App.LikesSource != LikesSourceFeed {
		return ErrInvalidAppConfigs
	}
	if cfg.App.SearchFuzziness < 0 || cfg.App.SearchFuzziness > 1 {
		return ErrInvalidAppConfigs
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	u, err := url.Parse(cfg.Adapter.Address)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.RateLimit <= 0 || cfg.Adapter.RateBurst < 1 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.RefreshInterval < 0 {
		return ErrInvalidWorkerConfigs
	}
	for _, c := range cfg.Workers.RefreshCollections {
		if !slices.Contains(knownCollections, c) {
			return ErrInvalidWorkerConfigs
		}
	}

	if cfg.App.LikesSource != LikesSourceRecords && cfg.App.LikesSource != LikesSourceFeed {
		return ErrInvalidAppConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if err := cfg.ClientConfig.validate(); err != nil {
		return err
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}
	if cfg.App.HashKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
