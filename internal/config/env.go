// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables through the `env` and
// `envPrefix` tags of [StructuredConfig], then normalizes values typed by
// hand: the login identifier and the refresh collection names are trimmed,
// the likes source is lowercased.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	cfg.App.Identifier = strings.TrimSpace(cfg.App.Identifier)
	cfg.App.LikesSource = strings.ToLower(strings.TrimSpace(cfg.App.LikesSource))
	for i, name := range cfg.Workers.RefreshCollections {
		cfg.Workers.RefreshCollections[i] = strings.TrimSpace(name)
	}

	return nil
}
