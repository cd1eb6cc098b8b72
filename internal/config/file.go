package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// StructuredFileConfig is the on-disk layout of a config file. The same
// keys are used for JSON and TOML.
type StructuredFileConfig struct {
	App struct {
		Version         string  `json:"version" toml:"version"`
		Identifier      string  `json:"identifier" toml:"identifier"`
		AppPassword     string  `json:"app_password" toml:"app_password"`
		SessionKey      string  `json:"session_key" toml:"session_key"`
		LikesSource     string  `json:"likes_source" toml:"likes_source"`
		SearchFuzziness float64 `json:"search_fuzziness" toml:"search_fuzziness"`
		HashKey         string  `json:"hash_key" toml:"hash_key"`
		LogPath         string  `json:"log_path" toml:"log_path"`
	} `json:"app,omitempty" toml:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" toml:"dsn"`
		} `json:"db,omitempty" toml:"db"`
	} `json:"storage,omitempty" toml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" toml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" toml:"request_timeout"`
	} `json:"server,omitempty" toml:"server"`

	Adapter struct {
		Address        string   `json:"address" toml:"address"`
		RequestTimeout Duration `json:"request_timeout" toml:"request_timeout"`
		RateLimit      float64  `json:"rate_limit" toml:"rate_limit"`
		RateBurst      int      `json:"rate_burst" toml:"rate_burst"`
	} `json:"adapter,omitempty" toml:"adapter"`

	Workers struct {
		RefreshInterval    Duration `json:"refresh_interval" toml:"refresh_interval"`
		RefreshCollections []string `json:"refresh_collections" toml:"refresh_collections"`
	} `json:"workers,omitempty" toml:"workers"`
}

// parseFile decodes the config file at path. Files ending in .toml are read
// as TOML, everything else as JSON.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fileCfg StructuredFileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding toml configs: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return &StructuredConfig{
		App: App{
			Version:         fileCfg.App.Version,
			Identifier:      fileCfg.App.Identifier,
			AppPassword:     fileCfg.App.AppPassword,
			SessionKey:      fileCfg.App.SessionKey,
			LikesSource:     fileCfg.App.LikesSource,
			SearchFuzziness: fileCfg.App.SearchFuzziness,
			HashKey:         fileCfg.App.HashKey,
			LogPath:         fileCfg.App.LogPath,
		},
		Storage: Storage{
			DB: DB{
				DSN: fileCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    fileCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(fileCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			Address:        fileCfg.Adapter.Address,
			RequestTimeout: time.Duration(fileCfg.Adapter.RequestTimeout),
			RateLimit:      fileCfg.Adapter.RateLimit,
			RateBurst:      fileCfg.Adapter.RateBurst,
		},
		Workers: Workers{
			RefreshInterval:    time.Duration(fileCfg.Workers.RefreshInterval),
			RefreshCollections: fileCfg.Workers.RefreshCollections,
		},
	}, nil
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h" or "30s" in both JSON and TOML.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.UnmarshalText([]byte(value))
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler, which go-toml uses for
// string values.
func (d *Duration) UnmarshalText(text []byte) error {
	tmp, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
