package config

import (
	"fmt"
	"time"
)

// ClientApp holds account, session and search settings.
type ClientApp struct {
	Version         string
	Identifier      string
	AppPassword     string
	SessionKey      string
	LikesSource     string
	SearchFuzziness float64
	HashKey         string
	LogPath         string
}

// ClientAdapter holds settings used by the XRPC transport.
type ClientAdapter struct {
	// Address is the PDS base URL.
	Address string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
	// RateLimit and RateBurst shape the outbound request rate.
	RateLimit float64
	RateBurst int
}

// ClientDB contains cache database connection settings.
type ClientDB struct {
	// DSN is the cache backend selector and address.
	DSN string
}

// ClientStorage groups cache storage settings.
type ClientStorage struct {
	// DB holds cache database settings.
	DB ClientDB
}

// ClientWorkers contains background worker settings.
type ClientWorkers struct {
	// RefreshInterval defines how often cached collections are refetched.
	RefreshInterval time.Duration
	// RefreshCollections lists the collections to refetch; empty means all.
	RefreshCollections []string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains PDS transport settings.
	Adapter ClientAdapter
	// Storage contains cache storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
}

// ServerHTTP holds the HTTP API listener settings.
type ServerHTTP struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ServerConfig is the configuration of the headless HTTP API process. It
// runs the same pipeline as the client and adds the listener.
type ServerConfig struct {
	ClientConfig

	Server ServerHTTP
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration. It returns the arguments left after the
// global flags.
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	cfg, rest, err := GetStructuredConfig(args)
	if err != nil {
		return nil, nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, rest, clientCfg.validate()
}

// GetServerConfig builds and validates the HTTP API process configuration.
func GetServerConfig(args []string) (*ServerConfig, error) {
	cfg, _, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		ClientConfig: *newClientConfig(cfg),
		Server: ServerHTTP{
			HTTPAddress:    cfg.Server.HTTPAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
	}
	if serverCfg.Server.HTTPAddress == "" {
		serverCfg.Server.HTTPAddress = DefaultServerAddress
	}

	return serverCfg, serverCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			Version:         cfg.App.Version,
			Identifier:      cfg.App.Identifier,
			AppPassword:     cfg.App.AppPassword,
			SessionKey:      cfg.App.SessionKey,
			LikesSource:     cfg.App.LikesSource,
			SearchFuzziness: cfg.App.SearchFuzziness,
			HashKey:         cfg.App.HashKey,
			LogPath:         cfg.App.LogPath,
		},
		Adapter: ClientAdapter{
			Address:        cfg.Adapter.Address,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			RateLimit:      cfg.Adapter.RateLimit,
			RateBurst:      cfg.Adapter.RateBurst,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{
			RefreshInterval:    cfg.Workers.RefreshInterval,
			RefreshCollections: cfg.Workers.RefreshCollections,
		},
	}
}
