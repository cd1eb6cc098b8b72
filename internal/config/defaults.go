package config

import "time"

// Default values applied to fields no source has set.
const (
	DefaultAdapterAddress  = "https://bsky.social"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultRateLimit       = 10
	DefaultRateBurst       = 5
	DefaultSearchFuzziness = 0.1
	DefaultLikesSource     = LikesSourceRecords
	DefaultDSN             = "skyshelf.db"
	DefaultServerAddress   = "localhost:8080"
)

// Likes listing modes accepted by App.LikesSource.
const (
	LikesSourceRecords = "records"
	LikesSourceFeed    = "feed"
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Adapter.Address == "" {
		cfg.Adapter.Address = DefaultAdapterAddress
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Adapter.RateLimit == 0 {
		cfg.Adapter.RateLimit = DefaultRateLimit
	}
	if cfg.Adapter.RateBurst == 0 {
		cfg.Adapter.RateBurst = DefaultRateBurst
	}
	if cfg.App.SearchFuzziness == 0 {
		cfg.App.SearchFuzziness = DefaultSearchFuzziness
	}
	if cfg.App.LikesSource == "" {
		cfg.App.LikesSource = DefaultLikesSource
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = DefaultDSN
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
}
