package main

import (
	"time"

	"deckbox-api/internal/components/configutil"
	"deckbox-api/internal/components/telemetry"
)

type CacheConfig struct {
	configutil.Database
	TtlHours int `json:"ttl_hours"`
}

type Config struct {
	Port    int    `json:"port"`
	BaseUrl string `json:"base_url"`
	// IANA name used to render last-seen dates, empty means UTC
	Location          string           `json:"location"`
	RequestsPerSecond float64          `json:"requests_per_second"`
	TimeoutSeconds    int              `json:"timeout_seconds"`
	Cache             CacheConfig      `json:"cache"`
	Telemetry         telemetry.Config `json:"telemetry"`
}

func (c Config) timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) cacheTTL() time.Duration {
	return time.Duration(c.Cache.TtlHours) * time.Hour
}

func defaultConfig() Config {
	return Config{
		Port:              8000,
		RequestsPerSecond: 2,
		TimeoutSeconds:    30,
		Cache: CacheConfig{
			Database: configutil.Database{File: ".dev/cache.db"},
			TtlHours: 24 * 7,
		},
	}
}
