// SPDX-License-Identifier: MIT

// Package config loads the wiimix tool configuration: where the catalog and
// game settings live, which configuration store backend to publish to and
// how the HTTP surface listens.
package config

import (
	"path/filepath"
	"time"

	"github.com/xanmankey/WiiMix/internal/configstore"
)

// Store backends.
const (
	StoreBackendMemory = "memory"
	StoreBackendRedis  = "redis"
)

// AppConfig is the effective tool configuration after defaults, file and
// environment have been merged.
type AppConfig struct {
	DataDir         string      `yaml:"dataDir"`
	LogLevel        string      `yaml:"logLevel"`
	CatalogPath     string      `yaml:"catalogPath"`
	GameSettingsDir string      `yaml:"gameSettingsDir"`
	SettingsFile    string      `yaml:"settingsFile"`
	Store           StoreConfig `yaml:"store"`
	API             APIConfig   `yaml:"api"`
	Telemetry       Telemetry   `yaml:"telemetry"`
}

// StoreConfig selects the configuration store settings are published to.
type StoreConfig struct {
	Backend string      `yaml:"backend"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig addresses the Redis hash used by the redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

// APIConfig controls the read-only HTTP surface.
type APIConfig struct {
	ListenAddr      string        `yaml:"listenAddr"`
	RateLimit       int           `yaml:"rateLimit"` // requests per minute per client, 0 disables
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// Telemetry configures OpenTelemetry tracing of the serve command.
type Telemetry struct {
	Enabled      bool    `yaml:"enabled"`
	Exporter     string  `yaml:"exporter"` // grpc or http
	Endpoint     string  `yaml:"endpoint"`
	SamplingRate float64 `yaml:"samplingRate"`
}

// Defaults returns the configuration used when neither file nor environment
// set a value.
func Defaults() AppConfig {
	return AppConfig{
		DataDir:  "data",
		LogLevel: "info",
		Store: StoreConfig{
			Backend: StoreBackendMemory,
			Redis: RedisConfig{
				Addr: "localhost:6379",
				Key:  configstore.DefaultRedisKey,
			},
		},
		API: APIConfig{
			ListenAddr:      ":8088",
			RateLimit:       120,
			ShutdownTimeout: 5 * time.Second,
		},
		Telemetry: Telemetry{
			Exporter:     "grpc",
			Endpoint:     "localhost:4317",
			SamplingRate: 1.0,
		},
	}
}

// EffectiveCatalogPath is CatalogPath, or catalog.db inside DataDir.
func (c AppConfig) EffectiveCatalogPath() string {
	if c.CatalogPath != "" {
		return c.CatalogPath
	}
	return filepath.Join(c.DataDir, "catalog.db")
}

// RedisStoreConfig converts the redis settings for configstore.NewRedisStore.
func (c AppConfig) RedisStoreConfig() configstore.RedisConfig {
	return configstore.RedisConfig{
		Addr:     c.Store.Redis.Addr,
		Password: c.Store.Redis.Password,
		DB:       c.Store.Redis.DB,
		Key:      c.Store.Redis.Key,
	}
}
