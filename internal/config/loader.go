// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables, highest precedence.
const (
	EnvDataDir         = "WIIMIX_DATA_DIR"
	EnvLogLevel        = "WIIMIX_LOG_LEVEL"
	EnvCatalogPath     = "WIIMIX_CATALOG_PATH"
	EnvGameSettingsDir = "WIIMIX_GAME_SETTINGS_DIR"
	EnvSettingsFile    = "WIIMIX_SETTINGS_FILE"
	EnvStoreBackend    = "WIIMIX_STORE_BACKEND"
	EnvRedisAddr       = "WIIMIX_REDIS_ADDR"
	EnvRedisPassword   = "WIIMIX_REDIS_PASSWORD"
	EnvRedisDB         = "WIIMIX_REDIS_DB"
	EnvRedisKey        = "WIIMIX_REDIS_KEY"
	EnvListenAddr      = "WIIMIX_LISTEN_ADDR"
	EnvRateLimit       = "WIIMIX_RATE_LIMIT"
	EnvShutdownTimeout = "WIIMIX_SHUTDOWN_TIMEOUT"
	EnvOTelEnabled     = "WIIMIX_OTEL_ENABLED"
	EnvOTelExporter    = "WIIMIX_OTEL_EXPORTER"
	EnvOTelEndpoint    = "WIIMIX_OTEL_ENDPOINT"
	EnvOTelSampling    = "WIIMIX_OTEL_SAMPLING_RATE"
)

// Loader handles configuration loading with precedence
type Loader struct {
	configPath      string
	ConsumedEnvKeys map[string]struct{} // env keys consulted by the last Load
}

// NewLoader creates a new configuration loader. configPath may be empty.
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath:      configPath,
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

// Load loads configuration with precedence: ENV > File > Defaults, then
// validates the result.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()

	if l.configPath != "" {
		if err := l.loadFile(l.configPath, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	l.mergeEnv(&cfg)

	if abs, err := filepath.Abs(cfg.DataDir); err == nil {
		cfg.DataDir = abs
	}

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFile decodes a YAML file onto cfg with STRICT parsing.
// Unknown fields are an error wrapping ErrUnknownConfigField.
func (l *Loader) loadFile(path string, cfg *AppConfig) error {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return fmt.Errorf("%w: %v", ErrUnknownConfigField, err)
		}
		return fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("config file contains multiple documents or trailing content")
	}
	return nil
}

func (l *Loader) mergeEnv(cfg *AppConfig) {
	cfg.DataDir = l.envString(EnvDataDir, cfg.DataDir)
	cfg.LogLevel = l.envString(EnvLogLevel, cfg.LogLevel)
	cfg.CatalogPath = l.envString(EnvCatalogPath, cfg.CatalogPath)
	cfg.GameSettingsDir = l.envString(EnvGameSettingsDir, cfg.GameSettingsDir)
	cfg.SettingsFile = l.envString(EnvSettingsFile, cfg.SettingsFile)

	cfg.Store.Backend = strings.ToLower(l.envString(EnvStoreBackend, cfg.Store.Backend))
	cfg.Store.Redis.Addr = l.envString(EnvRedisAddr, cfg.Store.Redis.Addr)
	cfg.Store.Redis.Password = l.envString(EnvRedisPassword, cfg.Store.Redis.Password)
	cfg.Store.Redis.DB = l.envInt(EnvRedisDB, cfg.Store.Redis.DB)
	cfg.Store.Redis.Key = l.envString(EnvRedisKey, cfg.Store.Redis.Key)

	cfg.API.ListenAddr = l.envString(EnvListenAddr, cfg.API.ListenAddr)
	cfg.API.RateLimit = l.envInt(EnvRateLimit, cfg.API.RateLimit)
	cfg.API.ShutdownTimeout = ParseDuration(EnvShutdownTimeout, cfg.API.ShutdownTimeout)
	l.ConsumedEnvKeys[EnvShutdownTimeout] = struct{}{}

	cfg.Telemetry.Enabled = ParseBool(EnvOTelEnabled, cfg.Telemetry.Enabled)
	cfg.Telemetry.Exporter = strings.ToLower(l.envString(EnvOTelExporter, cfg.Telemetry.Exporter))
	cfg.Telemetry.Endpoint = l.envString(EnvOTelEndpoint, cfg.Telemetry.Endpoint)
	cfg.Telemetry.SamplingRate = ParseFloat(EnvOTelSampling, cfg.Telemetry.SamplingRate)
	l.ConsumedEnvKeys[EnvOTelEnabled] = struct{}{}
	l.ConsumedEnvKeys[EnvOTelSampling] = struct{}{}
}

func (l *Loader) envString(key, defaultVal string) string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseString(key, defaultVal)
}

func (l *Loader) envInt(key string, defaultVal int) int {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseInt(key, defaultVal)
}
