// SPDX-License-Identifier: MIT

package config

import (
	"net"
	"strconv"

	"github.com/xanmankey/WiiMix/internal/telemetry"
	"github.com/xanmankey/WiiMix/internal/validate"
)

// Validate validates an AppConfig using the centralized validation package.
// The data directory is created when missing.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.Directory("DataDir", cfg.DataDir, false)

	v.LogLevel("LogLevel", cfg.LogLevel)

	if cfg.GameSettingsDir != "" {
		v.Directory("GameSettingsDir", cfg.GameSettingsDir, true)
	}

	v.OneOf("Store.Backend", cfg.Store.Backend, []string{StoreBackendMemory, StoreBackendRedis})
	if cfg.Store.Backend == StoreBackendRedis {
		v.NotEmpty("Store.Redis.Addr", cfg.Store.Redis.Addr)
		v.NotEmpty("Store.Redis.Key", cfg.Store.Redis.Key)
		v.Range("Store.Redis.DB", cfg.Store.Redis.DB, 0, 15)
	}

	validateListenAddr(v, "API.ListenAddr", cfg.API.ListenAddr)
	v.NonNegative("API.RateLimit", cfg.API.RateLimit)
	if cfg.API.ShutdownTimeout < 0 {
		v.AddError("API.ShutdownTimeout", "must not be negative", cfg.API.ShutdownTimeout)
	}

	if cfg.Telemetry.Enabled {
		v.OneOf("Telemetry.Exporter", cfg.Telemetry.Exporter, []string{telemetry.ExporterGRPC, telemetry.ExporterHTTP})
		v.NotEmpty("Telemetry.Endpoint", cfg.Telemetry.Endpoint)
		if cfg.Telemetry.SamplingRate < 0 || cfg.Telemetry.SamplingRate > 1 {
			v.AddError("Telemetry.SamplingRate", "must be between 0 and 1", cfg.Telemetry.SamplingRate)
		}
	}

	return v.Err()
}

func validateListenAddr(v *validate.Validator, field, addr string) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		v.AddError(field, "must be host:port", addr)
		return
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		v.AddError(field, "port must be numeric", addr)
		return
	}
	v.Port(field, port)
}
