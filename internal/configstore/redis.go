// SPDX-License-Identifier: MIT

package configstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	xglog "github.com/xanmankey/WiiMix/internal/log"
	"github.com/xanmankey/WiiMix/internal/metrics"
)

// DefaultRedisKey is the hash holding the published values.
const DefaultRedisKey = "wiimix:config"

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string // host:port
	Password string
	DB       int
	Key      string // hash name, DefaultRedisKey when empty
}

// RedisStore keeps values in a Redis hash and announces each change on the
// channel "<hash>:changes" so other processes of the host can follow along.
type RedisStore struct {
	client   *redis.Client
	registry *Registry
	key      string
	logger   zerolog.Logger
}

// NewRedisStore connects to Redis and seeds missing keys with defaults.
func NewRedisStore(ctx context.Context, cfg RedisConfig, reg *Registry) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	s := newRedisStore(client, reg, cfg.Key)
	if err := s.seedDefaults(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}

	s.logger.Info().
		Str("addr", cfg.Addr).
		Int("db", cfg.DB).
		Str("hash", s.key).
		Msg("connected to Redis config store")
	return s, nil
}

func newRedisStore(client *redis.Client, reg *Registry, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{
		client:   client,
		registry: reg,
		key:      key,
		logger:   xglog.WithComponent("configstore"),
	}
}

func (s *RedisStore) seedDefaults(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range s.registry.Defaults() {
			pipe.HSetNX(ctx, s.key, string(k), Format(v))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed config defaults: %w", err)
	}
	return nil
}

// ChangesChannel is the pub/sub channel carrying "<key>=<value>" messages.
func (s *RedisStore) ChangesChannel() string { return s.key + ":changes" }

// Publish writes value to the hash and announces it. Failures are logged and
// counted, matching the fire-and-forget contract of Publisher.
func (s *RedisStore) Publish(key Key, value any) {
	info, ok := s.registry.Lookup(key)
	if !ok {
		s.reject(key, "unknown_key", ErrUnknownKey)
		return
	}
	v, err := info.Normalize(value)
	if err != nil {
		s.reject(key, "kind_mismatch", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw := Format(v)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.key, string(key), raw)
		pipe.Publish(ctx, s.ChangesChannel(), string(key)+"="+raw)
		return nil
	})
	if err != nil {
		s.reject(key, "backend_error", err)
		return
	}

	metrics.RecordConfigPublish(string(key))
	s.logger.Debug().
		Str(xglog.FieldEvent, "config.publish").
		Str(xglog.FieldKey, string(key)).
		Msg("published config value")
}

func (s *RedisStore) reject(key Key, reason string, err error) {
	metrics.RecordConfigPublishRejected(reason)
	s.logger.Warn().
		Err(err).
		Str(xglog.FieldEvent, "config.publish_rejected").
		Str(xglog.FieldKey, string(key)).
		Msg("dropped config value")
}

// Get reads key back from the hash and decodes it to the key's kind.
func (s *RedisStore) Get(key Key) (any, bool) {
	info, ok := s.registry.Lookup(key)
	if !ok {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := s.client.HGet(ctx, s.key, string(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		s.logger.Warn().Err(err).Str(xglog.FieldKey, string(key)).Msg("redis hget failed")
		return nil, false
	}
	v, err := decode(info, raw)
	if err != nil {
		s.logger.Warn().Err(err).Str(xglog.FieldKey, string(key)).Msg("stored config value has wrong kind")
		return nil, false
	}
	return v, true
}

// Snapshot returns every registered key present in the hash.
func (s *RedisStore) Snapshot() map[Key]any {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		s.logger.Warn().Err(err).Msg("redis hgetall failed")
		return map[Key]any{}
	}

	out := make(map[Key]any, len(raw))
	for k, r := range raw {
		info, ok := s.registry.Lookup(Key(k))
		if !ok {
			continue
		}
		if v, err := decode(info, r); err == nil {
			out[Key(k)] = v
		}
	}
	return out
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// HealthCheck checks if Redis is available.
func (s *RedisStore) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func decode(info KeyInfo, raw string) (any, error) {
	switch info.Kind {
	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrKindMismatch, info.Key, err)
		}
		return n, nil
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrKindMismatch, info.Key, err)
		}
		return b, nil
	default:
		return raw, nil
	}
}
