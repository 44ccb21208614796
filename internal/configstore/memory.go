// SPDX-License-Identifier: MIT

package configstore

import (
	"maps"
	"sync"

	"github.com/rs/zerolog"
	xglog "github.com/xanmankey/WiiMix/internal/log"
	"github.com/xanmankey/WiiMix/internal/metrics"
)

// MemoryStore is an in-process Store. It starts from the registry defaults
// and is safe for concurrent use.
type MemoryStore struct {
	registry *Registry
	logger   zerolog.Logger

	mu     sync.RWMutex
	values map[Key]any

	listenerMu sync.RWMutex
	listeners  []chan<- Entry
}

// NewMemoryStore creates a store seeded with reg's defaults.
func NewMemoryStore(reg *Registry) *MemoryStore {
	return &MemoryStore{
		registry: reg,
		logger:   xglog.WithComponent("configstore"),
		values:   reg.Defaults(),
	}
}

// Publish stores value under key. Unknown keys and values of the wrong kind
// are dropped with a warning.
func (s *MemoryStore) Publish(key Key, value any) {
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

	s.mu.Lock()
	s.values[key] = v
	s.mu.Unlock()

	metrics.RecordConfigPublish(string(key))
	ev := s.logger.Debug().
		Str(xglog.FieldEvent, "config.publish").
		Str(xglog.FieldKey, string(key))
	if !info.Sensitive {
		ev = ev.Interface(xglog.FieldValue, v)
	}
	ev.Msg("published config value")

	s.notifyListeners(Entry{Key: key, Value: v})
}

func (s *MemoryStore) reject(key Key, reason string, err error) {
	metrics.RecordConfigPublishRejected(reason)
	s.logger.Warn().
		Err(err).
		Str(xglog.FieldEvent, "config.publish_rejected").
		Str(xglog.FieldKey, string(key)).
		Msg("dropped config value")
}

// Get returns the current value of key.
func (s *MemoryStore) Get(key Key) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Snapshot returns a copy of every stored value.
func (s *MemoryStore) Snapshot() map[Key]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}

// Subscribe registers ch to receive every accepted publish.
// Sends never block; a full channel misses the entry.
// The caller is responsible for closing the channel.
func (s *MemoryStore) Subscribe(ch chan<- Entry) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.listeners = append(s.listeners, ch)
}

func (s *MemoryStore) notifyListeners(e Entry) {
	s.listenerMu.RLock()
	defer s.listenerMu.RUnlock()

	for _, ch := range s.listeners {
		select {
		case ch <- e:
		default:
			s.logger.Warn().
				Str(xglog.FieldEvent, "config.listener_skip").
				Str(xglog.FieldKey, string(e.Key)).
				Msg("skipped notifying listener (channel full)")
		}
	}
}
