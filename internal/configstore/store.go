// SPDX-License-Identifier: MIT

package configstore

import (
	"errors"
	"reflect"
)

var (
	// ErrUnknownKey is reported for keys missing from the registry.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrKindMismatch is reported when a value does not fit its key's kind.
	ErrKindMismatch = errors.New("config value kind mismatch")
)

// Publisher receives settings values. Publishing never fails from the
// caller's point of view; stores log and count values they drop.
type Publisher interface {
	Publish(key Key, value any)
}

// Reader exposes stored values, used by the settings session to pick up
// defaults once at construction.
type Reader interface {
	Get(key Key) (any, bool)
}

// Store is a Publisher that can be read back.
type Store interface {
	Publisher
	Reader
	Snapshot() map[Key]any
}

// Entry is one published change.
type Entry struct {
	Key   Key
	Value any
}

// PublishAll publishes entries in order.
func PublishAll(p Publisher, entries []Entry) {
	for _, e := range entries {
		p.Publish(e.Key, e.Value)
	}
}

// Redacted returns a copy of values with sensitive keys masked.
func Redacted(reg *Registry, values map[Key]any) map[Key]any {
	out := make(map[Key]any, len(values))
	for k, v := range values {
		if info, ok := reg.Lookup(k); ok && info.Sensitive {
			if s, _ := v.(string); s != "" {
				v = "***redacted***"
			}
		}
		out[k] = v
	}
	return out
}

func asInt(value any) (int, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	default:
		return 0, false
	}
}
