// SPDX-License-Identifier: MIT

package testutil

import (
	"sync"

	"github.com/xanmankey/WiiMix/internal/configstore"
)

// Recorder is a configstore.Publisher that keeps every call in order.
type Recorder struct {
	mu      sync.Mutex
	entries []configstore.Entry
}

// Publish records the call.
func (r *Recorder) Publish(key configstore.Key, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, configstore.Entry{Key: key, Value: value})
}

// Entries returns a copy of all recorded calls.
func (r *Recorder) Entries() []configstore.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]configstore.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Last returns the most recent value published for key.
func (r *Recorder) Last(key configstore.Key) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].Key == key {
			return r.entries[i].Value, true
		}
	}
	return nil, false
}

// Keys returns the distinct keys published, in first-seen order.
func (r *Recorder) Keys() []configstore.Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[configstore.Key]bool)
	var out []configstore.Key
	for _, e := range r.entries {
		if !seen[e.Key] {
			seen[e.Key] = true
			out = append(out, e.Key)
		}
	}
	return out
}

// Len returns the number of recorded calls.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
