// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestReconfigureWritesComponentAndService(t *testing.T) {
	var buf bytes.Buffer
	Reconfigure(Config{Level: "debug", Output: &buf, Service: "wiimix-test"})
	t.Cleanup(func() { Reconfigure(Config{}) })

	l := WithComponent("settings")
	l.Debug().Str(FieldEvent, "settings.test").Msg("debug line")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output %q: %v", buf.String(), err)
	}
	if entry["service"] != "wiimix-test" {
		t.Errorf("service = %v, want wiimix-test", entry["service"])
	}
	if entry[FieldComponent] != "settings" {
		t.Errorf("component = %v, want settings", entry[FieldComponent])
	}
	if entry[FieldEvent] != "settings.test" {
		t.Errorf("event = %v, want settings.test", entry[FieldEvent])
	}
}

func TestReconfigureFallsBackOnInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	Reconfigure(Config{Level: "not-a-level", Output: &buf})
	t.Cleanup(func() { Reconfigure(Config{}) })

	l := Base()
	l.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug output to be suppressed at info level, got %q", buf.String())
	}
	l.Info().Msg("shown")
	if buf.Len() == 0 {
		t.Error("expected info output")
	}
}
