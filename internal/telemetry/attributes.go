// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys used on settings spans.
const (
	SettingsPathKey   = "wiimix.settings.path"
	SettingsModeKey   = "wiimix.settings.mode"
	GameCountKey      = "wiimix.settings.games"
	ObjectiveCountKey = "wiimix.settings.objectives"
	SessionIDKey      = "wiimix.session.id"
)

// SettingsAttributes describes a settings file operation.
func SettingsAttributes(path, mode string, games, objectives int) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 4)
	if path != "" {
		attrs = append(attrs, attribute.String(SettingsPathKey, path))
	}
	if mode != "" {
		attrs = append(attrs, attribute.String(SettingsModeKey, mode))
	}
	return append(attrs,
		attribute.Int(GameCountKey, games),
		attribute.Int(ObjectiveCountKey, objectives),
	)
}

// RecordError marks span as failed when err is non-nil.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
