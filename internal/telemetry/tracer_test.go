// SPDX-License-Identifier: MIT

package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewProviderDisabled(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Enabled: false, ExporterType: ExporterGRPC})
	require.NoError(t, err)
	assert.Nil(t, p.tp)
	require.NoError(t, p.Shutdown(context.Background()))

	_, span := otel.Tracer("test").Start(context.Background(), "noop-check")
	assert.False(t, span.IsRecording(), "disabled telemetry installs a no-op provider")
	span.End()
}

func TestNewProviderRejectsUnknownExporter(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Enabled: true, ServiceName: "wiimix", ExporterType: "zipkin"})
	require.EqualError(t, err, "unsupported exporter type: zipkin (supported: grpc, http)")
}

func TestSampler(t *testing.T) {
	assert.Contains(t, Sampler(1).Description(), "AlwaysOnSampler")
	assert.Contains(t, Sampler(0).Description(), "AlwaysOffSampler")
	assert.Contains(t, Sampler(0.5).Description(), "TraceIDRatioBased{0.5}")
}

func TestSettingsAttributesAndRecordError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "settingsfile.Read")
	span.SetAttributes(SettingsAttributes("/tmp/a.ini", "Bingo", 2, 3)...)
	RecordError(span, nil)
	RecordError(span, errors.New("Games in config not found in game list"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "Games in config not found in game list", ended[0].Status().Description)
	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String(SettingsPathKey, "/tmp/a.ini"),
		attribute.String(SettingsModeKey, "Bingo"),
		attribute.Int(GameCountKey, 2),
		attribute.Int(ObjectiveCountKey, 3),
	}, ended[0].Attributes())
	assert.Len(t, ended[0].Events(), 1, "only the non-nil error is recorded")
}

func TestSettingsAttributesOmitsEmptyStrings(t *testing.T) {
	attrs := SettingsAttributes("", "", 0, 0)
	assert.Len(t, attrs, 2)
}
