// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus counters for WiiMix settings activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	settingsLoadTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wiimix_settings_load_total",
		Help: "Settings file loads by mode and outcome",
	}, []string{"mode", "outcome"}) // outcome=success|failure

	settingsSaveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wiimix_settings_save_total",
		Help: "Settings file saves by mode and outcome",
	}, []string{"mode", "outcome"}) // outcome=success|failure

	configPublishTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wiimix_config_publish_total",
		Help: "Values published to the configuration store by key",
	}, []string{"key"})

	configPublishRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wiimix_config_publish_rejected_total",
		Help: "Publishes dropped by the configuration store by reason",
	}, []string{"reason"}) // reason=unknown_key|kind_mismatch|backend_error

	cardSizeRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wiimix_card_size_rejected_total",
		Help: "Card sizes ignored because they are not odd perfect squares",
	})

	sessionTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wiimix_session_transitions_total",
		Help: "Settings session state transitions by target state",
	}, []string{"state"})

	discoveredGames = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wiimix_discovered_games",
		Help: "Games enabled for WiiMix found in the game settings directory (last scan)",
	})
)

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// RecordSettingsLoad counts one settings file load.
func RecordSettingsLoad(mode string, ok bool) {
	settingsLoadTotal.WithLabelValues(mode, outcome(ok)).Inc()
}

// RecordSettingsSave counts one settings file save.
func RecordSettingsSave(mode string, ok bool) {
	settingsSaveTotal.WithLabelValues(mode, outcome(ok)).Inc()
}

// RecordConfigPublish counts a value accepted by a configuration store.
func RecordConfigPublish(key string) {
	configPublishTotal.WithLabelValues(key).Inc()
}

// RecordConfigPublishRejected counts a publish the store dropped.
func RecordConfigPublishRejected(reason string) {
	configPublishRejectedTotal.WithLabelValues(reason).Inc()
}

// RecordCardSizeRejected counts an ignored card size.
func RecordCardSizeRejected() {
	cardSizeRejectedTotal.Inc()
}

// RecordSessionTransition counts a session entering state.
func RecordSessionTransition(state string) {
	sessionTransitionsTotal.WithLabelValues(state).Inc()
}

// SetDiscoveredGames records the result of the last game settings scan.
func SetDiscoveredGames(n int) {
	discoveredGames.Set(float64(n))
}
