// SPDX-License-Identifier: MIT

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		envSet       bool
		want         string
	}{
		{
			name:         "environment variable set",
			key:          "WIIMIX_TEST_STRING",
			defaultValue: "default",
			envValue:     "from-env",
			envSet:       true,
			want:         "from-env",
		},
		{
			name:         "environment variable not set",
			key:          "WIIMIX_TEST_STRING_UNSET",
			defaultValue: "default",
			want:         "default",
		},
		{
			name:         "environment variable empty string",
			key:          "WIIMIX_TEST_STRING_EMPTY",
			defaultValue: "default",
			envValue:     "",
			envSet:       true,
			want:         "default",
		},
		{
			name:         "sensitive variable (password)",
			key:          "WIIMIX_TEST_PASSWORD",
			defaultValue: "default",
			envValue:     "secret123",
			envSet:       true,
			want:         "secret123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envSet {
				t.Setenv(tt.key, tt.envValue)
			}

			got := ParseString(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("ParseString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		envSet   bool
		want     int
	}{
		{name: "valid integer", envValue: "42", envSet: true, want: 42},
		{name: "padded integer", envValue: " 7 ", envSet: true, want: 7},
		{name: "invalid integer", envValue: "forty-two", envSet: true, want: 10},
		{name: "empty", envValue: "", envSet: true, want: 10},
		{name: "unset", want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envSet {
				t.Setenv("WIIMIX_TEST_INT", tt.envValue)
			}

			if got := ParseInt("WIIMIX_TEST_INT", 10); got != tt.want {
				t.Errorf("ParseInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		envSet   bool
		want     time.Duration
	}{
		{name: "valid duration", envValue: "250ms", envSet: true, want: 250 * time.Millisecond},
		{name: "invalid duration", envValue: "soon", envSet: true, want: time.Second},
		{name: "unset", want: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envSet {
				t.Setenv("WIIMIX_TEST_DURATION", tt.envValue)
			}

			if got := ParseDuration("WIIMIX_TEST_DURATION", time.Second); got != tt.want {
				t.Errorf("ParseDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseBoolAndFloat(t *testing.T) {
	t.Setenv("WIIMIX_TEST_BOOL", "yes")
	assert.True(t, ParseBool("WIIMIX_TEST_BOOL", true), "invalid boolean keeps default")
	t.Setenv("WIIMIX_TEST_BOOL", "false")
	assert.False(t, ParseBool("WIIMIX_TEST_BOOL", true))

	t.Setenv("WIIMIX_TEST_FLOAT", "0.5")
	assert.Equal(t, 0.5, ParseFloat("WIIMIX_TEST_FLOAT", 1))
	t.Setenv("WIIMIX_TEST_FLOAT", "half")
	assert.Equal(t, 1.0, ParseFloat("WIIMIX_TEST_FLOAT", 1))
}
