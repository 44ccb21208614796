// SPDX-License-Identifier: MIT

package validate

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Port(t *testing.T) {
	tests := []struct {
		name    string
		port    int
		wantErr bool
	}{
		{"valid port 80", 80, false},
		{"valid port 8080", 8080, false},
		{"valid port 65535", 65535, false},
		{"invalid port 0", 0, true},
		{"invalid port 65536", 65536, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Port("testPort", tt.port)

			if tt.wantErr && v.IsValid() {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && !v.IsValid() {
				t.Errorf("unexpected error: %v", v.Err())
			}
		})
	}
}

func TestValidator_Range(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		min     int
		max     int
		wantErr bool
	}{
		{"within range", 5, 1, 10, false},
		{"at min", 1, 1, 10, false},
		{"at max", 10, 1, 10, false},
		{"below min", 0, 1, 10, true},
		{"above max", 11, 1, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Range("difficulty", tt.value, tt.min, tt.max)
			assert.Equal(t, tt.wantErr, !v.IsValid())
		})
	}
}

func TestIsOddPerfectSquare(t *testing.T) {
	accepted := []int{1, 9, 25, 49, 81, 121, 9801, 3037000499 * 3037000499}
	for _, v := range accepted {
		assert.Truef(t, IsOddPerfectSquare(v), "expected %d to be accepted", v)
	}

	rejected := []int{-9, 0, 3, 4, 10, 15, 16, 24, 36, 64, 100, 3037000499*3037000499 + 2, math.MaxInt64}
	for _, v := range rejected {
		assert.Falsef(t, IsOddPerfectSquare(v), "expected %d to be rejected", v)
	}
}

func TestValidator_OddPerfectSquare(t *testing.T) {
	v := New()
	v.OddPerfectSquare("cardSize", 25)
	require.True(t, v.IsValid())

	v.OddPerfectSquare("cardSize", 16)
	require.False(t, v.IsValid())
	require.Len(t, v.Errors(), 1)
	assert.Equal(t, "cardSize", v.Errors()[0].Field)
	assert.Equal(t, 16, v.Errors()[0].Value)
}

func TestOrdered(t *testing.T) {
	v := New()
	Ordered(v, "switchWindow", 10, 30)
	Ordered(v, "switchWindow", 30, 30)
	require.True(t, v.IsValid())

	Ordered(v, "switchWindow", 31, 30)
	require.False(t, v.IsValid())
	assert.Contains(t, v.Err().Error(), "minimum 31 exceeds maximum 30")
}

func TestValidator_NotEmpty(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"non-empty", "lobby", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.NotEmpty("name", tt.value)
			assert.Equal(t, tt.wantErr, !v.IsValid())
		})
	}
}

func TestValidator_OneOf(t *testing.T) {
	allowed := []string{"memory", "redis"}

	v := New()
	v.OneOf("store.backend", "redis", allowed)
	require.True(t, v.IsValid())

	v.OneOf("store.backend", "etcd", allowed)
	require.False(t, v.IsValid())
	assert.Contains(t, v.Err().Error(), `got "etcd"`)
}

func TestValidator_PositiveAndNonNegative(t *testing.T) {
	v := New()
	v.Positive("rateLimit", 1)
	v.NonNegative("redisDB", 0)
	require.True(t, v.IsValid())

	v.Positive("rateLimit", 0)
	v.NonNegative("redisDB", -1)
	assert.Len(t, v.Errors(), 2)
}

func TestValidator_MultipleErrors(t *testing.T) {
	v := New()

	v.Port("port", 0)
	v.OddPerfectSquare("cardSize", 4)
	v.NotEmpty("name", "")

	require.False(t, v.IsValid())
	require.Len(t, v.Errors(), 3)

	err := v.Err()
	require.Error(t, err)

	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Errors(), 3)

	errorMsg := err.Error()
	for _, field := range []string{"port", "cardSize", "name"} {
		assert.True(t, strings.Contains(errorMsg, field), "error message should mention %q", field)
	}
}

func TestValidator_ErrIsDetachedFromValidator(t *testing.T) {
	v := New()
	v.NotEmpty("name", "")
	err := v.Err()

	v.NotEmpty("other", "")

	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Errors(), 1)
}

func TestValidator_Directory(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "file.ini")
	require.NoError(t, os.WriteFile(file, []byte("[WiiMix]\n"), 0o600))

	tests := []struct {
		name      string
		path      string
		mustExist bool
		wantErr   bool
	}{
		{"existing dir", tmpDir, true, false},
		{"missing must exist", filepath.Join(tmpDir, "missing"), true, true},
		{"empty path", "", true, true},
		{"traversal", "../etc", false, true},
		{"file not dir", file, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Directory("dataDir", tt.path, tt.mustExist)
			assert.Equal(t, tt.wantErr, !v.IsValid(), "errors: %v", v.Err())
		})
	}
}

func TestValidator_DirectoryCreation(t *testing.T) {
	newDir := filepath.Join(t.TempDir(), "auto", "create", "nested")

	v := New()
	v.Directory("testDir", newDir, false)

	require.True(t, v.IsValid(), "unexpected error: %v", v.Err())
	assert.DirExists(t, newDir)
}

func TestValidator_LogLevel(t *testing.T) {
	v := New()
	for _, level := range []string{"debug", "info", "warn", "error", "WARN", "Info"} {
		v.LogLevel("logLevel", level)
	}
	require.True(t, v.IsValid(), "unexpected error: %v", v.Err())

	v.LogLevel("logLevel", "verbose")
	v.LogLevel("logLevel", "")
	require.Len(t, v.Errors(), 2)
	assert.Equal(t, "logLevel", v.Errors()[0].Field)
	assert.Contains(t, v.Errors()[0].Message, `got "verbose"`)
}
