package config

import (
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("INVASION_TEST_HOST", "localhost")
	if got := GetEnv("INVASION_TEST_HOST", "::"); got != "localhost" {
		t.Errorf("GetEnv() = %q, want localhost", got)
	}
	if got := GetEnv("INVASION_TEST_UNSET", "::"); got != "::" {
		t.Errorf("GetEnv() = %q, want fallback", got)
	}

	t.Setenv("INVASION_TEST_EMPTY", "")
	if got := GetEnv("INVASION_TEST_EMPTY", "x"); got != "" {
		t.Errorf("GetEnv() = %q, want empty value kept", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		fallback bool
		want     bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"false", true, false},
		{"nope", true, true},
		{"", false, false},
	}
	for _, tt := range tests {
		t.Setenv("INVASION_TEST_BOOL", tt.value)
		if got := GetEnvBool("INVASION_TEST_BOOL", tt.fallback); got != tt.want {
			t.Errorf("GetEnvBool(%q, %v) = %v, want %v", tt.value, tt.fallback, got, tt.want)
		}
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("INVASION_TEST_IDLE", "90s")
	if got := GetEnvDuration("INVASION_TEST_IDLE", time.Minute); got != 90*time.Second {
		t.Errorf("GetEnvDuration() = %v, want 90s", got)
	}

	t.Setenv("INVASION_TEST_IDLE", "soon")
	if got := GetEnvDuration("INVASION_TEST_IDLE", time.Minute); got != time.Minute {
		t.Errorf("GetEnvDuration() = %v, want fallback", got)
	}
}
