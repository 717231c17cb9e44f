package config

import "testing"

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT_OK", "42")
	t.Setenv("TEST_INT_BAD", "nope")

	if got := getEnvInt("TEST_INT_OK", 7); got != 42 {
		t.Errorf("got %d, want 42", got)
	}
	if got := getEnvInt("TEST_INT_BAD", 7); got != 7 {
		t.Errorf("got %d, want default 7", got)
	}
	if got := getEnvInt("TEST_INT_MISSING", 7); got != 7 {
		t.Errorf("got %d, want default 7", got)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	if got := getEnv("TEST_STR", "fallback"); got != "value" {
		t.Errorf("got %q", got)
	}
	if got := getEnv("TEST_STR_MISSING", "fallback"); got != "fallback" {
		t.Errorf("got %q", got)
	}
}
