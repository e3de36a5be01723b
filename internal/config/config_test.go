package config

import (
	"os"
	"testing"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "TEST_VAR_1", "hello", "default", "hello"},
		{"uses default when empty", "TEST_VAR_2", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestMustGetEnv_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for missing required env var")
		}
	}()

	os.Unsetenv("NONEXISTENT_REQUIRED_VAR")
	mustGetEnv("NONEXISTENT_REQUIRED_VAR")
}

func TestMustGetEnv_ReturnsValue(t *testing.T) {
	os.Setenv("TEST_REQUIRED", "value123")
	defer os.Unsetenv("TEST_REQUIRED")

	result := mustGetEnv("TEST_REQUIRED")
	if result != "value123" {
		t.Errorf("Expected 'value123', got %q", result)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("BOT_TOKEN", "test-token")
	os.Setenv("OPENAI_API_KEY", "test-key")
	defer os.Unsetenv("BOT_TOKEN")
	defer os.Unsetenv("OPENAI_API_KEY")
	os.Unsetenv("REGISTERED_USERS_FILE")
	os.Unsetenv("PORT")

	cfg := Load()

	if cfg.BotToken != "test-token" {
		t.Errorf("Expected bot token 'test-token', got %q", cfg.BotToken)
	}
	if cfg.RegisteredUsersFile != "./registered-users.json" {
		t.Errorf("Expected default users file, got %q", cfg.RegisteredUsersFile)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected default port '8080', got %q", cfg.Port)
	}
}
