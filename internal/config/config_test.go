package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseTargetHours(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		expected      []int
		expectedError bool
	}{
		{
			name:     "empty means no restriction",
			raw:      "",
			expected: nil,
		},
		{
			name:     "whitespace only means no restriction",
			raw:      "  ",
			expected: nil,
		},
		{
			name:     "comma separated hours",
			raw:      "9,15,21",
			expected: []int{9, 15, 21},
		},
		{
			name:     "spaces around entries",
			raw:      " 9 , 15 ",
			expected: []int{9, 15},
		},
		{
			name:          "non-numeric entry",
			raw:           "9,noon",
			expectedError: true,
		},
		{
			name:          "hour out of range",
			raw:           "24",
			expectedError: true,
		},
		{
			name:          "negative hour",
			raw:           "-1",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, err := parseTargetHours(tt.raw)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, hours)
			}
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func TestLoad_Defaults(t *testing.T) {
	clearSenderEnv(t)

	cfg, err := Load("")

	assert.NoError(t, err)
	assert.Equal(t, SourceCSV, cfg.VocabSource)
	assert.Equal(t, "vocab_es_b2c1.csv", cfg.VocabCSV)
	assert.Equal(t, StateDriverFile, cfg.StateDriver)
	assert.Equal(t, "state.json", cfg.StatePath)
	assert.Equal(t, 3, cfg.Words)
	assert.Equal(t, 2, cfg.RetentionDays)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Nil(t, cfg.TargetHours)
	assert.False(t, cfg.ForceSend)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "non-numeric word count", key: "N_WORDS", val: "three"},
		{name: "zero word count", key: "N_WORDS", val: "0"},
		{name: "negative retention", key: "STATE_RETENTION_DAYS", val: "-1"},
		{name: "bad target hours", key: "TARGET_HOURS", val: "9,late"},
		{name: "unknown vocab source", key: "VOCAB_SOURCE", val: "sheet"},
		{name: "unknown state driver", key: "STATE_DRIVER", val: "redis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearSenderEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load("")

			assert.Error(t, err)
		})
	}
}

func TestLoad_PostgresRequiresPassword(t *testing.T) {
	clearSenderEnv(t)
	t.Setenv("VOCAB_SOURCE", SourcePostgres)

	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load("")
	assert.NoError(t, err)
	assert.Equal(t, SourcePostgres, cfg.VocabSource)
	assert.Equal(t, "secret", cfg.Database.Password)
}

func TestLoad_ForceSendFlag(t *testing.T) {
	clearSenderEnv(t)
	t.Setenv("FORCE_SEND", "1")

	cfg, err := Load("")

	assert.NoError(t, err)
	assert.True(t, cfg.ForceSend)
}

// clearSenderEnv unsets every variable Load reads so tests see a clean
// environment regardless of the host shell.
func clearSenderEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"VOCAB_SOURCE", "VOCAB_CSV",
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"STATE_DRIVER", "STATE_PATH", "STATE_RETENTION_DAYS",
		"N_WORDS", "TZ_NAME", "TARGET_HOURS", "FORCE_SEND",
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID",
		"TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN",
		"TWILIO_WHATSAPP_FROM", "TWILIO_WHATSAPP_TO",
	}
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
