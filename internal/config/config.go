package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Vocabulary source kinds
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// State store drivers
const (
	StateDriverFile   = "file"
	StateDriverSQLite = "sqlite"
)

// Config holds all application configuration.
// It is assembled once at startup; no other component reads the environment.
type Config struct {
	VocabSource   string
	VocabCSV      string
	Database      DatabaseConfig
	StateDriver   string
	StatePath     string
	RetentionDays int
	Words         int
	Timezone      string
	TargetHours   []int
	ForceSend     bool
	Telegram      TelegramConfig
	Twilio        TwilioConfig
}

// DatabaseConfig holds database connection settings for the Postgres
// vocabulary source
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// TelegramConfig holds the Telegram delivery credentials
type TelegramConfig struct {
	BotToken string
	ChatID   string
}

// TwilioConfig holds the Twilio WhatsApp delivery credentials
type TwilioConfig struct {
	AccountSID   string
	AuthToken    string
	WhatsAppFrom string
	WhatsAppTo   string
}

// Load reads configuration from environment variables.
// An optional .env file is loaded first when envFile is non-empty,
// otherwise the default .env is tried and ignored if missing.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	words, err := strconv.Atoi(getEnv("N_WORDS", "3"))
	if err != nil || words < 1 {
		return nil, fmt.Errorf("N_WORDS must be a positive integer, got %q", os.Getenv("N_WORDS"))
	}

	retention, err := strconv.Atoi(getEnv("STATE_RETENTION_DAYS", "2"))
	if err != nil || retention < 0 {
		return nil, fmt.Errorf("STATE_RETENTION_DAYS must be a non-negative integer, got %q", os.Getenv("STATE_RETENTION_DAYS"))
	}

	targetHours, err := parseTargetHours(os.Getenv("TARGET_HOURS"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		VocabSource: getEnv("VOCAB_SOURCE", SourceCSV),
		VocabCSV:    getEnv("VOCAB_CSV", "vocab_es_b2c1.csv"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "vocabsender"),
			User:     getEnv("DB_USER", "vocabsender"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		StateDriver:   getEnv("STATE_DRIVER", StateDriverFile),
		StatePath:     getEnv("STATE_PATH", "state.json"),
		RetentionDays: retention,
		Words:         words,
		Timezone:      getEnv("TZ_NAME", "Europe/Berlin"),
		TargetHours:   targetHours,
		ForceSend:     os.Getenv("FORCE_SEND") == "1",
		Telegram: TelegramConfig{
			BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
			ChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		},
		Twilio: TwilioConfig{
			AccountSID:   os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:    os.Getenv("TWILIO_AUTH_TOKEN"),
			WhatsAppFrom: os.Getenv("TWILIO_WHATSAPP_FROM"),
			WhatsAppTo:   os.Getenv("TWILIO_WHATSAPP_TO"),
		},
	}

	// Validate required fields
	switch cfg.VocabSource {
	case SourceCSV:
		if cfg.VocabCSV == "" {
			return nil, fmt.Errorf("VOCAB_CSV is required for the csv source")
		}
	case SourcePostgres:
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required for the postgres source")
		}
	default:
		return nil, fmt.Errorf("VOCAB_SOURCE must be %q or %q, got %q", SourceCSV, SourcePostgres, cfg.VocabSource)
	}

	if cfg.StateDriver != StateDriverFile && cfg.StateDriver != StateDriverSQLite {
		return nil, fmt.Errorf("STATE_DRIVER must be %q or %q, got %q", StateDriverFile, StateDriverSQLite, cfg.StateDriver)
	}
	if cfg.StatePath == "" {
		return nil, fmt.Errorf("STATE_PATH is required")
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// parseTargetHours parses a comma-separated list of hours of day.
// An empty value means no schedule restriction.
func parseTargetHours(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var hours []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		h, err := strconv.Atoi(part)
		if err != nil || h < 0 || h > 23 {
			return nil, fmt.Errorf("TARGET_HOURS entry %q is not an hour of day", part)
		}
		hours = append(hours, h)
	}
	return hours, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
