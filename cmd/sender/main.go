package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"vocabsender/internal/config"
	"vocabsender/internal/delivery"
	"vocabsender/internal/delivery/telegram"
	"vocabsender/internal/delivery/twilio"
	"vocabsender/internal/repository"
	"vocabsender/internal/repository/csvfile"
	"vocabsender/internal/repository/postgres"
	"vocabsender/internal/repository/sqlite"
	"vocabsender/internal/repository/statefile"
	"vocabsender/internal/service"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app := &cli.App{
		Name:  "vocabsender",
		Usage: "Scheduled vocabulary notification sender",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Bypass the schedule and duplicate guards"},
			&cli.BoolFlag{Name: "daemon", Aliases: []string{"d"}, Usage: "Stay resident and attempt a send at the top of every hour"},
			&cli.StringFlag{Name: "env-file", Usage: "Load this .env file before reading the environment"},
		},
		Action: func(c *cli.Context) error {
			return run(c, logger)
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("Run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(c *cli.Context, logger *zap.Logger) error {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.Bool("force") {
		cfg.ForceSend = true
	}

	logger.Info("Configuration loaded",
		zap.String("vocab_source", cfg.VocabSource),
		zap.String("state_driver", cfg.StateDriver),
		zap.Int("words", cfg.Words),
		zap.Ints("target_hours", cfg.TargetHours),
		zap.Bool("force", cfg.ForceSend),
	)

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	vocabRepo, closeVocab, err := buildVocabRepo(cfg, logger)
	if err != nil {
		return err
	}
	defer closeVocab()

	stateRepo, closeState, err := buildStateRepo(cfg)
	if err != nil {
		return err
	}
	defer closeState()

	backends := []delivery.Backend{
		telegram.New(cfg.Telegram.BotToken, cfg.Telegram.ChatID),
		twilio.New(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.WhatsAppFrom, cfg.Twilio.WhatsAppTo),
	}

	sender := service.NewSenderService(
		vocabRepo,
		stateRepo,
		backends,
		service.NewSelector(),
		service.SenderOptions{
			Words:         cfg.Words,
			TargetHours:   cfg.TargetHours,
			ForceSend:     cfg.ForceSend,
			Location:      location,
			RetentionDays: cfg.RetentionDays,
		},
		logger,
	)

	if c.Bool("daemon") {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return sender.RunScheduled(ctx)
	}

	text, err := sender.Run()
	if err != nil {
		return err
	}
	if text != "" {
		fmt.Println(text)
	}
	return nil
}

// buildVocabRepo selects the vocabulary source from configuration
func buildVocabRepo(cfg *config.Config, logger *zap.Logger) (repository.VocabularyRepository, func(), error) {
	switch cfg.VocabSource {
	case config.SourcePostgres:
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := runMigrations(db, logger); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		return postgres.NewVocabRepo(db), func() { db.Close() }, nil
	default:
		return csvfile.NewVocabRepo(cfg.VocabCSV), func() {}, nil
	}
}

// buildStateRepo selects the state store from configuration
func buildStateRepo(cfg *config.Config) (repository.StateRepository, func(), error) {
	switch cfg.StateDriver {
	case config.StateDriverSQLite:
		repo, err := sqlite.NewStateRepo(cfg.StatePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open state store: %w", err)
		}
		return repo, func() { repo.Close() }, nil
	default:
		return statefile.NewStateRepo(cfg.StatePath), func() {}, nil
	}
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 5
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(2)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations creates the vocabulary schema when needed
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	} else if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Migrations applied successfully")
	}

	return nil
}
