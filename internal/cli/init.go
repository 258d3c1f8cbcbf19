// Package cli provides common CLI initialization utilities shared by
// cmd/clubfin, cmd/clubfin-report and cmd/roster-update.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"clubfin/internal/amqp"
	"clubfin/internal/backend"
	"clubfin/internal/config"
	"clubfin/internal/finance"
	applog "clubfin/internal/log"
	"clubfin/internal/members"
	"clubfin/internal/services"
)

// SetupLogger builds the application logger at the given LOG_LEVEL and sets
// it as the slog default.
func SetupLogger(level string) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Level = applog.ParseLevel(level)
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// LoadPolicy reads the finance policy file or exits the process.
func LoadPolicy(logger *applog.Logger, path string) (finance.Policy, members.Rules) {
	policy, rules, err := config.LoadPolicy(path)
	if err != nil {
		logger.Error("Failed to load policy file", applog.FieldError, err, applog.FieldPath, path)
		os.Exit(1)
	}
	return policy, rules
}

// InitBackend creates the storage backend described by cfg or exits the
// process.
func InitBackend(ctx context.Context, logger *applog.Logger, cfg *config.Config) *backend.BackendResult {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		logger.Error("Failed to initialize backend", applog.FieldError, err,
			applog.FieldBackend, cfg.LedgerBackend+"/"+cfg.AccountsBackend)
		os.Exit(1)
	}
	return res
}

// InitNotifier connects to AMQP when AMQP_URL is set. A broker that cannot be
// reached disables notifications instead of failing the command.
func InitNotifier(ctx context.Context, logger *applog.Logger, cfg *config.Config) (services.Notifier, func()) {
	if cfg.AMQPURL == "" {
		return nil, func() {}
	}
	client, err := amqp.NewClient(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Warn("Failed to initialize AMQP client, continuing without notifications", applog.FieldError, err)
		return nil, func() {}
	}
	logger.Info("Initialized AMQP client", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	return client, func() { _ = client.Close() }
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(logger *applog.Logger) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		logger.Debug("Shutdown signal received or command finished")
	}()
	return ctx, stop
}
