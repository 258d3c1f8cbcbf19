package main

import (
	"errors"
	"os"

	"clubfin/internal/accounts"
	"clubfin/internal/cli"
	applog "clubfin/internal/log"
	"clubfin/internal/services"
	"clubfin/internal/shell"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)
	logger.Debug("Starting clubfin", applog.FieldOperation, applog.OpStartup)

	ctx, stop := cli.SignalContext(logger)
	defer stop()

	policy, rules := cli.LoadPolicy(logger, cfg.PolicyFile)
	res := cli.InitBackend(ctx, logger, cfg)
	defer res.Cleanup()
	notifier, closeNotifier := cli.InitNotifier(ctx, logger, cfg)
	defer closeNotifier()

	b := res.Backend
	sh := shell.New(os.Stdin, os.Stdout, shell.Deps{
		Accounts: accounts.NewService(b.Accounts, logger),
		Reports:  services.NewReportService(b.Ledger, b.Reports, notifier, policy, logger),
		Roster:   services.NewRosterService(b.Roster, b.RosterTo, notifier, rules, logger),
		PDFPath:  cfg.PDFPath,
		Logger:   logger,
	})

	err := sh.Run(ctx)
	if errors.Is(err, shell.ErrTooManyAttempts) {
		os.Exit(1)
	}
	if err != nil && !errors.Is(err, ctx.Err()) {
		logger.Error("Shell stopped", applog.FieldError, err)
		os.Exit(1)
	}
}
