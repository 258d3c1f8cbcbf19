package main

import (
	"os"

	"clubfin/internal/cli"
	applog "clubfin/internal/log"
	"clubfin/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := cli.SignalContext(logger)
	defer stop()

	_, rules := cli.LoadPolicy(logger, cfg.PolicyFile)
	res := cli.InitBackend(ctx, logger, cfg)
	defer res.Cleanup()
	notifier, closeNotifier := cli.InitNotifier(ctx, logger, cfg)
	defer closeNotifier()

	svc := services.NewRosterService(res.Backend.Roster, res.Backend.RosterTo, notifier, rules, logger)
	roster, err := svc.Update(ctx)
	if err != nil {
		logger.Error("Roster update failed", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Members_Updated written", "members", len(roster.Members), applog.FieldPath, cfg.RosterFile)
}
