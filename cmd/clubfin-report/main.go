package main

import (
	"flag"
	"os"

	"clubfin/internal/cli"
	"clubfin/internal/core"
	applog "clubfin/internal/log"
	"clubfin/internal/render"
	"clubfin/internal/services"
)

func main() {
	month := flag.String("month", "", "month advance payments are credited to (default: current month)")
	printReports := flag.Bool("print", false, "print the reports to stdout")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := cli.SignalContext(logger)
	defer stop()

	policy, _ := cli.LoadPolicy(logger, cfg.PolicyFile)
	res := cli.InitBackend(ctx, logger, cfg)
	defer res.Cleanup()
	notifier, closeNotifier := cli.InitNotifier(ctx, logger, cfg)
	defer closeNotifier()

	svc := services.NewReportService(res.Backend.Ledger, res.Backend.Reports, notifier, policy, logger)

	current := svc.CurrentMonth()
	if *month != "" {
		m, err := core.ParseMonth(*month)
		if err != nil {
			logger.Error("Invalid -month flag", applog.FieldError, err, applog.FieldMonth, *month)
			os.Exit(2)
		}
		current = m
	}

	st, err := svc.Generate(ctx, current)
	if err != nil {
		logger.Error("Report generation failed", applog.FieldError, err)
		os.Exit(1)
	}
	if *printReports {
		if err := render.WriteFinancialReports(os.Stdout, st); err != nil {
			logger.Error("Failed to print reports", applog.FieldError, err)
			os.Exit(1)
		}
	}
}
