package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/pricewatch/internal/engine"
)

func runCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one polling cycle and print its report",
		RunE:  runOnce,
	}
}

func runOnce(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Worker.CycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Worker.CycleTimeout)
		defer cancel()
	}

	svc, err := buildServices(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeServices(svc, log)

	sched, err := engine.NewScheduler(svc.engine, svc.store, cfg.Schedule.Spec(), 0, log)
	if err != nil {
		return err
	}

	report, err := sched.RunNow(ctx, engine.TriggerCLI)
	if err != nil {
		return err
	}

	return printReport(cmd.OutOrStdout(), viper.GetString("output"), report)
}
