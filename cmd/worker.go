package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/streamops/channel-control/internal/application"
	"github.com/streamops/channel-control/internal/config"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the alert event consumer and expiry sweeper",
	RunE:  runWorker,
}

func runWorker(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load(".env")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	w, err := application.NewWorker(cfg)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return w.Run(ctx)
}
