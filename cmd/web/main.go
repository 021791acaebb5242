package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/seller-atlas/pkg/handlers/dashboard"
	"github.com/de-tools/seller-atlas/pkg/server"
	"github.com/de-tools/seller-atlas/pkg/services/collector"
	"github.com/de-tools/seller-atlas/pkg/services/config"
	"github.com/de-tools/seller-atlas/pkg/services/fanout"
	"github.com/de-tools/seller-atlas/pkg/services/refresh"
	"github.com/de-tools/seller-atlas/pkg/store/market"
	"github.com/de-tools/seller-atlas/pkg/store/tracker"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Seller Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "seller-atlas.yaml",
		"Path to the service configuration file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	callTracker := tracker.Tracker(tracker.NewNoop())
	if cfg.Tracker.Path != "" {
		callTracker, err = tracker.NewSQLite(cfg.Tracker.Path)
		if err != nil {
			return fmt.Errorf("failed to open call tracker: %w", err)
		}
		defer callTracker.Close()
	}

	client, err := market.NewClient(cfg.Market, callTracker)
	if err != nil {
		return fmt.Errorf("failed to create market client: %w", err)
	}

	accounts, err := client.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tracked accounts: %w", err)
	}
	logger.Info().Strs("accounts", accounts).Msg("tracking accounts")

	recordCollector := collector.New(client, collector.Config{
		PageSize:    cfg.Collector.PageSize,
		MaxSpanDays: cfg.Collector.MaxSpanDays,
	})
	accountFanout := fanout.New(recordCollector, accounts)

	if cfg.Refresh.Cron != "" {
		scheduler, err := refresh.NewScheduler(logger, accountFanout, cfg.Refresh.Cron, cfg.Refresh.RangeDays)
		if err != nil {
			return fmt.Errorf("failed to create refresh scheduler: %w", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	api := server.NewWebAPI(server.Config{
		Addr:            net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Dashboard: dashboard.NewHandler(accountFanout, callTracker),
			Logger:    logger,
		},
	})

	// Start blocks until the listener fails or a shutdown signal drains the
	// server; the deferred scheduler stop and tracker close then run.
	return api.Start()
}
