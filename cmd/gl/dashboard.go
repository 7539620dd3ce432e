package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kdelaney/ghostline/internal/config"
	"github.com/kdelaney/ghostline/internal/dashboard"
	"github.com/kdelaney/ghostline/internal/store"
)

func newDashboardCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Start the read-only web dashboard",
		Long:  "Launches a local web dashboard for browsing stored analysis snapshots.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, configPath, port, cmd.Flags().Changed("port"))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to Ghostline config file")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "port to listen on")
	return cmd
}

func runDashboard(cmd *cobra.Command, configPath string, port int, portSet bool) error {
	cfg, db, err := openStore(configPath)
	if err != nil {
		return err
	}
	if err := store.AutoMigrate(db); err != nil {
		return err
	}
	if !portSet {
		port = cfg.Dashboard.Port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	return dashboard.Start(ctx, dashboard.StartOpts{
		DB:   db,
		Port: port,
		Out:  cmd.OutOrStdout(),
	})
}
