package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/mortgo/internal/config"
	"github.com/rgehrsitz/mortgo/internal/logging"
	"github.com/rgehrsitz/mortgo/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the schedule HTTP service",
		Long: `Run the HTTP service exposing schedule and comparison endpoints.
Settings come from the optional config file, then MORTGO_* environment
variables (also read from the env file).`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringP("config", "c", "", "Service config file (YAML)")
	cmd.Flags().String("env-file", ".env", "Environment file loaded before reading settings")
	cmd.Flags().String("address", "", "Listen address, overrides the configured one")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	address, _ := cmd.Flags().GetString("address")

	var envFiles []string
	if envFile != "" && fileExists(envFile) {
		envFiles = append(envFiles, envFile)
	}
	cfg, err := config.LoadServiceConfig(configPath, envFiles...)
	if err != nil {
		return err
	}
	if address != "" {
		cfg.Address = address
	}

	// The service logs with its own settings unless the level was given on the command line.
	level, _ := cmd.Flags().GetString("log-level")
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode && level == "" {
		level = "debug"
	}
	serviceLogger, err := logging.New(cfg.Logging, level)
	if err != nil {
		return err
	}
	defer func() { _ = serviceLogger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, cfg, serviceLogger, version)
}
