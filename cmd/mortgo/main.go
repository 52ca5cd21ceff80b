package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/mortgo/internal/calculation"
	"github.com/rgehrsitz/mortgo/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version information (set at build time via -ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// logger is built by the root command's PersistentPreRunE
var logger = zap.NewNop()

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mortgo",
		Short: "Fixed-rate loan repayment calculator",
		Long: `mortgo builds month-by-month repayment schedules for fixed-rate loans.
It supports equal installment and equal principal repayment, an optional
semi-annual bonus repayment track, scenario comparison, a budget solver and
an HTTP service.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(cmd)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")
	cmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "console", "Log format (console, json)")

	cmd.AddCommand(newCalculateCmd())
	cmd.AddCommand(newCompareCmd())
	cmd.AddCommand(newSolveCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}

func setupLogger(cmd *cobra.Command) error {
	debugMode, _ := cmd.Flags().GetBool("debug")
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	if level == "" && debugMode {
		level = "debug"
	}

	l, err := logging.New(logging.Config{Level: "warn", Format: format}, level)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// newEngine returns a calculation engine logging through the CLI logger
func newEngine(cmd *cobra.Command) *calculation.Engine {
	debugMode, _ := cmd.Flags().GetBool("debug")
	engine := calculation.NewEngine()
	engine.SetLogger(logger.Sugar())
	engine.Debug = debugMode
	return engine
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mortgo %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", date)
			if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "  go:     %s\n", info.GoVersion)
			}
		},
	}
}

func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

func main() {
	defer func() { _ = logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
