package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Walkmana-25/Saphillon-Core/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "sapphillon",
	Short: "Sapphillon - sandboxed workflow execution core",
	Long: `Sapphillon executes versioned workflow scripts inside an isolated
interpreter context. Scripts can only call the plugin functions registered by
the host; printed output is captured into the run's result record.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to a yaml config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runCmd)
}

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
}
