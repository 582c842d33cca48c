package main

import (
	"fmt"
	"os"

	"secure-acceptance-gateway/config"
	"secure-acceptance-gateway/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	Version = "dev"

	configPath string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gateway",
		Short:         "CyberSource Secure Acceptance payment gateway",
		Long:          "Signs Secure Acceptance checkout forms, records gateway replies and Decision Manager updates, and captures authorizations.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./config.yaml or ./config/config.yaml)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(profilesCmd())
	rootCmd.AddCommand(repliesCmd())
	rootCmd.AddCommand(hashPasswordCmd())
	return rootCmd
}

// loadConfig reads the configuration named by --config and builds the logger.
func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("load config: %w", err)
	}
	return cfg, logger.New(logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, Version: Version}), nil
}
