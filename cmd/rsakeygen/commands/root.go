// Package commands defines the CLI command structure and flag bindings.
//
// Command execution is delegated to handler functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/taurusgroup/rsa-keygen/internal/config"
	"github.com/taurusgroup/rsa-keygen/internal/logger"
	"go.uber.org/zap"
)

// Root returns the root command for the rsakeygen CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rsakeygen",
		Short:         "Generate, and sign with, textbook RSA keys of any size",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.AddGlobalFlags(cmd.PersistentFlags())

	cmd.AddCommand(Generate())
	cmd.AddCommand(Sign())
	cmd.AddCommand(Verify())

	return cmd
}

// setup loads the configuration for cmd and builds the logger.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.New(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Debug)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("configuration loaded", cfg.Fields()...)
	return cfg, log, nil
}
