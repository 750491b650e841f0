package commands

import (
	"github.com/spf13/cobra"
	"github.com/taurusgroup/rsa-keygen/cmd/rsakeygen/handlers"
	"github.com/taurusgroup/rsa-keygen/internal/config"
)

// Generate returns the command writing <name>.pub and <name>.pri key files.
//
// Flags:
//
//	--bits:     modulus size, 16 by default
//	--out-dir:  output directory
//	--name:     base name of the files, rsa<bits> by default
//	--count:    number of key pairs, suffixed -1, -2, ... when more than one
func Generate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a key pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return handlers.Generate(cmd.Context(), cfg, log, cmd.OutOrStdout())
		},
	}
	config.AddGenerateFlags(cmd.Flags())
	return cmd
}
