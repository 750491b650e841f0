package commands

import (
	"github.com/spf13/cobra"
	"github.com/taurusgroup/rsa-keygen/cmd/rsakeygen/handlers"
	"github.com/taurusgroup/rsa-keygen/internal/config"
)

// Sign returns the command signing the digest of a file with a .pri key.
// The signature is written as hex to --out, <file>.sig by default.
func Sign() *cobra.Command {
	var keyPath, sigPath string

	cmd := &cobra.Command{
		Use:   "sign <file>",
		Short: "Sign the digest of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return handlers.Sign(cmd.Context(), cfg, log, keyPath, args[0], sigPath, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&keyPath, "key", "k", "", "Private key file")
	cmd.Flags().StringVarP(&sigPath, "out", "o", "", "Signature file, defaults to <file>.sig")
	_ = cmd.MarkFlagRequired("key")
	config.AddDigestFlags(cmd.Flags())
	return cmd
}

// Verify returns the command checking a signature produced by Sign against a .pub key.
func Verify() *cobra.Command {
	var keyPath, sigPath string

	cmd := &cobra.Command{
		Use:   "verify <file>",
		Short: "Verify the signature of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return handlers.Verify(cmd.Context(), cfg, log, keyPath, args[0], sigPath, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&keyPath, "key", "k", "", "Public key file")
	cmd.Flags().StringVarP(&sigPath, "signature", "s", "", "Signature file, defaults to <file>.sig")
	_ = cmd.MarkFlagRequired("key")
	config.AddDigestFlags(cmd.Flags())
	return cmd
}
