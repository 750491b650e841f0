// Package handlers implements the rsakeygen commands.
package handlers

import (
	"context"
	"fmt"
	"io"

	"github.com/taurusgroup/rsa-keygen/internal/config"
	"github.com/taurusgroup/rsa-keygen/pkg/keyfile"
	"github.com/taurusgroup/rsa-keygen/pkg/keygen"
	"github.com/taurusgroup/rsa-keygen/pkg/pool"
	"github.com/taurusgroup/rsa-keygen/pkg/rsa"
	"go.uber.org/zap"
)

// Generate creates cfg.Count key pairs of cfg.Bits bits and writes them to cfg.OutDir.
func Generate(ctx context.Context, cfg *config.Config, log *zap.Logger, out io.Writer) error {
	g := &keygen.Generator{
		Rounds:   cfg.Rounds,
		Accurate: cfg.Accurate,
	}
	if cfg.Workers > 0 {
		pl := pool.NewPool(cfg.Workers)
		defer pl.TearDown()
		g.Pool = pl
	}

	log.Info("generating key pairs",
		zap.Int("bits", cfg.Bits),
		zap.Int("count", cfg.Count),
		zap.Int("prime_workers", g.Pool.Workers()),
	)

	var keys []*rsa.KeyPair
	if cfg.Count == 1 {
		kp, err := g.Generate(cfg.Bits)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}
		keys = []*rsa.KeyPair{kp}
	} else {
		var err error
		if keys, err = g.GenerateBatch(ctx, cfg.Bits, cfg.Count, cfg.Workers); err != nil {
			return fmt.Errorf("generate: %w", err)
		}
	}

	for i, kp := range keys {
		name := cfg.Name
		if len(keys) > 1 {
			name = fmt.Sprintf("%s-%d", cfg.Name, i+1)
		}
		public, private, err := keyfile.Save(cfg.OutDir, name, kp)
		if err != nil {
			return err
		}
		log.Info("key pair written",
			zap.String("public", public),
			zap.String("private", private),
			zap.Int("modulus_bits", kp.BitLen()),
			zap.String("public_exponent", kp.PublicExponent().Big().String()),
		)
		log.Debug("key pair", zap.String("modulus", kp.Modulus().Big().String()))
		fmt.Fprintf(out, "%s\n%s\n", public, private)
	}
	return nil
}
