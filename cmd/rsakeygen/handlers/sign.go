package handlers

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/taurusgroup/rsa-keygen/internal/config"
	"github.com/taurusgroup/rsa-keygen/pkg/keyfile"
	"github.com/taurusgroup/rsa-keygen/pkg/sign"
	"go.uber.org/zap"
)

const signatureExt = ".sig"

var ErrMissingKey = errors.New("a key file is required (use --key)")

func signaturePath(file, sigPath string) string {
	if sigPath != "" {
		return sigPath
	}
	return file + signatureExt
}

// Sign digests file with cfg.Digest, signs the digest with the private key at keyPath,
// and writes the hex encoded signature.
func Sign(_ context.Context, cfg *config.Config, log *zap.Logger, keyPath, file, sigPath string, out io.Writer) error {
	if keyPath == "" {
		return ErrMissingKey
	}
	alg, err := sign.ParseAlgorithm(cfg.Digest)
	if err != nil {
		return err
	}
	sk, err := keyfile.LoadPrivate(keyPath)
	if err != nil {
		return err
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("sign: %w", err)
	}
	defer f.Close()

	digest, sig, err := sign.SignReader(sk, alg, f)
	if err != nil {
		return err
	}

	sigPath = signaturePath(file, sigPath)
	if err = os.WriteFile(sigPath, []byte(hex.EncodeToString(sig)+"\n"), 0o644); err != nil {
		return fmt.Errorf("sign: %w", err)
	}
	log.Info("file signed",
		zap.String("file", file),
		zap.String("digest", alg.String()),
		zap.String("digest_hex", hex.EncodeToString(digest)),
		zap.String("signature", sigPath),
	)
	fmt.Fprintln(out, sigPath)
	return nil
}

// Verify checks the signature at sigPath over file with the public key at keyPath.
func Verify(_ context.Context, cfg *config.Config, log *zap.Logger, keyPath, file, sigPath string, out io.Writer) error {
	if keyPath == "" {
		return ErrMissingKey
	}
	alg, err := sign.ParseAlgorithm(cfg.Digest)
	if err != nil {
		return err
	}
	pk, err := keyfile.LoadPublic(keyPath)
	if err != nil {
		return err
	}

	sigPath = signaturePath(file, sigPath)
	sigHex, err := os.ReadFile(sigPath)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	sig, err := hex.DecodeString(strings.TrimSpace(string(sigHex)))
	if err != nil {
		return fmt.Errorf("verify: decode %s: %w", sigPath, err)
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	defer f.Close()

	if err = sign.VerifyReader(pk, alg, f, sig); err != nil {
		log.Warn("signature rejected", zap.String("file", file), zap.Error(err))
		return err
	}
	log.Info("signature verified", zap.String("file", file), zap.String("signature", sigPath))
	fmt.Fprintln(out, "OK")
	return nil
}
