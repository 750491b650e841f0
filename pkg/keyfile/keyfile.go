// Package keyfile stores key pairs as two small text files:
// <name>.pub holds "<n> <e>" and <name>.pri holds "<n> <d>", both in decimal.
package keyfile

import (
	"encoding"
	"fmt"
	"os"
	"path/filepath"

	"github.com/taurusgroup/rsa-keygen/pkg/rsa"
)

const (
	PublicExt  = ".pub"
	PrivateExt = ".pri"

	publicMode  os.FileMode = 0o644
	privateMode os.FileMode = 0o600
)

// Paths returns the public and private key file paths for name in dir.
func Paths(dir, name string) (public, private string) {
	base := filepath.Join(dir, name)
	return base + PublicExt, base + PrivateExt
}

// DefaultName is the base name used for a key of the given size, e.g. rsa16.
func DefaultName(bits int) string {
	return fmt.Sprintf("rsa%d", bits)
}

// Save writes both halves of kp, and returns the paths written.
func Save(dir, name string, kp *rsa.KeyPair) (public, private string, err error) {
	public, private = Paths(dir, name)
	if err = write(public, kp.Public(), publicMode); err != nil {
		return "", "", err
	}
	if err = write(private, kp.Private(), privateMode); err != nil {
		return "", "", err
	}
	return public, private, nil
}

func write(path string, key encoding.TextMarshaler, mode os.FileMode) error {
	text, err := key.MarshalText()
	if err != nil {
		return fmt.Errorf("keyfile: encode %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("keyfile: %w", err)
	}
	// an existing file keeps its permissions through O_CREATE
	if err = f.Chmod(mode); err != nil {
		_ = f.Close()
		return fmt.Errorf("keyfile: %w", err)
	}
	if _, err = f.Write(text); err != nil {
		_ = f.Close()
		return fmt.Errorf("keyfile: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("keyfile: %w", err)
	}
	return nil
}

func read(path string, key encoding.TextUnmarshaler) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("keyfile: %w", err)
	}
	if err = key.UnmarshalText(text); err != nil {
		return fmt.Errorf("keyfile: decode %s: %w", path, err)
	}
	return nil
}

// LoadPublic reads a "<n> <e>" file.
func LoadPublic(path string) (*rsa.PublicKey, error) {
	var pk rsa.PublicKey
	if err := read(path, &pk); err != nil {
		return nil, err
	}
	return &pk, nil
}

// LoadPrivate reads a "<n> <d>" file.
func LoadPrivate(path string) (*rsa.PrivateKey, error) {
	var sk rsa.PrivateKey
	if err := read(path, &sk); err != nil {
		return nil, err
	}
	return &sk, nil
}
