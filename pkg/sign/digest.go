package sign

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"io"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
)

var ErrUnknownAlgorithm = errors.New("sign: unknown digest algorithm")

// Algorithm names a 32 byte digest function.
type Algorithm string

const (
	SHA256  Algorithm = "sha256"
	BLAKE3  Algorithm = "blake3"
	SHA3256 Algorithm = "sha3-256"
)

// Algorithms lists the supported digests, SHA256 first.
func Algorithms() []Algorithm {
	return []Algorithm{SHA256, BLAKE3, SHA3256}
}

// ParseAlgorithm returns the Algorithm called name. The empty name selects SHA256.
func ParseAlgorithm(name string) (Algorithm, error) {
	if name == "" {
		return SHA256, nil
	}
	for _, a := range Algorithms() {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

func (a Algorithm) String() string {
	return string(a)
}

// New returns a fresh hash.Hash for a.
func (a Algorithm) New() (hash.Hash, error) {
	switch a {
	case SHA256:
		return sha256.New(), nil
	case BLAKE3:
		return blake3.New(), nil
	case SHA3256:
		return sha3.New256(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(a))
	}
}

// Digest hashes everything read from r.
func Digest(a Algorithm, r io.Reader) ([]byte, error) {
	h, err := a.New()
	if err != nil {
		return nil, err
	}
	if _, err = io.Copy(h, r); err != nil {
		return nil, fmt.Errorf("sign: digest: %w", err)
	}
	return h.Sum(nil), nil
}
