// Package sign signs digests with textbook RSA keys of any size.
//
// A digest is cut into blocks small enough to be smaller than the modulus,
// and every block is raised to the private exponent independently. Each signed
// block takes the byte size of the modulus in the signature, so that no
// information is lost even for 16-bit keys.
package sign

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/rsa-keygen/pkg/rsa"
)

var (
	ErrModulusTooSmall  = errors.New("sign: modulus must have at least 9 bits")
	ErrEmptyDigest      = errors.New("sign: empty digest")
	ErrInvalidSignature = errors.New("sign: invalid signature")
)

// blockSizes returns the number of digest bytes per block, and the number of signature bytes per block.
func blockSizes(n *saferith.Modulus) (in, out int, err error) {
	bits := n.BitLen()
	// every in block is < 2^(bits-1) ≤ N
	in = (bits - 1) / 8
	if in == 0 {
		return 0, 0, ErrModulusTooSmall
	}
	return in, (bits + 7) / 8, nil
}

// SignatureSize returns the length of a signature of a digestLen byte digest under n.
func SignatureSize(n *saferith.Modulus, digestLen int) (int, error) {
	in, out, err := blockSizes(n)
	if err != nil {
		return 0, err
	}
	return (digestLen + in - 1) / in * out, nil
}

// Sign raises each block of digest to the private exponent.
func Sign(sk *rsa.PrivateKey, digest []byte) ([]byte, error) {
	if len(digest) == 0 {
		return nil, ErrEmptyDigest
	}
	in, out, err := blockSizes(sk.Modulus())
	if err != nil {
		return nil, err
	}

	sig := make([]byte, 0, (len(digest)+in-1)/in*out)
	block := make([]byte, out)
	m := new(saferith.Nat)
	for start := 0; start < len(digest); start += in {
		end := start + in
		if end > len(digest) {
			end = len(digest)
		}
		m.SetBytes(digest[start:end])
		s, err := sk.Decrypt(m)
		if err != nil {
			return nil, fmt.Errorf("sign: block %d: %w", start/in, err)
		}
		s.Big().FillBytes(block)
		sig = append(sig, block...)
	}
	return sig, nil
}

// Verify checks that sig was produced by Sign over digest with the matching private key.
func Verify(pk *rsa.PublicKey, digest, sig []byte) error {
	if len(digest) == 0 {
		return ErrEmptyDigest
	}
	in, out, err := blockSizes(pk.Modulus())
	if err != nil {
		return err
	}
	if want := (len(digest) + in - 1) / in * out; len(sig) != want {
		return fmt.Errorf("%w: length %d, expected %d", ErrInvalidSignature, len(sig), want)
	}

	expected := make([]byte, in)
	s := new(saferith.Nat)
	for i := 0; i*out < len(sig); i++ {
		s.SetBytes(sig[i*out : (i+1)*out])
		m, err := pk.Encrypt(s)
		if err != nil {
			return fmt.Errorf("%w: block %d: %v", ErrInvalidSignature, i, err)
		}
		chunk := digest[i*in:]
		if len(chunk) > in {
			chunk = chunk[:in]
		}
		mBig := m.Big()
		if mBig.BitLen() > 8*len(chunk) {
			return fmt.Errorf("%w: block %d", ErrInvalidSignature, i)
		}
		mBig.FillBytes(expected[:len(chunk)])
		if subtle.ConstantTimeCompare(expected[:len(chunk)], chunk) != 1 {
			return fmt.Errorf("%w: block %d", ErrInvalidSignature, i)
		}
	}
	return nil
}

// SignReader hashes r with a and signs the digest. It returns the digest and the signature.
func SignReader(sk *rsa.PrivateKey, a Algorithm, r io.Reader) (digest, sig []byte, err error) {
	if digest, err = Digest(a, r); err != nil {
		return nil, nil, err
	}
	if sig, err = Sign(sk, digest); err != nil {
		return nil, nil, err
	}
	return digest, sig, nil
}

// VerifyReader hashes r with a and verifies sig over the digest.
func VerifyReader(pk *rsa.PublicKey, a Algorithm, r io.Reader, sig []byte) error {
	digest, err := Digest(a, r)
	if err != nil {
		return err
	}
	return Verify(pk, digest, sig)
}
