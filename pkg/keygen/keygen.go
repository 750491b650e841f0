// Package keygen generates RSA key pairs of an arbitrary bit length.
//
// Sizes far below anything secure, down to params.MinBits, are supported on purpose:
// small keys are used to exercise signing code paths where the modulus fits in a machine word.
package keygen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/rsa-keygen/internal/params"
	"github.com/taurusgroup/rsa-keygen/pkg/math/arith"
	"github.com/taurusgroup/rsa-keygen/pkg/math/sample"
	"github.com/taurusgroup/rsa-keygen/pkg/pool"
	"github.com/taurusgroup/rsa-keygen/pkg/rsa"
)

var (
	// ErrInsufficientBits is returned when the requested size cannot be split into two distinct primes.
	ErrInsufficientBits = errors.New("keygen: bit length too small")
	// ErrNoValidExponent is returned when no exponent candidate is coprime to λ(N).
	// Calling Generate again draws a fresh pair of primes.
	ErrNoValidExponent = errors.New("keygen: no public exponent candidate is coprime to λ")
	// ErrSelfCheck is returned when the derived exponents fail to invert each other.
	ErrSelfCheck = errors.New("keygen: generated key failed its self check")
)

// Generator produces key pairs. The zero value is ready to use.
//
// A Generator may be used from several goroutines as long as Rand is safe for
// concurrent use, which is the case for crypto/rand.Reader and pool.LockedReader.
type Generator struct {
	// Rand is the source of randomness for candidates and Miller-Rabin bases.
	// Defaults to crypto/rand.Reader.
	Rand io.Reader
	// Rounds is the number of Miller-Rabin iterations, at least params.PrimalityRounds.
	Rounds int
	// Exponents lists the public exponent candidates in order of preference.
	// Defaults to params.ExponentCandidates().
	Exponents []uint64
	// Pool, when not nil, is used to search both primes in parallel.
	Pool *pool.Pool
	// Accurate redraws the primes until N has exactly the requested size.
	// Otherwise N may be one bit short.
	Accurate bool
}

// keyMaterial keeps the factorization next to the key, for tests only.
type keyMaterial struct {
	*rsa.KeyPair
	p, q   *saferith.Nat
	lambda *big.Int
}

// Generate returns a fresh key pair whose modulus has bits bits, or bits-1 when Accurate is false.
//
// The primes are discarded before returning. No partial key is ever returned.
func (g *Generator) Generate(bits int) (*rsa.KeyPair, error) {
	km, err := g.generate(bits)
	if err != nil {
		return nil, err
	}
	return km.KeyPair, nil
}

func (g *Generator) reader() io.Reader {
	if g.Rand == nil {
		return rand.Reader
	}
	return g.Rand
}

func (g *Generator) rounds() int {
	if g.Rounds < params.PrimalityRounds {
		return params.PrimalityRounds
	}
	return g.Rounds
}

func (g *Generator) exponents() []uint64 {
	if len(g.Exponents) == 0 {
		return params.ExponentCandidates()
	}
	return g.Exponents
}

func (g *Generator) generate(bits int) (*keyMaterial, error) {
	if bits < params.MinBits {
		return nil, fmt.Errorf("%w: have %d, need at least %d", ErrInsufficientBits, bits, params.MinBits)
	}
	// P gets the extra bit when bits is odd
	pBits, qBits := (bits+1)/2, bits/2

	for {
		p, q, err := sample.DistinctPrimes(g.reader(), g.Pool, pBits, qBits, g.rounds())
		if err != nil {
			return nil, fmt.Errorf("keygen: sample primes: %w", err)
		}
		n := arith.ModulusFromFactors(p, q)
		if g.Accurate && n.BitLen() != bits {
			continue
		}

		// λ = lcm(P-1, Q-1)
		pMinus1 := new(big.Int).Sub(p.Big(), big.NewInt(1))
		qMinus1 := new(big.Int).Sub(q.Big(), big.NewInt(1))
		lambda := arith.LCM(pMinus1, qMinus1)

		e, err := chooseExponent(lambda, g.exponents())
		if err != nil {
			return nil, err
		}
		d, err := arith.ModInverse(e, lambda)
		if err != nil {
			return nil, fmt.Errorf("keygen: invert public exponent: %w", err)
		}

		eNat := new(saferith.Nat).SetBig(e, e.BitLen())
		dNat := new(saferith.Nat).SetBig(d, lambda.BitLen())
		if err = selfCheck(n, eNat, dNat); err != nil {
			return nil, err
		}

		return &keyMaterial{
			KeyPair: rsa.NewKeyPair(n.Modulus, eNat, dNat),
			p:       p,
			q:       q,
			lambda:  lambda,
		}, nil
	}
}

// chooseExponent returns the first candidate e with 1 < e < λ and gcd(e, λ) = 1.
func chooseExponent(lambda *big.Int, candidates []uint64) (*big.Int, error) {
	for _, c := range candidates {
		e := new(big.Int).SetUint64(c)
		if c <= 1 || e.Cmp(lambda) >= 0 {
			continue
		}
		if arith.IsCoprime(e, lambda) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: λ = %v, candidates %v", ErrNoValidExponent, lambda, candidates)
}

// selfCheck verifies that (2ᵉ)ᵈ = 2 (mod n), using the factorization of n.
func selfCheck(n *arith.Modulus, e, d *saferith.Nat) error {
	// saferith resizes operands in place, so the base is never shared between calls
	two := new(saferith.Nat).SetUint64(2)
	c := n.Exp(two, e)
	if n.Exp(c, d).Eq(two) != 1 {
		return ErrSelfCheck
	}
	return nil
}
