package sample

import (
	"errors"
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/rsa-keygen/internal/params"
	"github.com/taurusgroup/rsa-keygen/pkg/math/arith"
	"github.com/taurusgroup/rsa-keygen/pkg/pool"
)

var (
	ErrPrimeTooSmall    = errors.New("sample: prime size must be at least 2-bit")
	ErrNoDistinctPrimes = errors.New("sample: 3 is the only 2-bit prime")
)

// candidate reads an odd number of exactly bits bits from rand.
//
// The most significant bit is forced, so that the product of two candidates
// of a and b bits has a+b-1 or a+b bits. The least significant bit is forced
// for oddness.
func candidate(rand io.Reader, bits int, buf []byte) (*saferith.Nat, error) {
	if err := readBits(rand, buf); err != nil {
		return nil, err
	}
	// The number of significant bits in the first byte of our number
	topBits := uint(bits % 8)
	if topBits == 0 {
		topBits = 8
	}
	buf[0] &= uint8(int(1<<topBits) - 1)
	buf[0] |= 1 << (topBits - 1)
	buf[len(buf)-1] |= 1
	return new(saferith.Nat).SetBytes(buf).Resize(bits), nil
}

// Prime returns a prime number of exactly bits bits.
//
// Random odd candidates are drawn until one passes arith.ProbablyPrime with the given
// number of Miller-Rabin rounds. There is no bound on the number of candidates,
// roughly one in ln(2)⋅bits/2 is prime.
func Prime(rand io.Reader, bits, rounds int) (*saferith.Nat, error) {
	if bits < params.MinPrimeBits {
		return nil, fmt.Errorf("%w: have %d", ErrPrimeTooSmall, bits)
	}
	buf := make([]byte, (bits+7)/8)
	for {
		p, err := candidate(rand, bits, buf)
		if err != nil {
			return nil, err
		}
		ok, err := arith.ProbablyPrime(rand, p, rounds)
		if err != nil {
			return nil, err
		}
		if ok {
			return p, nil
		}
	}
}

type primeResult struct {
	p   *saferith.Nat
	err error
}

// DistinctPrimes returns two distinct primes of pBits and qBits bits.
//
// With a non nil pool, both primes are searched on separate workers, sharing rand
// through a pool.LockedReader. q is redrawn for as long as it equals p.
func DistinctPrimes(rand io.Reader, pl *pool.Pool, pBits, qBits, rounds int) (p, q *saferith.Nat, err error) {
	if pBits == params.MinPrimeBits && qBits == params.MinPrimeBits {
		return nil, nil, ErrNoDistinctPrimes
	}
	if pl != nil {
		rand = pool.NewLockedReader(rand)
	}
	bits := [2]int{pBits, qBits}
	results := pl.Parallelize(2, func(i int) interface{} {
		prime, err := Prime(rand, bits[i], rounds)
		return primeResult{p: prime, err: err}
	})
	for _, r := range results {
		if err = r.(primeResult).err; err != nil {
			return nil, nil, err
		}
	}
	p, q = results[0].(primeResult).p, results[1].(primeResult).p
	for p.Eq(q) == 1 {
		if q, err = Prime(rand, qBits, rounds); err != nil {
			return nil, nil, err
		}
	}
	return p, q, nil
}
