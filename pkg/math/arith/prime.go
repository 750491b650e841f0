package arith

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/rsa-keygen/internal/params"
)

// primes generates an array containing all the odd prime numbers < below
func primes(below uint32) []uint32 {
	sieve := make([]bool, below)
	for i := 2; i < len(sieve); i++ {
		sieve[i] = true
	}
	for p := 2; p*p < len(sieve); p++ {
		if !sieve[p] {
			continue
		}
		for i := p << 1; i < len(sieve); i += p {
			sieve[i] = false
		}
	}
	nF := float64(below)
	out := make([]uint32, 0, int(nF/math.Log(nF)))
	for p := uint32(3); p < below; p++ {
		if sieve[p] {
			out = append(out, p)
		}
	}
	return out
}

var (
	smallPrimes     []uint32
	smallModuli     []*saferith.Modulus
	initSmallPrimes sync.Once
)

func loadSmallPrimes() {
	initSmallPrimes.Do(func() {
		smallPrimes = primes(params.SmallPrimeBound)
		smallModuli = make([]*saferith.Modulus, len(smallPrimes))
		for i, p := range smallPrimes {
			smallModuli[i] = saferith.ModulusFromUint64(uint64(p))
		}
	})
}

// trialDivision divides n by every odd prime below params.SmallPrimeBound.
// decided is false when n is too large to be settled this way.
func trialDivision(n *saferith.Nat) (prime, decided bool) {
	loadSmallPrimes()

	bits := n.TrueLen()
	if bits <= 1 {
		// 0 and 1
		return false, true
	}
	if bits == 2 {
		// 2 and 3
		return true, true
	}
	if n.Byte(0)&1 == 0 {
		return false, true
	}

	small := bits <= 64
	v := n.Uint64()
	r := new(saferith.Nat)
	for i, p := range smallPrimes {
		p64 := uint64(p)
		if small && p64*p64 > v {
			return true, true
		}
		if r.Mod(n, smallModuli[i]).Uint64() == 0 {
			return small && v == p64, true
		}
	}
	return false, false
}

// ProbablyPrime checks whether n is prime.
//
// Candidates below params.SmallPrimeBound² are decided exactly by trial division.
// Larger ones go through rounds iterations of Miller-Rabin with random bases read from rand,
// after the trial division step. rounds is raised to params.PrimalityRounds if lower.
func ProbablyPrime(rand io.Reader, n *saferith.Nat, rounds int) (bool, error) {
	if prime, decided := trialDivision(n); decided {
		return prime, nil
	}
	if rounds < params.PrimalityRounds {
		rounds = params.PrimalityRounds
	}
	return millerRabin(rand, n, rounds)
}

// sampleBase sets a to a uniform base in [2, n-2] by rejection sampling.
func sampleBase(rand io.Reader, a *saferith.Nat, n *saferith.Modulus, nMinus1 *saferith.Nat) error {
	bits := n.BitLen()
	buf := make([]byte, (bits+7)/8)
	// mask so that every draw has at most bits bits
	mask := byte(0xff >> (uint(len(buf)*8 - bits)))
	for {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return fmt.Errorf("arith: sample Miller-Rabin base: %w", err)
		}
		buf[0] &= mask
		a.SetBytes(buf)
		if _, _, lt := a.Cmp(nMinus1); lt != 1 {
			continue
		}
		if a.TrueLen() < 2 {
			// 0 and 1
			continue
		}
		return nil
	}
}

// millerRabin runs the Miller-Rabin test on an odd n > 3.
//
// A composite n passes a single round with probability at most 1/4.
func millerRabin(rand io.Reader, n *saferith.Nat, rounds int) (bool, error) {
	bits := n.TrueLen()
	nMod := saferith.ModulusFromNat(n)

	one := new(saferith.Nat).SetUint64(1)

	// n - 1 = d⋅2ˢ, with d odd
	nMinus1 := new(saferith.Nat).Sub(n, one, bits)
	s := nMinus1.Big().TrailingZeroBits()
	d := new(saferith.Nat).Rsh(nMinus1, s, bits)

	a := new(saferith.Nat)
	x := new(saferith.Nat)
	for i := 0; i < rounds; i++ {
		if err := sampleBase(rand, a, nMod, nMinus1); err != nil {
			return false, err
		}

		// x = aᵈ (mod n)
		x.Exp(a, d, nMod)
		if x.Eq(one) == 1 || x.Eq(nMinus1) == 1 {
			continue
		}

		witness := true
		for r := uint(1); r < s; r++ {
			x.ModMul(x, x, nMod)
			if x.Eq(nMinus1) == 1 {
				witness = false
				break
			}
			if x.Eq(one) == 1 {
				// a non trivial square root of 1 was found
				break
			}
		}
		if witness {
			return false, nil
		}
	}
	return true, nil
}
