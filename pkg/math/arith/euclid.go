package arith

import (
	"errors"
	"math/big"
)

var (
	ErrNotInvertible = errors.New("arith: element is not invertible")
	ErrZeroModulus   = errors.New("arith: modulus must be positive")
)

var one = big.NewInt(1)

// EGCD runs the extended Euclidean algorithm on a, b ≥ 0.
// It returns g = gcd(a, b) together with Bézout coefficients x, y such that a⋅x + b⋅y = g.
func EGCD(a, b *big.Int) (g, x, y *big.Int) {
	// invariants: r₀ = a⋅s₀ + b⋅t₀ and r₁ = a⋅s₁ + b⋅t₁
	r0, r1 := new(big.Int).Set(a), new(big.Int).Set(b)
	s0, s1 := big.NewInt(1), big.NewInt(0)
	t0, t1 := big.NewInt(0), big.NewInt(1)

	q, r, tmp := new(big.Int), new(big.Int), new(big.Int)
	for r1.Sign() != 0 {
		q.QuoRem(r0, r1, r)
		r0, r1 = r1, r0.Set(r)

		tmp.Mul(q, s1)
		s0, s1 = s1, s0.Sub(s0, tmp)

		tmp.Mul(q, t1)
		t0, t1 = t1, t0.Sub(t0, tmp)
	}
	return r0, s0, t0
}

// GCD returns gcd(a, b).
func GCD(a, b *big.Int) *big.Int {
	g, _, _ := EGCD(a, b)
	return g
}

// IsCoprime returns true if gcd(a,b) = 1.
func IsCoprime(a, b *big.Int) bool {
	return GCD(a, b).Cmp(one) == 0
}

// LCM returns lcm(a, b) = a⋅b / gcd(a, b), with lcm(0, b) = 0.
func LCM(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Int)
	}
	l := new(big.Int).Quo(a, GCD(a, b))
	return l.Mul(l, b)
}

// ModInverse returns the unique x ∈ [1, m) such that a⋅x ≡ 1 (mod m).
//
// m does not need to be odd, which is the case for the Carmichael value λ(N).
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m.Sign() <= 0 {
		return nil, ErrZeroModulus
	}
	reduced := new(big.Int).Mod(a, m)
	g, x, _ := EGCD(reduced, m)
	if g.Cmp(one) != 0 {
		return nil, ErrNotInvertible
	}
	// x may be negative, bring it back into [0, m)
	return x.Mod(x, m), nil
}
