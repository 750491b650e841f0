package arith

import (
	"github.com/cronokirby/saferith"
)

// Modulus wraps a saferith.Modulus, and keeps the factorization n = p⋅q around.
// xᵉ (mod n) is computed with two half size exponentiations and CRT recombination.
type Modulus struct {
	// represents modulus n
	*saferith.Modulus
	// n = p⋅q
	p, q *saferith.Modulus
	// pInv = p⁻¹ (mod q)
	pNat, pInv *saferith.Nat
}

// ModulusFromFactors computes n = p⋅q, and caches what is needed for CRT exponentiation.
// p and q must be distinct primes.
func ModulusFromFactors(p, q *saferith.Nat) *Modulus {
	nNat := new(saferith.Nat).Mul(p, q, -1)
	pMod := saferith.ModulusFromNat(p)
	qMod := saferith.ModulusFromNat(q)
	return &Modulus{
		Modulus: saferith.ModulusFromNat(nNat),
		p:       pMod,
		q:       qMod,
		pNat:    new(saferith.Nat).SetNat(p),
		pInv:    new(saferith.Nat).ModInverse(new(saferith.Nat).Mod(p, qMod), qMod),
	}
}

// Exp returns xᵉ (mod n), equivalent to (saferith.Nat).Exp(x, e, n.Modulus).
func (n *Modulus) Exp(x, e *saferith.Nat) *saferith.Nat {
	var xp, xq saferith.Nat
	xp.Mod(x, n.p)
	xq.Mod(x, n.q)
	xp.Exp(&xp, e, n.p) // x₁ = xᵉ (mod p)
	xq.Exp(&xq, e, n.q) // x₂ = xᵉ (mod q)
	// r = x₁ + p⋅[p⁻¹ (mod q)]⋅[x₂ - x₁] (mod n)
	r := xq.ModSub(&xq, &xp, n.Modulus)
	r.ModMul(r, n.pInv, n.Modulus)
	r.ModMul(r, n.pNat, n.Modulus)
	r.ModAdd(r, &xp, n.Modulus)
	return r
}
