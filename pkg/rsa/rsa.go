// Package rsa holds textbook RSA keys produced by pkg/keygen, and the raw
// modular exponentiation they define.
//
// There is no padding: Encrypt and Decrypt compute mᴱ and cᴰ (mod N) directly.
package rsa

import (
	"errors"
	"math/big"

	"github.com/cronokirby/saferith"
)

var (
	ErrInvalidKey      = errors.New("rsa: invalid key")
	ErrMessageTooLarge = errors.New("rsa: message is not smaller than the modulus")
)

// KeyPair is the output of key generation: a modulus N = P⋅Q,
// a public exponent E, and a private exponent D with E⋅D ≡ 1 (mod λ(N)).
//
// The prime factors are not part of a KeyPair.
type KeyPair struct {
	n    *saferith.Modulus
	e, d *saferith.Nat
}

// NewKeyPair wraps already derived values. The values are not copied.
func NewKeyPair(n *saferith.Modulus, e, d *saferith.Nat) *KeyPair {
	return &KeyPair{n: n, e: e, d: d}
}

// Modulus returns N.
func (kp *KeyPair) Modulus() *saferith.Modulus {
	return kp.n
}

// PublicExponent returns E.
func (kp *KeyPair) PublicExponent() *saferith.Nat {
	return kp.e
}

// PrivateExponent returns D.
func (kp *KeyPair) PrivateExponent() *saferith.Nat {
	return kp.d
}

// BitLen returns the size of N in bits.
func (kp *KeyPair) BitLen() int {
	return kp.n.BitLen()
}

// Public returns the (N, E) half of the key pair.
func (kp *KeyPair) Public() *PublicKey {
	return &PublicKey{n: kp.n, e: kp.e}
}

// Private returns the (N, D) half of the key pair.
func (kp *KeyPair) Private() *PrivateKey {
	return &PrivateKey{n: kp.n, d: kp.d}
}

// Equal returns true if both key pairs hold the same three integers.
func (kp *KeyPair) Equal(other *KeyPair) bool {
	return kp.Public().Equal(other.Public()) && kp.d.Eq(other.d) == 1
}

// PublicKey is the pair (N, E).
type PublicKey struct {
	n *saferith.Modulus
	e *saferith.Nat
}

// NewPublicKey validates and copies n and e.
// It requires an odd n > 1 and 0 < e.
func NewPublicKey(n, e *big.Int) (*PublicKey, error) {
	nMod, eNat, err := fromBig(n, e)
	if err != nil {
		return nil, err
	}
	return &PublicKey{n: nMod, e: eNat}, nil
}

// Modulus returns N.
func (pk *PublicKey) Modulus() *saferith.Modulus {
	return pk.n
}

// Exponent returns E.
func (pk *PublicKey) Exponent() *saferith.Nat {
	return pk.e
}

// Equal returns true if pk = other.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.n.Nat().Eq(other.n.Nat()) == 1 && pk.e.Eq(other.e) == 1
}

// Encrypt returns mᴱ (mod N).
func (pk *PublicKey) Encrypt(m *saferith.Nat) (*saferith.Nat, error) {
	return exp(m, pk.e, pk.n)
}

// PrivateKey is the pair (N, D).
type PrivateKey struct {
	n *saferith.Modulus
	d *saferith.Nat
}

// NewPrivateKey validates and copies n and d.
// It requires an odd n > 1 and 0 < d.
func NewPrivateKey(n, d *big.Int) (*PrivateKey, error) {
	nMod, dNat, err := fromBig(n, d)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{n: nMod, d: dNat}, nil
}

// Modulus returns N.
func (sk *PrivateKey) Modulus() *saferith.Modulus {
	return sk.n
}

// Exponent returns D.
func (sk *PrivateKey) Exponent() *saferith.Nat {
	return sk.d
}

// Equal returns true if sk = other.
func (sk *PrivateKey) Equal(other *PrivateKey) bool {
	return sk.n.Nat().Eq(other.n.Nat()) == 1 && sk.d.Eq(other.d) == 1
}

// Decrypt returns cᴰ (mod N).
func (sk *PrivateKey) Decrypt(c *saferith.Nat) (*saferith.Nat, error) {
	return exp(c, sk.d, sk.n)
}

func exp(x, e *saferith.Nat, n *saferith.Modulus) (*saferith.Nat, error) {
	if _, _, lt := x.CmpMod(n); lt != 1 {
		return nil, ErrMessageTooLarge
	}
	return new(saferith.Nat).Exp(x, e, n), nil
}

func fromBig(n, x *big.Int) (*saferith.Modulus, *saferith.Nat, error) {
	if n == nil || x == nil {
		return nil, nil, ErrInvalidKey
	}
	// moduli are products of odd primes
	if n.Cmp(big.NewInt(1)) <= 0 || n.Bit(0) == 0 || x.Sign() <= 0 {
		return nil, nil, ErrInvalidKey
	}
	nMod := saferith.ModulusFromNat(new(saferith.Nat).SetBig(n, n.BitLen()))
	xNat := new(saferith.Nat).SetBig(x, x.BitLen())
	return nMod, xNat, nil
}
