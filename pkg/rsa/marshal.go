package rsa

import (
	"encoding"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
)

var (
	_ encoding.TextMarshaler     = (*PublicKey)(nil)
	_ encoding.TextUnmarshaler   = (*PublicKey)(nil)
	_ encoding.TextMarshaler     = (*PrivateKey)(nil)
	_ encoding.TextUnmarshaler   = (*PrivateKey)(nil)
	_ encoding.BinaryMarshaler   = (*PublicKey)(nil)
	_ encoding.BinaryUnmarshaler = (*PublicKey)(nil)
	_ encoding.BinaryMarshaler   = (*PrivateKey)(nil)
	_ encoding.BinaryUnmarshaler = (*PrivateKey)(nil)
	_ encoding.BinaryMarshaler   = (*KeyPair)(nil)
	_ encoding.BinaryUnmarshaler = (*KeyPair)(nil)
	_ json.Marshaler             = (*PublicKey)(nil)
	_ json.Unmarshaler           = (*PublicKey)(nil)
	_ json.Marshaler             = (*PrivateKey)(nil)
	_ json.Unmarshaler           = (*PrivateKey)(nil)
)

// formatPair writes "<n> <x>" in decimal.
func formatPair(n *saferith.Modulus, x *saferith.Nat) []byte {
	return []byte(n.Big().String() + " " + x.Big().String())
}

// parsePair reads two decimal integers separated by white space.
func parsePair(text []byte) (n, x *big.Int, err error) {
	fields := strings.Fields(string(text))
	if len(fields) != 2 {
		return nil, nil, fmt.Errorf("%w: expected 2 integers, found %d", ErrInvalidKey, len(fields))
	}
	n, ok := new(big.Int).SetString(fields[0], 10)
	if !ok {
		return nil, nil, fmt.Errorf("%w: modulus %q is not a decimal integer", ErrInvalidKey, fields[0])
	}
	x, ok = new(big.Int).SetString(fields[1], 10)
	if !ok {
		return nil, nil, fmt.Errorf("%w: exponent %q is not a decimal integer", ErrInvalidKey, fields[1])
	}
	return n, x, nil
}

// MarshalText returns "<n> <e>".
func (pk *PublicKey) MarshalText() ([]byte, error) {
	return formatPair(pk.n, pk.e), nil
}

// UnmarshalText parses the output of MarshalText.
func (pk *PublicKey) UnmarshalText(text []byte) error {
	n, e, err := parsePair(text)
	if err != nil {
		return err
	}
	key, err := NewPublicKey(n, e)
	if err != nil {
		return err
	}
	*pk = *key
	return nil
}

// MarshalText returns "<n> <d>".
func (sk *PrivateKey) MarshalText() ([]byte, error) {
	return formatPair(sk.n, sk.d), nil
}

// UnmarshalText parses the output of MarshalText.
func (sk *PrivateKey) UnmarshalText(text []byte) error {
	n, d, err := parsePair(text)
	if err != nil {
		return err
	}
	key, err := NewPrivateKey(n, d)
	if err != nil {
		return err
	}
	*sk = *key
	return nil
}

type jsonPublicKey struct {
	N *big.Int `json:"n"`
	E *big.Int `json:"e"`
}

type jsonPrivateKey struct {
	N *big.Int `json:"n"`
	D *big.Int `json:"d"`
}

func (pk PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonPublicKey{N: pk.n.Big(), E: pk.e.Big()})
}

func (pk *PublicKey) UnmarshalJSON(data []byte) error {
	var x jsonPublicKey
	if err := json.Unmarshal(data, &x); err != nil {
		return err
	}
	key, err := NewPublicKey(x.N, x.E)
	if err != nil {
		return err
	}
	*pk = *key
	return nil
}

func (sk PrivateKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonPrivateKey{N: sk.n.Big(), D: sk.d.Big()})
}

func (sk *PrivateKey) UnmarshalJSON(data []byte) error {
	var x jsonPrivateKey
	if err := json.Unmarshal(data, &x); err != nil {
		return err
	}
	key, err := NewPrivateKey(x.N, x.D)
	if err != nil {
		return err
	}
	*sk = *key
	return nil
}

// The binary encoding stores minimal big-endian byte strings in a CBOR map.
type cborKey struct {
	N []byte `cbor:"n"`
	E []byte `cbor:"e,omitempty"`
	D []byte `cbor:"d,omitempty"`
}

func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(&cborKey{N: pk.n.Big().Bytes(), E: pk.e.Big().Bytes()})
}

func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	var x cborKey
	if err := cbor.Unmarshal(data, &x); err != nil {
		return err
	}
	key, err := NewPublicKey(new(big.Int).SetBytes(x.N), new(big.Int).SetBytes(x.E))
	if err != nil {
		return err
	}
	*pk = *key
	return nil
}

func (sk *PrivateKey) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(&cborKey{N: sk.n.Big().Bytes(), D: sk.d.Big().Bytes()})
}

func (sk *PrivateKey) UnmarshalBinary(data []byte) error {
	var x cborKey
	if err := cbor.Unmarshal(data, &x); err != nil {
		return err
	}
	key, err := NewPrivateKey(new(big.Int).SetBytes(x.N), new(big.Int).SetBytes(x.D))
	if err != nil {
		return err
	}
	*sk = *key
	return nil
}

func (kp *KeyPair) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(&cborKey{
		N: kp.n.Big().Bytes(),
		E: kp.e.Big().Bytes(),
		D: kp.d.Big().Bytes(),
	})
}

func (kp *KeyPair) UnmarshalBinary(data []byte) error {
	var x cborKey
	if err := cbor.Unmarshal(data, &x); err != nil {
		return err
	}
	n := new(big.Int).SetBytes(x.N)
	pk, err := NewPublicKey(n, new(big.Int).SetBytes(x.E))
	if err != nil {
		return err
	}
	sk, err := NewPrivateKey(n, new(big.Int).SetBytes(x.D))
	if err != nil {
		return err
	}
	*kp = KeyPair{n: pk.n, e: pk.e, d: sk.d}
	return nil
}
