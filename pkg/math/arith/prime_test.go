package arith

import (
	"crypto/rand"
	"errors"
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimes(t *testing.T) {
	ps := primes(30)
	assert.Equal(t, []uint32{3, 5, 7, 11, 13, 17, 19, 23, 29}, ps)
}

func TestProbablyPrime_Small(t *testing.T) {
	// every number below 2¹² is settled by trial division, compare with math/big
	for v := uint64(0); v < 1<<12; v++ {
		n := new(saferith.Nat).SetUint64(v)
		got, err := ProbablyPrime(rand.Reader, n, 20)
		require.NoError(t, err)
		want := new(big.Int).SetUint64(v).ProbablyPrime(20)
		assert.Equal(t, want, got, "v = %d", v)
	}
}

func TestProbablyPrime_Large(t *testing.T) {
	r := mrand.New(mrand.NewSource(3))
	pBig := p.Big()
	assert.True(t, pBig.ProbablyPrime(20))

	ok, err := ProbablyPrime(r, p, 20)
	require.NoError(t, err)
	assert.True(t, ok, "p should be prime")

	ok, err = ProbablyPrime(r, n.Nat(), 20)
	require.NoError(t, err)
	assert.False(t, ok, "p⋅q should be composite")

	for i := 0; i < 50; i++ {
		buf := make([]byte, 16)
		_, _ = r.Read(buf)
		buf[15] |= 1
		buf[0] |= 0x80
		x := new(saferith.Nat).SetBytes(buf)
		ok, err := ProbablyPrime(r, x, 20)
		require.NoError(t, err)
		assert.Equal(t, x.Big().ProbablyPrime(20), ok, "x = %v", x.Big())
	}
}

func TestMillerRabin_Carmichael(t *testing.T) {
	r := mrand.New(mrand.NewSource(4))
	// Carmichael numbers fool the Fermat test, but not Miller-Rabin
	for _, v := range []uint64{561, 1105, 1729, 2465, 2821, 6601, 8911, 41041, 825265, 321197185} {
		ok, err := millerRabin(r, new(saferith.Nat).SetUint64(v), 20)
		require.NoError(t, err)
		assert.False(t, ok, "%d is a Carmichael number", v)
	}
	for _, v := range []uint64{5, 7, 65537, 2147483647} {
		ok, err := millerRabin(r, new(saferith.Nat).SetUint64(v), 20)
		require.NoError(t, err)
		assert.True(t, ok, "%d is prime", v)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("no randomness")
}

func TestProbablyPrime_ReadError(t *testing.T) {
	_, err := ProbablyPrime(failingReader{}, p, 20)
	assert.Error(t, err)

	// trial division does not need randomness
	ok, err := ProbablyPrime(failingReader{}, new(saferith.Nat).SetUint64(251), 20)
	require.NoError(t, err)
	assert.True(t, ok)
}
