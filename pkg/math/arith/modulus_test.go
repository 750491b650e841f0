package arith

import (
	mrand "math/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
)

var (
	p, q         *saferith.Nat
	n            *saferith.Modulus
	mFast        *Modulus
)

func init() {
	p, _ = new(saferith.Nat).SetHex("D08769E92F80F7FDFB85EC02AFFDAED0FDE2782070757F191DCDC4D108110AC1E31C07FC253B5F7B91C5D9F203AA0572D3F2062A3D2904C535C6ACCA7D5674E1C2640720E762C72B66931F483C2D910908CF02EA6723A0CBBB1016CA696C38FEAC59B31E40584C8141889A11F7A38F5B17811D11F42CD15B8470F11C6183802B")
	q, _ = new(saferith.Nat).SetHex("C21239C3484FC3C8409F40A9A22FABFFE26CA10C27506E3E017C2EC8C4B98D7A6D30DED0686869884BE9BAD27F5241B7313F73D19E9E4B384FABF9554B5BB4D517CBAC0268420C63D545612C9ADABEEDF20F94244E7F8F2080B0C675AC98D97C580D43375F999B1AC127EC580B89B2D302EF33DD5FD8474A241B0398F6088CA7")
	n = saferith.ModulusFromNat(new(saferith.Nat).Mul(p, q, -1))
	mFast = ModulusFromFactors(p, q)
}

func randomNat(r *mrand.Rand, bytes int) *saferith.Nat {
	buf := make([]byte, bytes)
	_, _ = r.Read(buf)
	return new(saferith.Nat).SetBytes(buf)
}

func TestModulus_Exp(t *testing.T) {
	r := mrand.New(mrand.NewSource(0))

	assert.True(t, mFast.Nat().Eq(n.Nat()) == 1, "n moduli should be the same")

	for i := 0; i < 8; i++ {
		x := new(saferith.Nat).Mod(randomNat(r, 256), n)
		e := randomNat(r, 32)

		yExpected := new(saferith.Nat).Exp(x, e, n)
		assert.True(t, yExpected.Eq(mFast.Exp(x, e)) == 1, "exponentiation with acceleration should give the same result")
	}
}

func TestModulus_ExpSmall(t *testing.T) {
	// 251⋅241 = 60491
	m := ModulusFromFactors(new(saferith.Nat).SetUint64(251), new(saferith.Nat).SetUint64(241))
	assert.Equal(t, uint64(60491), m.Nat().Uint64())

	e := new(saferith.Nat).SetUint64(7)
	for _, x := range []uint64{0, 1, 2, 250, 241, 60490} {
		xNat := new(saferith.Nat).SetUint64(x)
		want := new(saferith.Nat).Exp(xNat, e, m.Modulus)
		assert.Equal(t, want.Uint64(), m.Exp(xNat, e).Uint64(), "x = %d", x)
	}
}

// This exists to save the results of functions we want to benchmark, to avoid
// having them optimized away.
var resultNat *saferith.Nat

func benchmarkExp(b *testing.B, exp func(x, e *saferith.Nat) *saferith.Nat) {
	r := mrand.New(mrand.NewSource(0))
	x := new(saferith.Nat).Mod(randomNat(r, 256), n)
	e := randomNat(r, 256)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		resultNat = exp(x, e)
	}
}

func BenchmarkExp(b *testing.B) {
	b.Run("crt", func(b *testing.B) { benchmarkExp(b, mFast.Exp) })
	b.Run("plain", func(b *testing.B) {
		benchmarkExp(b, func(x, e *saferith.Nat) *saferith.Nat { return new(saferith.Nat).Exp(x, e, n) })
	})
}
