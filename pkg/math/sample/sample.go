package sample

import (
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
)

const maxIterations = 255

var ErrMaxIterations = fmt.Errorf("sample: failed to read randomness after %d iterations", maxIterations)

// readBits fills buf from rand, retrying short reads a bounded number of times.
func readBits(rand io.Reader, buf []byte) error {
	var err error
	for i := 0; i < maxIterations; i++ {
		if _, err = io.ReadFull(rand, buf); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrMaxIterations, err)
}

// ModN samples an element of ℤₙ
func ModN(rand io.Reader, n *saferith.Modulus) (*saferith.Nat, error) {
	out := new(saferith.Nat)
	bits := n.BitLen()
	buf := make([]byte, (bits+7)/8)
	mask := byte(0xff >> uint(len(buf)*8-bits))
	for {
		if err := readBits(rand, buf); err != nil {
			return nil, err
		}
		buf[0] &= mask
		out.SetBytes(buf)
		if _, _, lt := out.CmpMod(n); lt == 1 {
			return out, nil
		}
	}
}
