package params

const (
	// PrimalityRounds is the number of Miller-Rabin iterations performed on a
	// prime candidate which survived trial division.
	//
	// 20 is the same number that Go uses internally.
	PrimalityRounds = 20

	// MinPrimeBits is the smallest prime size that can be sampled.
	// The only odd 2-bit prime is 3.
	MinPrimeBits = 2

	// MinBits is the smallest modulus size for which two distinct primes
	// and a usable public exponent always exist (3 and 5 or 7).
	MinBits = 5

	// DefaultBits is the modulus size used by the command line tool.
	DefaultBits = 16

	// PublicExponent is tried before any other candidate.
	PublicExponent = 65537

	// SmallPrimeBound bounds the primes used for trial division.
	// Every candidate below SmallPrimeBound² is decided without Miller-Rabin.
	SmallPrimeBound = 1 << 10
)

// ExponentCandidates returns the public exponents tried in order, starting with PublicExponent.
func ExponentCandidates() []uint64 {
	return []uint64{PublicExponent, 3, 5, 17, 257}
}
