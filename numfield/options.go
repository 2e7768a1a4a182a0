package numfield

const defaultSeed = "numfield/cantor-zassenhaus"

// Options tune a Field and everything derived from it.
type Options struct {
	// MaxSearchPrime bounds the primes for which the integral basis search
	// walks all p^n candidates. Zero means no bound.
	MaxSearchPrime uint64
	// Seed keys the deterministic randomness of finite field factorization.
	Seed []byte
	// CheckInvariants turns on the expensive ideal and basis assertions.
	CheckInvariants bool
}

// ApplyDefaults fills unset fields.
func (o *Options) ApplyDefaults() {
	if len(o.Seed) == 0 {
		o.Seed = []byte(defaultSeed)
	}
}

func (o *Options) checks() bool { return checksOn || o.CheckInvariants }
