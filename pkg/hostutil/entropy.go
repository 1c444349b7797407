package hostutil

import (
	"crypto/rand"
	"encoding/binary"
)

// SystemEntropy seeds from the OS's cryptographic RNG. It is never used
// to drive RND directly — only to pick the initial seed an unseeded
// RANDOMIZE falls back to — so the language's own PRNG sequence stays
// exactly as reproducible as spec.md §5 requires once a program issues
// an explicit RANDOMIZE with a literal seed.
type SystemEntropy struct{}

func (SystemEntropy) Seed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 1
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

// FixedEntropy always returns the same seed, for deterministic tests.
type FixedEntropy struct {
	S int64
}

func (e FixedEntropy) Seed() int64 { return e.S }
