package weaver

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// NewSeed draws a seed from crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// SeedFromPhrase hashes a human-friendly phrase into a seed.
func SeedFromPhrase(phrase string) int64 {
	return int64(xxhash.Sum64String(phrase))
}

// NewDice returns a deterministic PCG-backed source for seed.
// The second PCG word is derived from the first so a single int64 is enough.
func NewDice(seed int64) *rand.Rand {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(seed))
	return rand.New(rand.NewPCG(uint64(seed), xxhash.Sum64(b[:])))
}
