package generators

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
)

// NewSeed generates a random non-zero positive seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	seed := int64(binary.LittleEndian.Uint64(b[:]) & math.MaxInt64)
	if seed == 0 {
		seed = 1
	}
	return seed, nil
}

// DeriveSeed returns the seed of the i-th item in a batch started from base, so that a
// batch is reproducible from its first seed.
func DeriveSeed(base int64, i int) int64 {
	// splitmix64 finalizer
	z := uint64(base) + uint64(i+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	seed := int64(z & math.MaxInt64)
	if seed == 0 {
		return 1
	}
	return seed
}
