// Package random provides the uniform integer source used by the generators.
package random

import (
	cryptorand "crypto/rand"
	"fmt"
	"io"
	"math/rand/v2"
)

// seedSize is the ChaCha8 seed length in bytes.
const seedSize = 32

// Uniform produces uniformly distributed integers in an inclusive range.
type Uniform interface {
	RandomInt(min, max int) int
}

// Source is a ChaCha8 engine seeded from an entropy reader.
//
// A Source is not safe for concurrent use. Callers build a fresh one for
// every generation run and share it across every item of that run.
type Source struct {
	rand *rand.Rand
}

// New creates a Source seeded from the operating system entropy source.
//
// It panics if the entropy source cannot be read, which crypto/rand
// documents as an unrecoverable condition.
func New() *Source {
	src, err := NewFromReader(cryptorand.Reader)
	if err != nil {
		panic(err) // crypto/rand.Read should never fail
	}
	return src
}

// NewFromReader creates a Source seeded with the first 32 bytes of r.
//
// Parameters:
//   - r: entropy reader; a fixed reader yields a reproducible sequence
//
// Returns an error if r yields fewer than 32 bytes.
func NewFromReader(r io.Reader) (*Source, error) {
	var seed [seedSize]byte
	if _, err := io.ReadFull(r, seed[:]); err != nil {
		return nil, fmt.Errorf("failed to read random seed: %w", err)
	}
	return &Source{
		rand: rand.New(rand.NewChaCha8(seed)),
	}, nil
}

// Intn returns a random integer in [0, n).
//
// Panics if n <= 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		panic("invalid argument to Intn")
	}
	return s.rand.IntN(n)
}

// RandomInt returns a random integer in the inclusive range [min, max].
//
// Every value in the range is equally likely; the draw carries no modulo bias.
func (s *Source) RandomInt(min, max int) int {
	return s.Intn(max-min+1) + min
}
