package alphabet

import (
	"fmt"

	"github.com/rampantspark/genpass/internal/random"
)

// English is the model built from EnglishFrequencies.
var English = MustNew(EnglishFrequencies)

// Model samples letters in proportion to their weights.
//
// It stores the expanded sequence in which every letter appears exactly
// weight times, so a uniform index into it reproduces the weights exactly.
// A Model is immutable after construction and safe for concurrent use.
type Model struct {
	expanded []byte
	weights  [26]int
}

// New builds a Model from a frequency table.
//
// The table must contain every letter 'a' through 'z' exactly once, each
// with a positive weight.
func New(freqs []Frequency) (*Model, error) {
	if len(freqs) != 26 {
		return nil, fmt.Errorf("frequency table has %d entries, want 26", len(freqs))
	}

	m := &Model{}
	total := 0
	for _, f := range freqs {
		if f.Letter < 'a' || f.Letter > 'z' {
			return nil, fmt.Errorf("letter %q is not in a-z", f.Letter)
		}
		if f.Weight <= 0 {
			return nil, fmt.Errorf("letter %q has non-positive weight %d", f.Letter, f.Weight)
		}
		idx := f.Letter - 'a'
		if m.weights[idx] != 0 {
			return nil, fmt.Errorf("letter %q appears more than once", f.Letter)
		}
		m.weights[idx] = f.Weight
		total += f.Weight
	}
	m.expanded = make([]byte, 0, total)
	for _, f := range freqs {
		for i := 0; i < f.Weight; i++ {
			m.expanded = append(m.expanded, f.Letter)
		}
	}
	return m, nil
}

// MustNew is like New but panics on an invalid table.
func MustNew(freqs []Frequency) *Model {
	m, err := New(freqs)
	if err != nil {
		panic(err)
	}
	return m
}

// Sample draws one letter using a single uniform draw in [0, Total()-1].
func (m *Model) Sample(rng random.Uniform) byte {
	return m.expanded[rng.RandomInt(0, len(m.expanded)-1)]
}

// Pick is Sample under the name the category policies use.
func (m *Model) Pick(rng random.Uniform) byte {
	return m.Sample(rng)
}

// Size returns the number of distinct letters the model can produce.
func (m *Model) Size() int {
	return 26
}

// Total returns the sum of all weights.
func (m *Model) Total() int {
	return len(m.expanded)
}

// Weight returns the weight of a letter, or 0 if it is not in a-z.
func (m *Model) Weight(letter byte) int {
	if letter < 'a' || letter > 'z' {
		return 0
	}
	return m.weights[letter-'a']
}

// String describes the model for listings.
func (m *Model) String() string {
	return "a-z weighted by letter frequency"
}
