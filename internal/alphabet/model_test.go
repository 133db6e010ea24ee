package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rampantspark/genpass/internal/random"
)

// sequential walks through every index of the range in order.
type sequential struct{ next int }

func (s *sequential) RandomInt(min, max int) int {
	v := min + s.next%(max-min+1)
	s.next++
	return v
}

func TestEnglishModel(t *testing.T) {
	assert.Equal(t, 9995, English.Total())
	assert.Equal(t, 26, English.Size())
	assert.Equal(t, 1260, English.Weight('e'))
	assert.Equal(t, 6, English.Weight('z'))
	assert.Equal(t, 0, English.Weight('A'))
}

func TestSample_ExactWeights(t *testing.T) {
	// One full pass over the index space must reproduce the table exactly.
	rng := &sequential{}
	counts := make(map[byte]int)
	for i := 0; i < English.Total(); i++ {
		counts[English.Sample(rng)]++
	}

	require.Len(t, counts, 26)
	for _, f := range EnglishFrequencies {
		assert.Equal(t, f.Weight, counts[f.Letter], "letter %c", f.Letter)
	}
}

func TestSample_ChiSquare(t *testing.T) {
	const samples = 100000
	// Critical value for 25 degrees of freedom at p = 0.0001.
	const critical = 59.97

	rng := random.New()
	var observed [26]int
	for i := 0; i < samples; i++ {
		ch := English.Sample(rng)
		require.True(t, ch >= 'a' && ch <= 'z', "sample %q is not a lowercase letter", ch)
		observed[ch-'a']++
	}

	chi := 0.0
	for _, f := range EnglishFrequencies {
		expected := float64(samples) * float64(f.Weight) / float64(English.Total())
		diff := float64(observed[f.Letter-'a']) - expected
		chi += diff * diff / expected
	}
	assert.Less(t, chi, critical, "letter distribution deviates from the weight table")
}

func TestNew_Validation(t *testing.T) {
	valid := func() []Frequency {
		return append([]Frequency(nil), EnglishFrequencies...)
	}

	tests := []struct {
		name   string
		mutate func([]Frequency) []Frequency
	}{
		{
			name:   "missing letter",
			mutate: func(f []Frequency) []Frequency { return f[:25] },
		},
		{
			name: "duplicate letter",
			mutate: func(f []Frequency) []Frequency {
				f[25] = Frequency{'e', 5}
				return f
			},
		},
		{
			name: "zero weight",
			mutate: func(f []Frequency) []Frequency {
				f[0].Weight = 0
				return f
			},
		},
		{
			name: "uppercase letter",
			mutate: func(f []Frequency) []Frequency {
				f[0].Letter = 'E'
				return f
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.mutate(valid()))
			assert.Error(t, err)
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew(nil) })
}
