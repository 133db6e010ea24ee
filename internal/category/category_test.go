package category

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/rampantspark/genpass/internal/alphabet"
	"github.com/rampantspark/genpass/internal/random"
)

const alphanumeric = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{"username", Username, false},
		{"password", Password, false},
		{"passwordspecial", PasswordSpecial, false},
		{"pin4", PIN4, false},
		{"pin6", PIN6, false},
		{"pin12", PIN12, false},
		{"  PIN6 ", PIN6, false},
		{"Password", Password, false},
		{"pin8", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidCategory))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, c := range All() {
		got, err := Parse(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestValid(t *testing.T) {
	assert.Len(t, All(), 6)
	assert.True(t, PIN12.Valid())
	assert.False(t, Category(6).Valid())
	assert.False(t, Category(255).Valid())
	assert.Equal(t, "category(6)", Category(6).String())
}

func TestSymbolMapping(t *testing.T) {
	var sb strings.Builder
	for v := 0; v <= SpecialUpper; v++ {
		sb.WriteByte(Symbol(v))
	}
	assert.Equal(t, alphanumeric+Specials, sb.String())
	assert.Equal(t, "!@#$%^&*()-_=+[]", Specials)
}

func TestCharset_StaysInsideBound(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		upper := rapid.SampledFrom([]int{DigitsUpper, AlphanumericUpper, SpecialUpper}).Draw(t, "upper")
		seed := rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, "seed")

		rng, err := random.NewFromReader(strings.NewReader(string(seed)))
		if err != nil {
			t.Fatal(err)
		}
		allowed := (alphanumeric + Specials)[:upper+1]
		ch := Charset{Upper: upper}.Pick(rng)
		if !strings.ContainsRune(allowed, rune(ch)) {
			t.Fatalf("Pick() = %q, not in charset of upper %d", ch, upper)
		}
	})
}

func TestPolicyFor(t *testing.T) {
	tests := []struct {
		category Category
		size     int
		length   LengthRule
	}{
		{Username, 26, Range(6, 12)},
		{Password, 62, Range(12, 20)},
		{PasswordSpecial, 78, Range(12, 20)},
		{PIN4, 10, Fixed(4)},
		{PIN6, 10, Fixed(6)},
		{PIN12, 10, Fixed(12)},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			p, err := PolicyFor(tt.category)
			require.NoError(t, err)
			assert.Equal(t, tt.size, p.Source.Size())
			assert.Equal(t, tt.length, p.Length)
		})
	}

	p, err := PolicyFor(Username)
	require.NoError(t, err)
	assert.Same(t, alphabet.English, p.Source)

	_, err = PolicyFor(Category(6))
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

// countingUniform records how many draws were made.
type countingUniform struct{ draws int }

func (c *countingUniform) RandomInt(min, max int) int {
	c.draws++
	return min
}

func TestLengthRule_Draw(t *testing.T) {
	rng := &countingUniform{}
	assert.Equal(t, 6, Fixed(6).Draw(rng))
	assert.Zero(t, rng.draws, "fixed rule must not consume a draw")

	assert.Equal(t, 12, Range(12, 20).Draw(rng))
	assert.Equal(t, 1, rng.draws)

	assert.Equal(t, "4", Fixed(4).String())
	assert.Equal(t, "6-12", Range(6, 12).String())
}

func TestCharset_String(t *testing.T) {
	tests := []struct {
		upper int
		want  string
	}{
		{DigitsUpper, "0-9"},
		{AlphanumericUpper, "0-9a-zA-Z"},
		{SpecialUpper, "0-9a-zA-Z" + Specials},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Charset{Upper: tt.upper}.String())
		})
	}
}
