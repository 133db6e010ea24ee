package category

import (
	"fmt"

	"github.com/rampantspark/genpass/internal/alphabet"
	"github.com/rampantspark/genpass/internal/random"
)

// Specials is the punctuation appended to the alphanumeric charset, in
// index order 62 through 77.
const Specials = "!@#$%^&*()-_=+[]"

// Charset upper bounds.
const (
	DigitsUpper       = 9
	AlphanumericUpper = 61
	SpecialUpper      = 77
)

// Picker draws one character.
type Picker interface {
	Pick(rng random.Uniform) byte
	// Size is the number of distinct characters Pick can return.
	Size() int
}

// Charset picks uniformly from the first Upper+1 symbols of the ordering
// digits, lowercase, uppercase, Specials.
type Charset struct {
	Upper int
}

// Pick draws an index in [0, Upper] and maps it to its symbol.
func (c Charset) Pick(rng random.Uniform) byte {
	return Symbol(rng.RandomInt(0, c.Upper))
}

// Size returns Upper+1.
func (c Charset) Size() int {
	return c.Upper + 1
}

// String describes the charset, e.g. "0-9a-zA-Z".
func (c Charset) String() string {
	switch {
	case c.Upper <= DigitsUpper:
		return "0-9"
	case c.Upper <= AlphanumericUpper:
		return "0-9a-zA-Z"
	default:
		return "0-9a-zA-Z" + Specials[:c.Upper-AlphanumericUpper]
	}
}

// Symbol maps a charset index in [0, 77] to its character.
func Symbol(v int) byte {
	switch {
	case v < 10:
		return byte('0' + v)
	case v < 36:
		return byte('a' + v - 10)
	case v < 62:
		return byte('A' + v - 36)
	default:
		return Specials[v-62]
	}
}

// LengthRule is an inclusive item length range. Min == Max is a fixed length.
type LengthRule struct {
	Min int
	Max int
}

// Fixed returns a rule that always yields k.
func Fixed(k int) LengthRule {
	return LengthRule{Min: k, Max: k}
}

// Range returns a rule drawing uniformly from [lo, hi].
func Range(lo, hi int) LengthRule {
	return LengthRule{Min: lo, Max: hi}
}

// IsFixed reports whether the rule always yields the same length.
func (r LengthRule) IsFixed() bool {
	return r.Min == r.Max
}

// Draw returns an item length. Fixed rules do not consume a random draw.
func (r LengthRule) Draw(rng random.Uniform) int {
	if r.IsFixed() {
		return r.Min
	}
	return rng.RandomInt(r.Min, r.Max)
}

// String renders the rule as "k" or "lo-hi".
func (r LengthRule) String() string {
	if r.IsFixed() {
		return fmt.Sprintf("%d", r.Min)
	}
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// Policy is the character source and length rule of a category.
type Policy struct {
	Source Picker
	Length LengthRule
}

var policies = [...]Policy{
	Username:        {Source: alphabet.English, Length: Range(6, 12)},
	Password:        {Source: Charset{Upper: AlphanumericUpper}, Length: Range(12, 20)},
	PasswordSpecial: {Source: Charset{Upper: SpecialUpper}, Length: Range(12, 20)},
	PIN4:            {Source: Charset{Upper: DigitsUpper}, Length: Fixed(4)},
	PIN6:            {Source: Charset{Upper: DigitsUpper}, Length: Fixed(6)},
	PIN12:           {Source: Charset{Upper: DigitsUpper}, Length: Fixed(12)},
}

// PolicyFor returns the policy of c.
func PolicyFor(c Category) (Policy, error) {
	if !c.Valid() {
		return Policy{}, fmt.Errorf("%w: %d", ErrInvalidCategory, uint8(c))
	}
	return policies[c], nil
}
