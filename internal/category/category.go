// Package category defines the generation categories and their policies.
package category

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCategory is returned for a category outside the defined set.
var ErrInvalidCategory = errors.New("invalid category")

// Category is a kind of generated item.
type Category uint8

// Categories in ordinal order. Values above PIN12 are invalid.
const (
	Username Category = iota
	Password
	PasswordSpecial
	PIN4
	PIN6
	PIN12
)

// Last is the highest valid category.
const Last = PIN12

var names = [...]string{
	Username:        "username",
	Password:        "password",
	PasswordSpecial: "passwordspecial",
	PIN4:            "pin4",
	PIN6:            "pin6",
	PIN12:           "pin12",
}

// Valid reports whether c is a defined category.
func (c Category) Valid() bool {
	return c <= Last
}

// String returns the category name, or "category(N)" for invalid values.
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("category(%d)", uint8(c))
	}
	return names[c]
}

// Parse returns the category with the given name. Matching ignores case
// and surrounding whitespace.
func Parse(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidCategory, name, strings.Join(names[:], ", "))
}

// All returns every valid category in ordinal order.
func All() []Category {
	all := make([]Category, 0, len(names))
	for i := range names {
		all = append(all, Category(i))
	}
	return all
}
