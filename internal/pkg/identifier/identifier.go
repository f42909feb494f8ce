// Package identifier classifies login identifiers as email addresses or
// 10-digit mobile numbers. Classification is pure: no lookups, no side
// effects, and invalid input is a value, not an error.
package identifier

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

type Kind string

const (
	Email   Kind = "email"
	Phone   Kind = "phone"
	Invalid Kind = "invalid"
)

var (
	v          = validator.New()
	phoneDigit = regexp.MustCompile(`^[0-9]{10}$`)
)

// Identifier is a classified login identifier.
type Identifier struct {
	Raw  string
	Kind Kind
}

// Classify returns the identifier tagged as Email, Phone, or Invalid.
// Exactly one of the two validators accepts, or neither.
func Classify(raw string) Identifier {
	switch {
	case v.Var(raw, "required,email") == nil:
		return Identifier{Raw: raw, Kind: Email}
	case phoneDigit.MatchString(raw):
		return Identifier{Raw: raw, Kind: Phone}
	default:
		return Identifier{Raw: raw, Kind: Invalid}
	}
}

// Valid reports whether the identifier was accepted by either validator.
func (i Identifier) Valid() bool {
	return i.Kind == Email || i.Kind == Phone
}
