package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyEmail(t *testing.T) {
	tests := []string{
		"user@example.com",
		"first.last@sub.example.co",
		"a+tag@example.org",
	}
	for _, raw := range tests {
		ident := Classify(raw)
		assert.Equal(t, Email, ident.Kind, raw)
		assert.Equal(t, raw, ident.Raw)
		assert.True(t, ident.Valid())
	}
}

func TestClassifyPhone(t *testing.T) {
	ident := Classify("5551234567")
	assert.Equal(t, Phone, ident.Kind)
	assert.True(t, ident.Valid())
}

func TestClassifyInvalid(t *testing.T) {
	tests := []string{
		"",
		"not-an-email",
		"555123456",      // 9 digits
		"55512345678",    // 11 digits
		"555-123-4567",   // separators
		"+15551234567",   // country prefix
		"user@",          // truncated email
		"user example@x", // space
	}
	for _, raw := range tests {
		ident := Classify(raw)
		assert.Equal(t, Invalid, ident.Kind, "%q", raw)
		assert.False(t, ident.Valid())
	}
}

func TestClassifyIsExclusive(t *testing.T) {
	// A 10-digit string is never an email, an email never matches the
	// phone pattern.
	assert.Equal(t, Phone, Classify("0123456789").Kind)
	assert.Equal(t, Email, Classify("1234567890@example.com").Kind)
}
