// Package rut validates Chilean national identifiers (RUT) with the
// module-11 check digit scheme.
package rut

import (
	"errors"
	"strings"
)

var (
	ErrInvalidFormat     = errors.New("invalid rut format")
	ErrInvalidCheckDigit = errors.New("invalid rut check digit")
)

// Normalize keeps only digits and the letter K, uppercasing the latter.
// Every other rune is dropped, so separators and stray whitespace never
// reach validation. The canonical form is the digit body immediately
// followed by the check character, e.g. "12345678K".
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'k' || r == 'K':
			b.WriteByte('K')
		}
	}
	return b.String()
}

// Check reports whether the normalized identifier is structurally valid and
// carries the correct check digit. The two failure modes are distinguished so
// callers can tell a malformed value from a typo.
func Check(raw string) error {
	normalized := Normalize(raw)
	if len(normalized) < 2 || len(normalized) > 9 {
		return ErrInvalidFormat
	}

	body := normalized[:len(normalized)-1]
	check := normalized[len(normalized)-1]
	for i := 0; i < len(body); i++ {
		if body[i] < '0' || body[i] > '9' {
			return ErrInvalidFormat
		}
	}
	if (check < '0' || check > '9') && check != 'K' {
		return ErrInvalidFormat
	}

	if CheckDigit(body) != check {
		return ErrInvalidCheckDigit
	}
	return nil
}

// Valid is the boolean form of Check.
func Valid(raw string) bool {
	return Check(raw) == nil
}

// CheckDigit computes the module-11 check character for a digit body.
// Weights cycle 2..7 from the rightmost digit; remainder 11 maps to '0' and
// 10 maps to 'K'.
func CheckDigit(body string) byte {
	sum := 0
	weight := 2
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * weight
		weight++
		if weight > 7 {
			weight = 2
		}
	}

	switch value := 11 - sum%11; value {
	case 11:
		return '0'
	case 10:
		return 'K'
	default:
		return byte('0' + value)
	}
}

// Format renders a normalized identifier in the conventional display form
// with dot-separated thousands and a hyphen before the check character,
// e.g. "12.345.678-K". Invalid input is returned unchanged after Normalize.
func Format(raw string) string {
	normalized := Normalize(raw)
	if Check(normalized) != nil {
		return normalized
	}

	body := normalized[:len(normalized)-1]
	check := normalized[len(normalized)-1]

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		if i > 0 && (len(body)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(body[i])
	}
	b.WriteByte('-')
	b.WriteByte(check)
	return b.String()
}
