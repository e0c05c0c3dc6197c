// Package vin provides VIN canonicalization and ISO 3779 validation
// Pipeline for Normalize
// 1 Width fold fullwidth forms to ASCII (pasted or OCR input)
// 2 Trim surrounding whitespace
// 3 Uppercase
// Internal characters are never removed; a VIN with embedded separators
// fails format validation instead of being silently repaired
package vin

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"
)

// Length is the fixed VIN length per ISO 3779
const Length = 17

// Reason classifies why a VIN failed validation
type Reason string

// Validation failure reasons
const (
	ReasonEmpty       Reason = "empty"
	ReasonWrongLength Reason = "wrong_length"
	ReasonCharset     Reason = "invalid_charset"
	ReasonChecksum    Reason = "checksum_mismatch"
)

// InvalidError reports a terminal validation failure
// Length carries the observed length for wrong_length
type InvalidError struct {
	Reason Reason
	Length int
}

// Error implements the error interface
func (e *InvalidError) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return "vin is empty"
	case ReasonWrongLength:
		return fmt.Sprintf("vin must be 17 characters, got %d", e.Length)
	case ReasonCharset:
		return "vin contains characters outside [A-HJ-NPR-Z0-9]"
	case ReasonChecksum:
		return "vin check digit mismatch"
	default:
		return "vin invalid"
	}
}

// transliteration values per ISO 3779
// digits map to themselves, I O Q are excluded by the charset
var translit = map[byte]int{
	'A': 1, 'B': 2, 'C': 3, 'D': 4, 'E': 5, 'F': 6, 'G': 7, 'H': 8,
	'J': 1, 'K': 2, 'L': 3, 'M': 4, 'N': 5, 'P': 7, 'R': 9,
	'S': 2, 'T': 3, 'U': 4, 'V': 5, 'W': 6, 'X': 7, 'Y': 8, 'Z': 9,
	'0': 0, '1': 1, '2': 2, '3': 3, '4': 4, '5': 5, '6': 6, '7': 7, '8': 8, '9': 9,
}

// position weights, index 8 is the check digit itself and weighs zero
var weights = [Length]int{8, 7, 6, 5, 4, 3, 2, 10, 0, 9, 8, 7, 6, 5, 4, 3, 2}

// Normalize canonicalizes raw input
// Idempotent: Normalize(Normalize(x)) == Normalize(x)
func Normalize(raw string) string {
	s := width.Fold.String(raw)
	s = strings.TrimSpace(s)
	return strings.ToUpper(s)
}

// ValidFormat reports whether v is 17 characters over the allowed alphabet
func ValidFormat(v string) bool {
	if len(v) != Length {
		return false
	}
	for i := 0; i < len(v); i++ {
		if _, ok := translit[v[i]]; !ok {
			return false
		}
	}
	return true
}

// CheckDigit computes the ISO 3779 check digit for a format-valid VIN
// ok is false when v fails format validation
func CheckDigit(v string) (byte, bool) {
	if !ValidFormat(v) {
		return 0, false
	}
	sum := 0
	for i := 0; i < Length; i++ {
		sum += translit[v[i]] * weights[i]
	}
	switch r := sum % 11; r {
	case 10:
		return 'X', true
	default:
		return byte('0' + r), true
	}
}

// ValidChecksum reports whether position 8 matches the computed check digit
func ValidChecksum(v string) bool {
	d, ok := CheckDigit(v)
	return ok && v[8] == d
}

// Validate runs the full format and checksum validation on a normalized VIN
// Returns nil when v is a well-formed VIN
func Validate(v string) *InvalidError {
	if v == "" {
		return &InvalidError{Reason: ReasonEmpty}
	}
	if len(v) != Length {
		return &InvalidError{Reason: ReasonWrongLength, Length: len(v)}
	}
	if !ValidFormat(v) {
		return &InvalidError{Reason: ReasonCharset, Length: len(v)}
	}
	if !ValidChecksum(v) {
		return &InvalidError{Reason: ReasonChecksum, Length: len(v)}
	}
	return nil
}

// WMI returns the world manufacturer identifier, VIN positions 0-2
// Empty when v is shorter than 3 characters
func WMI(v string) string {
	if len(v) < 3 {
		return ""
	}
	return v[:3]
}

// YearCode returns the model year code, VIN position 9
// Zero when v is shorter than 10 characters
func YearCode(v string) byte {
	if len(v) < 10 {
		return 0
	}
	return v[9]
}
