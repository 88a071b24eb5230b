package kernel

import (
	"regexp"
	"strings"

	"careshift/internal/pkg/errs"
	"careshift/internal/pkg/guard"
)

// ErrPostcodeIsNotConstructed is returned when a zero-value Postcode is used.
var ErrPostcodeIsNotConstructed = errs.NewValueIsRequiredError(
	"postcode must be created via NewPostcode")

// postcodePattern accepts UK-style postcodes such as "SW1A 1AA" or "m1 1ae".
// Format-only validation; existence is checked against the external lookup
// by callers that need it.
var postcodePattern = regexp.MustCompile(`^[A-Z]{1,2}[0-9][A-Z0-9]?\s?[0-9][A-Z]{2}$`)

// Postcode is a validated, normalized postal code.
// Normalization uppercases the input and collapses surrounding whitespace so
// that "sw1a 1aa" and "SW1A 1AA" compare equal.
type Postcode struct {
	value string
	guard guard.ConstructorGuard
}

// NewPostcode validates and normalizes a raw postcode string.
func NewPostcode(raw string) (Postcode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if normalized == "" {
		return Postcode{}, errs.NewValueIsRequiredError("postcode")
	}
	if !postcodePattern.MatchString(normalized) {
		return Postcode{}, errs.NewValueIsInvalidError("postcode")
	}

	return Postcode{
		value: normalized,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// IsValidPostcodeFormat reports whether raw matches the postcode format
// without constructing a value. Used by bulk-import validation where errors
// are collected as strings rather than returned.
func IsValidPostcodeFormat(raw string) bool {
	return postcodePattern.MatchString(strings.ToUpper(strings.TrimSpace(raw)))
}

// Validate checks the Postcode was created via NewPostcode.
func (p Postcode) Validate() error {
	return p.guard.Validate(ErrPostcodeIsNotConstructed)
}

func (p Postcode) String() string {
	return p.value
}

func (p Postcode) IsEqual(other Postcode) bool {
	return p.value == other.value
}

// Coordinates is a geographic point resolved from a postcode.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}
