package jobpost

import (
	"fmt"
	"strings"

	"careshift/internal/pkg/errs"
)

// Gender is a requested-worker attribute on a job post: the gender of the
// care recipient and the requested caregiver gender.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"

	// GenderAny means the post accepts caregivers of any gender.
	GenderAny Gender = "any"
)

// ValidGenders lists the accepted gender values for error messages.
func ValidGenders() []string {
	return []string{string(GenderMale), string(GenderFemale), string(GenderAny)}
}

// ParseGender converts a raw string to a Gender, case-insensitively.
func ParseGender(raw string) (Gender, error) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(raw))); g {
	case GenderMale, GenderFemale, GenderAny:
		return g, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("gender",
			fmt.Errorf("%q is not one of %s", raw, strings.Join(ValidGenders(), ", ")))
	}
}

// Accepts reports whether a caregiver of the given gender satisfies this
// requested gender. GenderAny accepts everyone.
func (g Gender) Accepts(other Gender) bool {
	return g == GenderAny || g == other
}

func (g Gender) String() string {
	return string(g)
}

// PaymentType distinguishes hourly-rated jobs from fixed-price jobs.
type PaymentType string

const (
	PaymentHourly PaymentType = "hourly"
	PaymentFixed  PaymentType = "fixed"
)

// ValidPaymentTypes lists the accepted payment types for error messages.
func ValidPaymentTypes() []string {
	return []string{string(PaymentHourly), string(PaymentFixed)}
}

// ParsePaymentType converts a raw string to a PaymentType, case-insensitively.
func ParsePaymentType(raw string) (PaymentType, error) {
	switch p := PaymentType(strings.ToLower(strings.TrimSpace(raw))); p {
	case PaymentHourly, PaymentFixed:
		return p, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("paymentType",
			fmt.Errorf("%q is not one of %s", raw, strings.Join(ValidPaymentTypes(), ", ")))
	}
}

// Payment holds the payment terms of a job post.
type Payment struct {
	Type PaymentType
	Cost float64
}

// NewPayment validates and creates payment terms. Cost must be non-negative.
func NewPayment(paymentType PaymentType, cost float64) (Payment, error) {
	if _, err := ParsePaymentType(string(paymentType)); err != nil {
		return Payment{}, err
	}
	if cost < 0 {
		return Payment{}, errs.NewValueIsInvalidErrorWithCause("cost",
			fmt.Errorf("%.2f is negative", cost))
	}
	return Payment{Type: paymentType, Cost: cost}, nil
}
