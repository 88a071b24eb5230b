// Package kernel contains shared value objects used across aggregates:
// identity (UUID), geography (Postcode, Coordinates) and time (Schedule).
//
// All types follow the same construction discipline: the zero value is
// invalid, instances are created through New* constructors that validate
// their input, and Validate() detects objects that bypassed a constructor.
package kernel
