// Package validator wraps go-playground struct validation behind a small
// injectable type so handlers share one configured instance.
package validator

import "github.com/go-playground/validator/v10"

// Validator validates transport DTOs against their validate tags.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance.
func New() *Validator {
	return &Validator{
		v: validator.New(),
	}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}
