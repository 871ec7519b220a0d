// Package validator adapts go-playground/validator to Echo's Validator
// interface so request DTOs can carry validate tags.
package validator

import (
	playground "github.com/go-playground/validator/v10"
)

type requestValidator struct {
	validate *playground.Validate
}

// New creates the Echo request validator.
func New() *requestValidator {
	return &requestValidator{validate: playground.New()}
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
