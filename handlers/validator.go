package handlers

import "github.com/go-playground/validator/v10"

// Validator adapts go-playground/validator to Echo's Validator
// interface so handlers can call c.Validate on bound payloads.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
