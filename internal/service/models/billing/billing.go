package billing

import (
	"github.com/go-playground/validator/v10"
)

// Info is the billing and delivery form collected at checkout.
type Info struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city"    validate:"required"`
	Country string `json:"country" validate:"required"`
	Phone   string `json:"phone"   validate:"required"`
}

// Validate checks that every field is populated and the email is well-formed.
// The returned validator.ValidationErrors enumerates every failing field.
func (i *Info) Validate() error {
	return validator.New().Struct(i)
}
