package api

import (
	"net/http"

	"github.com/dcervantes/powerpick/internal/pkg/constants"
	"github.com/go-playground/validator/v10"
)

// Validator plugs go-playground/validator into echo so DTO tags are
// enforced before a controller sees the request.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return constants.NewCodedError(http.StatusBadRequest, err.Error())
	}
	return nil
}
