package dto

import (
	"github.com/jhoicas/apimarket/internal/domain"
	"github.com/jhoicas/apimarket/pkg/validator"
)

// Validate aplica las reglas `validate` del struct y devuelve el primer fallo como *domain.ValidationError.
func Validate(in any) error {
	errs := validator.Struct(in)
	if len(errs) == 0 {
		return nil
	}
	first := errs[0]
	return domain.NewValidationError(first.Field, first.Message())
}
