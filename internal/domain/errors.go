package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("empleado no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// ValidationError describe un campo obligatorio ausente o malformado.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye el error para el campo indicado.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// ProductError asocia un error de dominio (ErrNotFound, ErrInsufficientStock) al producto que lo provocó.
type ProductError struct {
	ProductID int64
	Err       error
}

// NewProductError envuelve err indicando el producto responsable.
func NewProductError(productID int64, err error) *ProductError {
	return &ProductError{ProductID: productID, Err: err}
}

func (e *ProductError) Error() string {
	return fmt.Sprintf("producto %d: %v", e.ProductID, e.Err)
}

func (e *ProductError) Unwrap() error { return e.Err }
