package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/apimarket/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return strings.Contains(err.Error(), "23503")
}

// violatedConstraint devuelve el nombre del constraint que falló, o "".
func violatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// referenceError traduce una violación de FK en un insert al campo que referencia una fila inexistente.
func referenceError(err error) error {
	c := violatedConstraint(err)
	switch {
	case strings.Contains(c, "employee_id"):
		return domain.NewValidationError("employee_id", "el empleado no existe")
	case strings.Contains(c, "supplier_id"):
		return domain.NewValidationError("supplier_id", "el proveedor no existe")
	case strings.Contains(c, "category_id"):
		return domain.NewValidationError("category_id", "la categoría no existe")
	case strings.Contains(c, "product_id"):
		return domain.NewValidationError("product_id", "el producto no existe")
	default:
		return domain.NewValidationError("", "referencia inexistente")
	}
}
