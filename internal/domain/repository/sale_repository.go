package repository

import (
	"context"

	"github.com/jhoicas/apimarket/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	// Create inserta la cabecera y completa ID y CreatedAt.
	Create(ctx context.Context, sale *entity.Sale) error
	// CreateLine inserta una línea y completa su ID.
	CreateLine(ctx context.Context, line *entity.SaleLine) error
	// GetByID devuelve la venta con sus líneas, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
}
