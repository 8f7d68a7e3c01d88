package repository

import (
	"context"

	"github.com/jhoicas/apimarket/internal/domain/entity"
)

// StockRepository define el puerto para leer y escribir la columna de stock de un producto.
// Usado por el libro de stock dentro de transacciones. Get y GetForUpdate devuelven (nil, nil) si el producto no existe.
type StockRepository interface {
	Get(ctx context.Context, productID int64) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, productID int64) (*entity.StockLevel, error)
	Set(ctx context.Context, productID int64, quantity int) error
}
