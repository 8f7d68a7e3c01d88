package repository

import (
	"context"
	"time"

	"github.com/jhoicas/apimarket/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de stock (solo inserción y lectura).
type StockMovementRepository interface {
	// Create inserta el movimiento y completa ID y CreatedAt.
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id int64) (*entity.StockMovement, error)
	ListByProduct(ctx context.Context, productID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
