package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/apimarket/internal/domain/entity"
)

// ProductFilter filtros opcionales del listado de productos.
type ProductFilter struct {
	CategoryID *int64
	SupplierID *int64
	Limit      int // 0 = sin límite
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	// Update actualiza los datos descriptivos y precios. No modifica Stock.
	Update(ctx context.Context, product *entity.Product) error
	UpdateCost(ctx context.Context, productID int64, cost decimal.Decimal) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// Delete devuelve domain.ErrConflict si el producto tiene movimientos, ventas u órdenes asociadas.
	Delete(ctx context.Context, id int64) error
}
