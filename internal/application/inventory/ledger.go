package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/apimarket/internal/domain"
	"github.com/jhoicas/apimarket/internal/domain/inventory"
	"github.com/jhoicas/apimarket/internal/domain/repository"
)

// StockLedger es el único punto que escribe el stock de un producto.
// Se usa siempre con el StockRepository de la transacción en curso.
type StockLedger struct{}

// NewStockLedger construye el libro de stock.
func NewStockLedger() *StockLedger {
	return &StockLedger{}
}

// ReadStock devuelve el stock actual del producto, o ErrNotFound.
func (l *StockLedger) ReadStock(ctx context.Context, stock repository.StockRepository, productID int64) (int, error) {
	lvl, err := stock.Get(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("leer stock: %w", err)
	}
	if lvl == nil {
		return 0, domain.NewProductError(productID, domain.ErrNotFound)
	}
	return lvl.Quantity, nil
}

// ApplyDelta bloquea la fila del producto (SELECT FOR UPDATE), calcula current+delta y lo persiste.
// Si el resultado sería negativo devuelve ErrInsufficientStock sin escribir nada.
func (l *StockLedger) ApplyDelta(ctx context.Context, stock repository.StockRepository, productID int64, delta int) (int, error) {
	lvl, err := stock.GetForUpdate(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("bloquear stock: %w", err)
	}
	if lvl == nil {
		return 0, domain.NewProductError(productID, domain.ErrNotFound)
	}
	next, err := inventory.NextStock(lvl.Quantity, delta)
	if err != nil {
		return lvl.Quantity, domain.NewProductError(productID, err)
	}
	if err := stock.Set(ctx, productID, next); err != nil {
		return lvl.Quantity, fmt.Errorf("guardar stock: %w", err)
	}
	return next, nil
}
