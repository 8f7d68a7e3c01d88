package inventory

import (
	"context"

	"github.com/jhoicas/apimarket/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Garantiza atomicidad para el libro de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}

// Orígenes de un cambio de stock.
const (
	SourceMovement      = "movimiento"
	SourceSale          = "venta"
	SourcePurchaseOrder = "orden_compra"
)

// StockChange describe el stock resultante de un producto tras una operación confirmada.
type StockChange struct {
	ProductID   int64
	Stock       int
	Source      string
	ReferenceID int64 // id del movimiento, venta u orden de compra
}

// StockNotifier publica cambios de stock ya confirmados. No debe bloquear al llamador.
type StockNotifier interface {
	NotifyStock(changes []StockChange)
}
