package repository

import (
	"context"
	"time"

	"github.com/jhoicas/apimarket/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	CreateLine(ctx context.Context, line *entity.PurchaseOrderLine) error
	// GetByID devuelve la orden con sus líneas, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.PurchaseOrder, error)
	// GetForUpdate igual que GetByID pero bloquea la cabecera de la orden.
	GetForUpdate(ctx context.Context, id int64) (*entity.PurchaseOrder, error)
	MarkReceived(ctx context.Context, id int64, at time.Time) error
}
