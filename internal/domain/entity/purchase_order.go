package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseOrderPending  = "pendiente"
	PurchaseOrderReceived = "recibida"
)

// PurchaseOrder es una orden de compra a un proveedor. Al recibirla entra el stock de sus líneas.
type PurchaseOrder struct {
	ID         int64               `db:"id"`
	SupplierID int64               `db:"supplier_id"`
	EmployeeID int64               `db:"employee_id"`
	Status     string              `db:"status"`
	Total      decimal.Decimal     `db:"total"`
	CreatedAt  time.Time           `db:"created_at"`
	ReceivedAt *time.Time          `db:"received_at"`
	Lines      []PurchaseOrderLine `db:"-"`
}

// PurchaseOrderLine cantidad y costo unitario pactados para un producto.
type PurchaseOrderLine struct {
	ID              int64           `db:"id"`
	PurchaseOrderID int64           `db:"purchase_order_id"`
	ProductID       int64           `db:"product_id"`
	Quantity        int             `db:"quantity"`
	UnitCost        decimal.Decimal `db:"unit_cost"`
	Subtotal        decimal.Decimal `db:"subtotal"`
}
