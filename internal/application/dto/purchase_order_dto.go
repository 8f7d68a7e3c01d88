package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest línea de una orden de compra.
type PurchaseOrderItemRequest struct {
	ProductID int64           `json:"product_id" validate:"required,gt=0"`
	Quantity  int             `json:"quantity" validate:"required,gt=0,max=2147483647"`
	UnitCost  decimal.Decimal `json:"unit_cost" validate:"money"`
}

// CreatePurchaseOrderRequest body para POST /ordenes-compra.
type CreatePurchaseOrderRequest struct {
	SupplierID int64                      `json:"supplier_id" validate:"required,gt=0"`
	Lines      []PurchaseOrderItemRequest `json:"lines" validate:"required,min=1,dive"`
}

// PurchaseOrderLineResponse línea de orden de compra.
type PurchaseOrderLineResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderResponse orden de compra con sus líneas.
type PurchaseOrderResponse struct {
	ID         int64                       `json:"id"`
	SupplierID int64                       `json:"supplier_id"`
	EmployeeID int64                       `json:"employee_id"`
	Status     string                      `json:"status"`
	Total      decimal.Decimal             `json:"total"`
	CreatedAt  time.Time                   `json:"created_at"`
	ReceivedAt *time.Time                  `json:"received_at,omitempty"`
	Lines      []PurchaseOrderLineResponse `json:"lines"`
}
