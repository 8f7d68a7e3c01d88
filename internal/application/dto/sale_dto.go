package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest una línea solicitada de la venta.
type SaleItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CreateSaleRequest body para POST /ventas.
type CreateSaleRequest struct {
	CustomerID *int64            `json:"customer_id,omitempty"`
	EmployeeID int64             `json:"employee_id,omitempty"`
	Lines      []SaleItemRequest `json:"lines"`
}

// SaleLineResponse línea de venta persistida.
type SaleLineResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID         int64              `json:"id"`
	CustomerID *int64             `json:"customer_id,omitempty"`
	EmployeeID int64              `json:"employee_id"`
	Total      decimal.Decimal    `json:"total"`
	CreatedAt  time.Time          `json:"created_at"`
	Lines      []SaleLineResponse `json:"lines"`
}
