package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /movimientos.
// EmployeeID es opcional en el body: si falta se toma el empleado del token.
type RegisterMovementRequest struct {
	ProductID  int64   `json:"product_id"`
	Kind       string  `json:"kind"`
	Quantity   int     `json:"quantity"`
	Reason     *string `json:"reason,omitempty"`
	EmployeeID int64   `json:"employee_id,omitempty"`
}

// MovementResponse salida de un movimiento de stock.
type MovementResponse struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"product_id"`
	Kind       string    `json:"kind"`
	Quantity   int       `json:"quantity"`
	Reason     *string   `json:"reason,omitempty"`
	EmployeeID int64     `json:"employee_id"`
	Stock      *int      `json:"stock,omitempty"` // stock resultante; solo al registrar
	CreatedAt  time.Time `json:"created_at"`
}

// MovementListResponse movimientos de un producto.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ClosingReportResponse salida de GET /cierre-inventario.
type ClosingReportResponse struct {
	Products          []ProductResponse `json:"products"`
	LowStock          []ProductResponse `json:"low_stock"`
	LowStockThreshold int               `json:"low_stock_threshold"`
	TotalProducts     int               `json:"total_products"`
	InventoryValue    decimal.Decimal   `json:"inventory_value"` // Σ stock * precio de costo
	GeneratedAt       time.Time         `json:"generated_at"`
}
