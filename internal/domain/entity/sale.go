package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa la cabecera de una venta. Total = suma de los subtotales de sus líneas.
type Sale struct {
	ID         int64           `db:"id"`
	CustomerID *int64          `db:"customer_id"`
	EmployeeID int64           `db:"employee_id"`
	Total      decimal.Decimal `db:"total"`
	CreatedAt  time.Time       `db:"created_at"`
	Lines      []SaleLine      `db:"-"`
}

// SaleLine es una línea de venta. UnitPrice es una foto del precio de venta al momento de vender.
type SaleLine struct {
	ID        int64           `db:"id"`
	SaleID    int64           `db:"sale_id"`
	ProductID int64           `db:"product_id"`
	Quantity  int             `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	Subtotal  decimal.Decimal `db:"subtotal"`
}
