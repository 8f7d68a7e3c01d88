package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la tienda.
// Stock solo cambia vía movimientos, ventas y recepción de órdenes de compra (nunca negativo).
type Product struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	CostPrice   decimal.Decimal `db:"cost_price"` // precio de costo (promedio ponderado tras recibir compras)
	SalePrice   decimal.Decimal `db:"sale_price"` // precio de venta
	Stock       int             `db:"stock"`
	ImageURL    *string         `db:"image_url"`
	SupplierID  *int64          `db:"supplier_id"`
	CategoryID  *int64          `db:"category_id"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}
