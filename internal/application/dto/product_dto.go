package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Stock es el stock inicial.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	CostPrice   decimal.Decimal `json:"cost_price" validate:"money"`
	SalePrice   decimal.Decimal `json:"sale_price" validate:"money"`
	Stock       int             `json:"stock" validate:"min=0,max=2147483647"`
	ImageURL    *string         `json:"image_url" validate:"omitempty,url"`
	SupplierID  *int64          `json:"supplier_id" validate:"omitempty,gt=0"`
	CategoryID  *int64          `json:"category_id" validate:"omitempty,gt=0"`
}

// UpdateProductRequest entrada para actualizar un producto. Campos nil conservan el valor actual.
// El stock no se modifica aquí: solo cambia vía movimientos, ventas y órdenes de compra.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	CostPrice   *decimal.Decimal `json:"cost_price" validate:"omitempty,money"`
	SalePrice   *decimal.Decimal `json:"sale_price" validate:"omitempty,money"`
	ImageURL    *string          `json:"image_url" validate:"omitempty,url"`
	SupplierID  *int64           `json:"supplier_id" validate:"omitempty,gt=0"`
	CategoryID  *int64           `json:"category_id" validate:"omitempty,gt=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Stock       int             `json:"stock"`
	ImageURL    *string         `json:"image_url,omitempty"`
	SupplierID  *int64          `json:"supplier_id,omitempty"`
	CategoryID  *int64          `json:"category_id,omitempty"`
	LowStock    bool            `json:"low_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
