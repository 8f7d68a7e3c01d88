package dto

import (
	"github.com/jhoicas/apimarket/internal/domain/entity"
	"github.com/jhoicas/apimarket/internal/domain/inventory"
)

// ToProductResponse mapea la entidad al DTO de salida.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CostPrice:   p.CostPrice,
		SalePrice:   p.SalePrice,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		SupplierID:  p.SupplierID,
		CategoryID:  p.CategoryID,
		LowStock:    inventory.IsLowStock(p.Stock),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses mapea una lista de productos; nunca devuelve nil.
func ToProductResponses(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p))
	}
	return out
}

func ToMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Kind:       m.Kind,
		Quantity:   m.Quantity,
		Reason:     m.Reason,
		EmployeeID: m.EmployeeID,
		CreatedAt:  m.CreatedAt,
	}
}

func ToSaleResponse(s *entity.Sale) SaleResponse {
	lines := make([]SaleLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, SaleLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return SaleResponse{
		ID:         s.ID,
		CustomerID: s.CustomerID,
		EmployeeID: s.EmployeeID,
		Total:      s.Total,
		CreatedAt:  s.CreatedAt,
		Lines:      lines,
	}
}

func ToPurchaseOrderResponse(o *entity.PurchaseOrder) PurchaseOrderResponse {
	lines := make([]PurchaseOrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, PurchaseOrderLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitCost:  l.UnitCost,
			Subtotal:  l.Subtotal,
		})
	}
	return PurchaseOrderResponse{
		ID:         o.ID,
		SupplierID: o.SupplierID,
		EmployeeID: o.EmployeeID,
		Status:     o.Status,
		Total:      o.Total,
		CreatedAt:  o.CreatedAt,
		ReceivedAt: o.ReceivedAt,
		Lines:      lines,
	}
}

func ToEmployeeResponse(e *entity.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Role:      e.Role,
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt}
}

func ToSupplierResponse(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Contact:   s.Contact,
		Phone:     s.Phone,
		Email:     s.Email,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
	}
}
