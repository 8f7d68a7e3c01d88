package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/apimarket/internal/application/dto"
	"github.com/jhoicas/apimarket/internal/domain/inventory"
	"github.com/jhoicas/apimarket/internal/domain/repository"
)

// ClosingReportUseCase genera el cierre de inventario: todos los productos y los que están bajo el umbral.
// Solo lectura; no toma bloqueos.
type ClosingReportUseCase struct {
	productRepo repository.ProductRepository
}

// NewClosingReportUseCase construye el caso de uso del cierre.
func NewClosingReportUseCase(productRepo repository.ProductRepository) *ClosingReportUseCase {
	return &ClosingReportUseCase{productRepo: productRepo}
}

// Generate lista todos los productos y marca como stock bajo los que tienen stock < LowStockThreshold.
func (uc *ClosingReportUseCase) Generate(ctx context.Context) (*dto.ClosingReportResponse, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}

	all := make([]dto.ProductResponse, 0, len(products))
	low := make([]dto.ProductResponse, 0)
	value := decimal.Zero
	for _, p := range products {
		item := dto.ToProductResponse(p)
		all = append(all, item)
		if inventory.IsLowStock(p.Stock) {
			low = append(low, item)
		}
		value = value.Add(p.CostPrice.Mul(decimal.NewFromInt(int64(p.Stock))))
	}

	return &dto.ClosingReportResponse{
		Products:          all,
		LowStock:          low,
		LowStockThreshold: inventory.LowStockThreshold,
		TotalProducts:     len(all),
		InventoryValue:    value.Round(2),
		GeneratedAt:       time.Now(),
	}, nil
}
