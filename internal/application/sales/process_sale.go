package sales

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/apimarket/internal/application/dto"
	"github.com/jhoicas/apimarket/internal/application/inventory"
	"github.com/jhoicas/apimarket/internal/domain"
	"github.com/jhoicas/apimarket/internal/domain/entity"
	"github.com/jhoicas/apimarket/internal/domain/repository"
)

// ProcessSaleUseCase registra ventas de varias líneas en una sola transacción:
// o se descuenta el stock de todas las líneas y se guardan cabecera y líneas, o no cambia nada.
type ProcessSaleUseCase struct {
	txRunner inventory.TxRunner
	ledger   *inventory.StockLedger
	saleRepo repository.SaleRepository
	notifier inventory.StockNotifier
}

// NewProcessSaleUseCase construye el caso de uso. notifier puede ser nil.
func NewProcessSaleUseCase(
	txRunner inventory.TxRunner,
	ledger *inventory.StockLedger,
	saleRepo repository.SaleRepository,
	notifier inventory.StockNotifier,
) *ProcessSaleUseCase {
	return &ProcessSaleUseCase{
		txRunner: txRunner,
		ledger:   ledger,
		saleRepo: saleRepo,
		notifier: notifier,
	}
}

// SaleLineInput producto y cantidad solicitados.
type SaleLineInput struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0,max=2147483647"`
}

// SaleInput entrada de una venta. Las líneas se procesan en el orden recibido.
type SaleInput struct {
	CustomerID *int64          `json:"customer_id" validate:"omitempty,gt=0"`
	EmployeeID int64           `json:"employee_id" validate:"required,gt=0"`
	Lines      []SaleLineInput `json:"lines" validate:"required,min=1,dive"`
}

// ProcessSale ejecuta la venta:
//  1. bloquea cada producto distinto en orden ascendente de id (SELECT FOR UPDATE);
//  2. valida las líneas en orden: el producto existe y la cantidad acumulada no supera su stock;
//  3. por línea descuenta stock vía el libro y calcula el subtotal con el precio leído en (1);
//     luego guarda la cabecera con el total y las líneas.
//
// Cualquier error hace Rollback de toda la transacción.
func (uc *ProcessSaleUseCase) ProcessSale(ctx context.Context, in SaleInput) (*entity.Sale, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	var (
		sale    *entity.Sale
		changes []inventory.StockChange
	)
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		ids := distinctProductIDs(in.Lines)
		locked := make(map[int64]*entity.Product, len(ids))
		for _, id := range ids {
			p, err := repos.Products.GetForUpdate(ctx, id)
			if err != nil {
				return fmt.Errorf("bloquear producto %d: %w", id, err)
			}
			if p != nil {
				locked[id] = p
			}
		}

		requested := make(map[int64]int, len(ids))
		for _, l := range in.Lines {
			p, ok := locked[l.ProductID]
			if !ok {
				return domain.NewProductError(l.ProductID, domain.ErrNotFound)
			}
			requested[l.ProductID] += l.Quantity
			if requested[l.ProductID] > p.Stock {
				return domain.NewProductError(l.ProductID, domain.ErrInsufficientStock)
			}
		}

		total := decimal.Zero
		lines := make([]entity.SaleLine, 0, len(in.Lines))
		finalStock := make(map[int64]int, len(ids))
		for _, l := range in.Lines {
			stock, err := uc.ledger.ApplyDelta(ctx, repos.Stock, l.ProductID, -l.Quantity)
			if err != nil {
				return err
			}
			finalStock[l.ProductID] = stock
			price := locked[l.ProductID].SalePrice
			subtotal := price.Mul(decimal.NewFromInt(int64(l.Quantity)))
			total = total.Add(subtotal)
			lines = append(lines, entity.SaleLine{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: price,
				Subtotal:  subtotal,
			})
		}

		// La cabecera va primero para que las líneas puedan referenciar su id.
		s := &entity.Sale{
			CustomerID: in.CustomerID,
			EmployeeID: in.EmployeeID,
			Total:      total,
			CreatedAt:  time.Now(),
		}
		if err := repos.Sales.Create(ctx, s); err != nil {
			return fmt.Errorf("guardar venta: %w", err)
		}
		for i := range lines {
			lines[i].SaleID = s.ID
			if err := repos.Sales.CreateLine(ctx, &lines[i]); err != nil {
				return fmt.Errorf("guardar línea de venta: %w", err)
			}
		}
		s.Lines = lines
		sale = s

		changes = make([]inventory.StockChange, 0, len(ids))
		for _, id := range ids {
			changes = append(changes, inventory.StockChange{
				ProductID:   id,
				Stock:       finalStock[id],
				Source:      inventory.SourceSale,
				ReferenceID: s.ID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.NotifyStock(changes)
	}
	return sale, nil
}

// ProcessSaleFromRequest adapta el request HTTP. Si el body no trae employee_id se usa el empleado autenticado.
func (uc *ProcessSaleUseCase) ProcessSaleFromRequest(ctx context.Context, employeeID int64, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	input := SaleInput{
		CustomerID: in.CustomerID,
		EmployeeID: in.EmployeeID,
		Lines:      make([]SaleLineInput, 0, len(in.Lines)),
	}
	if input.EmployeeID == 0 {
		input.EmployeeID = employeeID
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, SaleLineInput{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	sale, err := uc.ProcessSale(ctx, input)
	if err != nil {
		return nil, err
	}
	out := dto.ToSaleResponse(sale)
	return &out, nil
}

// GetSale obtiene una venta con sus líneas.
func (uc *ProcessSaleUseCase) GetSale(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ToSaleResponse(sale)
	return &out, nil
}

// distinctProductIDs devuelve los ids de producto sin repetir, en orden ascendente.
func distinctProductIDs(lines []SaleLineInput) []int64 {
	seen := make(map[int64]struct{}, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
