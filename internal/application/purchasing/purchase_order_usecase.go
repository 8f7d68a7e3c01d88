package purchasing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/apimarket/internal/application/dto"
	appinventory "github.com/jhoicas/apimarket/internal/application/inventory"
	"github.com/jhoicas/apimarket/internal/domain"
	"github.com/jhoicas/apimarket/internal/domain/entity"
	"github.com/jhoicas/apimarket/internal/domain/inventory"
	"github.com/jhoicas/apimarket/internal/domain/repository"
)

// PurchaseOrderUseCase crea órdenes de compra y las recibe: la recepción suma stock,
// registra un movimiento de entrada por línea y recalcula el costo promedio ponderado.
type PurchaseOrderUseCase struct {
	txRunner     appinventory.TxRunner
	ledger       *appinventory.StockLedger
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	notifier     appinventory.StockNotifier
}

// NewPurchaseOrderUseCase construye el caso de uso. notifier puede ser nil.
func NewPurchaseOrderUseCase(
	txRunner appinventory.TxRunner,
	ledger *appinventory.StockLedger,
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	notifier appinventory.StockNotifier,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		notifier:     notifier,
	}
}

// Create registra una orden en estado pendiente con total = Σ cantidad × costo unitario.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, employeeID int64, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.NewValidationError("supplier_id", "el proveedor no existe")
	}

	var order *entity.PurchaseOrder
	err = uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		total := decimal.Zero
		lines := make([]entity.PurchaseOrderLine, 0, len(in.Lines))
		for _, l := range in.Lines {
			p, err := repos.Products.GetByID(ctx, l.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.NewProductError(l.ProductID, domain.ErrNotFound)
			}
			subtotal := l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity)))
			total = total.Add(subtotal)
			lines = append(lines, entity.PurchaseOrderLine{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitCost:  l.UnitCost,
				Subtotal:  subtotal,
			})
		}
		o := &entity.PurchaseOrder{
			SupplierID: in.SupplierID,
			EmployeeID: employeeID,
			Status:     entity.PurchaseOrderPending,
			Total:      total,
			CreatedAt:  time.Now(),
		}
		if err := repos.PurchaseOrders.Create(ctx, o); err != nil {
			return fmt.Errorf("guardar orden de compra: %w", err)
		}
		for i := range lines {
			lines[i].PurchaseOrderID = o.ID
			if err := repos.PurchaseOrders.CreateLine(ctx, &lines[i]); err != nil {
				return fmt.Errorf("guardar línea de orden: %w", err)
			}
		}
		o.Lines = lines
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToPurchaseOrderResponse(order)
	return &out, nil
}

// GetByID obtiene una orden de compra con sus líneas.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id int64) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ToPurchaseOrderResponse(order)
	return &out, nil
}

// Receive recibe la orden en una transacción: bloquea la orden (debe estar pendiente, si no ErrConflict),
// bloquea los productos en orden ascendente y por línea suma stock, recalcula el costo con CostCalculator
// y registra un movimiento de entrada. Finalmente marca la orden como recibida.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, orderID, employeeID int64) (*dto.PurchaseOrderResponse, error) {
	var (
		order   *entity.PurchaseOrder
		changes []appinventory.StockChange
	)
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		o, err := repos.PurchaseOrders.GetForUpdate(ctx, orderID)
		if err != nil {
			return fmt.Errorf("bloquear orden: %w", err)
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.Status != entity.PurchaseOrderPending {
			return fmt.Errorf("%w: la orden %d ya está %s", domain.ErrConflict, o.ID, o.Status)
		}

		ids := make([]int64, 0, len(o.Lines))
		seen := make(map[int64]struct{}, len(o.Lines))
		for _, l := range o.Lines {
			if _, ok := seen[l.ProductID]; !ok {
				seen[l.ProductID] = struct{}{}
				ids = append(ids, l.ProductID)
			}
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			p, err := repos.Products.GetForUpdate(ctx, id)
			if err != nil {
				return fmt.Errorf("bloquear producto %d: %w", id, err)
			}
			if p == nil {
				return domain.NewProductError(id, domain.ErrNotFound)
			}
		}

		now := time.Now()
		reason := fmt.Sprintf("orden de compra #%d", o.ID)
		finalStock := make(map[int64]int, len(ids))
		for _, l := range o.Lines {
			p, err := repos.Products.GetByID(ctx, l.ProductID)
			if err != nil {
				return err
			}
			newCost := inventory.CostCalculator(p.Stock, p.CostPrice, l.Quantity, l.UnitCost)
			stock, err := uc.ledger.ApplyDelta(ctx, repos.Stock, l.ProductID, l.Quantity)
			if err != nil {
				return err
			}
			if err := repos.Products.UpdateCost(ctx, l.ProductID, newCost); err != nil {
				return fmt.Errorf("actualizar costo: %w", err)
			}
			mov := &entity.StockMovement{
				ProductID:  l.ProductID,
				Kind:       entity.MovementKindInbound,
				Quantity:   l.Quantity,
				Reason:     &reason,
				EmployeeID: employeeID,
				CreatedAt:  now,
			}
			if err := repos.Movements.Create(ctx, mov); err != nil {
				return fmt.Errorf("guardar movimiento: %w", err)
			}
			finalStock[l.ProductID] = stock
		}

		if err := repos.PurchaseOrders.MarkReceived(ctx, o.ID, now); err != nil {
			return fmt.Errorf("marcar orden recibida: %w", err)
		}
		o.Status = entity.PurchaseOrderReceived
		o.ReceivedAt = &now
		order = o

		for _, id := range ids {
			changes = append(changes, appinventory.StockChange{
				ProductID:   id,
				Stock:       finalStock[id],
				Source:      appinventory.SourcePurchaseOrder,
				ReferenceID: o.ID,
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
	out := dto.ToPurchaseOrderResponse(order)
	return &out, nil
}
