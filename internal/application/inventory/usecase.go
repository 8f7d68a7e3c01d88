package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/apimarket/internal/application/dto"
	"github.com/jhoicas/apimarket/internal/domain"
	"github.com/jhoicas/apimarket/internal/domain/entity"
	"github.com/jhoicas/apimarket/internal/domain/inventory"
	"github.com/jhoicas/apimarket/internal/domain/repository"
)

// RegisterMovementUseCase registra entradas y salidas manuales de stock de forma transaccional:
// bloqueo de fila (SELECT FOR UPDATE), actualización de stock e inserción del movimiento, o nada.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	ledger       *StockLedger
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	notifier     StockNotifier
}

// NewRegisterMovementUseCase construye el caso de uso. notifier puede ser nil.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	ledger *StockLedger,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	notifier StockNotifier,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		notifier:     notifier,
	}
}

// MovementInput entrada para registrar un movimiento.
type MovementInput struct {
	ProductID  int64   `json:"product_id" validate:"required,gt=0"`
	Kind       string  `json:"kind" validate:"required,oneof=inbound outbound"`
	Quantity   int     `json:"quantity" validate:"required,gt=0,max=2147483647"`
	Reason     *string `json:"reason"`
	EmployeeID int64   `json:"employee_id" validate:"required,gt=0"`
}

// MovementResult movimiento creado y stock resultante del producto.
type MovementResult struct {
	Movement *entity.StockMovement
	Stock    int
}

// RegisterMovement valida la entrada y, en una transacción, aplica el delta (+q entrada, -q salida)
// sobre el libro de stock e inserta el movimiento. Exactamente una fila de movimiento y una
// actualización de stock, o ninguna.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in MovementInput) (*MovementResult, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	delta, err := inventory.MovementDelta(in.Kind, in.Quantity)
	if err != nil {
		return nil, err
	}

	var result MovementResult
	err = uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		newStock, err := uc.ledger.ApplyDelta(ctx, repos.Stock, in.ProductID, delta)
		if err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ProductID:  in.ProductID,
			Kind:       in.Kind,
			Quantity:   in.Quantity,
			Reason:     in.Reason,
			EmployeeID: in.EmployeeID,
			CreatedAt:  time.Now(),
		}
		if err := repos.Movements.Create(ctx, mov); err != nil {
			return fmt.Errorf("guardar movimiento: %w", err)
		}
		result = MovementResult{Movement: mov, Stock: newStock}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.NotifyStock([]StockChange{{
			ProductID:   in.ProductID,
			Stock:       result.Stock,
			Source:      SourceMovement,
			ReferenceID: result.Movement.ID,
		}})
	}
	return &result, nil
}

// GetMovement obtiene un movimiento por ID (registro inmutable).
func (uc *RegisterMovementUseCase) GetMovement(ctx context.Context, id int64) (*dto.MovementResponse, error) {
	mov, err := uc.movementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ToMovementResponse(mov)
	return &out, nil
}

// ListByProduct lista los movimientos de un producto, opcionalmente en el rango [from, to].
func (uc *RegisterMovementUseCase) ListByProduct(ctx context.Context, productID int64, from, to *time.Time, page dto.PageRequest) (*dto.MovementListResponse, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, domain.NewValidationError("to", "debe ser posterior a from")
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewProductError(productID, domain.ErrNotFound)
	}
	page.DefaultPage()
	list, err := uc.movementRepo.ListByProduct(ctx, productID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
