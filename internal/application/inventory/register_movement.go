package inventory

import (
	"context"

	"github.com/jhoicas/apimarket/internal/application/dto"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInput).
// Si el body no trae employee_id se usa el empleado autenticado.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, employeeID int64, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	input := MovementInput{
		ProductID:  in.ProductID,
		Kind:       in.Kind,
		Quantity:   in.Quantity,
		Reason:     in.Reason,
		EmployeeID: in.EmployeeID,
	}
	if input.EmployeeID == 0 {
		input.EmployeeID = employeeID
	}
	res, err := uc.RegisterMovement(ctx, input)
	if err != nil {
		return nil, err
	}
	out := dto.ToMovementResponse(res.Movement)
	stock := res.Stock
	out.Stock = &stock
	return &out, nil
}
