package inventory

import (
	"math"

	"github.com/jhoicas/apimarket/internal/domain"
	"github.com/jhoicas/apimarket/internal/domain/entity"
)

// LowStockThreshold: un producto con stock estrictamente menor a este valor se reporta como stock bajo.
const LowStockThreshold = 10

// MaxQuantity tope de cantidades y stock: las columnas quantity y stock son INTEGER.
const MaxQuantity = math.MaxInt32

// NextStock aplica delta al stock actual. Falla con ErrInsufficientStock si el resultado sería negativo
// y con ValidationError si superaría MaxQuantity.
func NextStock(current, delta int) (int, error) {
	if delta > 0 && current > MaxQuantity-delta {
		return current, domain.NewValidationError("quantity", "el stock resultante supera el máximo permitido")
	}
	next := current + delta
	if next < 0 {
		return current, domain.ErrInsufficientStock
	}
	return next, nil
}

// IsLowStock indica si el stock está por debajo del umbral del cierre de inventario.
func IsLowStock(stock int) bool {
	return stock < LowStockThreshold
}

// MovementDelta traduce tipo y cantidad de un movimiento al delta firmado que se aplica al stock.
func MovementDelta(kind string, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, domain.NewValidationError("quantity", "debe ser un entero positivo")
	}
	if quantity > MaxQuantity {
		return 0, domain.NewValidationError("quantity", "supera el máximo permitido")
	}
	switch kind {
	case entity.MovementKindInbound:
		return quantity, nil
	case entity.MovementKindOutbound:
		return -quantity, nil
	default:
		return 0, domain.NewValidationError("kind", "debe ser inbound u outbound")
	}
}
