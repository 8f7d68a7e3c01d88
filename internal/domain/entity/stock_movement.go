package entity

import "time"

// Tipos de movimiento manual de stock.
const (
	MovementKindInbound  = "inbound"  // entrada (reposición)
	MovementKindOutbound = "outbound" // salida (merma, ajuste)
)

// StockMovement registra un ajuste manual de stock. Inmutable una vez creado.
type StockMovement struct {
	ID         int64     `db:"id"`
	ProductID  int64     `db:"product_id"`
	Kind       string    `db:"kind"`
	Quantity   int       `db:"quantity"` // siempre positivo; el signo lo da Kind
	Reason     *string   `db:"reason"`
	EmployeeID int64     `db:"employee_id"`
	CreatedAt  time.Time `db:"created_at"`
}
