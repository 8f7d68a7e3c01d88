package entity

import "time"

// Roles válidos para Employee.
const (
	RoleAdmin  = "admin"
	RoleCajero = "cajero"
	RoleBodega = "bodega"
)

// Estados de un empleado.
const (
	EmployeeActive   = "active"
	EmployeeInactive = "inactive"
)

// Employee es un empleado que opera el sistema (autentica y figura en movimientos y ventas).
type Employee struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"` // bcrypt
	Role         string    `db:"role"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
