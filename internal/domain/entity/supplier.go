package entity

import "time"

// Supplier es un proveedor de productos.
type Supplier struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Contact   string    `db:"contact"`
	Phone     string    `db:"phone"`
	Email     string    `db:"email"`
	Address   string    `db:"address"`
	CreatedAt time.Time `db:"created_at"`
}
