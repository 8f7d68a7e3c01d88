package entity

// StockLevel es la vista del stock de un producto que maneja el libro de stock.
type StockLevel struct {
	ProductID int64 `db:"id"`
	Quantity  int   `db:"stock"`
}
