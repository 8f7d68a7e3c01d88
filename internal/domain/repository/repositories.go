package repository

// Repositories agrupa los repositorios atados a una misma transacción.
// Lo construye el TxRunner de infraestructura para cada transacción.
type Repositories struct {
	Products       ProductRepository
	Stock          StockRepository
	Movements      StockMovementRepository
	Sales          SaleRepository
	PurchaseOrders PurchaseOrderRepository
}
