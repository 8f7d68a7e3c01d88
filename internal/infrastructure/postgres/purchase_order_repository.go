package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/apimarket/internal/domain"
	"github.com/jhoicas/apimarket/internal/domain/entity"
	"github.com/jhoicas/apimarket/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const purchaseOrderColumns = `id, supplier_id, employee_id, status, total, created_at, received_at`

// PurchaseOrderRepo órdenes de compra en PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (supplier_id, employee_id, status, total, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, o.SupplierID, o.EmployeeID, o.Status, o.Total, o.CreatedAt).Scan(&o.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return referenceError(err)
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) CreateLine(ctx context.Context, l *entity.PurchaseOrderLine) error {
	query := `
		INSERT INTO purchase_order_lines (purchase_order_id, product_id, quantity, unit_cost, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, l.PurchaseOrderID, l.ProductID, l.Quantity, l.UnitCost, l.Subtotal).Scan(&l.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return referenceError(err)
		}
		return fmt.Errorf("insert purchase order line: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la cabecera de la orden (SELECT FOR UPDATE) y carga sus líneas.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) get(ctx context.Context, query string, id int64) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	if err := pgxscan.Get(ctx, r.q, &o, query, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if err := pgxscan.Select(ctx, r.q, &o.Lines, `
		SELECT id, purchase_order_id, product_id, quantity, unit_cost, subtotal
		FROM purchase_order_lines WHERE purchase_order_id = $1 ORDER BY id`, id); err != nil {
		return nil, fmt.Errorf("get purchase order lines: %w", err)
	}
	return &o, nil
}

func (r *PurchaseOrderRepo) MarkReceived(ctx context.Context, id int64, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE purchase_orders SET status = $2, received_at = $3 WHERE id = $1`,
		id, entity.PurchaseOrderReceived, at)
	if err != nil {
		return fmt.Errorf("mark purchase order received: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
