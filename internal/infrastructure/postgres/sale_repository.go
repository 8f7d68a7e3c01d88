package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/apimarket/internal/domain/entity"
	"github.com/jhoicas/apimarket/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas y líneas de venta en PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera y completa ID y CreatedAt.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (customer_id, employee_id, total, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query, sale.CustomerID, sale.EmployeeID, sale.Total, sale.CreatedAt).
		Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return referenceError(err)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateLine inserta una línea de venta y completa su ID.
func (r *SaleRepo) CreateLine(ctx context.Context, line *entity.SaleLine) error {
	query := `
		INSERT INTO sale_lines (sale_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, line.SaleID, line.ProductID, line.Quantity, line.UnitPrice, line.Subtotal).
		Scan(&line.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return referenceError(err)
		}
		return fmt.Errorf("insert sale line: %w", err)
	}
	return nil
}

// GetByID obtiene la venta con sus líneas en el orden en que se registraron.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	var sale entity.Sale
	err := pgxscan.Get(ctx, r.q, &sale, `
		SELECT id, customer_id, employee_id, total, created_at
		FROM sales WHERE id = $1`, id)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := pgxscan.Select(ctx, r.q, &sale.Lines, `
		SELECT id, sale_id, product_id, quantity, unit_price, subtotal
		FROM sale_lines WHERE sale_id = $1 ORDER BY id`, id); err != nil {
		return nil, fmt.Errorf("get sale lines: %w", err)
	}
	return &sale, nil
}
