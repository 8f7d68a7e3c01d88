package memstore

import (
	"context"
	"time"

	"github.com/jhoicas/apimarket/internal/domain"
	"github.com/jhoicas/apimarket/internal/domain/entity"
	"github.com/jhoicas/apimarket/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra en memoria.
type PurchaseOrderRepo struct {
	sc scope
}

func (r *PurchaseOrderRepo) Create(_ context.Context, order *entity.PurchaseOrder) error {
	return r.sc.write("orders.create", func(s *state) error {
		if _, ok := s.suppliers[order.SupplierID]; !ok {
			return domain.NewValidationError("supplier_id", "el proveedor no existe")
		}
		if _, ok := s.employees[order.EmployeeID]; !ok {
			return domain.NewValidationError("employee_id", "el empleado no existe")
		}
		s.seq.order++
		order.ID = s.seq.order
		stored := copyOrder(order)
		stored.Lines = nil
		s.orders[order.ID] = stored
		return nil
	})
}

func (r *PurchaseOrderRepo) CreateLine(_ context.Context, line *entity.PurchaseOrderLine) error {
	return r.sc.write("orders.create_line", func(s *state) error {
		o, ok := s.orders[line.PurchaseOrderID]
		if !ok {
			return domain.ErrNotFound
		}
		if _, ok := s.products[line.ProductID]; !ok {
			return domain.NewProductError(line.ProductID, domain.ErrNotFound)
		}
		s.seq.orderLine++
		line.ID = s.seq.orderLine
		o.Lines = append(o.Lines, *line)
		return nil
	})
}

func (r *PurchaseOrderRepo) GetByID(_ context.Context, id int64) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	err := r.sc.read("orders.get", func(s *state) error {
		if o, ok := s.orders[id]; ok {
			out = copyOrder(o)
		}
		return nil
	})
	return out, err
}

func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseOrderRepo) MarkReceived(_ context.Context, id int64, at time.Time) error {
	return r.sc.write("orders.mark_received", func(s *state) error {
		o, ok := s.orders[id]
		if !ok {
			return domain.ErrNotFound
		}
		o.Status = entity.PurchaseOrderReceived
		o.ReceivedAt = &at
		return nil
	})
}
