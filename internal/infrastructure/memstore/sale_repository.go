package memstore

import (
	"context"
	"time"

	"github.com/jhoicas/apimarket/internal/domain"
	"github.com/jhoicas/apimarket/internal/domain/entity"
	"github.com/jhoicas/apimarket/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas y sus líneas en memoria.
type SaleRepo struct {
	sc scope
}

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	return r.sc.write("sales.create", func(s *state) error {
		if _, ok := s.employees[sale.EmployeeID]; !ok {
			return domain.NewValidationError("employee_id", "el empleado no existe")
		}
		s.seq.sale++
		sale.ID = s.seq.sale
		if sale.CreatedAt.IsZero() {
			sale.CreatedAt = time.Now()
		}
		stored := copySale(sale)
		stored.Lines = nil
		s.sales[sale.ID] = stored
		return nil
	})
}

func (r *SaleRepo) CreateLine(_ context.Context, line *entity.SaleLine) error {
	return r.sc.write("sales.create_line", func(s *state) error {
		sale, ok := s.sales[line.SaleID]
		if !ok {
			return domain.ErrNotFound
		}
		if _, ok := s.products[line.ProductID]; !ok {
			return domain.NewProductError(line.ProductID, domain.ErrNotFound)
		}
		s.seq.saleLine++
		line.ID = s.seq.saleLine
		sale.Lines = append(sale.Lines, *line)
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.sc.read("sales.get", func(s *state) error {
		if v, ok := s.sales[id]; ok {
			out = copySale(v)
		}
		return nil
	})
	return out, err
}
