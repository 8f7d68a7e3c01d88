package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/apimarket/internal/domain"
	"github.com/jhoicas/apimarket/internal/domain/entity"
	"github.com/jhoicas/apimarket/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	sc scope
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.sc.write("products.create", func(s *state) error {
		if product.Stock < 0 {
			return fmt.Errorf("insert product: stock negativo")
		}
		s.seq.product++
		product.ID = s.seq.product
		s.products[product.ID] = copyProduct(product)
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.sc.read("products.get", func(s *state) error {
		if p, ok := s.products[id]; ok {
			out = copyProduct(p)
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: la transacción ya está serializada.
func (r *ProductRepo) GetForUpdate(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.sc.read("products.get_for_update", func(s *state) error {
		if p, ok := s.products[id]; ok {
			out = copyProduct(p)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.sc.write("products.update", func(s *state) error {
		cur, ok := s.products[product.ID]
		if !ok {
			return domain.ErrNotFound
		}
		next := copyProduct(product)
		next.Stock = cur.Stock
		next.CreatedAt = cur.CreatedAt
		s.products[product.ID] = next
		return nil
	})
}

func (r *ProductRepo) UpdateCost(_ context.Context, productID int64, cost decimal.Decimal) error {
	return r.sc.write("products.update_cost", func(s *state) error {
		p, ok := s.products[productID]
		if !ok {
			return domain.ErrNotFound
		}
		p.CostPrice = cost
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.sc.read("products.list", func(s *state) error {
		for _, p := range s.products {
			if filter.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *filter.CategoryID) {
				continue
			}
			if filter.SupplierID != nil && (p.SupplierID == nil || *p.SupplierID != *filter.SupplierID) {
				continue
			}
			out = append(out, copyProduct(p))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	return r.sc.write("products.delete", func(s *state) error {
		if _, ok := s.products[id]; !ok {
			return domain.ErrNotFound
		}
		if hasHistory(s, id) {
			return fmt.Errorf("%w: el producto %d tiene movimientos, ventas u órdenes", domain.ErrConflict, id)
		}
		delete(s.products, id)
		return nil
	})
}

func hasHistory(s *state, productID int64) bool {
	for _, m := range s.movements {
		if m.ProductID == productID {
			return true
		}
	}
	for _, v := range s.sales {
		for _, l := range v.Lines {
			if l.ProductID == productID {
				return true
			}
		}
	}
	for _, o := range s.orders {
		for _, l := range o.Lines {
			if l.ProductID == productID {
				return true
			}
		}
	}
	return false
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
