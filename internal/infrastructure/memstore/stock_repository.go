package memstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/apimarket/internal/domain"
	"github.com/jhoicas/apimarket/internal/domain/entity"
	"github.com/jhoicas/apimarket/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo columna de stock de los productos en memoria.
type StockRepo struct {
	sc scope
}

func (r *StockRepo) Get(_ context.Context, productID int64) (*entity.StockLevel, error) {
	var out *entity.StockLevel
	err := r.sc.read("stock.get", func(s *state) error {
		if p, ok := s.products[productID]; ok {
			out = &entity.StockLevel{ProductID: p.ID, Quantity: p.Stock}
		}
		return nil
	})
	return out, err
}

func (r *StockRepo) GetForUpdate(_ context.Context, productID int64) (*entity.StockLevel, error) {
	var out *entity.StockLevel
	err := r.sc.read("stock.get_for_update", func(s *state) error {
		if p, ok := s.products[productID]; ok {
			out = &entity.StockLevel{ProductID: p.ID, Quantity: p.Stock}
		}
		return nil
	})
	return out, err
}

// Set respeta el mismo CHECK (stock >= 0) que la tabla products.
func (r *StockRepo) Set(_ context.Context, productID int64, quantity int) error {
	return r.sc.write("stock.set", func(s *state) error {
		p, ok := s.products[productID]
		if !ok {
			return domain.ErrNotFound
		}
		if quantity < 0 {
			return fmt.Errorf("update stock: viola products_stock_check (%d)", quantity)
		}
		p.Stock = quantity
		return nil
	})
}
