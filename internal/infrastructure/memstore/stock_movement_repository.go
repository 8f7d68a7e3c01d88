package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/apimarket/internal/domain/entity"
	"github.com/jhoicas/apimarket/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo movimientos en memoria (solo inserción y lectura).
type StockMovementRepo struct {
	sc scope
}

func (r *StockMovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	return r.sc.write("movements.create", func(s *state) error {
		if err := checkRefs(s, movement.ProductID, movement.EmployeeID); err != nil {
			return err
		}
		s.seq.movement++
		movement.ID = s.seq.movement
		if movement.CreatedAt.IsZero() {
			movement.CreatedAt = time.Now()
		}
		s.movements[movement.ID] = copyMovement(movement)
		return nil
	})
}

func (r *StockMovementRepo) GetByID(_ context.Context, id int64) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	err := r.sc.read("movements.get", func(s *state) error {
		if m, ok := s.movements[id]; ok {
			out = copyMovement(m)
		}
		return nil
	})
	return out, err
}

// ListByProduct devuelve los movimientos más recientes primero.
func (r *StockMovementRepo) ListByProduct(_ context.Context, productID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.sc.read("movements.list", func(s *state) error {
		for _, m := range s.movements {
			if m.ProductID != productID {
				continue
			}
			if from != nil && m.CreatedAt.Before(*from) {
				continue
			}
			if to != nil && m.CreatedAt.After(*to) {
				continue
			}
			out = append(out, copyMovement(m))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return paginate(out, limit, offset), nil
}
