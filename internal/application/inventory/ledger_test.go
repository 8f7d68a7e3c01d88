package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/apimarket/internal/application/inventory"
	"github.com/jhoicas/apimarket/internal/domain"
	"github.com/jhoicas/apimarket/internal/domain/entity"
	"github.com/jhoicas/apimarket/internal/domain/repository"
	"github.com/jhoicas/apimarket/internal/infrastructure/memstore"
)

func TestStockLedger_ApplyDelta(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	p := &entity.Product{Name: "Leche", Stock: 3}
	require.NoError(t, st.Products().Create(ctx, p))
	ledger := inventory.NewStockLedger()
	tx := memstore.NewTxRunner(st)

	err := tx.Run(ctx, func(repos repository.Repositories) error {
		next, err := ledger.ApplyDelta(ctx, repos.Stock, p.ID, 4)
		require.NoError(t, err)
		assert.Equal(t, 7, next)

		next, err = ledger.ApplyDelta(ctx, repos.Stock, p.ID, -7)
		require.NoError(t, err)
		assert.Equal(t, 0, next)

		_, err = ledger.ApplyDelta(ctx, repos.Stock, p.ID, -1)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		current, err := ledger.ReadStock(ctx, repos.Stock, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, current)
		return nil
	})
	require.NoError(t, err)

	current, err := ledger.ReadStock(ctx, st.Stock(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, current)
}

func TestStockLedger_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	ledger := inventory.NewStockLedger()

	_, err := ledger.ReadStock(ctx, st.Stock(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = ledger.ApplyDelta(ctx, st.Stock(), 42, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
