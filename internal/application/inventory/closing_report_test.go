package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/apimarket/internal/application/inventory"
	"github.com/jhoicas/apimarket/internal/domain/entity"
	"github.com/jhoicas/apimarket/internal/infrastructure/memstore"
)

func TestClosingReport_FlagsLowStock(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	ids := map[int]int64{}
	for _, stock := range []int{3, 15, 9, 10} {
		p := &entity.Product{Name: "P", CostPrice: decimal.NewFromInt(2), Stock: stock}
		require.NoError(t, st.Products().Create(ctx, p))
		ids[stock] = p.ID
	}

	report, err := inventory.NewClosingReportUseCase(st.Products()).Generate(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, report.TotalProducts)
	assert.Len(t, report.Products, 4)
	assert.Equal(t, 10, report.LowStockThreshold)
	require.Len(t, report.LowStock, 2)
	assert.Equal(t, ids[3], report.LowStock[0].ID)
	assert.Equal(t, ids[9], report.LowStock[1].ID)
	assert.True(t, report.LowStock[0].LowStock)
	assert.True(t, decimal.NewFromInt(74).Equal(report.InventoryValue))
}

func TestClosingReport_Empty(t *testing.T) {
	report, err := inventory.NewClosingReportUseCase(memstore.New().Products()).Generate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Products)
	assert.NotNil(t, report.LowStock)
}

func TestClosingReport_StorageFailure(t *testing.T) {
	st := memstore.New()
	st.FailOn("products.list", errors.New("conexión perdida"))

	_, err := inventory.NewClosingReportUseCase(st.Products()).Generate(context.Background())
	assert.Error(t, err)
}
