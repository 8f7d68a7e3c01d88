package purchasing_test

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/apimarket/internal/application/dto"
	"github.com/jhoicas/apimarket/internal/application/inventory"
	"github.com/jhoicas/apimarket/internal/application/purchasing"
	"github.com/jhoicas/apimarket/internal/domain"
	"github.com/jhoicas/apimarket/internal/domain/entity"
	"github.com/jhoicas/apimarket/internal/infrastructure/memstore"
)

type fixture struct {
	st       *memstore.Store
	uc       *purchasing.PurchaseOrderUseCase
	employee int64
	supplier int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := memstore.New()
	emp := &entity.Employee{Name: "Bodega", Email: "bodega@tienda.co", Role: entity.RoleBodega, Status: entity.EmployeeActive}
	require.NoError(t, st.Employees().Create(ctx, emp))
	sup := &entity.Supplier{Name: "Distribuidora Norte"}
	require.NoError(t, st.Suppliers().Create(ctx, sup))
	uc := purchasing.NewPurchaseOrderUseCase(memstore.NewTxRunner(st), inventory.NewStockLedger(), st.PurchaseOrders(), st.Suppliers(), nil)
	return &fixture{st: st, uc: uc, employee: emp.ID, supplier: sup.ID}
}

func (f *fixture) product(t *testing.T, stock int, cost string) int64 {
	t.Helper()
	p := &entity.Product{Name: "Aceite", CostPrice: decimal.RequireFromString(cost), Stock: stock}
	require.NoError(t, f.st.Products().Create(context.Background(), p))
	return p.ID
}

func TestCreatePurchaseOrder(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, 10, "4")

	order, err := f.uc.Create(context.Background(), f.employee, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier,
		Lines:      []dto.PurchaseOrderItemRequest{{ProductID: a, Quantity: 30, UnitCost: decimal.NewFromInt(6)}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderPending, order.Status)
	assert.True(t, decimal.NewFromInt(180).Equal(order.Total))
	require.Len(t, order.Lines, 1)

	got, err := f.uc.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	p, _ := f.st.Products().GetByID(context.Background(), a)
	assert.Equal(t, 10, p.Stock)
}

func TestCreatePurchaseOrder_Invalid(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, 10, "4")

	_, err := f.uc.Create(context.Background(), f.employee, dto.CreatePurchaseOrderRequest{SupplierID: f.supplier})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(context.Background(), f.employee, dto.CreatePurchaseOrderRequest{
		SupplierID: 99,
		Lines:      []dto.PurchaseOrderItemRequest{{ProductID: a, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(context.Background(), f.employee, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier,
		Lines:      []dto.PurchaseOrderItemRequest{{ProductID: a, Quantity: 1, UnitCost: decimal.NewFromInt(-1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(context.Background(), f.employee, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier,
		Lines:      []dto.PurchaseOrderItemRequest{{ProductID: 555, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Create(context.Background(), f.employee, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier,
		Lines:      []dto.PurchaseOrderItemRequest{{ProductID: a, Quantity: math.MaxInt, UnitCost: decimal.NewFromInt(1)}},
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "lines[0].quantity", ve.Field)

	_, err = f.uc.Create(context.Background(), f.employee, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier,
		Lines:      []dto.PurchaseOrderItemRequest{{ProductID: a, Quantity: 1, UnitCost: decimal.RequireFromString("2.345")}},
	})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "lines[0].unit_cost", ve.Field)
}

func TestReceivePurchaseOrder_StockSobreElMaximoNoRecibe(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.product(t, math.MaxInt32-1, "4")

	order, err := f.uc.Create(ctx, f.employee, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier,
		Lines:      []dto.PurchaseOrderItemRequest{{ProductID: a, Quantity: 2, UnitCost: decimal.NewFromInt(4)}},
	})
	require.NoError(t, err)

	_, err = f.uc.Receive(ctx, order.ID, f.employee)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := f.st.Products().GetByID(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt32-1, p.Stock)
	got, err := f.uc.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderPending, got.Status)
}

func TestReceivePurchaseOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.product(t, 10, "4")

	order, err := f.uc.Create(ctx, f.employee, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier,
		Lines:      []dto.PurchaseOrderItemRequest{{ProductID: a, Quantity: 30, UnitCost: decimal.NewFromInt(6)}},
	})
	require.NoError(t, err)

	received, err := f.uc.Receive(ctx, order.ID, f.employee)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderReceived, received.Status)
	assert.NotNil(t, received.ReceivedAt)

	p, err := f.st.Products().GetByID(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, 40, p.Stock)
	assert.True(t, decimal.RequireFromString("5.50").Equal(p.CostPrice), p.CostPrice.String())

	movs, err := f.st.Movements().ListByProduct(ctx, a, nil, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementKindInbound, movs[0].Kind)
	assert.Equal(t, "orden de compra #1", *movs[0].Reason)

	_, err = f.uc.Receive(ctx, order.ID, f.employee)
	assert.ErrorIs(t, err, domain.ErrConflict)
	p, _ = f.st.Products().GetByID(ctx, a)
	assert.Equal(t, 40, p.Stock)

	_, err = f.uc.Receive(ctx, 999, f.employee)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
