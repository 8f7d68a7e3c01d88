package postgres_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/apimarket/internal/application/inventory"
	"github.com/jhoicas/apimarket/internal/application/sales"
	"github.com/jhoicas/apimarket/internal/domain"
	"github.com/jhoicas/apimarket/internal/domain/entity"
	domaininv "github.com/jhoicas/apimarket/internal/domain/inventory"
	"github.com/jhoicas/apimarket/internal/infrastructure/postgres"
	"github.com/jhoicas/apimarket/pkg/config"
)

// Estas pruebas usan una base real y la vacían: TEST_DATABASE_URL debe apuntar a una base desechable.
const testDatabaseURLEnv = "TEST_DATABASE_URL"

type pgFixture struct {
	pool     *pgxpool.Pool
	employee int64
}

func newPGFixture(t *testing.T) *pgFixture {
	t.Helper()
	url := os.Getenv(testDatabaseURLEnv)
	if url == "" {
		t.Skipf("%s no definido", testDatabaseURLEnv)
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 20})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile(filepath.Join("migrations", "001_init.sql"))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE sale_lines, sales, stock_movements, purchase_order_lines, purchase_orders,
		products, categories, suppliers, employees RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	now := time.Now()
	emp := &entity.Employee{
		Name: "Caja 1", Email: "caja1@tienda.co", PasswordHash: "x",
		Role: entity.RoleCajero, Status: entity.EmployeeActive, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, postgres.NewEmployeeRepository(pool).Create(ctx, emp))
	return &pgFixture{pool: pool, employee: emp.ID}
}

func (f *pgFixture) product(t *testing.T, stock int, price string) int64 {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		Name: "Arroz", CostPrice: decimal.NewFromInt(1), SalePrice: decimal.RequireFromString(price),
		Stock: stock, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, postgres.NewProductRepository(f.pool).Create(context.Background(), p))
	return p.ID
}

func (f *pgFixture) stockOf(t *testing.T, id int64) int {
	t.Helper()
	p, err := postgres.NewProductRepository(f.pool).GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func (f *pgFixture) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, f.pool.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n))
	return n
}

func (f *pgFixture) movementUseCase() *inventory.RegisterMovementUseCase {
	return inventory.NewRegisterMovementUseCase(
		postgres.NewTxRunner(f.pool),
		inventory.NewStockLedger(),
		postgres.NewProductRepository(f.pool),
		postgres.NewStockMovementRepository(f.pool),
		nil,
	)
}

func TestPostgres_VentasConcurrentesSobreUltimasUnidades(t *testing.T) {
	f := newPGFixture(t)
	a := f.product(t, 5, "5.00")
	uc := sales.NewProcessSaleUseCase(postgres.NewTxRunner(f.pool), inventory.NewStockLedger(), postgres.NewSaleRepository(f.pool), nil)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.ProcessSale(context.Background(), sales.SaleInput{
				EmployeeID: f.employee,
				Lines:      []sales.SaleLineInput{{ProductID: a, Quantity: 3}},
			})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 2, f.stockOf(t, a))
	assert.Equal(t, 1, f.count(t, "sales"))
	assert.Equal(t, 1, f.count(t, "sale_lines"))
}

func TestPostgres_SalidasConcurrentesNuncaDejanStockNegativo(t *testing.T) {
	f := newPGFixture(t)
	p := f.product(t, 10, "1.00")
	uc := f.movementUseCase()

	const workers = 25
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, insufficient := 0, 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
				ProductID: p, Kind: entity.MovementKindOutbound, Quantity: 1, EmployeeID: f.employee,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
				insufficient++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, workers-10, insufficient)
	assert.Equal(t, 0, f.stockOf(t, p))
	assert.Equal(t, 10, f.count(t, "stock_movements"))
}

func TestPostgres_EntradaHastaElMaximoDeInteger(t *testing.T) {
	f := newPGFixture(t)
	p := f.product(t, domaininv.MaxQuantity-5, "1.00")
	uc := f.movementUseCase()

	res, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: p, Kind: entity.MovementKindInbound, Quantity: 5, EmployeeID: f.employee,
	})
	require.NoError(t, err)
	assert.Equal(t, domaininv.MaxQuantity, res.Stock)

	_, err = uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: p, Kind: entity.MovementKindInbound, Quantity: 1, EmployeeID: f.employee,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, domaininv.MaxQuantity, f.stockOf(t, p))
	assert.Equal(t, 1, f.count(t, "stock_movements"))
}
