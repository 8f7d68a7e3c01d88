package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/apimarket/internal/application/auth"
	"github.com/jhoicas/apimarket/internal/application/dto"
	"github.com/jhoicas/apimarket/internal/application/inventory"
	"github.com/jhoicas/apimarket/internal/application/purchasing"
	"github.com/jhoicas/apimarket/internal/application/sales"
	"github.com/jhoicas/apimarket/internal/application/usecase"
	"github.com/jhoicas/apimarket/internal/domain/entity"
	"github.com/jhoicas/apimarket/internal/infrastructure/memstore"
	"github.com/jhoicas/apimarket/internal/infrastructure/pdf"
	"github.com/jhoicas/apimarket/internal/infrastructure/ws"
	apphttp "github.com/jhoicas/apimarket/internal/interfaces/http"
)

const testPassword = "secreto-123"

type apiFixture struct {
	app   *fiber.App
	st    *memstore.Store
	admin *entity.Employee
	token string
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	st := memstore.New()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &entity.Employee{Name: "Admin", Email: "admin@tienda.co", PasswordHash: string(hash), Role: entity.RoleAdmin, Status: entity.EmployeeActive}
	require.NoError(t, st.Employees().Create(context.Background(), admin))

	txRunner := memstore.NewTxRunner(st)
	ledger := inventory.NewStockLedger()
	hub := ws.NewHub(16, zerolog.Nop())
	movementUC := inventory.NewRegisterMovementUseCase(txRunner, ledger, st.Products(), st.Movements(), hub)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:           auth.NewAuthUseCase(st.Employees(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		EmployeeUC:       usecase.NewEmployeeUseCase(st.Employees()),
		ProductUC:        usecase.NewProductUseCase(st.Products(), st.Categories(), st.Suppliers()),
		CategoryUC:       usecase.NewCategoryUseCase(st.Categories()),
		SupplierUC:       usecase.NewSupplierUseCase(st.Suppliers()),
		RegisterMovement: movementUC,
		ClosingReport:    inventory.NewClosingReportUseCase(st.Products()),
		ProcessSale:      sales.NewProcessSaleUseCase(txRunner, ledger, st.Sales(), hub),
		SaleTicket:       sales.NewTicketUseCase(st.Sales(), st.Products(), pdf.NewMarotoTicketGenerator("Tienda Test")),
		PurchaseOrderUC:  purchasing.NewPurchaseOrderUseCase(txRunner, ledger, st.PurchaseOrders(), st.Suppliers(), hub),
		StockHub:         hub,
		JWTSecret:        testJWTSecret,
		ServiceName:      "apimarket-test",
	})

	f := &apiFixture{app: app, st: st, admin: admin}
	f.token = f.login(t, admin.Email, testPassword)
	return f
}

func (f *apiFixture) login(t *testing.T, email, password string) string {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	return out.Token
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (f *apiFixture) authed(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	return f.do(t, method, path, f.token, body)
}

func (f *apiFixture) product(t *testing.T, stock int, price string) int64 {
	t.Helper()
	resp := f.authed(t, http.MethodPost, "/productos", map[string]any{
		"name": "Producto", "cost_price": "1.00", "sale_price": price, "stock": stock,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.ProductResponse
	decode(t, resp, &out)
	return out.ID
}

func (f *apiFixture) stockOf(t *testing.T, id int64) int {
	t.Helper()
	resp := f.authed(t, http.MethodGet, fmt.Sprintf("/productos/%d", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ProductResponse
	decode(t, resp, &out)
	return out.Stock
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func errorBody(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	decode(t, resp, &out)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/auth/login", "", dto.LoginRequest{Email: f.admin.Email, Password: "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/auth/login", "", dto.LoginRequest{Email: "nadie@tienda.co", Password: testPassword})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRutasProtegidas_SinToken(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/cierre-inventario", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestEmpleados_SoloAdminCrea(t *testing.T) {
	f := newAPI(t)

	resp := f.authed(t, http.MethodPost, "/empleados", dto.CreateEmployeeRequest{
		Name: "Caja 1", Email: "caja1@tienda.co", Password: "clave-segura", Role: entity.RoleCajero,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	cajeroToken := f.login(t, "caja1@tienda.co", "clave-segura")
	resp = f.do(t, http.MethodPost, "/empleados", cajeroToken, dto.CreateEmployeeRequest{
		Name: "Otro", Email: "otro@tienda.co", Password: "clave-segura",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.authed(t, http.MethodPost, "/empleados", dto.CreateEmployeeRequest{
		Name: "Dup", Email: "CAJA1@tienda.co", Password: "clave-segura",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = f.authed(t, http.MethodGet, "/empleados", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.EmployeeResponse
	decode(t, resp, &list)
	assert.Len(t, list, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestMovimientos_EntradaYSalida(t *testing.T) {
	f := newAPI(t)
	id := f.product(t, 5, "2.00")

	resp := f.authed(t, http.MethodPost, "/movimientos", dto.RegisterMovementRequest{ProductID: id, Kind: "inbound", Quantity: 7})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mv dto.MovementResponse
	decode(t, resp, &mv)
	require.NotNil(t, mv.Stock)
	assert.Equal(t, 12, *mv.Stock)
	assert.Equal(t, f.admin.ID, mv.EmployeeID)

	resp = f.authed(t, http.MethodPost, "/movimientos", dto.RegisterMovementRequest{ProductID: id, Kind: "outbound", Quantity: 12})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &mv)
	require.NotNil(t, mv.Stock)
	assert.Equal(t, 0, *mv.Stock)

	resp = f.authed(t, http.MethodGet, fmt.Sprintf("/movimientos/%d", mv.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var again dto.MovementResponse
	decode(t, resp, &again)
	assert.Equal(t, mv.ID, again.ID)
	assert.Equal(t, "outbound", again.Kind)
	assert.Equal(t, 12, again.Quantity)

	resp = f.authed(t, http.MethodGet, fmt.Sprintf("/productos/%d/movimientos", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var hist dto.MovementListResponse
	decode(t, resp, &hist)
	assert.Len(t, hist.Items, 2)
}

func TestMovimientos_SalidaMayorAlStock(t *testing.T) {
	f := newAPI(t)
	id := f.product(t, 2, "2.00")

	resp := f.authed(t, http.MethodPost, "/movimientos", dto.RegisterMovementRequest{ProductID: id, Kind: "outbound", Quantity: 3})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := errorBody(t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, id, body.ProductID)
	assert.Equal(t, 2, f.stockOf(t, id))
}

func TestMovimientos_Validacion(t *testing.T) {
	f := newAPI(t)
	id := f.product(t, 2, "2.00")

	resp := f.authed(t, http.MethodPost, "/movimientos", dto.RegisterMovementRequest{ProductID: id, Kind: "transfer", Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := errorBody(t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "kind", body.Field)

	resp = f.authed(t, http.MethodPost, "/movimientos", dto.RegisterMovementRequest{ProductID: 999, Kind: "inbound", Quantity: 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMovimientos_RangoDeFechasInvalido(t *testing.T) {
	f := newAPI(t)
	id := f.product(t, 2, "2.00")

	resp := f.authed(t, http.MethodGet, fmt.Sprintf("/productos/%d/movimientos?from=ayer", id), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "from", errorBody(t, resp).Field)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestVentas_Registra(t *testing.T) {
	f := newAPI(t)
	id := f.product(t, 10, "5.00")

	resp := f.authed(t, http.MethodPost, "/ventas", dto.CreateSaleRequest{Lines: []dto.SaleItemRequest{{ProductID: id, Quantity: 3}}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sale dto.SaleResponse
	decode(t, resp, &sale)
	require.Len(t, sale.Lines, 1)
	assert.True(t, decimal.NewFromInt(15).Equal(sale.Lines[0].Subtotal))
	assert.True(t, decimal.NewFromInt(15).Equal(sale.Total))
	assert.Equal(t, 7, f.stockOf(t, id))

	resp = f.authed(t, http.MethodGet, fmt.Sprintf("/ventas/%d", sale.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.authed(t, http.MethodGet, fmt.Sprintf("/ventas/%d/ticket", sale.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), fmt.Sprintf("venta_%d.pdf", sale.ID))
}

func TestVentas_StockInsuficienteNoRegistraNada(t *testing.T) {
	f := newAPI(t)
	a := f.product(t, 10, "5.00")
	b := f.product(t, 1, "3.00")

	resp := f.authed(t, http.MethodPost, "/ventas", dto.CreateSaleRequest{Lines: []dto.SaleItemRequest{
		{ProductID: a, Quantity: 2},
		{ProductID: b, Quantity: 2},
	}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := errorBody(t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, b, body.ProductID)

	assert.Equal(t, 10, f.stockOf(t, a))
	assert.Equal(t, 1, f.stockOf(t, b))
}

func TestVentas_ProductoInexistente(t *testing.T) {
	f := newAPI(t)
	a := f.product(t, 10, "5.00")

	resp := f.authed(t, http.MethodPost, "/ventas", dto.CreateSaleRequest{Lines: []dto.SaleItemRequest{
		{ProductID: a, Quantity: 1},
		{ProductID: 404, Quantity: 1},
	}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int64(404), errorBody(t, resp).ProductID)
	assert.Equal(t, 10, f.stockOf(t, a))
}

func TestVentas_SinLineas(t *testing.T) {
	f := newAPI(t)
	resp := f.authed(t, http.MethodPost, "/ventas", dto.CreateSaleRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "lines", errorBody(t, resp).Field)
}

func TestVentas_ErrorDeAlmacenamiento(t *testing.T) {
	f := newAPI(t)
	a := f.product(t, 10, "5.00")
	f.st.FailOn("sales.create", errors.New("disco lleno"))

	resp := f.authed(t, http.MethodPost, "/ventas", dto.CreateSaleRequest{Lines: []dto.SaleItemRequest{{ProductID: a, Quantity: 1}}})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := errorBody(t, resp)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "disco")

	f.st.ClearFailures()
	assert.Equal(t, 10, f.stockOf(t, a))
}

func TestVentas_BodyInvalido(t *testing.T) {
	f := newAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/ventas", bytes.NewReader([]byte("{no es json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.token)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errorBody(t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos, catálogo, cierre
// ──────────────────────────────────────────────────────────────────────────────

func TestProductos_EliminarConHistorialDevuelve409(t *testing.T) {
	f := newAPI(t)
	id := f.product(t, 10, "5.00")
	resp := f.authed(t, http.MethodPost, "/movimientos", dto.RegisterMovementRequest{ProductID: id, Kind: "inbound", Quantity: 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.authed(t, http.MethodDelete, fmt.Sprintf("/productos/%d", id), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	clean := f.product(t, 0, "1.00")
	resp = f.authed(t, http.MethodDelete, fmt.Sprintf("/productos/%d", clean), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = f.authed(t, http.MethodGet, fmt.Sprintf("/productos/%d", clean), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductos_ActualizacionParcialNoTocaStock(t *testing.T) {
	f := newAPI(t)
	id := f.product(t, 8, "5.00")

	resp := f.authed(t, http.MethodPut, fmt.Sprintf("/productos/%d", id), map[string]any{"sale_price": "6.50", "stock": 999})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ProductResponse
	decode(t, resp, &out)
	assert.True(t, decimal.RequireFromString("6.50").Equal(out.SalePrice))
	assert.Equal(t, "Producto", out.Name)
	assert.Equal(t, 8, out.Stock)
}

func TestProductos_IDInvalido(t *testing.T) {
	f := newAPI(t)
	resp := f.authed(t, http.MethodGet, "/productos/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCatalogo_CategoriaDuplicada(t *testing.T) {
	f := newAPI(t)
	resp := f.authed(t, http.MethodPost, "/categorias", dto.CreateCategoryRequest{Name: "Granos"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = f.authed(t, http.MethodPost, "/categorias", dto.CreateCategoryRequest{Name: "granos"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = f.authed(t, http.MethodGet, "/categorias", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.CategoryResponse
	decode(t, resp, &list)
	assert.Len(t, list, 1)
}

func TestCierreInventario(t *testing.T) {
	f := newAPI(t)
	for _, s := range []int{3, 15, 9, 10} {
		f.product(t, s, "1.00")
	}

	resp := f.authed(t, http.MethodGet, "/cierre-inventario", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ClosingReportResponse
	decode(t, resp, &out)
	assert.Equal(t, 4, out.TotalProducts)
	assert.Equal(t, 10, out.LowStockThreshold)
	require.Len(t, out.LowStock, 2)
	stocks := []int{out.LowStock[0].Stock, out.LowStock[1].Stock}
	assert.ElementsMatch(t, []int{3, 9}, stocks)
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de compra
// ──────────────────────────────────────────────────────────────────────────────

func TestOrdenesCompra_CrearYRecibir(t *testing.T) {
	f := newAPI(t)
	resp := f.authed(t, http.MethodPost, "/proveedores", dto.CreateSupplierRequest{Name: "Distribuidora"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var supplier dto.SupplierResponse
	decode(t, resp, &supplier)
	id := f.product(t, 2, "5.00")

	resp = f.authed(t, http.MethodPost, "/ordenes-compra", map[string]any{
		"supplier_id": supplier.ID,
		"lines":       []map[string]any{{"product_id": id, "quantity": 8, "unit_cost": "2.50"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order dto.PurchaseOrderResponse
	decode(t, resp, &order)
	assert.Equal(t, entity.PurchaseOrderPending, order.Status)
	assert.True(t, decimal.NewFromInt(20).Equal(order.Total))

	resp = f.authed(t, http.MethodPost, fmt.Sprintf("/ordenes-compra/%d/recibir", order.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &order)
	assert.Equal(t, entity.PurchaseOrderReceived, order.Status)
	assert.Equal(t, 10, f.stockOf(t, id))

	resp = f.authed(t, http.MethodPost, fmt.Sprintf("/ordenes-compra/%d/recibir", order.ID), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestOrdenesCompra_CajeroNoPuedeCrear(t *testing.T) {
	f := newAPI(t)
	resp := f.authed(t, http.MethodPost, "/empleados", dto.CreateEmployeeRequest{
		Name: "Caja", Email: "caja@tienda.co", Password: "clave-segura", Role: entity.RoleCajero,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	tok := f.login(t, "caja@tienda.co", "clave-segura")

	resp = f.do(t, http.MethodPost, "/ordenes-compra", tok, map[string]any{"supplier_id": 1, "lines": []any{}})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// WebSocket
// ──────────────────────────────────────────────────────────────────────────────

func TestWSStock_SinUpgradeDevuelve426(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/ws/stock?token="+f.token, "", nil)
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/ws/stock", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
