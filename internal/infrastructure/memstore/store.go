// Package memstore implementa los repositorios en memoria. Lo usan los tests y el modo STORE=memory.
// Las transacciones se serializan: TxRunner trabaja sobre una copia del estado y solo la publica en Commit.
package memstore

import (
	"sync"

	"github.com/jhoicas/apimarket/internal/domain/entity"
)

type sequences struct {
	product, movement, sale, saleLine, order, orderLine, category, supplier, employee int64
}

type state struct {
	products   map[int64]*entity.Product
	movements  map[int64]*entity.StockMovement
	sales      map[int64]*entity.Sale
	orders     map[int64]*entity.PurchaseOrder
	categories map[int64]*entity.Category
	suppliers  map[int64]*entity.Supplier
	employees  map[int64]*entity.Employee
	seq        sequences
}

func newState() *state {
	return &state{
		products:   map[int64]*entity.Product{},
		movements:  map[int64]*entity.StockMovement{},
		sales:      map[int64]*entity.Sale{},
		orders:     map[int64]*entity.PurchaseOrder{},
		categories: map[int64]*entity.Category{},
		suppliers:  map[int64]*entity.Supplier{},
		employees:  map[int64]*entity.Employee{},
	}
}

// clone copia profunda del estado para una transacción.
func (s *state) clone() *state {
	c := newState()
	c.seq = s.seq
	for id, p := range s.products {
		c.products[id] = copyProduct(p)
	}
	for id, m := range s.movements {
		c.movements[id] = copyMovement(m)
	}
	for id, v := range s.sales {
		c.sales[id] = copySale(v)
	}
	for id, o := range s.orders {
		c.orders[id] = copyOrder(o)
	}
	for id, v := range s.categories {
		cp := *v
		c.categories[id] = &cp
	}
	for id, v := range s.suppliers {
		cp := *v
		c.suppliers[id] = &cp
	}
	for id, v := range s.employees {
		cp := *v
		c.employees[id] = &cp
	}
	return c
}

// Store estado en memoria compartido por todos los repositorios.
type Store struct {
	txMu sync.Mutex   // serializa transacciones y escrituras fuera de tx
	mu   sync.RWMutex // protege el puntero data
	data *state

	failMu   sync.Mutex
	failures map[string]error
}

// New crea un store vacío.
func New() *Store {
	return &Store{data: newState(), failures: map[string]error{}}
}

// FailOn hace que la operación op (ej. "sales.create_line") devuelva err hasta ClearFailures.
func (s *Store) FailOn(op string, err error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	s.failures[op] = err
}

// ClearFailures elimina todos los fallos inyectados.
func (s *Store) ClearFailures() {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	s.failures = map[string]error{}
}

func (s *Store) fail(op string) error {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	return s.failures[op]
}

// scope ejecuta operaciones contra el estado confirmado o contra la copia de una transacción.
type scope struct {
	st *Store
	tx *state
}

func (sc scope) read(op string, fn func(*state) error) error {
	if err := sc.st.fail(op); err != nil {
		return err
	}
	if sc.tx != nil {
		return fn(sc.tx)
	}
	sc.st.mu.RLock()
	defer sc.st.mu.RUnlock()
	return fn(sc.st.data)
}

func (sc scope) write(op string, fn func(*state) error) error {
	if err := sc.st.fail(op); err != nil {
		return err
	}
	if sc.tx != nil {
		return fn(sc.tx)
	}
	sc.st.txMu.Lock()
	defer sc.st.txMu.Unlock()
	sc.st.mu.Lock()
	defer sc.st.mu.Unlock()
	return fn(sc.st.data)
}

// Repositorios fuera de transacción (cada operación se confirma al instante).

func (s *Store) Products() *ProductRepo             { return &ProductRepo{sc: scope{st: s}} }
func (s *Store) Stock() *StockRepo                  { return &StockRepo{sc: scope{st: s}} }
func (s *Store) Movements() *StockMovementRepo      { return &StockMovementRepo{sc: scope{st: s}} }
func (s *Store) Sales() *SaleRepo                   { return &SaleRepo{sc: scope{st: s}} }
func (s *Store) PurchaseOrders() *PurchaseOrderRepo { return &PurchaseOrderRepo{sc: scope{st: s}} }
func (s *Store) Categories() *CategoryRepo          { return &CategoryRepo{sc: scope{st: s}} }
func (s *Store) Suppliers() *SupplierRepo           { return &SupplierRepo{sc: scope{st: s}} }
func (s *Store) Employees() *EmployeeRepo           { return &EmployeeRepo{sc: scope{st: s}} }

func copyProduct(p *entity.Product) *entity.Product {
	cp := *p
	if p.ImageURL != nil {
		v := *p.ImageURL
		cp.ImageURL = &v
	}
	if p.SupplierID != nil {
		v := *p.SupplierID
		cp.SupplierID = &v
	}
	if p.CategoryID != nil {
		v := *p.CategoryID
		cp.CategoryID = &v
	}
	return &cp
}

func copyMovement(m *entity.StockMovement) *entity.StockMovement {
	cp := *m
	if m.Reason != nil {
		v := *m.Reason
		cp.Reason = &v
	}
	return &cp
}

func copySale(s *entity.Sale) *entity.Sale {
	cp := *s
	if s.CustomerID != nil {
		v := *s.CustomerID
		cp.CustomerID = &v
	}
	cp.Lines = append([]entity.SaleLine(nil), s.Lines...)
	return &cp
}

func copyOrder(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	cp := *o
	if o.ReceivedAt != nil {
		v := *o.ReceivedAt
		cp.ReceivedAt = &v
	}
	cp.Lines = append([]entity.PurchaseOrderLine(nil), o.Lines...)
	return &cp
}
