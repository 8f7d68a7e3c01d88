package memstore

import (
	"context"

	"github.com/jhoicas/apimarket/internal/application/inventory"
	"github.com/jhoicas/apimarket/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks sobre una copia del estado: Commit la publica, un error la descarta.
type TxRunner struct {
	st *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(st *Store) *TxRunner {
	return &TxRunner{st: st}
}

// Run serializa la transacción completa; equivale a bloquear todas las filas que toca.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	r.st.txMu.Lock()
	defer r.st.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	r.st.mu.RLock()
	work := r.st.data.clone()
	r.st.mu.RUnlock()

	sc := scope{st: r.st, tx: work}
	repos := repository.Repositories{
		Products:       &ProductRepo{sc: sc},
		Stock:          &StockRepo{sc: sc},
		Movements:      &StockMovementRepo{sc: sc},
		Sales:          &SaleRepo{sc: sc},
		PurchaseOrders: &PurchaseOrderRepo{sc: sc},
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := r.st.fail("tx.commit"); err != nil {
		return err
	}

	r.st.mu.Lock()
	r.st.data = work
	r.st.mu.Unlock()
	return nil
}
