package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/apimarket/internal/domain"
	"github.com/jhoicas/apimarket/internal/domain/repository"
)

// TicketUseCase genera el ticket PDF de una venta.
type TicketUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	generator   SaleTicketGenerator
}

// NewTicketUseCase construye el caso de uso.
func NewTicketUseCase(saleRepo repository.SaleRepository, productRepo repository.ProductRepository, generator SaleTicketGenerator) *TicketUseCase {
	return &TicketUseCase{saleRepo: saleRepo, productRepo: productRepo, generator: generator}
}

// DownloadTicket devuelve los bytes del PDF y el nombre de archivo sugerido.
// domain.ErrNotFound si la venta no existe.
func (uc *TicketUseCase) DownloadTicket(ctx context.Context, saleID int64) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", fmt.Errorf("ticket: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}

	lines := make([]SaleLineForTicket, 0, len(sale.Lines))
	for _, l := range sale.Lines {
		p, err := uc.productRepo.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, "", fmt.Errorf("ticket: obtener producto %d: %w", l.ProductID, err)
		}
		name := fmt.Sprintf("Producto %d", l.ProductID)
		if p != nil {
			name = p.Name
		}
		lines = append(lines, SaleLineForTicket{SaleLine: l, ProductName: name})
	}

	pdfBytes, err = uc.generator.GenerateSaleTicket(ctx, sale, lines)
	if err != nil {
		return nil, "", fmt.Errorf("ticket: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("venta_%d.pdf", sale.ID), nil
}
