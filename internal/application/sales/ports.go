package sales

import (
	"context"

	"github.com/jhoicas/apimarket/internal/domain/entity"
)

// SaleLineForTicket línea de venta enriquecida con el nombre del producto para el ticket.
type SaleLineForTicket struct {
	entity.SaleLine
	ProductName string
}

// SaleTicketGenerator genera el ticket (PDF) de una venta ya registrada.
type SaleTicketGenerator interface {
	GenerateSaleTicket(ctx context.Context, sale *entity.Sale, lines []SaleLineForTicket) ([]byte, error)
}
