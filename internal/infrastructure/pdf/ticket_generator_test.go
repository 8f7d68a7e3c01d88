package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/apimarket/internal/application/sales"
	"github.com/jhoicas/apimarket/internal/domain/entity"
	"github.com/jhoicas/apimarket/internal/infrastructure/pdf"
)

func TestMarotoTicketGenerator_GeneratesPDF(t *testing.T) {
	customer := int64(3)
	sale := &entity.Sale{
		ID:         1,
		CustomerID: &customer,
		EmployeeID: 1,
		Total:      decimal.RequireFromString("25.00"),
		CreatedAt:  time.Now(),
	}
	lines := []sales.SaleLineForTicket{
		{SaleLine: entity.SaleLine{ProductID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(10), Subtotal: decimal.NewFromInt(20)}, ProductName: "Arroz 1kg"},
		{SaleLine: entity.SaleLine{ProductID: 2, Quantity: 1, UnitPrice: decimal.NewFromInt(5), Subtotal: decimal.NewFromInt(5)}, ProductName: "Panela"},
	}

	out, err := pdf.NewMarotoTicketGenerator("Tienda Centro").GenerateSaleTicket(context.Background(), sale, lines)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
