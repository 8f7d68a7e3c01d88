package validator_test

import (
	"testing"

	"github.com/jhoicas/apimarket/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0,max=2147483647"`
}

type order struct {
	Kind  string          `json:"kind" validate:"required,oneof=inbound outbound"`
	Price decimal.Decimal `json:"price" validate:"money"`
	Items []item          `json:"items" validate:"required,min=1,dive"`
}

func TestStruct_Valid(t *testing.T) {
	errs := validator.Struct(order{Kind: "inbound", Price: decimal.NewFromInt(2), Items: []item{{ProductID: 1, Quantity: 1}}})
	assert.Empty(t, errs)
}

func TestStruct_ReportsJSONFieldPaths(t *testing.T) {
	errs := validator.Struct(order{Kind: "otro", Price: decimal.NewFromInt(-1), Items: []item{{ProductID: 1, Quantity: 0}}})
	require.Len(t, errs, 3)
	assert.Equal(t, "kind", errs[0].Field)
	assert.Equal(t, "oneof", errs[0].Tag)
	assert.Equal(t, "price", errs[1].Field)
	assert.Equal(t, "debe ser un monto no negativo con máximo 2 decimales", errs[1].Message())
	assert.Equal(t, "items[0].quantity", errs[2].Field)
	assert.Equal(t, "es obligatorio", errs[2].Message())
}

func TestStruct_EmptySlice(t *testing.T) {
	errs := validator.Struct(order{Kind: "outbound"})
	require.Len(t, errs, 1)
	assert.Equal(t, "items", errs[0].Field)
}

func TestStruct_Money(t *testing.T) {
	cases := []struct {
		price string
		valid bool
	}{
		{"0", true},
		{"5.5", true},
		{"1234.50", true},
		{"1.500", true},
		{"999999999999.99", true},
		{"1.505", false},
		{"0.001", false},
		{"-0.01", false},
		{"1000000000000", false},
	}
	for _, tc := range cases {
		t.Run(tc.price, func(t *testing.T) {
			errs := validator.Struct(order{Kind: "inbound", Price: decimal.RequireFromString(tc.price), Items: []item{{ProductID: 1, Quantity: 1}}})
			if tc.valid {
				assert.Empty(t, errs)
			} else {
				require.Len(t, errs, 1)
				assert.Equal(t, "price", errs[0].Field)
				assert.Equal(t, "money", errs[0].Tag)
			}
		})
	}
}

func TestStruct_QuantityUpperBound(t *testing.T) {
	errs := validator.Struct(order{Kind: "inbound", Items: []item{{ProductID: 1, Quantity: 2147483648}}})
	require.Len(t, errs, 1)
	assert.Equal(t, "items[0].quantity", errs[0].Field)
	assert.Equal(t, "max", errs[0].Tag)
}
