package inventory

import "github.com/shopspring/decimal"

// CostCalculator calcula el costo promedio ponderado tras una entrada de mercancía (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// El resultado se redondea a 2 decimales.
func CostCalculator(stockActual int, costoActual decimal.Decimal, cantEntrada int, costoEntrada decimal.Decimal) decimal.Decimal {
	total := stockActual + cantEntrada
	if total <= 0 {
		return costoEntrada
	}
	if stockActual <= 0 {
		return costoEntrada.Round(2)
	}
	num := decimal.NewFromInt(int64(stockActual)).Mul(costoActual).
		Add(decimal.NewFromInt(int64(cantEntrada)).Mul(costoEntrada))
	return num.Div(decimal.NewFromInt(int64(total))).Round(2)
}
