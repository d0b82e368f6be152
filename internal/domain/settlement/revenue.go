package settlement

import "github.com/shopspring/decimal"

// ChannelRevenue ingreso de un canal a un precio unitario.
// Invariantes: NetRevenue + Fee == GrossRevenue; todo cero con count 0;
// sin valores negativos para entradas no negativas.
type ChannelRevenue struct {
	GrossRevenue int64
	Fee          int64
	NetRevenue   int64
}

// ComputeChannelRevenue calcula bruto, comisión y neto para un canal.
// feeRate es porcentaje; la comisión se redondea half-up al KRW entero.
func ComputeChannelRevenue(unitPrice int64, feeRate decimal.Decimal, count int64) ChannelRevenue {
	gross := unitPrice * count
	fee := roundHalfUp(decimal.NewFromInt(gross).Mul(feeRate).Div(decimal.NewFromInt(100)))
	return ChannelRevenue{
		GrossRevenue: gross,
		Fee:          fee,
		NetRevenue:   gross - fee,
	}
}

// roundHalfUp redondea al entero más cercano, .5 hacia arriba.
// decimal.Round redondea half-away-from-zero, que para los montos no
// negativos de este motor equivale a half-up.
func roundHalfUp(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
