package settlement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
)

// CascadeConfig unidades por visitante (KRW enteros) y tarifa de agencia
// de la cascada. Ver DefaultCascadeConfig para los valores de contrato.
type CascadeConfig struct {
	BasePrice              int64           // P: precio base de la entrada
	MazePaymentPerPerson   int64           // V: SKP -> MAZE por visitante
	CulturePaymentFromSkp  int64           // F1: SKP -> CULTURE por visitante
	CulturePaymentFromMaze int64           // F2: MAZE -> CULTURE por visitante
	PlatformFeeToSkp       int64           // PF: CULTURE -> SKP por visitante
	AgencyFeeRate          decimal.Decimal // A: porcentaje sobre la base de agencia
}

// DefaultCascadeConfig valores acordados por contrato entre las partes.
func DefaultCascadeConfig() CascadeConfig {
	return CascadeConfig{
		BasePrice:              3000,
		MazePaymentPerPerson:   1000,
		CulturePaymentFromSkp:  500,
		CulturePaymentFromMaze: 500,
		PlatformFeeToSkp:       200,
		AgencyFeeRate:          decimal.NewFromInt(20),
	}
}

// OnlineChannelSale conteo agregado de un canal online con su tarifa
// resuelta. Si la tarifa de un canal varió dentro del período (override),
// el caller pasa una entrada por cada par (canal, tarifa).
type OnlineChannelSale struct {
	ChannelCode string
	ChannelName string
	Count       int64
	FeeRate     decimal.Decimal // porcentaje
}

// totales intermedios de la cascada, acumulados sobre canales + offline.
type cascadeTotals struct {
	operatorRevenue    int64 // round(P*m*c)
	operatorToVenue    int64 // round(V*m*c)
	operatorToFacility int64 // round(F1*m*c)
	venueToFacility    int64 // round(F2*m*c)
	platformFee        int64 // round(PF*m*c), CULTURE -> SKP
}

// Calculate ejecuta la cascada de asignación de las cuatro partes para un
// período. Cálculo puro y determinista: aritmética entera con redondeo
// half-up, sin estado compartido.
//
// Por canal online con conteo c y tarifa f, el multiplicador es m = 1 - f.
// Las ventas offline usan m = 1 (sin comisión) sobre las mismas unidades.
func Calculate(online []OnlineChannelSale, offlineCount int64, cfg CascadeConfig, periodStart, periodEnd string) *entity.SettlementResult {
	var t cascadeTotals
	var onlineCount int64
	breakdown := make([]entity.ChannelBreakdown, 0, len(online))

	hundred := decimal.NewFromInt(100)
	for _, ch := range online {
		onlineCount += ch.Count
		m := decimal.NewFromInt(1).Sub(ch.FeeRate.Div(hundred))
		c := decimal.NewFromInt(ch.Count)
		scaled := func(unit int64) int64 {
			return roundHalfUp(decimal.NewFromInt(unit).Mul(m).Mul(c))
		}
		t.operatorRevenue += scaled(cfg.BasePrice)
		t.operatorToVenue += scaled(cfg.MazePaymentPerPerson)
		t.operatorToFacility += scaled(cfg.CulturePaymentFromSkp)
		t.venueToFacility += scaled(cfg.CulturePaymentFromMaze)
		t.platformFee += scaled(cfg.PlatformFeeToSkp)

		rev := ComputeChannelRevenue(cfg.BasePrice, ch.FeeRate, ch.Count)
		breakdown = append(breakdown, entity.ChannelBreakdown{
			ChannelCode: ch.ChannelCode,
			ChannelName: ch.ChannelName,
			Count:       ch.Count,
			FeeRate:     ch.FeeRate,
			Revenue:     rev.GrossRevenue,
			Fee:         rev.Fee,
			NetRevenue:  rev.NetRevenue,
		})
	}

	// Offline: m = 1, multiplicación directa por el conteo total.
	t.operatorRevenue += cfg.BasePrice * offlineCount
	t.operatorToVenue += cfg.MazePaymentPerPerson * offlineCount
	t.operatorToFacility += cfg.CulturePaymentFromSkp * offlineCount
	t.venueToFacility += cfg.CulturePaymentFromMaze * offlineCount
	t.platformFee += cfg.PlatformFeeToSkp * offlineCount

	// Fee de agencia: porcentaje sobre lo que le queda a la operadora
	// después de pagar al recinto y a las instalaciones.
	agencyBase := t.operatorRevenue - t.operatorToVenue - t.operatorToFacility
	agencyFee := roundHalfUp(decimal.NewFromInt(agencyBase).Mul(cfg.AgencyFeeRate).Div(hundred))

	operator := entity.PartySettlement{
		CompanyCode: entity.PartyOperator,
		CompanyName: entity.PartyName(entity.PartyOperator),
		Revenue:     t.operatorRevenue,
		Income:      t.operatorRevenue + t.platformFee,
		Cost:        t.operatorToVenue + t.operatorToFacility + agencyFee,
		Details: map[string]int64{
			"operatorRevenue": t.operatorRevenue,
			"platformFee":     t.platformFee,
			"toVenue":         t.operatorToVenue,
			"toFacility":      t.operatorToFacility,
			"agencyFee":       agencyFee,
		},
	}
	venue := entity.PartySettlement{
		CompanyCode: entity.PartyVenue,
		CompanyName: entity.PartyName(entity.PartyVenue),
		Revenue:     t.operatorToVenue,
		Income:      t.operatorToVenue,
		Cost:        t.venueToFacility,
		Details: map[string]int64{
			"fromOperator": t.operatorToVenue,
			"toFacility":   t.venueToFacility,
		},
	}
	facility := entity.PartySettlement{
		CompanyCode: entity.PartyFacility,
		CompanyName: entity.PartyName(entity.PartyFacility),
		Revenue:     t.operatorToFacility + t.venueToFacility,
		Income:      t.operatorToFacility + t.venueToFacility,
		Cost:        t.platformFee,
		Details: map[string]int64{
			"fromOperator": t.operatorToFacility,
			"fromVenue":    t.venueToFacility,
			"platformFee":  t.platformFee,
		},
	}
	agency := entity.PartySettlement{
		CompanyCode: entity.PartyAgency,
		CompanyName: entity.PartyName(entity.PartyAgency),
		Revenue:     agencyFee,
		Income:      agencyFee,
		Cost:        0,
		Details: map[string]int64{
			"agencyBase": agencyBase,
			"agencyFee":  agencyFee,
		},
	}

	parties := []entity.PartySettlement{operator, venue, facility, agency}
	for i := range parties {
		parties[i].Profit = parties[i].Income - parties[i].Cost
		parties[i].ProfitRate = profitRate(parties[i].Profit, parties[i].Income)
	}

	return &entity.SettlementResult{
		PeriodStart:      periodStart,
		PeriodEnd:        periodEnd,
		TotalCount:       onlineCount + offlineCount,
		OnlineCount:      onlineCount,
		OfflineCount:     offlineCount,
		Settlements:      parties,
		ChannelBreakdown: breakdown,
		CalculatedAt:     time.Now().UTC(),
	}
}

// profitRate porcentaje de ganancia con dos decimales: round(profit/income
// * 10000) / 100. Con income <= 0 devuelve 0, nunca NaN ni división por cero.
func profitRate(profit, income int64) decimal.Decimal {
	if income <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(profit).
		Div(decimal.NewFromInt(income)).
		Mul(decimal.NewFromInt(10000)).
		Round(0).
		Div(decimal.NewFromInt(100))
}
