package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Códigos de las cuatro partes de la liquidación.
const (
	PartyOperator = "SKP"     // operadora de ticketing
	PartyVenue    = "MAZE"    // propietario del recinto
	PartyFacility = "CULTURE" // socio de instalaciones
	PartyAgency   = "FMC"     // agencia operadora
)

// PartyName nombre de display de una parte.
func PartyName(code string) string {
	switch code {
	case PartyOperator:
		return "SKP (operadora de ticketing)"
	case PartyVenue:
		return "MAZE (propietario del recinto)"
	case PartyFacility:
		return "CULTURE (socio de instalaciones)"
	case PartyAgency:
		return "FMC (agencia operadora)"
	default:
		return code
	}
}

// PartyCodes las cuatro partes en el orden canónico de reporte.
func PartyCodes() []string {
	return []string{PartyOperator, PartyVenue, PartyFacility, PartyAgency}
}

// PartySettlement resultado de una parte para un período.
// Invariante: Income - Cost == Profit.
type PartySettlement struct {
	CompanyCode string
	CompanyName string
	Revenue     int64
	Income      int64
	Cost        int64
	Profit      int64
	ProfitRate  decimal.Decimal  // porcentaje con dos decimales; 0 si Income <= 0
	Details     map[string]int64 // componentes del cálculo, por nombre
}

// ChannelBreakdown desglose por canal online (o por par canal+tarifa si la
// tarifa varió dentro del período). Invariante: NetRevenue + Fee == Revenue.
type ChannelBreakdown struct {
	ChannelCode string
	ChannelName string
	Count       int64
	FeeRate     decimal.Decimal // porcentaje
	Revenue     int64           // bruto al precio base
	Fee         int64
	NetRevenue  int64
}

// SettlementResult liquidación de un período para las cuatro partes.
// Invariante: TotalCount == OnlineCount + OfflineCount.
type SettlementResult struct {
	PeriodStart      string // YYYY-MM-DD
	PeriodEnd        string
	TotalCount       int64
	OnlineCount      int64
	OfflineCount     int64
	Settlements      []PartySettlement
	ChannelBreakdown []ChannelBreakdown
	CalculatedAt     time.Time
}

// Party busca el resultado de una parte por código.
func (r *SettlementResult) Party(code string) *PartySettlement {
	for i := range r.Settlements {
		if r.Settlements[i].CompanyCode == code {
			return &r.Settlements[i]
		}
	}
	return nil
}

// MonthlySettlement liquidación de un mes concreto, insumo de los rollups.
type MonthlySettlement struct {
	Year   int
	Month  int
	Result *SettlementResult
}

// PartyTotals acumulado por parte a través de varios meses.
type PartyTotals struct {
	CompanyCode string
	CompanyName string
	Revenue     int64
	Income      int64
	Cost        int64
	Profit      int64
}

// Alcances de un rollup acumulado.
const (
	RollupScopeYear = "year"
	RollupScopeAll  = "all"
)

// CumulativeView rollup anual o histórico de liquidaciones mensuales.
type CumulativeView struct {
	Scope            string // year | all
	Period           string // "2025" para anual, "all" para histórico
	MonthCount       int
	TotalVisitors    int64
	MonthlyBreakdown []MonthlySettlement
	PartyTotals      []PartyTotals
}
