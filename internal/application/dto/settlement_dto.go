package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
)

// Los nombres de campo JSON de este archivo son contrato con los
// consumidores existentes del motor (frontend admin y exportes): no
// renombrar sin coordinar.

// OnlineSaleInput conteo de un canal online en la entrada de cálculo.
type OnlineSaleInput struct {
	ChannelCode string `json:"channelCode"`
	ChannelName string `json:"channelName,omitempty"`
	Count       int64  `json:"count"`
}

// SalesInput entrada del cálculo directo de liquidación.
type SalesInput struct {
	OnlineSales  []OnlineSaleInput `json:"onlineSales"`
	OfflineCount int64             `json:"offlineCount"`
}

// CompanyConfig unidades por visitante del contrato entre las partes.
// AgencyFeeBase es informativo ("operatorNet" es la única base que el
// motor soporta); se conserva por compatibilidad con el shape original.
type CompanyConfig struct {
	MazePaymentPerPerson   int64           `json:"mazePaymentPerPerson"`
	CulturePaymentFromSkp  int64           `json:"culturePaymentFromSkp"`
	CulturePaymentFromMaze int64           `json:"culturePaymentFromMaze"`
	PlatformFeeToSkp       int64           `json:"platformFeeToSkp"`
	AgencyFeeRate          decimal.Decimal `json:"agencyFeeRate"`
	AgencyFeeBase          string          `json:"agencyFeeBase,omitempty"`
}

// SettlementConfigInput configuración del cálculo directo. ChannelFeeRates
// mapea código de canal a porcentaje; un canal ausente se calcula sin
// comisión (multiplicador 1).
type SettlementConfigInput struct {
	BasePrice       int64                      `json:"basePrice"`
	ChannelFeeRates map[string]decimal.Decimal `json:"channelFeeRates"`
	Company         CompanyConfig              `json:"company"`
}

// CalculateSettlementRequest body para POST /api/settlement/calculate.
// Sin config se usan las unidades configuradas del servicio.
type CalculateSettlementRequest struct {
	PeriodStart string                 `json:"periodStart,omitempty"`
	PeriodEnd   string                 `json:"periodEnd,omitempty"`
	Sales       SalesInput             `json:"sales"`
	Config      *SettlementConfigInput `json:"config,omitempty"`
}

// PartySettlementResponse resultado de una parte.
type PartySettlementResponse struct {
	CompanyCode string           `json:"companyCode"`
	CompanyName string           `json:"companyName"`
	Revenue     int64            `json:"revenue"`
	Income      int64            `json:"income"`
	Cost        int64            `json:"cost"`
	Profit      int64            `json:"profit"`
	ProfitRate  decimal.Decimal  `json:"profitRate"`
	Details     map[string]int64 `json:"details,omitempty"`
}

// ChannelBreakdownResponse desglose por canal online.
type ChannelBreakdownResponse struct {
	ChannelCode string          `json:"channelCode"`
	ChannelName string          `json:"channelName"`
	Count       int64           `json:"count"`
	FeeRate     decimal.Decimal `json:"feeRate"`
	Revenue     int64           `json:"revenue"`
	Fee         int64           `json:"fee"`
	NetRevenue  int64           `json:"netRevenue"`
}

// SettlementResponse liquidación de un período.
type SettlementResponse struct {
	PeriodStart      string                     `json:"periodStart"`
	PeriodEnd        string                     `json:"periodEnd"`
	TotalCount       int64                      `json:"totalCount"`
	OnlineCount      int64                      `json:"onlineCount"`
	OfflineCount     int64                      `json:"offlineCount"`
	Settlements      []PartySettlementResponse  `json:"settlements"`
	ChannelBreakdown []ChannelBreakdownResponse `json:"channelBreakdown"`
	CalculatedAt     time.Time                  `json:"calculatedAt"`
}

// NewSettlementResponse mapea la entidad de dominio a la respuesta.
func NewSettlementResponse(r *entity.SettlementResult) *SettlementResponse {
	resp := &SettlementResponse{
		PeriodStart:      r.PeriodStart,
		PeriodEnd:        r.PeriodEnd,
		TotalCount:       r.TotalCount,
		OnlineCount:      r.OnlineCount,
		OfflineCount:     r.OfflineCount,
		Settlements:      make([]PartySettlementResponse, 0, len(r.Settlements)),
		ChannelBreakdown: make([]ChannelBreakdownResponse, 0, len(r.ChannelBreakdown)),
		CalculatedAt:     r.CalculatedAt,
	}
	for _, p := range r.Settlements {
		resp.Settlements = append(resp.Settlements, PartySettlementResponse{
			CompanyCode: p.CompanyCode,
			CompanyName: p.CompanyName,
			Revenue:     p.Revenue,
			Income:      p.Income,
			Cost:        p.Cost,
			Profit:      p.Profit,
			ProfitRate:  p.ProfitRate,
			Details:     p.Details,
		})
	}
	for _, b := range r.ChannelBreakdown {
		resp.ChannelBreakdown = append(resp.ChannelBreakdown, ChannelBreakdownResponse{
			ChannelCode: b.ChannelCode,
			ChannelName: b.ChannelName,
			Count:       b.Count,
			FeeRate:     b.FeeRate,
			Revenue:     b.Revenue,
			Fee:         b.Fee,
			NetRevenue:  b.NetRevenue,
		})
	}
	return resp
}

// MonthlySettlementResponse liquidación de un mes dentro de un rollup.
type MonthlySettlementResponse struct {
	Year   int                 `json:"year"`
	Month  int                 `json:"month"`
	Result *SettlementResponse `json:"result"`
}

// PartyTotalsResponse acumulado por parte.
type PartyTotalsResponse struct {
	CompanyCode string `json:"companyCode"`
	CompanyName string `json:"companyName"`
	Revenue     int64  `json:"revenue"`
	Income      int64  `json:"income"`
	Cost        int64  `json:"cost"`
	Profit      int64  `json:"profit"`
}

// CumulativeViewResponse rollup anual u histórico.
type CumulativeViewResponse struct {
	Scope            string                      `json:"scope"`
	Period           string                      `json:"period"`
	MonthCount       int                         `json:"monthCount"`
	TotalVisitors    int64                       `json:"totalVisitors"`
	MonthlyBreakdown []MonthlySettlementResponse `json:"monthlyBreakdown"`
	PartyTotals      []PartyTotalsResponse       `json:"perPartyTotals"`
}

// NewCumulativeViewResponse mapea la vista acumulada del dominio.
func NewCumulativeViewResponse(v *entity.CumulativeView) *CumulativeViewResponse {
	resp := &CumulativeViewResponse{
		Scope:            v.Scope,
		Period:           v.Period,
		MonthCount:       v.MonthCount,
		TotalVisitors:    v.TotalVisitors,
		MonthlyBreakdown: make([]MonthlySettlementResponse, 0, len(v.MonthlyBreakdown)),
		PartyTotals:      make([]PartyTotalsResponse, 0, len(v.PartyTotals)),
	}
	for _, m := range v.MonthlyBreakdown {
		resp.MonthlyBreakdown = append(resp.MonthlyBreakdown, MonthlySettlementResponse{
			Year:   m.Year,
			Month:  m.Month,
			Result: NewSettlementResponse(m.Result),
		})
	}
	for _, pt := range v.PartyTotals {
		resp.PartyTotals = append(resp.PartyTotals, PartyTotalsResponse{
			CompanyCode: pt.CompanyCode,
			CompanyName: pt.CompanyName,
			Revenue:     pt.Revenue,
			Income:      pt.Income,
			Cost:        pt.Cost,
			Profit:      pt.Profit,
		})
	}
	return resp
}
