package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
)

// ChannelSaleDTO venta diaria de un canal. FeeRate es opcional: si la
// carga no la trae, se resuelve con la configuración del mes al ingerir.
type ChannelSaleDTO struct {
	ChannelCode string           `json:"channelCode"`
	Count       int64            `json:"count"`
	FeeRate     *decimal.Decimal `json:"feeRate,omitempty"`
}

// CategorySaleDTO venta diaria de una categoría offline.
type CategorySaleDTO struct {
	CategoryCode string `json:"categoryCode"`
	Count        int64  `json:"count"`
}

// DailyRecordDTO fila diaria de una carga o lectura de ventas.
type DailyRecordDTO struct {
	Date          string            `json:"date"`
	ChannelSales  []ChannelSaleDTO  `json:"channelSales"`
	CategorySales []CategorySaleDTO `json:"categorySales"`
}

// ReportedTotalsDTO totales "mes a la fecha" que acompañan una carga.
type ReportedTotalsDTO struct {
	ChannelTotals  map[string]int64 `json:"channelTotals"`
	CategoryTotals map[string]int64 `json:"categoryTotals"`
}

// UploadSalesRequest body para POST /api/sales/:year/:month/upload.
type UploadSalesRequest struct {
	Records        []DailyRecordDTO   `json:"records"`
	ReportedTotals *ReportedTotalsDTO `json:"reportedTotals,omitempty"`
}

// UploadSalesResponse resultado de una carga. HasMismatch indica que los
// totales reportados no cuadran con la suma de filas; la carga se guarda
// igual y la discrepancia se devuelve para revisión.
type UploadSalesResponse struct {
	Year          int   `json:"year"`
	Month         int   `json:"month"`
	DayCount      int   `json:"dayCount"`
	TotalCount    int64 `json:"totalCount"`
	OnlineCount   int64 `json:"onlineCount"`
	OfflineCount  int64 `json:"offlineCount"`
	HasMismatch   bool  `json:"hasMismatch"`
	RowTotal      int64 `json:"rowTotal,omitempty"`
	ReportedTotal int64 `json:"reportedTotal,omitempty"`
}

// MonthSalesResponse ventas diarias y agregado de un mes.
type MonthSalesResponse struct {
	Year           int                `json:"year"`
	Month          int                `json:"month"`
	Records        []DailyRecordDTO   `json:"records"`
	ChannelTotals  map[string]int64   `json:"channelTotals"`
	CategoryTotals map[string]int64   `json:"categoryTotals"`
	Summary        MonthlySummaryDTO  `json:"summary"`
	Mismatch       *TotalsMismatchDTO `json:"mismatch,omitempty"`
}

// MonthlySummaryDTO resumen de conteos e ingresos del mes.
type MonthlySummaryDTO struct {
	OnlineCount  int64 `json:"onlineCount"`
	OfflineCount int64 `json:"offlineCount"`
	TotalCount   int64 `json:"totalCount"`
	GrossRevenue int64 `json:"grossRevenue"`
	FeeTotal     int64 `json:"feeTotal"`
	NetRevenue   int64 `json:"netRevenue"`
}

// TotalsMismatchDTO discrepancia entre suma de filas y totales reportados.
type TotalsMismatchDTO struct {
	RowTotal      int64 `json:"rowTotal"`
	ReportedTotal int64 `json:"reportedTotal"`
}

// DistributeRequest body para POST /api/sales/:year/:month/distribute.
// Targets mapea código (canal o categoría) a total mensual a repartir
// entre los días existentes según su peso de visitantes.
type DistributeRequest struct {
	Targets map[string]int64 `json:"targets"`
}

// DayAllocationDTO asignación de un día tras repartir.
type DayAllocationDTO struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// DistributeResponse reparto resultante por código.
type DistributeResponse struct {
	Year        int                           `json:"year"`
	Month       int                           `json:"month"`
	Allocations map[string][]DayAllocationDTO `json:"allocations"`
}

// NewDailyRecordDTO mapea un registro diario del dominio.
func NewDailyRecordDTO(r *entity.DailySaleRecord) DailyRecordDTO {
	out := DailyRecordDTO{
		Date:          r.Date,
		ChannelSales:  make([]ChannelSaleDTO, 0, len(r.ChannelSales)),
		CategorySales: make([]CategorySaleDTO, 0, len(r.CategorySales)),
	}
	for _, cs := range r.ChannelSales {
		rate := cs.FeeRate
		out.ChannelSales = append(out.ChannelSales, ChannelSaleDTO{
			ChannelCode: cs.ChannelCode,
			Count:       cs.Count,
			FeeRate:     &rate,
		})
	}
	for _, cs := range r.CategorySales {
		out.CategorySales = append(out.CategorySales, CategorySaleDTO{
			CategoryCode: cs.CategoryCode,
			Count:        cs.Count,
		})
	}
	return out
}

// NewMonthSalesResponse arma la respuesta de mes desde el agregado.
func NewMonthSalesResponse(agg *entity.MonthlyAggregate, records []*entity.DailySaleRecord) *MonthSalesResponse {
	resp := &MonthSalesResponse{
		Year:           agg.Year,
		Month:          agg.Month,
		Records:        make([]DailyRecordDTO, 0, len(records)),
		ChannelTotals:  agg.ChannelTotals,
		CategoryTotals: agg.CategoryTotals,
		Summary: MonthlySummaryDTO{
			OnlineCount:  agg.Summary.OnlineCount,
			OfflineCount: agg.Summary.OfflineCount,
			TotalCount:   agg.Summary.TotalCount,
			GrossRevenue: agg.Summary.GrossRevenue,
			FeeTotal:     agg.Summary.FeeTotal,
			NetRevenue:   agg.Summary.NetRevenue,
		},
	}
	if agg.Mismatch != nil {
		resp.Mismatch = &TotalsMismatchDTO{
			RowTotal:      agg.Mismatch.RowTotal,
			ReportedTotal: agg.Mismatch.ReportedTotal,
		}
	}
	for _, r := range records {
		resp.Records = append(resp.Records, NewDailyRecordDTO(r))
	}
	return resp
}
