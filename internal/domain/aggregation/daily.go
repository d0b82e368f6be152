// Package aggregation implementa la agregación de registros diarios a
// totales mensuales, la distribución de objetivos mensuales de vuelta a
// días, la fusión de recargas y los rollups acumulados. Igual que el
// motor de liquidación, todo es puro sobre los datos recibidos.
package aggregation

import (
	"sort"

	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
	"github.com/jhoicas/Liquidacion-api/internal/domain/settlement"
)

// DailyAggregator acumula registros diarios en agregados mensuales.
type DailyAggregator struct {
	basePrice int64
}

// NewDailyAggregator construye el agregador con el precio base de entrada.
func NewDailyAggregator(basePrice int64) *DailyAggregator {
	return &DailyAggregator{basePrice: basePrice}
}

// Accumulate suma los conteos por canal y categoría de todos los días del
// mes y deriva el resumen. Si la planilla trajo una fila de totales
// mensuales (reported != nil), esos totales son los autoritativos — la
// fila "total del mes" gana sobre la suma de filas diarias — y la
// discrepancia se expone como señal no fatal en Mismatch.
func (a *DailyAggregator) Accumulate(ym entity.YearMonth, records []*entity.DailySaleRecord, reported *entity.MonthlyTotals) *entity.MonthlyAggregate {
	agg := &entity.MonthlyAggregate{
		Year:           ym.Year,
		Month:          ym.Month,
		ChannelTotals:  make(map[string]int64),
		CategoryTotals: make(map[string]int64),
	}

	sorted := sortedByDate(records)
	var gross, fees int64
	for _, r := range sorted {
		for _, s := range r.ChannelSales {
			agg.ChannelTotals[s.ChannelCode] += s.Count
			rev := settlement.ComputeChannelRevenue(a.basePrice, s.FeeRate, s.Count)
			gross += rev.GrossRevenue
			fees += rev.Fee
		}
		for _, s := range r.CategorySales {
			agg.CategoryTotals[s.CategoryCode] += s.Count
		}
	}

	rowTotals := &entity.MonthlyTotals{
		ChannelTotals:  agg.ChannelTotals,
		CategoryTotals: agg.CategoryTotals,
	}
	rowTotal := rowTotals.OnlineCount() + rowTotals.OfflineCount()

	if reported != nil {
		reportedTotal := reported.OnlineCount() + reported.OfflineCount()
		if reportedTotal != rowTotal {
			agg.Mismatch = &entity.TotalsMismatch{
				RowTotal:      rowTotal,
				ReportedTotal: reportedTotal,
			}
		}
		authoritative := reported.Clone()
		agg.ChannelTotals = authoritative.ChannelTotals
		agg.CategoryTotals = authoritative.CategoryTotals
	}

	online := (&entity.MonthlyTotals{ChannelTotals: agg.ChannelTotals}).OnlineCount()
	offline := (&entity.MonthlyTotals{CategoryTotals: agg.CategoryTotals}).OfflineCount()
	gross += a.basePrice * offline

	agg.Summary = entity.MonthlySummary{
		OnlineCount:  online,
		OfflineCount: offline,
		TotalCount:   online + offline,
		GrossRevenue: gross,
		FeeTotal:     fees,
		NetRevenue:   gross - fees,
	}
	return agg
}

// sortedByDate copia y ordena ascendente por fecha ISO (lexicográfico).
func sortedByDate(records []*entity.DailySaleRecord) []*entity.DailySaleRecord {
	out := make([]*entity.DailySaleRecord, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
