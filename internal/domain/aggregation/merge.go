package aggregation

import (
	"sort"

	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
)

// MergeDailyRecords fusiona los días almacenados de un mes con una nueva
// carga: ambos conjuntos se indexan por fecha, las fechas de la carga
// nueva PISAN a las existentes y el resultado es la unión ordenada
// ascendente. Idempotente: aplicar dos veces la misma carga da lo mismo
// que aplicarla una vez.
func MergeDailyRecords(existing, incoming []*entity.DailySaleRecord) []*entity.DailySaleRecord {
	byDate := make(map[string]*entity.DailySaleRecord, len(existing)+len(incoming))
	for _, r := range existing {
		byDate[r.Date] = r
	}
	for _, r := range incoming {
		byDate[r.Date] = r
	}

	out := make([]*entity.DailySaleRecord, 0, len(byDate))
	for _, r := range byDate {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// MergeMonthlyTotals fusiona totales mensuales en una recarga. Los totales
// de la planilla nueva son snapshots acumulados "mes a la fecha", NO
// deltas: se reemplazan clave a clave, nunca se suman con los previos
// (sumarlos duplicaría los visitantes). Las claves que la carga nueva no
// menciona conservan su valor anterior.
func MergeMonthlyTotals(existing, incoming *entity.MonthlyTotals) *entity.MonthlyTotals {
	if incoming == nil {
		if existing == nil {
			return nil
		}
		return existing.Clone()
	}

	out := &entity.MonthlyTotals{
		ChannelTotals:  make(map[string]int64),
		CategoryTotals: make(map[string]int64),
	}
	if existing != nil {
		for k, v := range existing.ChannelTotals {
			out.ChannelTotals[k] = v
		}
		for k, v := range existing.CategoryTotals {
			out.CategoryTotals[k] = v
		}
	}
	for k, v := range incoming.ChannelTotals {
		out.ChannelTotals[k] = v
	}
	for k, v := range incoming.CategoryTotals {
		out.CategoryTotals[k] = v
	}
	return out
}
