package aggregation

import (
	"sort"
	"strconv"

	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
)

// RollupYear acumula las liquidaciones mensuales de un año: visitantes
// totales y revenue/income/cost/profit por parte, con el desglose mensual
// concreto que se usó. Una entrada vacía produce un resultado en cero, no
// un error.
func RollupYear(year int, months []entity.MonthlySettlement) *entity.CumulativeView {
	filtered := make([]entity.MonthlySettlement, 0, len(months))
	for _, m := range months {
		if m.Year == year {
			filtered = append(filtered, m)
		}
	}
	view := rollup(filtered)
	view.Scope = entity.RollupScopeYear
	view.Period = strconv.Itoa(year)
	return view
}

// RollupAll acumula todas las liquidaciones mensuales disponibles, de
// cualquier año.
func RollupAll(months []entity.MonthlySettlement) *entity.CumulativeView {
	view := rollup(months)
	view.Scope = entity.RollupScopeAll
	view.Period = "all"
	return view
}

func rollup(months []entity.MonthlySettlement) *entity.CumulativeView {
	sorted := make([]entity.MonthlySettlement, len(months))
	copy(sorted, months)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Year != sorted[j].Year {
			return sorted[i].Year < sorted[j].Year
		}
		return sorted[i].Month < sorted[j].Month
	})

	totals := make(map[string]*entity.PartyTotals)
	for _, code := range entity.PartyCodes() {
		totals[code] = &entity.PartyTotals{
			CompanyCode: code,
			CompanyName: entity.PartyName(code),
		}
	}

	view := &entity.CumulativeView{
		MonthCount:       len(sorted),
		MonthlyBreakdown: sorted,
	}
	for _, m := range sorted {
		if m.Result == nil {
			continue
		}
		view.TotalVisitors += m.Result.TotalCount
		for _, p := range m.Result.Settlements {
			t, ok := totals[p.CompanyCode]
			if !ok {
				t = &entity.PartyTotals{CompanyCode: p.CompanyCode, CompanyName: p.CompanyName}
				totals[p.CompanyCode] = t
			}
			t.Revenue += p.Revenue
			t.Income += p.Income
			t.Cost += p.Cost
			t.Profit += p.Profit
		}
	}

	for _, code := range entity.PartyCodes() {
		view.PartyTotals = append(view.PartyTotals, *totals[code])
	}
	return view
}
