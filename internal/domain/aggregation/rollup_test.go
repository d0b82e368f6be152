package aggregation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Liquidacion-api/internal/domain/aggregation"
	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
	"github.com/jhoicas/Liquidacion-api/internal/domain/settlement"
)

func monthResult(year, month int, online, offline int64) entity.MonthlySettlement {
	sales := []settlement.OnlineChannelSale{{
		ChannelCode: entity.ChannelNaver,
		Count:       online,
		FeeRate:     decimal.NewFromInt(10),
	}}
	ym := entity.YearMonth{Year: year, Month: month}
	return entity.MonthlySettlement{
		Year:   year,
		Month:  month,
		Result: settlement.Calculate(sales, offline, settlement.DefaultCascadeConfig(), ym.FirstDay(), ym.LastDay()),
	}
}

func TestRollupYear_SumaPorParte(t *testing.T) {
	months := []entity.MonthlySettlement{
		monthResult(2025, 1, 100, 200),
		monthResult(2025, 2, 150, 250),
		monthResult(2024, 12, 999, 999), // otro año: fuera del rollup
	}

	view := aggregation.RollupYear(2025, months)

	assert.Equal(t, entity.RollupScopeYear, view.Scope)
	assert.Equal(t, "2025", view.Period)
	assert.Equal(t, 2, view.MonthCount)
	assert.Equal(t, int64(700), view.TotalVisitors)
	require.Len(t, view.MonthlyBreakdown, 2)

	// El acumulado por parte es la suma de los meses incluidos
	require.Len(t, view.PartyTotals, 4)
	for _, pt := range view.PartyTotals {
		var income, cost, profit int64
		for _, m := range view.MonthlyBreakdown {
			p := m.Result.Party(pt.CompanyCode)
			require.NotNil(t, p)
			income += p.Income
			cost += p.Cost
			profit += p.Profit
		}
		assert.Equal(t, income, pt.Income, "income acumulado de %s", pt.CompanyCode)
		assert.Equal(t, cost, pt.Cost, "cost acumulado de %s", pt.CompanyCode)
		assert.Equal(t, profit, pt.Profit, "profit acumulado de %s", pt.CompanyCode)
		assert.Equal(t, pt.Profit, pt.Income-pt.Cost, "identidad de ganancia de %s", pt.CompanyCode)
	}
}

func TestRollupAll_TodosLosMeses(t *testing.T) {
	months := []entity.MonthlySettlement{
		monthResult(2024, 11, 50, 50),
		monthResult(2025, 1, 100, 200),
	}

	view := aggregation.RollupAll(months)

	assert.Equal(t, entity.RollupScopeAll, view.Scope)
	assert.Equal(t, "all", view.Period)
	assert.Equal(t, 2, view.MonthCount)
	assert.Equal(t, int64(400), view.TotalVisitors)

	// Desglose ordenado cronológicamente
	assert.Equal(t, 2024, view.MonthlyBreakdown[0].Year)
	assert.Equal(t, 2025, view.MonthlyBreakdown[1].Year)
}

func TestRollup_EntradaVacia(t *testing.T) {
	yearView := aggregation.RollupYear(2025, nil)
	allView := aggregation.RollupAll(nil)

	for _, view := range []*entity.CumulativeView{yearView, allView} {
		assert.Zero(t, view.MonthCount)
		assert.Zero(t, view.TotalVisitors)
		assert.Empty(t, view.MonthlyBreakdown)
		require.Len(t, view.PartyTotals, 4, "las cuatro partes aparecen aunque no haya datos")
		for _, pt := range view.PartyTotals {
			assert.Zero(t, pt.Profit)
		}
	}
}
