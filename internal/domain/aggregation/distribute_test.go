package aggregation_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Liquidacion-api/internal/domain/aggregation"
)

func equalWeights(year, month, days int) []aggregation.DayWeight {
	ratio := decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(days)))
	out := make([]aggregation.DayWeight, days)
	for i := 0; i < days; i++ {
		out[i] = aggregation.DayWeight{
			Date:  fmt.Sprintf("%04d-%02d-%02d", year, month, i+1),
			Ratio: ratio,
		}
	}
	return out
}

func sumAllocations(allocs []aggregation.DayAllocation) int64 {
	var n int64
	for _, a := range allocs {
		n += a.Count
	}
	return n
}

// Escenario semilla 4: mes de 30 días, objetivo 100, ratios iguales de
// 1/30. El último día absorbe el resto de redondeo y la suma es exacta.
func TestDistribute_MesDe30Dias(t *testing.T) {
	allocs := aggregation.Distribute(100, equalWeights(2025, 4, 30))

	require.Len(t, allocs, 30)
	assert.Equal(t, int64(100), sumAllocations(allocs), "la suma debe reproducir el objetivo exacto")

	// floor(100/30) = 3 para los primeros 29 días; el último recibe 13
	for i := 0; i < 29; i++ {
		assert.Equal(t, int64(3), allocs[i].Count, "día %s", allocs[i].Date)
	}
	assert.Equal(t, "2025-04-30", allocs[29].Date, "el resto cae en el último día CRONOLÓGICO")
	assert.Equal(t, int64(13), allocs[29].Count)
}

func TestDistribute_MesDeUnSoloDia(t *testing.T) {
	allocs := aggregation.Distribute(42, equalWeights(2025, 4, 1))

	require.Len(t, allocs, 1)
	assert.Equal(t, int64(42), allocs[0].Count, "un solo día recibe el objetivo completo")
}

func TestDistribute_ObjetivoCero(t *testing.T) {
	allocs := aggregation.Distribute(0, equalWeights(2025, 4, 15))

	assert.Equal(t, int64(0), sumAllocations(allocs))
	for _, a := range allocs {
		assert.GreaterOrEqual(t, a.Count, int64(0))
	}
}

func TestDistribute_SinDias(t *testing.T) {
	assert.Nil(t, aggregation.Distribute(100, nil))
}

func TestDistribute_OrdenaAntesDeRepartir(t *testing.T) {
	// Días entregados en desorden: el resto debe caer igual en el último
	// día cronológico, no en el último de la lista.
	ratio := decimal.NewFromFloat(0.5)
	days := []aggregation.DayWeight{
		{Date: "2025-04-03", Ratio: ratio},
		{Date: "2025-04-01", Ratio: ratio},
		{Date: "2025-04-02", Ratio: ratio},
	}

	allocs := aggregation.Distribute(7, days)

	require.Len(t, allocs, 3)
	assert.Equal(t, "2025-04-01", allocs[0].Date)
	assert.Equal(t, int64(3), allocs[0].Count) // floor(7*0.5)
	assert.Equal(t, int64(3), allocs[1].Count)
	assert.Equal(t, "2025-04-03", allocs[2].Date)
	assert.Equal(t, int64(1), allocs[2].Count, "7 - 6 repartidos")
}

// Propiedad de exactitud: para cualquier objetivo y vector de ratios la
// suma reproduce el objetivo.
func TestDistribute_ExactitudConRatiosArbitrarios(t *testing.T) {
	days := []aggregation.DayWeight{
		{Date: "2025-04-01", Ratio: decimal.NewFromFloat(0.07)},
		{Date: "2025-04-02", Ratio: decimal.NewFromFloat(0.33)},
		{Date: "2025-04-03", Ratio: decimal.NewFromFloat(0.11)},
		{Date: "2025-04-04", Ratio: decimal.NewFromFloat(0.49)},
	}
	for _, target := range []int64{1, 7, 99, 1000, 123_456} {
		allocs := aggregation.Distribute(target, days)
		assert.Equal(t, target, sumAllocations(allocs), "objetivo %d", target)
	}
}

// El resto nunca es negativo: si los floors ya consumieron el objetivo,
// el último día recibe 0 (max(0, resto)).
func TestDistribute_RestoNuncaNegativo(t *testing.T) {
	// Ratios que suman más de 1 a propósito
	days := []aggregation.DayWeight{
		{Date: "2025-04-01", Ratio: decimal.NewFromFloat(0.9)},
		{Date: "2025-04-02", Ratio: decimal.NewFromFloat(0.9)},
		{Date: "2025-04-03", Ratio: decimal.NewFromFloat(0.1)},
	}

	allocs := aggregation.Distribute(10, days)

	for _, a := range allocs {
		assert.GreaterOrEqual(t, a.Count, int64(0), "día %s", a.Date)
	}
	assert.Equal(t, int64(0), allocs[2].Count)
}

func TestDistributeTargets_IndependientePorCodigo(t *testing.T) {
	targets := map[string]int64{"NAVER": 100, "GROUP": 31}
	out := aggregation.DistributeTargets(targets, equalWeights(2025, 4, 30))

	require.Len(t, out, 2)
	assert.Equal(t, int64(100), sumAllocations(out["NAVER"]))
	assert.Equal(t, int64(31), sumAllocations(out["GROUP"]))
}
