package aggregation

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DayWeight peso de un día dentro del mes (ratio del objetivo que le toca).
type DayWeight struct {
	Date  string // YYYY-MM-DD
	Ratio decimal.Decimal
}

// DayAllocation conteo asignado a un día.
type DayAllocation struct {
	Date  string
	Count int64
}

// Distribute reparte un objetivo mensual entre días según su ratio.
//
// Cada día recibe floor(target * ratio), salvo el ÚLTIMO día cronológico,
// que absorbe el resto (max(0, target - repartido)) para que la suma
// reproduzca el objetivo exacto sin importar el redondeo de los ratios.
// Los días se ordenan ascendente antes de repartir: el resto cae siempre
// en el último día del mes, no en uno arbitrario, y el resultado es
// reproducible.
func Distribute(target int64, days []DayWeight) []DayAllocation {
	if len(days) == 0 {
		return nil
	}

	sorted := make([]DayWeight, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	out := make([]DayAllocation, len(sorted))
	t := decimal.NewFromInt(target)
	var distributed int64
	for i, d := range sorted {
		if i == len(sorted)-1 {
			rest := target - distributed
			if rest < 0 {
				rest = 0
			}
			out[i] = DayAllocation{Date: d.Date, Count: rest}
			break
		}
		n := t.Mul(d.Ratio).Floor().IntPart()
		distributed += n
		out[i] = DayAllocation{Date: d.Date, Count: n}
	}
	return out
}

// DistributeTargets aplica Distribute de forma independiente por cada
// objetivo (un objetivo por canal o categoría, indexado por código).
func DistributeTargets(targets map[string]int64, days []DayWeight) map[string][]DayAllocation {
	out := make(map[string][]DayAllocation, len(targets))
	for code, target := range targets {
		out[code] = Distribute(target, days)
	}
	return out
}
