package entity

// MonthlyTotals totales mensuales por canal y categoría. En una recarga
// representan un snapshot acumulado "mes a la fecha" de la planilla origen,
// no un delta incremental: por eso NUNCA se suman con totales previos.
type MonthlyTotals struct {
	ChannelTotals  map[string]int64
	CategoryTotals map[string]int64
}

// OnlineCount suma de los totales por canal.
func (t *MonthlyTotals) OnlineCount() int64 {
	var n int64
	for _, c := range t.ChannelTotals {
		n += c
	}
	return n
}

// OfflineCount suma de los totales por categoría.
func (t *MonthlyTotals) OfflineCount() int64 {
	var n int64
	for _, c := range t.CategoryTotals {
		n += c
	}
	return n
}

// Clone copia profunda (los mapas se comparten por referencia en Go).
func (t *MonthlyTotals) Clone() *MonthlyTotals {
	out := &MonthlyTotals{
		ChannelTotals:  make(map[string]int64, len(t.ChannelTotals)),
		CategoryTotals: make(map[string]int64, len(t.CategoryTotals)),
	}
	for k, v := range t.ChannelTotals {
		out.ChannelTotals[k] = v
	}
	for k, v := range t.CategoryTotals {
		out.CategoryTotals[k] = v
	}
	return out
}

// TotalsMismatch señal no fatal: el total reportado por la planilla no
// coincide con la suma de sus filas diarias. La liquidación se calcula
// igual con las sumas por fila; el caller decide si avisa a un humano.
type TotalsMismatch struct {
	RowTotal      int64 // suma de las filas diarias
	ReportedTotal int64 // fila "total del mes" de la planilla
}

// MonthlySummary resumen del mes: conteos e ingresos al precio base.
type MonthlySummary struct {
	OnlineCount  int64
	OfflineCount int64
	TotalCount   int64
	GrossRevenue int64 // precio base * visitantes
	FeeTotal     int64 // comisiones de canales online (tarifas capturadas)
	NetRevenue   int64 // GrossRevenue - FeeTotal
}

// MonthlyAggregate agregado mensual derivado. Siempre recomputable desde
// los DailySaleRecord del mes más su MonthlyFeeSettings; nunca se edita a
// mano sin marcar la fuente diaria como manual.
type MonthlyAggregate struct {
	Year           int
	Month          int
	ChannelTotals  map[string]int64
	CategoryTotals map[string]int64
	Summary        MonthlySummary
	Mismatch       *TotalsMismatch // nil si los totales cuadran o no hubo fila de totales
}
