package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Origen de un registro diario.
const (
	RecordSourceUpload = "upload" // ingestado desde planilla normalizada
	RecordSourceManual = "manual" // editado a mano, desacoplado de su fuente diaria
)

// ChannelSale venta online de un canal en un día. FeeRate se captura al
// ingestar (no se recalcula después) para que la liquidación histórica sea
// reproducible aunque cambien las tarifas del maestro.
type ChannelSale struct {
	ChannelCode string
	Count       int64
	FeeRate     decimal.Decimal // porcentaje capturado al momento de la carga
}

// CategorySale venta offline de una categoría en un día. Sin comisión.
type CategorySale struct {
	CategoryCode string
	Count        int64
}

// DailySaleRecord ventas de un día calendario. Es la fuente de verdad de la
// que siempre se rederivan los agregados mensuales y la liquidación.
type DailySaleRecord struct {
	ID            string
	Date          string // YYYY-MM-DD
	ChannelSales  []ChannelSale
	CategorySales []CategorySale
	Source        string // upload | manual
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OnlineCount total de ventas online del día.
func (r *DailySaleRecord) OnlineCount() int64 {
	var n int64
	for _, s := range r.ChannelSales {
		n += s.Count
	}
	return n
}

// OfflineCount total de ventas offline del día.
func (r *DailySaleRecord) OfflineCount() int64 {
	var n int64
	for _, s := range r.CategorySales {
		n += s.Count
	}
	return n
}

// TotalCount visitantes del día (online + offline).
func (r *DailySaleRecord) TotalCount() int64 {
	return r.OnlineCount() + r.OfflineCount()
}

// YearMonth período (año, mes) usado como clave de agregación.
type YearMonth struct {
	Year  int
	Month int
}

// String clave YYYY-MM.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

// FirstDay y LastDay límites del mes en formato ISO YYYY-MM-DD.
func (ym YearMonth) FirstDay() string {
	return fmt.Sprintf("%04d-%02d-01", ym.Year, ym.Month)
}

func (ym YearMonth) LastDay() string {
	t := time.Date(ym.Year, time.Month(ym.Month)+1, 0, 0, 0, 0, 0, time.UTC)
	return t.Format("2006-01-02")
}

// ContainsDate indica si una fecha ISO cae dentro del mes.
func (ym YearMonth) ContainsDate(date string) bool {
	return ym.FirstDay() <= date && date <= ym.LastDay()
}
