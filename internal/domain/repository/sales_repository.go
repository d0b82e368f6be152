package repository

import "github.com/jhoicas/Liquidacion-api/internal/domain/entity"

// SalesRepository puerto de persistencia de los registros diarios de
// venta y los totales mensuales reportados por la planilla.
type SalesRepository interface {
	// ListMonth devuelve los registros del mes ordenados por fecha ascendente.
	ListMonth(year, month int) ([]*entity.DailySaleRecord, error)
	// ReplaceMonth reemplaza el conjunto completo de registros del mes.
	ReplaceMonth(year, month int, records []*entity.DailySaleRecord) error
	// GetTotals devuelve los totales mensuales reportados, o nil si no hay.
	GetTotals(year, month int) (*entity.MonthlyTotals, error)
	SaveTotals(year, month int, totals *entity.MonthlyTotals) error
	// ListMonthsWithData meses con al menos un registro, ascendente.
	ListMonthsWithData() ([]entity.YearMonth, error)
}
