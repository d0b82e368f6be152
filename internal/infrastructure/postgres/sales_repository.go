package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
	"github.com/jhoicas/Liquidacion-api/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo implementación sobre PostgreSQL (usable con pool o tx).
// Los registros diarios viven en daily_sale_records con sus ventas por
// canal y categoría en tablas hijas (ON DELETE CASCADE); los totales
// mensuales reportados en monthly_totals como JSONB por clave.
type SalesRepo struct {
	q Querier
}

// NewSalesRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesRepository(q Querier) *SalesRepo {
	return &SalesRepo{q: q}
}

// ListMonth devuelve los registros del mes ordenados por fecha ascendente.
func (r *SalesRepo) ListMonth(year, month int) ([]*entity.DailySaleRecord, error) {
	ym := entity.YearMonth{Year: year, Month: month}
	const q = `
		SELECT id, sale_date, source, created_at, updated_at
		FROM daily_sale_records
		WHERE sale_date >= $1 AND sale_date <= $2
		ORDER BY sale_date`
	rows, err := r.q.Query(context.Background(), q, ym.FirstDay(), ym.LastDay())
	if err != nil {
		return nil, fmt.Errorf("list daily records: %w", err)
	}
	defer rows.Close()

	var records []*entity.DailySaleRecord
	byID := make(map[string]*entity.DailySaleRecord)
	for rows.Next() {
		var rec entity.DailySaleRecord
		var date time.Time
		if err := rows.Scan(&rec.ID, &date, &rec.Source, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan daily record: %w", err)
		}
		rec.Date = date.Format("2006-01-02")
		records = append(records, &rec)
		byID[rec.ID] = &rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	if err := r.loadChannelSales(ids, byID); err != nil {
		return nil, err
	}
	if err := r.loadCategorySales(ids, byID); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *SalesRepo) loadChannelSales(ids []string, byID map[string]*entity.DailySaleRecord) error {
	const q = `
		SELECT record_id, channel_code, visitor_count, fee_rate
		FROM daily_channel_sales
		WHERE record_id = ANY($1)
		ORDER BY channel_code`
	rows, err := r.q.Query(context.Background(), q, ids)
	if err != nil {
		return fmt.Errorf("list channel sales: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var recordID string
		var sale entity.ChannelSale
		if err := rows.Scan(&recordID, &sale.ChannelCode, &sale.Count, &sale.FeeRate); err != nil {
			return fmt.Errorf("scan channel sale: %w", err)
		}
		if rec, ok := byID[recordID]; ok {
			rec.ChannelSales = append(rec.ChannelSales, sale)
		}
	}
	return rows.Err()
}

func (r *SalesRepo) loadCategorySales(ids []string, byID map[string]*entity.DailySaleRecord) error {
	const q = `
		SELECT record_id, category_code, visitor_count
		FROM daily_category_sales
		WHERE record_id = ANY($1)
		ORDER BY category_code`
	rows, err := r.q.Query(context.Background(), q, ids)
	if err != nil {
		return fmt.Errorf("list category sales: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var recordID string
		var sale entity.CategorySale
		if err := rows.Scan(&recordID, &sale.CategoryCode, &sale.Count); err != nil {
			return fmt.Errorf("scan category sale: %w", err)
		}
		if rec, ok := byID[recordID]; ok {
			rec.CategorySales = append(rec.CategorySales, sale)
		}
	}
	return rows.Err()
}

// ReplaceMonth reemplaza el conjunto completo de registros del mes. Las
// tablas hijas caen por ON DELETE CASCADE. Llamar dentro de una tx
// (TxRunner) para no dejar el mes vacío si un insert falla.
func (r *SalesRepo) ReplaceMonth(year, month int, records []*entity.DailySaleRecord) error {
	ctx := context.Background()
	ym := entity.YearMonth{Year: year, Month: month}
	const del = `DELETE FROM daily_sale_records WHERE sale_date >= $1 AND sale_date <= $2`
	if _, err := r.q.Exec(ctx, del, ym.FirstDay(), ym.LastDay()); err != nil {
		return fmt.Errorf("delete daily records: %w", err)
	}

	const insRecord = `
		INSERT INTO daily_sale_records (id, sale_date, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	const insChannel = `
		INSERT INTO daily_channel_sales (record_id, channel_code, visitor_count, fee_rate)
		VALUES ($1, $2, $3, $4)`
	const insCategory = `
		INSERT INTO daily_category_sales (record_id, category_code, visitor_count)
		VALUES ($1, $2, $3)`
	for _, rec := range records {
		if _, err := r.q.Exec(ctx, insRecord, rec.ID, rec.Date, rec.Source, rec.CreatedAt, rec.UpdatedAt); err != nil {
			return fmt.Errorf("insert daily record %s: %w", rec.Date, err)
		}
		for _, s := range rec.ChannelSales {
			if _, err := r.q.Exec(ctx, insChannel, rec.ID, s.ChannelCode, s.Count, s.FeeRate); err != nil {
				return fmt.Errorf("insert channel sale %s/%s: %w", rec.Date, s.ChannelCode, err)
			}
		}
		for _, s := range rec.CategorySales {
			if _, err := r.q.Exec(ctx, insCategory, rec.ID, s.CategoryCode, s.Count); err != nil {
				return fmt.Errorf("insert category sale %s/%s: %w", rec.Date, s.CategoryCode, err)
			}
		}
	}
	return nil
}

// GetTotals devuelve los totales mensuales reportados, o nil si no hay.
func (r *SalesRepo) GetTotals(year, month int) (*entity.MonthlyTotals, error) {
	const q = `
		SELECT channel_totals, category_totals
		FROM monthly_totals
		WHERE year = $1 AND month = $2`
	var totals entity.MonthlyTotals
	err := r.q.QueryRow(context.Background(), q, year, month).
		Scan(&totals.ChannelTotals, &totals.CategoryTotals)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get monthly totals: %w", err)
	}
	return &totals, nil
}

// SaveTotals upsert de los totales reportados del mes.
func (r *SalesRepo) SaveTotals(year, month int, totals *entity.MonthlyTotals) error {
	const q = `
		INSERT INTO monthly_totals (year, month, channel_totals, category_totals, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (year, month)
		DO UPDATE SET channel_totals = $3, category_totals = $4, updated_at = now()`
	_, err := r.q.Exec(context.Background(), q, year, month, totals.ChannelTotals, totals.CategoryTotals)
	if err != nil {
		return fmt.Errorf("save monthly totals: %w", err)
	}
	return nil
}

// ListMonthsWithData meses con al menos un registro, ascendente.
func (r *SalesRepo) ListMonthsWithData() ([]entity.YearMonth, error) {
	const q = `
		SELECT DISTINCT
			EXTRACT(YEAR FROM sale_date)::int  AS y,
			EXTRACT(MONTH FROM sale_date)::int AS m
		FROM daily_sale_records
		ORDER BY y, m`
	rows, err := r.q.Query(context.Background(), q)
	if err != nil {
		return nil, fmt.Errorf("list months with data: %w", err)
	}
	defer rows.Close()
	var out []entity.YearMonth
	for rows.Next() {
		var ym entity.YearMonth
		if err := rows.Scan(&ym.Year, &ym.Month); err != nil {
			return nil, fmt.Errorf("scan month: %w", err)
		}
		out = append(out, ym)
	}
	return out, rows.Err()
}
