package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Liquidacion-api/internal/domain"
	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
	"github.com/jhoicas/Liquidacion-api/internal/domain/repository"
)

var _ repository.FeeSettingsRepository = (*FeeSettingsRepo)(nil)

// FeeSettingsRepo implementación sobre PostgreSQL de la configuración
// mensual de tarifas. Usa el pool directo porque SaveMonth necesita su
// propia transacción (delete + insert de los defaults del mes).
type FeeSettingsRepo struct {
	pool *pgxpool.Pool
}

// NewFeeSettingsRepository construye el repositorio.
func NewFeeSettingsRepository(pool *pgxpool.Pool) *FeeSettingsRepo {
	return &FeeSettingsRepo{pool: pool}
}

// GetMonth devuelve la configuración del mes, o nil si no existe. Los
// overrides salen en orden (created_at, id): la resolución de ventanas
// solapadas depende de ese orden estable.
func (r *FeeSettingsRepo) GetMonth(year, month int) (*entity.MonthlyFeeSettings, error) {
	ctx := context.Background()
	const qChannels = `
		SELECT channel_code, fee_rate, source
		FROM monthly_channel_fees
		WHERE year = $1 AND month = $2
		ORDER BY channel_code`
	rows, err := r.pool.Query(ctx, qChannels, year, month)
	if err != nil {
		return nil, fmt.Errorf("list monthly channel fees: %w", err)
	}
	defer rows.Close()

	settings := &entity.MonthlyFeeSettings{Year: year, Month: month}
	for rows.Next() {
		var fee entity.ChannelMonthlyFee
		if err := rows.Scan(&fee.ChannelCode, &fee.FeeRate, &fee.Source); err != nil {
			return nil, fmt.Errorf("scan monthly channel fee: %w", err)
		}
		settings.Channels = append(settings.Channels, fee)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(settings.Channels) == 0 {
		return nil, nil
	}

	const qOverrides = `
		SELECT id, channel_code, start_date, end_date, fee_rate, reason, created_at
		FROM fee_overrides
		WHERE year = $1 AND month = $2
		ORDER BY created_at, id`
	ovRows, err := r.pool.Query(ctx, qOverrides, year, month)
	if err != nil {
		return nil, fmt.Errorf("list fee overrides: %w", err)
	}
	defer ovRows.Close()
	for ovRows.Next() {
		var o entity.FeeOverride
		var start, end time.Time
		if err := ovRows.Scan(&o.ID, &o.ChannelCode, &start, &end, &o.FeeRate, &o.Reason, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan fee override: %w", err)
		}
		o.StartDate = start.Format("2006-01-02")
		o.EndDate = end.Format("2006-01-02")
		settings.Overrides = append(settings.Overrides, o)
	}
	return settings, ovRows.Err()
}

// SaveMonth crea o reemplaza los defaults por canal del mes. No toca los
// overrides: viven en su propia tabla.
func (r *FeeSettingsRepo) SaveMonth(settings *entity.MonthlyFeeSettings) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const del = `DELETE FROM monthly_channel_fees WHERE year = $1 AND month = $2`
	if _, err := tx.Exec(ctx, del, settings.Year, settings.Month); err != nil {
		return fmt.Errorf("delete monthly channel fees: %w", err)
	}
	const ins = `
		INSERT INTO monthly_channel_fees (year, month, channel_code, fee_rate, source)
		VALUES ($1, $2, $3, $4, $5)`
	for _, fee := range settings.Channels {
		if _, err := tx.Exec(ctx, ins, settings.Year, settings.Month, fee.ChannelCode, fee.FeeRate, fee.Source); err != nil {
			return fmt.Errorf("insert monthly channel fee %s: %w", fee.ChannelCode, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// AddOverride agrega una ventana de tarifa especial al mes.
func (r *FeeSettingsRepo) AddOverride(year, month int, o *entity.FeeOverride) error {
	const q = `
		INSERT INTO fee_overrides (id, year, month, channel_code, start_date, end_date, fee_rate, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), q,
		o.ID, year, month, o.ChannelCode, o.StartDate, o.EndDate, o.FeeRate, o.Reason, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert fee override: %w", err)
	}
	return nil
}

// DeleteOverride elimina por ID; ErrNotFound si no existe.
func (r *FeeSettingsRepo) DeleteOverride(id string) error {
	const q = `DELETE FROM fee_overrides WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), q, id)
	if err != nil {
		return fmt.Errorf("delete fee override: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
