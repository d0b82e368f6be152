package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Liquidacion-api/internal/domain"
	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
	"github.com/jhoicas/Liquidacion-api/internal/domain/repository"
)

var _ repository.ChannelRepository = (*ChannelRepo)(nil)

// ChannelRepo implementación sobre PostgreSQL del maestro de canales y categorías.
type ChannelRepo struct {
	q Querier
}

// NewChannelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewChannelRepository(q Querier) *ChannelRepo {
	return &ChannelRepo{q: q}
}

// ListChannels canales del maestro más los personalizados, por código.
func (r *ChannelRepo) ListChannels() ([]*entity.Channel, error) {
	const q = `
		SELECT code, name, default_fee_rate, is_custom, created_at
		FROM channels
		ORDER BY code`
	rows, err := r.q.Query(context.Background(), q)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	defer rows.Close()
	var out []*entity.Channel
	for rows.Next() {
		var ch entity.Channel
		if err := rows.Scan(&ch.Code, &ch.Name, &ch.DefaultFeeRate, &ch.Custom, &ch.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		out = append(out, &ch)
	}
	return out, rows.Err()
}

// CreateChannel registra un canal personalizado; ErrDuplicate si el código existe.
func (r *ChannelRepo) CreateChannel(ch *entity.Channel) error {
	const q = `
		INSERT INTO channels (code, name, default_fee_rate, is_custom, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), q, ch.Code, ch.Name, ch.DefaultFeeRate, ch.Custom, ch.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create channel: %w", err)
	}
	return nil
}

// ListCategories categorías de venta offline, por código.
func (r *ChannelRepo) ListCategories() ([]*entity.Category, error) {
	const q = `SELECT code, name FROM categories ORDER BY code`
	rows, err := r.q.Query(context.Background(), q)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var out []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
