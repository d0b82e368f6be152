package repository

import "github.com/jhoicas/Liquidacion-api/internal/domain/entity"

// ChannelRepository puerto de persistencia del maestro de canales y
// categorías (referencia + canales personalizados).
type ChannelRepository interface {
	ListChannels() ([]*entity.Channel, error)
	// CreateChannel registra un canal personalizado; ErrDuplicate si el código existe.
	CreateChannel(ch *entity.Channel) error
	ListCategories() ([]*entity.Category, error)
}
