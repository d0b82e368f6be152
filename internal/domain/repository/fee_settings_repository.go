package repository

import "github.com/jhoicas/Liquidacion-api/internal/domain/entity"

// FeeSettingsRepository puerto de persistencia de la configuración mensual
// de tarifas. Los overrides se devuelven en orden estable de creación
// (created_at, id): de ese orden depende la resolución determinista de
// ventanas solapadas.
type FeeSettingsRepository interface {
	// GetMonth devuelve la configuración del mes, o nil si no existe.
	GetMonth(year, month int) (*entity.MonthlyFeeSettings, error)
	// SaveMonth crea o reemplaza los defaults por canal del mes (no toca overrides).
	SaveMonth(settings *entity.MonthlyFeeSettings) error
	AddOverride(year, month int, o *entity.FeeOverride) error
	// DeleteOverride elimina por ID; ErrNotFound si no existe.
	DeleteOverride(id string) error
}
