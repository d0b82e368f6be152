package sales

import (
	"context"

	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
	"github.com/jhoicas/Liquidacion-api/internal/domain/repository"
)

// SalesTxRunner ejecuta una función con el repositorio de ventas atado a
// una transacción. Registros y totales de un mes se escriben juntos o no
// se escriben: una carga a medio guardar dejaría el agregado inconsistente.
type SalesTxRunner interface {
	RunSales(ctx context.Context, fn func(salesRepo repository.SalesRepository) error) error
}

// FeeResolver expone la configuración de tarifas que la ingesta necesita
// para capturar la comisión de cada fila al momento de la carga.
type FeeResolver interface {
	// GetOrCreateMonth devuelve la configuración del mes, creándola desde
	// el maestro de canales si aún no existe.
	GetOrCreateMonth(year, month int) (*entity.MonthlyFeeSettings, error)
	// Registry maestro de canales vigente (fijos + personalizados).
	Registry() (*entity.ChannelRegistry, error)
}

// SettlementInvalidator invalida liquidaciones derivadas de un mes cuyos
// datos de venta cambiaron.
type SettlementInvalidator interface {
	InvalidateMonth(year, month int)
}
