// Package settlement implementa el motor de liquidación: resolución de
// tarifas de comisión, cálculo de ingresos por canal y la cascada de
// asignación entre las cuatro partes. Todo es puro: funciones sobre la
// configuración que recibe el caller, sin estado de proceso ni I/O.
package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
)

// ResolveFeeRate devuelve la tarifa de comisión vigente (porcentaje) para
// un canal en una fecha ISO YYYY-MM-DD.
//
// Precedencia: ventana de override > default mensual del canal > default
// del maestro de canales. Exactamente una tarifa, nunca ambigua en
// silencio: si varias ventanas solapan, gana la primera en el orden de la
// lista (el orden de persistencia es estable, ver FeeSettingsRepository).
// Un canal desconocido no es error: aplica la tarifa del bucket "otros".
func ResolveFeeRate(channelCode, date string, settings *entity.MonthlyFeeSettings, registry *entity.ChannelRegistry) decimal.Decimal {
	if settings != nil {
		for _, o := range settings.Overrides {
			if o.ChannelCode == channelCode && o.Contains(date) {
				return o.FeeRate
			}
		}
		if rate, ok := settings.ChannelDefault(channelCode); ok {
			return rate
		}
	}
	if registry != nil {
		return registry.DefaultFeeRate(channelCode)
	}
	return entity.OtherChannelFeeRate
}
