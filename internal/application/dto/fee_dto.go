package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
)

// ChannelFeeDTO comisión vigente de un canal en un mes. Source indica si
// la tarifa viene del maestro o de un ajuste manual.
type ChannelFeeDTO struct {
	ChannelCode string          `json:"channelCode"`
	ChannelName string          `json:"channelName,omitempty"`
	FeeRate     decimal.Decimal `json:"feeRate"`
	Source      string          `json:"source"`
}

// FeeOverrideDTO ventana de tarifa especial dentro del mes. Las fechas
// son inclusivas en ambos extremos.
type FeeOverrideDTO struct {
	ID          string          `json:"id"`
	ChannelCode string          `json:"channelCode"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
	FeeRate     decimal.Decimal `json:"feeRate"`
	Reason      string          `json:"reason,omitempty"`
}

// MonthlyFeeSettingsResponse configuración de comisiones de un mes.
type MonthlyFeeSettingsResponse struct {
	Year      int              `json:"year"`
	Month     int              `json:"month"`
	Channels  []ChannelFeeDTO  `json:"channels"`
	Overrides []FeeOverrideDTO `json:"overrides"`
}

// ChannelFeeUpdate nueva tarifa por defecto de un canal para el mes.
type ChannelFeeUpdate struct {
	ChannelCode string          `json:"channelCode"`
	FeeRate     decimal.Decimal `json:"feeRate"`
}

// UpdateMonthlyFeesRequest body para PUT /api/fees/:year/:month.
type UpdateMonthlyFeesRequest struct {
	Channels []ChannelFeeUpdate `json:"channels"`
}

// AddFeeOverrideRequest body para POST /api/fees/:year/:month/overrides.
type AddFeeOverrideRequest struct {
	ChannelCode string          `json:"channelCode"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
	FeeRate     decimal.Decimal `json:"feeRate"`
	Reason      string          `json:"reason,omitempty"`
}

// ChannelDTO canal de venta del maestro.
type ChannelDTO struct {
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	DefaultFeeRate decimal.Decimal `json:"defaultFeeRate"`
	IsOnline       bool            `json:"isOnline"`
}

// CreateChannelRequest body para POST /api/channels.
type CreateChannelRequest struct {
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	DefaultFeeRate decimal.Decimal `json:"defaultFeeRate"`
	IsOnline       bool            `json:"isOnline"`
}

// CategoryDTO categoría de venta offline.
type CategoryDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewMonthlyFeeSettingsResponse mapea la configuración del dominio.
// channelNames resuelve nombres desde el maestro; un canal sin entrada
// queda con nombre vacío.
func NewMonthlyFeeSettingsResponse(s *entity.MonthlyFeeSettings, registry *entity.ChannelRegistry) *MonthlyFeeSettingsResponse {
	resp := &MonthlyFeeSettingsResponse{
		Year:      s.Year,
		Month:     s.Month,
		Channels:  make([]ChannelFeeDTO, 0, len(s.Channels)),
		Overrides: make([]FeeOverrideDTO, 0, len(s.Overrides)),
	}
	for _, ch := range s.Channels {
		resp.Channels = append(resp.Channels, ChannelFeeDTO{
			ChannelCode: ch.ChannelCode,
			ChannelName: registry.Name(ch.ChannelCode),
			FeeRate:     ch.FeeRate,
			Source:      ch.Source,
		})
	}
	for _, ov := range s.Overrides {
		resp.Overrides = append(resp.Overrides, FeeOverrideDTO{
			ID:          ov.ID,
			ChannelCode: ov.ChannelCode,
			StartDate:   ov.StartDate,
			EndDate:     ov.EndDate,
			FeeRate:     ov.FeeRate,
			Reason:      ov.Reason,
		})
	}
	return resp
}
