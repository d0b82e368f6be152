package settlement_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
	"github.com/jhoicas/Liquidacion-api/internal/domain/settlement"
)

func testRegistry() *entity.ChannelRegistry {
	return entity.NewChannelRegistry(entity.MasterChannels())
}

func testSettings() *entity.MonthlyFeeSettings {
	return &entity.MonthlyFeeSettings{
		Year:  2025,
		Month: 3,
		Channels: []entity.ChannelMonthlyFee{
			{ChannelCode: entity.ChannelNaver, FeeRate: decimal.NewFromInt(11), Source: entity.FeeSourceManual},
		},
		Overrides: []entity.FeeOverride{
			{
				ID:          "ov-1",
				ChannelCode: entity.ChannelNaver,
				StartDate:   "2025-03-10",
				EndDate:     "2025-03-15",
				FeeRate:     decimal.NewFromInt(8),
				Reason:      "promoción",
			},
		},
	}
}

func TestResolveFeeRate_Precedencia(t *testing.T) {
	registry := testRegistry()
	settings := testSettings()

	// Dentro de la ventana de override gana el override
	rate := settlement.ResolveFeeRate(entity.ChannelNaver, "2025-03-12", settings, registry)
	assert.True(t, rate.Equal(decimal.NewFromInt(8)), "dentro de la ventana debe aplicar la tarifa del override")

	// Fuera de la ventana gana el default mensual
	rate = settlement.ResolveFeeRate(entity.ChannelNaver, "2025-03-20", settings, registry)
	assert.True(t, rate.Equal(decimal.NewFromInt(11)), "fuera de la ventana debe aplicar el default mensual")

	// Canal sin default mensual cae al maestro
	rate = settlement.ResolveFeeRate(entity.ChannelMazeTicket, "2025-03-12", settings, registry)
	assert.True(t, rate.Equal(decimal.NewFromInt(12)), "sin default mensual debe aplicar el default del maestro")
}

func TestResolveFeeRate_VentanaInclusiva(t *testing.T) {
	registry := testRegistry()
	settings := testSettings()

	// Extremos del intervalo cerrado: ambos incluidos
	start := settlement.ResolveFeeRate(entity.ChannelNaver, "2025-03-10", settings, registry)
	end := settlement.ResolveFeeRate(entity.ChannelNaver, "2025-03-15", settings, registry)
	before := settlement.ResolveFeeRate(entity.ChannelNaver, "2025-03-09", settings, registry)
	after := settlement.ResolveFeeRate(entity.ChannelNaver, "2025-03-16", settings, registry)

	assert.True(t, start.Equal(decimal.NewFromInt(8)), "startDate es inclusivo")
	assert.True(t, end.Equal(decimal.NewFromInt(8)), "endDate es inclusivo")
	assert.True(t, before.Equal(decimal.NewFromInt(11)))
	assert.True(t, after.Equal(decimal.NewFromInt(11)))
}

// Con ventanas solapadas gana la primera coincidencia en el orden de la
// lista: exactamente una tarifa, nunca ambigua en silencio.
func TestResolveFeeRate_SolapePrimerMatch(t *testing.T) {
	settings := testSettings()
	settings.Overrides = append(settings.Overrides, entity.FeeOverride{
		ID:          "ov-2",
		ChannelCode: entity.ChannelNaver,
		StartDate:   "2025-03-12",
		EndDate:     "2025-03-20",
		FeeRate:     decimal.NewFromInt(5),
	})

	rate := settlement.ResolveFeeRate(entity.ChannelNaver, "2025-03-12", settings, testRegistry())
	assert.True(t, rate.Equal(decimal.NewFromInt(8)),
		"con solape debe ganar el primer override de la lista, no el último")
}

func TestResolveFeeRate_CanalDesconocido(t *testing.T) {
	// Canal desconocido no lanza error: aplica el bucket "otros" (15%)
	rate := settlement.ResolveFeeRate("POPUP_EVENT", "2025-03-12", testSettings(), testRegistry())
	require.True(t, rate.Equal(entity.OtherChannelFeeRate),
		"un canal desconocido debe caer al bucket otros/sin clasificar")
}

func TestResolveFeeRate_SinConfiguracion(t *testing.T) {
	rate := settlement.ResolveFeeRate(entity.ChannelNaver, "2025-03-12", nil, testRegistry())
	assert.True(t, rate.Equal(decimal.NewFromInt(10)), "sin configuración mensual aplica el maestro")

	rate = settlement.ResolveFeeRate(entity.ChannelNaver, "2025-03-12", nil, nil)
	assert.True(t, rate.Equal(entity.OtherChannelFeeRate))
}
