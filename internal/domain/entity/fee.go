package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Origen de una tarifa mensual por canal.
const (
	FeeSourceMaster = "master" // copiada del maestro de canales al crear el mes
	FeeSourceManual = "manual" // editada a mano para ese mes
)

// FeeOverride ventana de fechas (intervalo cerrado) durante la cual la
// tarifa de un canal difiere del default mensual. Las fechas son strings
// ISO YYYY-MM-DD; el formato de ancho fijo permite comparación lexicográfica.
type FeeOverride struct {
	ID          string
	ChannelCode string
	StartDate   string
	EndDate     string
	FeeRate     decimal.Decimal // porcentaje
	Reason      string
	CreatedAt   time.Time
}

// Contains indica si la fecha cae dentro de la ventana (extremos inclusivos).
func (o FeeOverride) Contains(date string) bool {
	return o.StartDate <= date && date <= o.EndDate
}

// ChannelMonthlyFee tarifa por defecto de un canal para un mes concreto.
type ChannelMonthlyFee struct {
	ChannelCode string
	FeeRate     decimal.Decimal // porcentaje
	Source      string          // master | manual
}

// MonthlyFeeSettings configuración de tarifas de un (año, mes): defaults
// por canal y ventanas de override. Se crea bajo demanda con los defaults
// del maestro si no existe.
type MonthlyFeeSettings struct {
	Year      int
	Month     int
	Channels  []ChannelMonthlyFee
	Overrides []FeeOverride
}

// ChannelDefault busca la tarifa mensual por defecto del canal.
func (s *MonthlyFeeSettings) ChannelDefault(code string) (decimal.Decimal, bool) {
	for _, ch := range s.Channels {
		if ch.ChannelCode == code {
			return ch.FeeRate, true
		}
	}
	return decimal.Decimal{}, false
}

// NewMonthlyFeeSettingsFromMaster construye la configuración del mes con
// los defaults del maestro de canales (source = master, sin overrides).
func NewMonthlyFeeSettingsFromMaster(year, month int, channels []Channel) *MonthlyFeeSettings {
	s := &MonthlyFeeSettings{Year: year, Month: month}
	for _, ch := range channels {
		s.Channels = append(s.Channels, ChannelMonthlyFee{
			ChannelCode: ch.Code,
			FeeRate:     ch.DefaultFeeRate,
			Source:      FeeSourceMaster,
		})
	}
	return s
}
