package entity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Códigos de canal online del maestro. Los canales personalizados
// se registran en runtime con cualquier otro código estable.
const (
	ChannelNaver            = "NAVER"
	ChannelMazeTicket       = "MAZE_TICKET"
	ChannelMazeTicketSingle = "MAZE_TICKET_SINGLE"
	ChannelGeneral          = "GENERAL"
	ChannelOther            = "OTHER"
)

// OtherChannelFeeRate tarifa del bucket "otros/sin clasificar" (porcentaje).
// Se aplica cuando un código de canal no existe en el maestro ni en la
// configuración mensual; nunca se lanza error por canal desconocido.
var OtherChannelFeeRate = decimal.NewFromInt(15)

// Channel canal de venta online (dato de referencia, inmutable una vez creado).
type Channel struct {
	Code           string
	Name           string
	DefaultFeeRate decimal.Decimal // porcentaje de comisión por defecto
	Custom         bool            // true si fue registrado en runtime (no viene del maestro)
	CreatedAt      time.Time
}

// Category agrupación de venta offline (tipo de visitante). Sin comisión.
type Category struct {
	Code string
	Name string
}

// ChannelRegistry entradas del maestro + canales personalizados, uniformes por código.
// Reemplaza los mapas abiertos por código con entradas "custom" creadas ad hoc:
// todo canal, fijo o dinámico, se consulta igual.
type ChannelRegistry struct {
	byCode map[string]Channel
}

// NewChannelRegistry construye el registro a partir del maestro de canales.
func NewChannelRegistry(channels []Channel) *ChannelRegistry {
	r := &ChannelRegistry{byCode: make(map[string]Channel, len(channels))}
	for _, ch := range channels {
		r.byCode[ch.Code] = ch
	}
	return r
}

// Register agrega un canal personalizado. Retorna false si el código ya existe.
func (r *ChannelRegistry) Register(ch Channel) bool {
	if _, ok := r.byCode[ch.Code]; ok {
		return false
	}
	ch.Custom = true
	r.byCode[ch.Code] = ch
	return true
}

// Get busca un canal por código.
func (r *ChannelRegistry) Get(code string) (Channel, bool) {
	ch, ok := r.byCode[code]
	return ch, ok
}

// DefaultFeeRate tarifa por defecto del canal; para códigos desconocidos
// aplica la tarifa del bucket "otros" (OtherChannelFeeRate).
func (r *ChannelRegistry) DefaultFeeRate(code string) decimal.Decimal {
	if ch, ok := r.byCode[code]; ok {
		return ch.DefaultFeeRate
	}
	return OtherChannelFeeRate
}

// Name nombre de display del canal; códigos desconocidos se devuelven tal cual.
func (r *ChannelRegistry) Name(code string) string {
	if ch, ok := r.byCode[code]; ok && ch.Name != "" {
		return ch.Name
	}
	return code
}

// List devuelve los canales ordenados por código (estable para respuestas y reportes).
func (r *ChannelRegistry) List() []Channel {
	out := make([]Channel, 0, len(r.byCode))
	for _, ch := range r.byCode {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// MasterChannels maestro por defecto usado para sembrar registros y
// para construir la configuración mensual cuando no existe.
func MasterChannels() []Channel {
	return []Channel{
		{Code: ChannelNaver, Name: "Naver", DefaultFeeRate: decimal.NewFromInt(10)},
		{Code: ChannelMazeTicket, Name: "Maze Ticket", DefaultFeeRate: decimal.NewFromInt(12)},
		{Code: ChannelMazeTicketSingle, Name: "Maze Ticket Single", DefaultFeeRate: decimal.NewFromInt(12)},
		{Code: ChannelGeneral, Name: "General", DefaultFeeRate: decimal.NewFromInt(15)},
		{Code: ChannelOther, Name: "Otros", DefaultFeeRate: OtherChannelFeeRate},
	}
}
