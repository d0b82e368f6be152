// Package pdf implementa el reporte imprimible de la liquidación mensual
// que se entrega a las cuatro partes.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período  │  Visitantes online/offline      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Canal | Conteo | Tarifa | Bruto | Comisión | Neto    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Parte | Revenue | Income | Cost | Profit | Margen    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: fecha de cálculo + leyenda                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// krw imprime montos KRW con separador de miles (estilo coreano: ₩1,234,567).
var krw = message.NewPrinter(language.Korean)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator genera el reporte de liquidación usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateSettlementPDF genera el PDF del período y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSettlementPDF(_ context.Context, res *entity.SettlementResult) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Liquidación de ingresos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(res))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Desglose por canal online
	m.AddRows(sectionTitle("VENTAS POR CANAL"))
	m.AddRows(channelHeaderRow())
	for _, r := range channelRows(res.ChannelBreakdown) {
		m.AddRows(r)
	}
	m.AddRows(offlineRow(res))

	// Liquidación por parte
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("LIQUIDACIÓN POR PARTE"))
	m.AddRows(partyHeaderRow())
	for _, r := range partyRows(res.Settlements) {
		m.AddRows(r)
	}

	// Footer
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf(
			"Calculado el %s. Montos en KRW; las comisiones usan las tarifas capturadas al momento de cada carga.",
			res.CalculatedAt.Format("2006-01-02 15:04 MST"),
		), props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + período (izq) y visitantes (der).
func headerRow(res *entity.SettlementResult) core.Row {
	period := res.PeriodStart + " — " + res.PeriodEnd
	return row.New(18).Add(
		col.New(7).Add(
			text.New("LIQUIDACIÓN DE INGRESOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Período: "+period, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(krw.Sprintf("%d visitantes", res.TotalCount), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New(krw.Sprintf("online %d  |  offline %d", res.OnlineCount, res.OfflineCount), props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

func channelHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Canal", 3, align.Left),
		h("Conteo", 1, align.Right),
		h("Tarifa", 2, align.Right),
		h("Bruto", 2, align.Right),
		h("Comisión", 2, align.Right),
		h("Neto", 2, align.Right),
	)
}

func channelRows(breakdown []entity.ChannelBreakdown) []core.Row {
	result := make([]core.Row, 0, len(breakdown))
	for _, b := range breakdown {
		name := b.ChannelName
		if name == "" {
			name = b.ChannelCode
		}
		result = append(result, row.New(6).Add(
			col.New(3).Add(cell(name, align.Left)),
			col.New(1).Add(cell(krw.Sprintf("%d", b.Count), align.Right)),
			col.New(2).Add(cell(b.FeeRate.StringFixed(2)+"%", align.Right)),
			col.New(2).Add(cell(money(b.Revenue), align.Right)),
			col.New(2).Add(cell(money(b.Fee), align.Right)),
			col.New(2).Add(cell(money(b.NetRevenue), align.Right)),
		))
	}
	return result
}

// offlineRow: las ventas offline no pasan por canal ni pagan comisión.
func offlineRow(res *entity.SettlementResult) core.Row {
	return row.New(6).Add(
		col.New(3).Add(cell("Offline (sin comisión)", align.Left)),
		col.New(1).Add(cell(krw.Sprintf("%d", res.OfflineCount), align.Right)),
		col.New(8).Add(cell("—", align.Right)),
	)
}

func partyHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Parte", 4, align.Left),
		h("Revenue", 2, align.Right),
		h("Income", 2, align.Right),
		h("Cost", 2, align.Right),
		h("Profit (margen)", 2, align.Right),
	)
}

func partyRows(settlements []entity.PartySettlement) []core.Row {
	result := make([]core.Row, 0, len(settlements))
	for _, p := range settlements {
		profit := fmt.Sprintf("%s (%s%%)", money(p.Profit), p.ProfitRate.StringFixed(2))
		result = append(result, row.New(7).Add(
			col.New(4).Add(cell(p.CompanyName, align.Left)),
			col.New(2).Add(cell(money(p.Revenue), align.Right)),
			col.New(2).Add(cell(money(p.Income), align.Right)),
			col.New(2).Add(cell(money(p.Cost), align.Right)),
			col.New(2).Add(cell(profit, align.Right)),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func cell(s string, a align.Type) core.Component {
	return text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1})
}

// money formatea un monto KRW con símbolo y separador de miles.
func money(n int64) string {
	return krw.Sprintf("₩%d", n)
}
