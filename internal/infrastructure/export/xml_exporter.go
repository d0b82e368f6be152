// Package export serializa liquidaciones al XML plano que consume el
// sistema contable de la agencia.
package export

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/beevik/etree"

	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
)

// XMLExporter genera el documento XML de una liquidación.
type XMLExporter struct{}

// NewXMLExporter construye el exportador.
func NewXMLExporter() *XMLExporter { return &XMLExporter{} }

// ExportSettlement serializa el resultado con un elemento por parte y por
// canal. Los montos van como enteros KRW; las tarifas y márgenes como
// decimales con dos posiciones.
func (e *XMLExporter) ExportSettlement(res *entity.SettlementResult) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Settlement")
	root.CreateAttr("periodStart", res.PeriodStart)
	root.CreateAttr("periodEnd", res.PeriodEnd)
	root.CreateAttr("calculatedAt", res.CalculatedAt.Format("2006-01-02T15:04:05Z07:00"))

	visitors := root.CreateElement("Visitors")
	visitors.CreateElement("Total").SetText(itoa(res.TotalCount))
	visitors.CreateElement("Online").SetText(itoa(res.OnlineCount))
	visitors.CreateElement("Offline").SetText(itoa(res.OfflineCount))

	channels := root.CreateElement("Channels")
	for _, b := range res.ChannelBreakdown {
		ch := channels.CreateElement("Channel")
		ch.CreateAttr("code", b.ChannelCode)
		if b.ChannelName != "" {
			ch.CreateAttr("name", b.ChannelName)
		}
		ch.CreateElement("Count").SetText(itoa(b.Count))
		ch.CreateElement("FeeRate").SetText(b.FeeRate.StringFixed(2))
		ch.CreateElement("Revenue").SetText(itoa(b.Revenue))
		ch.CreateElement("Fee").SetText(itoa(b.Fee))
		ch.CreateElement("NetRevenue").SetText(itoa(b.NetRevenue))
	}

	parties := root.CreateElement("Parties")
	for _, p := range res.Settlements {
		party := parties.CreateElement("Party")
		party.CreateAttr("code", p.CompanyCode)
		party.CreateAttr("name", p.CompanyName)
		party.CreateElement("Revenue").SetText(itoa(p.Revenue))
		party.CreateElement("Income").SetText(itoa(p.Income))
		party.CreateElement("Cost").SetText(itoa(p.Cost))
		party.CreateElement("Profit").SetText(itoa(p.Profit))
		party.CreateElement("ProfitRate").SetText(p.ProfitRate.StringFixed(2))
		if len(p.Details) > 0 {
			details := party.CreateElement("Details")
			for _, name := range sortedKeys(p.Details) {
				d := details.CreateElement("Item")
				d.CreateAttr("name", name)
				d.SetText(itoa(p.Details[name]))
			}
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("export: serializar XML: %w", err)
	}
	return out, nil
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
