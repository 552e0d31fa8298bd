package services

import (
	"fmt"
	"math"
	"strings"
)

// Calculator names accepted by the summary and export entry points.
const (
	CalcInsulation = "insulation"
	CalcVolcanita  = "volcanita"
	CalcConcrete   = "sika"
)

// Calculators lists the calculators in display order.
var Calculators = []string{CalcInsulation, CalcVolcanita, CalcConcrete}

const (
	ruleShort = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	ruleLong  = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
)

// OrderLine is one product line of a priced order.
type OrderLine struct {
	Key       string          `json:"key"`
	Name      string          `json:"name"`
	Spec      string          `json:"spec"`
	Area      float64         `json:"area"`
	Boards    int64           `json:"boards,omitempty"`
	UnitPrice int64           `json:"unit_price"`
	Subtotal  int64           `json:"subtotal"`
	ByFloor   map[int]float64 `json:"by_floor"`
}

// Order is a priced purchase order for the insulation or volcanita take-off.
type Order struct {
	Lines  []OrderLine `json:"lines"`
	Area   Totals      `json:"area"`
	Boards int64       `json:"boards,omitempty"`
	Total  int64       `json:"total"`
}

// InsulationOrder prices the insulation take-off per structure type. Types
// with no area are left out; subtotals are area x price rounded to pesos.
func InsulationOrder(rows []InsulationRow, prices map[string]int64) Order {
	agg := Aggregate(rows, InsulationByStructure)
	o := Order{Area: agg.Totals}
	for _, t := range InsulationTypes {
		tot := agg.Type(t.ID)
		if tot.Total <= 0 {
			continue
		}
		price := prices[t.ID]
		line := OrderLine{
			Key:       t.ID,
			Name:      t.Name,
			Spec:      t.MinThickness,
			Area:      tot.Total,
			UnitPrice: price,
			Subtotal:  int64(math.Round(tot.Total * float64(price))),
			ByFloor:   tot.ByFloor,
		}
		o.Total += line.Subtotal
		o.Lines = append(o.Lines, line)
	}
	return o
}

// VolcanitaOrder prices the drywall take-off per board type. Boards are the
// sum of each row's rounded-up count, and are priced per board.
func VolcanitaOrder(rows []VolcanitaRow, prices map[string]int64) Order {
	vt := AggregateVolcanita(rows)
	o := Order{Area: vt.Area.Totals, Boards: int64(vt.Boards.Total)}
	for _, t := range VolcanitaTypes {
		boards := int64(vt.Boards.Type(t.ID).Total)
		area := vt.Area.Type(t.ID)
		if boards <= 0 && area.Total <= 0 {
			continue
		}
		price := prices[t.ID]
		line := OrderLine{
			Key:       t.ID,
			Name:      t.Name,
			Spec:      t.Thickness,
			Area:      area.Total,
			Boards:    boards,
			UnitPrice: price,
			Subtotal:  boards * price,
			ByFloor:   vt.Boards.Type(t.ID).ByFloor,
		}
		o.Total += line.Subtotal
		o.Lines = append(o.Lines, line)
	}
	return o
}

// SummaryInput carries everything the summary texts need. Only the fields of
// the requested calculator have to be filled in.
type SummaryInput struct {
	Insulation       []InsulationRow
	Volcanita        []VolcanitaRow
	Concrete         []ConcreteRow
	Radier           DosageConfig
	Zapata           DosageConfig
	InsulationPrices map[string]int64
	BoardPrices      map[string]int64
}

// Summary renders the concise or detailed order text for one calculator.
func Summary(calculator string, in SummaryInput, detailed bool) (string, error) {
	switch calculator {
	case CalcInsulation:
		if detailed {
			return InsulationDetailedSummary(in.Insulation, in.InsulationPrices), nil
		}
		return InsulationSummary(in.Insulation, in.InsulationPrices), nil
	case CalcVolcanita:
		if detailed {
			return VolcanitaDetailedSummary(in.Volcanita, in.BoardPrices), nil
		}
		return VolcanitaSummary(in.Volcanita, in.BoardPrices), nil
	case CalcConcrete:
		if detailed {
			return ConcreteDetailedSummary(in.Concrete, in.Radier, in.Zapata), nil
		}
		return ConcreteSummary(in.Concrete, in.Radier, in.Zapata), nil
	}
	return "", fmt.Errorf("unknown calculator %q", calculator)
}

// InsulationSummary is the short glass-wool order: one block per structure
// type with area, price per m² and subtotal.
func InsulationSummary(rows []InsulationRow, prices map[string]int64) string {
	o := InsulationOrder(rows, prices)

	var b strings.Builder
	b.WriteString("🧊 PEDIDO DE AISLACIÓN - LANA DE VIDRIO\n")
	b.WriteString(ruleShort + "\n\n")
	for _, l := range o.Lines {
		fmt.Fprintf(&b, "%s (%s)\n", l.Name, l.Spec)
		fmt.Fprintf(&b, "  → %.2f m² × %s/m²\n", l.Area, FormatCLPInt(l.UnitPrice))
		fmt.Fprintf(&b, "  → Subtotal: %s\n\n", FormatCLPInt(l.Subtotal))
	}
	b.WriteString(ruleShort + "\n")
	fmt.Fprintf(&b, "TOTAL ÁREA: %.2f m²\n", o.Area.Total)
	fmt.Fprintf(&b, "TOTAL PRECIO: %s", FormatCLPInt(o.Total))
	return b.String()
}

// InsulationDetailedSummary adds per-floor totals, technical values and a
// line per measured zone to the short order.
func InsulationDetailedSummary(rows []InsulationRow, prices map[string]int64) string {
	o := InsulationOrder(rows, prices)

	var b strings.Builder
	b.WriteString("🧊 PEDIDO DE AISLACIÓN - LANA DE VIDRIO - DETALLADO\n")
	b.WriteString(ruleLong + "\n\n")

	b.WriteString("📊 RESUMEN POR PISO:\n")
	fmt.Fprintf(&b, "  • Primer Piso: %.2f m²\n", o.Area.Floor(FloorFirst))
	fmt.Fprintf(&b, "  • Segundo Piso: %.2f m²\n\n", o.Area.Floor(FloorSecond))

	b.WriteString(ruleLong + "\n\n")
	b.WriteString("📦 PEDIDO POR TIPO:\n\n")
	for _, l := range o.Lines {
		t, _ := FindInsulationType(l.Key)
		fmt.Fprintf(&b, "%s\n", l.Name)
		fmt.Fprintf(&b, "  Espesor: %s\n", t.MinThickness)
		fmt.Fprintf(&b, "  Valores técnicos: %s / %s\n", t.Value1, t.Value2)
		fmt.Fprintf(&b, "  Total: %.2f m²\n", l.Area)
		fmt.Fprintf(&b, "  Precio: %s/m²\n", FormatCLPInt(l.UnitPrice))
		fmt.Fprintf(&b, "  Subtotal: %s\n", FormatCLPInt(l.Subtotal))
		fmt.Fprintf(&b, "    - Piso 1: %.2f m²\n", l.ByFloor[FloorFirst])
		fmt.Fprintf(&b, "    - Piso 2: %.2f m²\n\n", l.ByFloor[FloorSecond])
	}

	b.WriteString(ruleLong + "\n\n")
	b.WriteString("📍 DETALLE POR ZONA:\n")
	for _, r := range rows {
		area := InsulationArea(r)
		typeName := r.StructureType
		if t, ok := FindInsulationType(r.StructureType); ok {
			typeName = t.Name
		}
		fmt.Fprintf(&b, "  • %s - %s (Piso %d)\n", RoomName(r.Room), r.Orientation, r.Floor)
		fmt.Fprintf(&b, "    %s - %s\n", r.SurfaceType, typeName)
		if r.IsCeiling() {
			fmt.Fprintf(&b, "    %sm × %sm = %.2f m²\n", formatDim(r.Width), formatDim(r.Length), area)
		} else {
			fmt.Fprintf(&b, "    %sm × %sm%s = %.2f m²\n",
				formatDim(r.Width), formatDim(r.Height),
				openings(r.DoorWidth, r.DoorHeight, r.WindowWidth, r.WindowHeight), area)
		}
		b.WriteString("\n")
	}

	b.WriteString(ruleLong + "\n\n")
	b.WriteString("💰 RESUMEN FINANCIERO:\n")
	fmt.Fprintf(&b, "  TOTAL ÁREA: %.2f m²\n", o.Area.Total)
	fmt.Fprintf(&b, "  TOTAL PRECIO: %s", FormatCLPInt(o.Total))
	return b.String()
}

// openings renders the door and window deductions of a wall, or nothing
// when the wall has none.
func openings(doorW, doorH, winW, winH float64) string {
	var parts []string
	if doorW > 0 {
		parts = append(parts, fmt.Sprintf("puerta %s×%sm", formatDim(doorW), formatDim(doorH)))
	}
	if winW > 0 {
		parts = append(parts, fmt.Sprintf("ventana %s×%sm", formatDim(winW), formatDim(winH)))
	}
	if len(parts) == 0 {
		return ""
	}
	return " (descuentos: " + strings.Join(parts, ", ") + ")"
}

// VolcanitaSummary is the short drywall order: boards per type with their
// price per board.
func VolcanitaSummary(rows []VolcanitaRow, prices map[string]int64) string {
	o := VolcanitaOrder(rows, prices)

	var b strings.Builder
	b.WriteString("🧱 PEDIDO DE VOLCANITA - PLANCHAS 1.2 × 2.4 m\n")
	b.WriteString(ruleShort + "\n\n")
	for _, l := range o.Lines {
		fmt.Fprintf(&b, "%s (%s)\n", l.Name, l.Spec)
		fmt.Fprintf(&b, "  → %d planchas × %s\n", l.Boards, FormatCLPInt(l.UnitPrice))
		fmt.Fprintf(&b, "  → Subtotal: %s\n\n", FormatCLPInt(l.Subtotal))
	}
	b.WriteString(ruleShort + "\n")
	fmt.Fprintf(&b, "TOTAL ÁREA: %.2f m²\n", o.Area.Total)
	fmt.Fprintf(&b, "TOTAL PLANCHAS: %d\n", o.Boards)
	fmt.Fprintf(&b, "TOTAL PRECIO: %s", FormatCLPInt(o.Total))
	return b.String()
}

// VolcanitaDetailedSummary adds per-floor totals and a line per panel.
func VolcanitaDetailedSummary(rows []VolcanitaRow, prices map[string]int64) string {
	o := VolcanitaOrder(rows, prices)
	vt := AggregateVolcanita(rows)

	var b strings.Builder
	b.WriteString("🧱 PEDIDO DE VOLCANITA - DETALLADO\n")
	b.WriteString(ruleLong + "\n\n")

	b.WriteString("📊 RESUMEN POR PISO:\n")
	fmt.Fprintf(&b, "  • Primer Piso: %.2f m² (%d planchas)\n",
		vt.Area.Floor(FloorFirst), int64(vt.Boards.Floor(FloorFirst)))
	fmt.Fprintf(&b, "  • Segundo Piso: %.2f m² (%d planchas)\n\n",
		vt.Area.Floor(FloorSecond), int64(vt.Boards.Floor(FloorSecond)))

	b.WriteString(ruleLong + "\n\n")
	b.WriteString("📦 PEDIDO POR TIPO:\n\n")
	for _, l := range o.Lines {
		t, _ := FindVolcanitaType(l.Key)
		fmt.Fprintf(&b, "%s\n", l.Name)
		fmt.Fprintf(&b, "  Espesor: %s\n", t.Thickness)
		fmt.Fprintf(&b, "  Uso: %s\n", t.Usage)
		fmt.Fprintf(&b, "  Área: %.2f m²\n", l.Area)
		fmt.Fprintf(&b, "  Planchas: %d\n", l.Boards)
		fmt.Fprintf(&b, "  Precio: %s/plancha\n", FormatCLPInt(l.UnitPrice))
		fmt.Fprintf(&b, "  Subtotal: %s\n", FormatCLPInt(l.Subtotal))
		fmt.Fprintf(&b, "    - Piso 1: %d planchas\n", int64(l.ByFloor[FloorFirst]))
		fmt.Fprintf(&b, "    - Piso 2: %d planchas\n\n", int64(l.ByFloor[FloorSecond]))
	}

	b.WriteString(ruleLong + "\n\n")
	b.WriteString("📍 DETALLE POR ZONA:\n")
	for _, r := range rows {
		area, boards := VolcanitaArea(r)
		typeName := r.BoardType
		if t, ok := FindVolcanitaType(r.BoardType); ok {
			typeName = t.Name
		}
		fmt.Fprintf(&b, "  • %s - %s (Piso %d)\n", RoomName(r.Room), r.Orientation, r.Floor)
		fmt.Fprintf(&b, "    %s - %s\n", r.SurfaceType, typeName)
		fmt.Fprintf(&b, "    %sm × %sm%s = %.2f m² → %d planchas\n",
			formatDim(r.Width), formatDim(r.Height),
			openings(0, 0, r.WindowWidth, r.WindowHeight), area, boards)
		b.WriteString("\n")
	}

	b.WriteString(ruleLong + "\n\n")
	b.WriteString("💰 RESUMEN FINANCIERO:\n")
	fmt.Fprintf(&b, "  TOTAL ÁREA: %.2f m²\n", o.Area.Total)
	fmt.Fprintf(&b, "  TOTAL PLANCHAS: %d\n", o.Boards)
	fmt.Fprintf(&b, "  TOTAL PRECIO: %s", FormatCLPInt(o.Total))
	return b.String()
}

var mixTitles = map[string]string{
	MixRadier: "RADIER",
	MixZapata: "ZAPATAS",
}

// ConcreteSummary is the short concrete order: materials per mix type and
// the waterproofing additive in whole containers.
func ConcreteSummary(rows []ConcreteRow, radier, zapata DosageConfig) string {
	t := ProjectConcrete(rows, radier, zapata)

	var b strings.Builder
	b.WriteString("🏗️ PEDIDO DE HORMIGÓN\n")
	b.WriteString(ruleShort + "\n\n")
	for _, m := range []MaterialQuantities{t.Radier, t.Zapata} {
		writeMaterials(&b, m)
		b.WriteString("\n")
	}
	b.WriteString(ruleShort + "\n")
	fmt.Fprintf(&b, "SIKA: %.1f kg → %d bidones (%sL)",
		t.TotalSikaKg, t.SikaContainer, formatDim(t.ContainerKg))
	return b.String()
}

// ConcreteDetailedSummary adds the measured elements and the dosage used for
// each mix type.
func ConcreteDetailedSummary(rows []ConcreteRow, radier, zapata DosageConfig) string {
	t := ProjectConcrete(rows, radier, zapata)

	var b strings.Builder
	b.WriteString("🏗️ PEDIDO DE HORMIGÓN - DETALLADO\n")
	b.WriteString(ruleLong + "\n\n")

	b.WriteString("📐 ELEMENTOS:\n")
	for _, r := range rows {
		vol, area := ConcreteVolume(r)
		fmt.Fprintf(&b, "  • %s (%s)\n", r.Name, r.MixType)
		fmt.Fprintf(&b, "    %d × %sm × %sm × %sm = %.2f m³ (%.2f m²)\n",
			r.Qty, formatDim(r.Length), formatDim(r.Width), formatDim(r.Height), vol, area)
	}
	b.WriteString("\n" + ruleLong + "\n\n")

	b.WriteString("📦 MATERIALES:\n\n")
	for _, pair := range []struct {
		m   MaterialQuantities
		cfg DosageConfig
	}{{t.Radier, radier}, {t.Zapata, zapata}} {
		writeMaterials(&b, pair.m)
		fmt.Fprintf(&b, "  Dosificación por m³: cemento %s, arena %s, grava %s, agua %s (pérdida %s%%)\n\n",
			formatDim(pair.cfg.Cement), formatDim(pair.cfg.Sand), formatDim(pair.cfg.Gravel),
			formatDim(pair.cfg.Water), formatDim(pair.cfg.Waste))
	}

	b.WriteString(ruleLong + "\n\n")
	b.WriteString("💧 SIKA IMPERMEABILIZANTE:\n")
	fmt.Fprintf(&b, "  • Radier: %.2f m² × %s kg/m² = %.1f kg\n",
		t.Radier.Area, formatDim(radier.SikaDosage), t.Radier.SikaKg)
	fmt.Fprintf(&b, "  • Zapatas: %.2f m² × %s kg/m² = %.1f kg\n",
		t.Zapata.Area, formatDim(zapata.SikaDosage), t.Zapata.SikaKg)
	fmt.Fprintf(&b, "  TOTAL: %.1f kg → %d bidones (%sL)",
		t.TotalSikaKg, t.SikaContainer, formatDim(t.ContainerKg))
	return b.String()
}

func writeMaterials(b *strings.Builder, m MaterialQuantities) {
	title := mixTitles[m.MixType]
	if title == "" {
		title = strings.ToUpper(m.MixType)
	}
	fmt.Fprintf(b, "%s (%.2f m³)\n", title, m.Volume)
	fmt.Fprintf(b, "  • Cemento (25kg): %d sacos\n", m.Cement)
	fmt.Fprintf(b, "  • Arena Gruesa: %d unidades\n", m.Sand)
	fmt.Fprintf(b, "  • Grava: %d unidades\n", m.Gravel)
	fmt.Fprintf(b, "  • Agua Potable: %.1f aprox\n", m.Water)
}
