package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testInsulationPrices = map[string]int64{
	"muro_exterior":    2964,
	"cielo_techumbre":  6250,
	"tabique_interior": 1482,
}

var testBoardPrices = map[string]int64{
	"ST_CIELO":   9392,
	"ST_TABIQUE": 9392,
	"RH":         15289,
}

func TestInsulationOrder(t *testing.T) {
	rows := []InsulationRow{
		{Floor: 1, StructureType: "muro_exterior", Area: 10.5},
		{Floor: 2, StructureType: "muro_exterior", Area: 2},
		{Floor: 2, StructureType: "cielo_techumbre", Area: 0.33},
	}

	o := InsulationOrder(rows, testInsulationPrices)
	require.Len(t, o.Lines, 2)
	assert.Equal(t, "muro_exterior", o.Lines[0].Key)
	assert.Equal(t, int64(37050), o.Lines[0].Subtotal) // 12.5 × 2964
	// 0.33 × 6250 = 2062.5 rounds to 2063
	assert.Equal(t, int64(2063), o.Lines[1].Subtotal)
	assert.Equal(t, int64(37050+2063), o.Total)
	assert.InDelta(t, 12.83, o.Area.Total, 1e-9)
}

func TestInsulationSummary(t *testing.T) {
	rows := []InsulationRow{
		{Floor: 1, StructureType: "muro_exterior", Area: 10},
	}

	got := InsulationSummary(rows, testInsulationPrices)
	want := "🧊 PEDIDO DE AISLACIÓN - LANA DE VIDRIO\n" +
		ruleShort + "\n\n" +
		"Muro Exterior (70mm)\n" +
		"  → 10.00 m² × $2.964/m²\n" +
		"  → Subtotal: $29.640\n\n" +
		ruleShort + "\n" +
		"TOTAL ÁREA: 10.00 m²\n" +
		"TOTAL PRECIO: $29.640"
	assert.Equal(t, want, got)
}

func TestInsulationSummary_Empty(t *testing.T) {
	got := InsulationSummary(nil, testInsulationPrices)
	assert.Contains(t, got, "TOTAL ÁREA: 0.00 m²")
	assert.Contains(t, got, "TOTAL PRECIO: $0")
	assert.NotContains(t, got, "Subtotal")
}

func TestInsulationDetailedSummary(t *testing.T) {
	rows := []InsulationRow{
		{Room: "cocina", Orientation: "Norte", Floor: 1, SurfaceType: "Pared", StructureType: "muro_exterior",
			Width: 3, Height: 2.4, DoorWidth: 0.9, DoorHeight: 2.1, WindowWidth: 1.2, WindowHeight: 1, Area: 4.11},
		{Room: "pieza-grande", Orientation: "Cielo", Floor: 2, SurfaceType: "Cielo", StructureType: "cielo_techumbre",
			Width: 3, Length: 4, Area: 12},
	}

	got := InsulationDetailedSummary(rows, testInsulationPrices)
	assert.Contains(t, got, "• Primer Piso: 4.11 m²")
	assert.Contains(t, got, "• Segundo Piso: 12.00 m²")
	assert.Contains(t, got, "Valores técnicos: 177 / R100")
	assert.Contains(t, got, "• Cocina - Norte (Piso 1)")
	assert.Contains(t, got, "3m × 2.4m (descuentos: puerta 0.9×2.1m, ventana 1.2×1m) = 4.11 m²")
	assert.Contains(t, got, "3m × 4m = 12.00 m²")
	assert.True(t, strings.HasSuffix(got, "TOTAL PRECIO: $87.182"), got) // 12182 + 75000
}

func TestVolcanitaSummary(t *testing.T) {
	rows := []VolcanitaRow{
		{Floor: 1, BoardType: "ST_TABIQUE", NetArea: 9.6, BoardsRequired: 4},
		{Floor: 2, BoardType: "RH", NetArea: 2.88, BoardsRequired: 1},
	}

	got := VolcanitaSummary(rows, testBoardPrices)
	assert.Contains(t, got, "ST (Tabique) (15mm)\n  → 4 planchas × $9.392\n  → Subtotal: $37.568")
	assert.Contains(t, got, "RH (Humedad) (12.5mm)\n  → 1 planchas × $15.289")
	assert.Contains(t, got, "TOTAL PLANCHAS: 5")
	assert.True(t, strings.HasSuffix(got, "TOTAL PRECIO: $52.857"), got)
}

func TestVolcanitaSummary_MissingPrice(t *testing.T) {
	rows := []VolcanitaRow{{Floor: 1, BoardType: "ACU", NetArea: 3, BoardsRequired: 2}}
	got := VolcanitaSummary(rows, testBoardPrices)
	assert.Contains(t, got, "2 planchas × $0")
	assert.Contains(t, got, "TOTAL PRECIO: $0")
}

func TestVolcanitaDetailedSummary(t *testing.T) {
	rows := []VolcanitaRow{
		{Room: "bano", Orientation: "Este", Floor: 1, SurfaceType: "Pared", BoardType: "RH",
			Width: 3, Height: 2.4, WindowWidth: 1, WindowHeight: 1.2, NetArea: 6, BoardsRequired: 3},
	}
	got := VolcanitaDetailedSummary(rows, testBoardPrices)
	assert.Contains(t, got, "• Primer Piso: 6.00 m² (3 planchas)")
	assert.Contains(t, got, "• Baño - Este (Piso 1)")
	assert.Contains(t, got, "3m × 2.4m (descuentos: ventana 1×1.2m) = 6.00 m² → 3 planchas")
	assert.Contains(t, got, "Uso: Baño y Cocina")
}

func TestConcreteSummary(t *testing.T) {
	radier, _ := DefaultDosage(MixRadier)
	zapata, _ := DefaultDosage(MixZapata)
	rows := []ConcreteRow{
		{MixType: MixRadier, Name: "Radier living", Qty: 1, Length: 5, Width: 4, Height: 0.1, Volume: 2, Area: 20},
	}

	got := ConcreteSummary(rows, radier, zapata)
	assert.Contains(t, got, "RADIER (2.00 m³)")
	assert.Contains(t, got, "• Cemento (25kg): 25 sacos")
	assert.Contains(t, got, "• Arena Gruesa: 123 unidades")
	assert.Contains(t, got, "• Grava: 147 unidades")
	assert.Contains(t, got, "• Agua Potable: 36.7 aprox")
	assert.Contains(t, got, "ZAPATAS (0.00 m³)")
	assert.True(t, strings.HasSuffix(got, "SIKA: 44.0 kg → 3 bidones (18L)"), got)
}

func TestConcreteDetailedSummary(t *testing.T) {
	radier, _ := DefaultDosage(MixRadier)
	zapata, _ := DefaultDosage(MixZapata)
	rows := []ConcreteRow{
		{MixType: MixZapata, Name: "Zapata aislada", Qty: 2, Length: 3, Width: 0.4, Height: 0.1, Volume: 0.24, Area: 2.4},
	}

	got := ConcreteDetailedSummary(rows, radier, zapata)
	assert.Contains(t, got, "• Zapata aislada (zapata)")
	assert.Contains(t, got, "2 × 3m × 0.4m × 0.1m = 0.24 m³ (2.40 m²)")
	assert.Contains(t, got, "cemento 7.2, arena 57.6, grava 72, agua 18 (pérdida 10%)")
	assert.Contains(t, got, "• Zapatas: 2.40 m² × 1.5 kg/m² = 4.0 kg")
}

func TestSummary_Dispatch(t *testing.T) {
	in := SummaryInput{InsulationPrices: testInsulationPrices, BoardPrices: testBoardPrices}
	in.Radier, _ = DefaultDosage(MixRadier)
	in.Zapata, _ = DefaultDosage(MixZapata)

	for _, calc := range Calculators {
		for _, detailed := range []bool{false, true} {
			got, err := Summary(calc, in, detailed)
			require.NoError(t, err)
			assert.NotEmpty(t, got)
		}
	}

	_, err := Summary("techo", in, false)
	assert.Error(t, err)
}
