package services

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Mix types for the concrete calculator.
const (
	MixRadier = "radier"
	MixZapata = "zapata"
)

// MixTypes lists the supported mix types in display order.
var MixTypes = []string{MixRadier, MixZapata}

// DosageConfig holds per-m³ dosage rates for one mix type plus the
// waterproofing additive dosage per m² of surface.
type DosageConfig struct {
	ID            string  `json:"id,omitempty"`
	MixType       string  `json:"tipo"`
	Cement        float64 `json:"cement"`
	Sand          float64 `json:"sand"`
	Gravel        float64 `json:"gravel"`
	Water         float64 `json:"water"`
	SikaDosage    float64 `json:"sika_dosage"`
	SikaContainer float64 `json:"sika_container"`
	Waste         float64 `json:"waste"`
}

// DefaultDosage returns the built-in dosage table for a mix type.
func DefaultDosage(mixType string) (DosageConfig, error) {
	switch mixType {
	case MixRadier:
		return DosageConfig{
			MixType:       MixRadier,
			Cement:        11.12,
			Sand:          55.6,
			Gravel:        66.7,
			Water:         16.7,
			SikaDosage:    2.0,
			SikaContainer: 18,
			Waste:         10,
		}, nil
	case MixZapata:
		return DosageConfig{
			MixType:       MixZapata,
			Cement:        7.2,
			Sand:          57.6,
			Gravel:        72.0,
			Water:         18.0,
			SikaDosage:    1.5,
			SikaContainer: 18,
			Waste:         10,
		}, nil
	}
	return DosageConfig{}, fmt.Errorf("unknown mix type %q", mixType)
}

// wasteFactor returns 1 + waste/100.
func (c DosageConfig) wasteFactor() decimal.Decimal {
	return decimal.NewFromInt(1).Add(decimal.NewFromFloat(c.Waste).Div(decimal.NewFromInt(100)))
}

// MaterialQuantities is the material order for one mix type.
type MaterialQuantities struct {
	MixType string  `json:"tipo"`
	Volume  float64 `json:"volume"`
	Area    float64 `json:"area"`
	Cement  int64   `json:"cement_sacks"`
	Sand    int64   `json:"sand_units"`
	Gravel  int64   `json:"gravel_units"`
	Water   float64 `json:"water"`
	SikaKg  float64 `json:"sika_kg"`
}

// ProjectMaterials computes the material order for a total volume and
// surface using the given dosage. Sacks and units are rounded up; water and
// additive kilograms are left unrounded.
func ProjectMaterials(volume, area float64, cfg DosageConfig) MaterialQuantities {
	v := decimal.NewFromFloat(volume)
	waste := cfg.wasteFactor()

	units := func(dose float64) int64 {
		return v.Mul(decimal.NewFromFloat(dose)).Mul(waste).Ceil().IntPart()
	}

	return MaterialQuantities{
		MixType: cfg.MixType,
		Volume:  volume,
		Area:    area,
		Cement:  units(cfg.Cement),
		Sand:    units(cfg.Sand),
		Gravel:  units(cfg.Gravel),
		Water:   v.Mul(decimal.NewFromFloat(cfg.Water)).Mul(waste).InexactFloat64(),
		SikaKg:  WaterproofingKg(area, cfg),
	}
}

// WaterproofingKg returns the additive needed for a surface, waste included.
func WaterproofingKg(area float64, cfg DosageConfig) float64 {
	return decimal.NewFromFloat(area).
		Mul(decimal.NewFromFloat(cfg.SikaDosage)).
		Mul(cfg.wasteFactor()).
		InexactFloat64()
}

// Containers rounds a combined additive weight up to whole containers.
// A non-positive container size yields zero.
func Containers(totalKg, containerKg float64) int64 {
	if containerKg <= 0 || totalKg <= 0 {
		return 0
	}
	return decimal.NewFromFloat(totalKg).Div(decimal.NewFromFloat(containerKg)).Ceil().IntPart()
}

// ConcreteTakeoff is the full concrete order across both mix types.
type ConcreteTakeoff struct {
	Radier        MaterialQuantities `json:"radier"`
	Zapata        MaterialQuantities `json:"zapata"`
	TotalSikaKg   float64            `json:"total_sika_kg"`
	ContainerKg   float64            `json:"sika_container"`
	SikaContainer int64              `json:"sika_containers"`
}

// ProjectConcrete aggregates rows per mix type and projects materials with
// each type's own dosage. Additive containers are counted on the combined
// weight, sized by the radier container.
func ProjectConcrete(rows []ConcreteRow, radier, zapata DosageConfig) ConcreteTakeoff {
	vol := Aggregate(rows, ConcreteVolumeByMix)
	area := Aggregate(rows, ConcreteAreaByMix)

	t := ConcreteTakeoff{
		Radier:      ProjectMaterials(vol.Type(MixRadier).Total, area.Type(MixRadier).Total, radier),
		Zapata:      ProjectMaterials(vol.Type(MixZapata).Total, area.Type(MixZapata).Total, zapata),
		ContainerKg: radier.SikaContainer,
	}
	t.TotalSikaKg = t.Radier.SikaKg + t.Zapata.SikaKg
	t.SikaContainer = Containers(t.TotalSikaKg, radier.SikaContainer)
	return t
}
