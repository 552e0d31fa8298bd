package store

import (
	"github.com/pocketbase/pocketbase/core"

	"cubicacion/collections"
	"cubicacion/services"
)

var insulationDims = []string{
	"tipo_superficie", "ancho", "alto", "largo",
	"ancho_puerta", "alto_puerta", "ancho_ventana", "alto_ventana",
}

// InsulationKind is the insulation take-off. The surface type counts as a
// dimension: switching a wall to a ceiling changes the area formula.
var InsulationKind = RowKind[services.InsulationRow]{
	Collection: collections.Insulation,
	Label:      "aislación",
	Text:       []string{"room", "tipo_estructura", "tipo_superficie", "orientacion"},
	Numbers: []string{
		"floor", "ancho", "alto", "largo",
		"ancho_puerta", "alto_puerta", "ancho_ventana", "alto_ventana",
	},
	Dimensions: insulationDims,
	Derived:    []string{"area"},
	Defaults: map[string]any{
		"room":            "general",
		"tipo_estructura": "muro_exterior",
		"tipo_superficie": "Pared",
		"orientacion":     "Norte",
		"floor":           1,
	},
	Decode: decodeInsulation,
	Derive: func(r services.InsulationRow) map[string]any {
		return map[string]any{"area": services.InsulationArea(r)}
	},
}

func decodeInsulation(rec *core.Record) services.InsulationRow {
	return services.InsulationRow{
		ID:            rec.Id,
		Room:          rec.GetString("room"),
		StructureType: rec.GetString("tipo_estructura"),
		SurfaceType:   rec.GetString("tipo_superficie"),
		Orientation:   rec.GetString("orientacion"),
		Floor:         rec.GetInt("floor"),
		Width:         rec.GetFloat("ancho"),
		Height:        rec.GetFloat("alto"),
		Length:        rec.GetFloat("largo"),
		DoorWidth:     rec.GetFloat("ancho_puerta"),
		DoorHeight:    rec.GetFloat("alto_puerta"),
		WindowWidth:   rec.GetFloat("ancho_ventana"),
		WindowHeight:  rec.GetFloat("alto_ventana"),
		Area:          rec.GetFloat("area"),
		Created:       rec.GetDateTime("created").Time(),
		Updated:       rec.GetDateTime("updated").Time(),
	}
}

// VolcanitaKind is the drywall board take-off.
var VolcanitaKind = RowKind[services.VolcanitaRow]{
	Collection: collections.Volcanita,
	Label:      "volcanita",
	Text:       []string{"habitacion", "tipo_superficie", "orientacion", "tipo_volcanita"},
	Numbers:    []string{"floor", "ancho", "alto", "ancho_ventana", "alto_ventana"},
	Dimensions: []string{"ancho", "alto", "ancho_ventana", "alto_ventana"},
	Derived:    []string{"area_neto", "planchas_requeridas"},
	Defaults: map[string]any{
		"habitacion":      "",
		"floor":           1,
		"tipo_superficie": "Pared",
		"orientacion":     "Norte",
		"tipo_volcanita":  "ST_TABIQUE",
	},
	Decode: decodeVolcanita,
	Derive: func(r services.VolcanitaRow) map[string]any {
		area, boards := services.VolcanitaArea(r)
		return map[string]any{"area_neto": area, "planchas_requeridas": boards}
	},
}

func decodeVolcanita(rec *core.Record) services.VolcanitaRow {
	return services.VolcanitaRow{
		ID:             rec.Id,
		Room:           rec.GetString("habitacion"),
		Floor:          rec.GetInt("floor"),
		SurfaceType:    rec.GetString("tipo_superficie"),
		Orientation:    rec.GetString("orientacion"),
		Width:          rec.GetFloat("ancho"),
		Height:         rec.GetFloat("alto"),
		WindowWidth:    rec.GetFloat("ancho_ventana"),
		WindowHeight:   rec.GetFloat("alto_ventana"),
		BoardType:      rec.GetString("tipo_volcanita"),
		NetArea:        rec.GetFloat("area_neto"),
		BoardsRequired: rec.GetInt("planchas_requeridas"),
		Created:        rec.GetDateTime("created").Time(),
		Updated:        rec.GetDateTime("updated").Time(),
	}
}

// ConcreteKind is the slab and footing volume take-off.
var ConcreteKind = RowKind[services.ConcreteRow]{
	Collection: collections.Concrete,
	Label:      "hormigón",
	Text:       []string{"tipo", "name"},
	Numbers:    []string{"qty", "length", "width", "height"},
	Dimensions: []string{"qty", "length", "width", "height"},
	Derived:    []string{"volume", "area"},
	Defaults: map[string]any{
		"tipo": services.MixRadier,
		"name": "",
		"qty":  1,
	},
	Decode: decodeConcrete,
	Derive: func(r services.ConcreteRow) map[string]any {
		volume, area := services.ConcreteVolume(r)
		return map[string]any{"volume": volume, "area": area}
	},
}

func decodeConcrete(rec *core.Record) services.ConcreteRow {
	return services.ConcreteRow{
		ID:      rec.Id,
		MixType: rec.GetString("tipo"),
		Name:    rec.GetString("name"),
		Qty:     rec.GetInt("qty"),
		Length:  rec.GetFloat("length"),
		Width:   rec.GetFloat("width"),
		Height:  rec.GetFloat("height"),
		Volume:  rec.GetFloat("volume"),
		Area:    rec.GetFloat("area"),
		Created: rec.GetDateTime("created").Time(),
		Updated: rec.GetDateTime("updated").Time(),
	}
}

// DerivedFixes lists the startup recomputation for every calculator kind.
func DerivedFixes() []collections.DerivedFix {
	return []collections.DerivedFix{InsulationKind.Fix(), VolcanitaKind.Fix(), ConcreteKind.Fix()}
}
