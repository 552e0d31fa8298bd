// Package services holds the take-off formulas, aggregation, pricing and
// export logic. Everything here is pure: records are decoded by the store
// package and handed in as plain structs.
package services

import (
	"math"
	"strings"
	"time"
)

// Volcanita boards are sold as 1.2m x 2.4m sheets.
const (
	BoardWidth  = 1.2
	BoardHeight = 2.4
	BoardArea   = BoardWidth * BoardHeight // 2.88 m²
)

// SurfaceCeiling is the surface type whose area is width x length.
const SurfaceCeiling = "cielo"

// InsulationRow is one measured surface in the insulation take-off.
type InsulationRow struct {
	ID            string    `json:"id"`
	Room          string    `json:"room"`
	StructureType string    `json:"tipo_estructura"`
	SurfaceType   string    `json:"tipo_superficie"`
	Orientation   string    `json:"orientacion"`
	Floor         int       `json:"floor"`
	Width         float64   `json:"ancho"`
	Height        float64   `json:"alto"`
	Length        float64   `json:"largo"`
	DoorWidth     float64   `json:"ancho_puerta"`
	DoorHeight    float64   `json:"alto_puerta"`
	WindowWidth   float64   `json:"ancho_ventana"`
	WindowHeight  float64   `json:"alto_ventana"`
	Area          float64   `json:"area"`
	Created       time.Time `json:"created"`
	Updated       time.Time `json:"updated"`
}

// IsCeiling reports whether the row measures a ceiling rather than a wall.
func (r InsulationRow) IsCeiling() bool {
	return strings.EqualFold(r.SurfaceType, SurfaceCeiling)
}

// VolcanitaRow is one wall or ceiling panel in the drywall take-off.
type VolcanitaRow struct {
	ID             string    `json:"id"`
	Room           string    `json:"habitacion"`
	Floor          int       `json:"floor"`
	SurfaceType    string    `json:"tipo_superficie"`
	Orientation    string    `json:"orientacion"`
	Width          float64   `json:"ancho"`
	Height         float64   `json:"alto"`
	WindowWidth    float64   `json:"ancho_ventana"`
	WindowHeight   float64   `json:"alto_ventana"`
	BoardType      string    `json:"tipo_volcanita"`
	NetArea        float64   `json:"area_neto"`
	BoardsRequired int       `json:"planchas_requeridas"`
	Created        time.Time `json:"created"`
	Updated        time.Time `json:"updated"`
}

// ConcreteRow is a group of identical slab or footing elements.
type ConcreteRow struct {
	ID      string    `json:"id"`
	MixType string    `json:"tipo"`
	Name    string    `json:"name"`
	Qty     int       `json:"qty"`
	Length  float64   `json:"length"`
	Width   float64   `json:"width"`
	Height  float64   `json:"height"`
	Volume  float64   `json:"volume"`
	Area    float64   `json:"area"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// InsulationArea returns the net insulated area of a row in m².
// Ceilings use width x length; walls subtract door and window openings and
// are clamped at zero.
func InsulationArea(r InsulationRow) float64 {
	if r.IsCeiling() {
		return math.Max(0, r.Width*r.Length)
	}
	wall := r.Width * r.Height
	door := r.DoorWidth * r.DoorHeight
	window := r.WindowWidth * r.WindowHeight
	return math.Max(0, wall-door-window)
}

// VolcanitaArea returns the net panel area and the number of whole boards
// needed to cover it.
func VolcanitaArea(r VolcanitaRow) (netArea float64, boards int) {
	netArea = math.Max(0, r.Width*r.Height-r.WindowWidth*r.WindowHeight)
	return netArea, BoardsFor(netArea)
}

// BoardsFor rounds an area up to whole boards.
func BoardsFor(area float64) int {
	if area <= 0 {
		return 0
	}
	return int(math.Ceil(area / BoardArea))
}

// ConcreteVolume returns the poured volume (m³) and the top surface (m²) of a
// row. Negative dimensions are not clamped.
func ConcreteVolume(r ConcreteRow) (volume, area float64) {
	qty := float64(r.Qty)
	area = qty * r.Length * r.Width
	volume = area * r.Height
	return volume, area
}
