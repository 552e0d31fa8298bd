package services

// Option is a stored value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// RoomOption is a room with the floor it belongs to.
type RoomOption struct {
	Option
	Floor int `json:"floor"`
}

// Rooms lists the house rooms in display order.
var Rooms = []RoomOption{
	{Option{"cocina", "Cocina"}, FloorFirst},
	{Option{"living", "Sala de Estar / Living"}, FloorFirst},
	{Option{"comedor", "Comedor"}, FloorFirst},
	{Option{"bano", "Baño"}, FloorFirst},
	{Option{"pieza-grande", "Pieza Grande"}, FloorSecond},
	{Option{"pieza-mediana", "Pieza Mediana"}, FloorSecond},
	{Option{"pieza-pequena", "Pieza Pequeña"}, FloorSecond},
	{Option{"pasillo", "Pasillo"}, FloorSecond},
	{Option{"general", "General / Estructura"}, FloorGeneral},
}

// Categories lists the catalog item categories.
var Categories = []Option{
	{"materiales", "Materiales de Construcción"},
	{"muebles", "Muebles"},
	{"decoracion", "Decoración"},
	{"electrodomesticos", "Electrodomésticos"},
	{"iluminacion", "Iluminación"},
	{"plomeria", "Plomería"},
	{"electricidad", "Electricidad"},
	{"otros", "Otros"},
}

// SurfaceTypes are the surfaces a calculator row can measure.
var SurfaceTypes = []string{"Pared", "Cielo"}

// Orientations are the wall orientations offered by the forms.
var Orientations = []string{"Norte", "Sur", "Este", "Oeste", "Cielo", "Horizontal"}

// InsulationType describes a glass-wool product for one structure type.
type InsulationType struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MinThickness string `json:"espesor_minimo"`
	Value1       string `json:"valor1"`
	Value2       string `json:"valor2"`
	PricePerM2   int64  `json:"precio_m2"`
}

// InsulationTypes lists the structure types in display order with their
// reference prices per m².
var InsulationTypes = []InsulationType{
	{"muro_exterior", "Muro Exterior", "70mm", "177", "R100", 2964},
	{"cielo_techumbre", "Cielo - Techumbre", "140mm", "329", "R100", 6250},
	{"tabique_interior", "Tabique Interior", "40mm", "94", "R100", 1482},
}

// VolcanitaType describes a drywall board product.
type VolcanitaType struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Thickness string `json:"thickness"`
	Usage     string `json:"usage"`
}

// VolcanitaTypes lists the board types in display order.
var VolcanitaTypes = []VolcanitaType{
	{"ST_CIELO", "ST (Cielo)", "8mm / 10mm", "Cielo"},
	{"ST_TABIQUE", "ST (Tabique)", "15mm", "Tabique"},
	{"RH", "RH (Humedad)", "12.5mm", "Baño y Cocina"},
	{"RF", "RF (Fuego)", "12.5mm", "Muro Cortafuego"},
	{"ACU", "ACU (Acústica)", "10mm", "Reducción de Ruido"},
}

// DefaultContributors is the household funding the build.
var DefaultContributors = []Contributor{
	{ID: "jessenia", Name: "Jessenia", Contribution: 9000000},
	{ID: "saul", Name: "Saul", Contribution: 3000000},
}

// Values helpers used by collection select fields.

func RoomValues() []string {
	out := make([]string, len(Rooms))
	for i, r := range Rooms {
		out[i] = r.Value
	}
	return out
}

func CategoryValues() []string {
	return optionValues(Categories)
}

func InsulationTypeValues() []string {
	out := make([]string, len(InsulationTypes))
	for i, t := range InsulationTypes {
		out[i] = t.ID
	}
	return out
}

func VolcanitaTypeValues() []string {
	out := make([]string, len(VolcanitaTypes))
	for i, t := range VolcanitaTypes {
		out[i] = t.ID
	}
	return out
}

func optionValues(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

// RoomName returns the display name of a room, or the raw value when unknown.
func RoomName(room string) string {
	for _, r := range Rooms {
		if r.Value == room {
			return r.Label
		}
	}
	return room
}

// CategoryName returns the display name of a category, or the raw value.
func CategoryName(category string) string {
	for _, c := range Categories {
		if c.Value == category {
			return c.Label
		}
	}
	return category
}

// FindInsulationType looks up an insulation structure type by id.
func FindInsulationType(id string) (InsulationType, bool) {
	for _, t := range InsulationTypes {
		if t.ID == id {
			return t, true
		}
	}
	return InsulationType{}, false
}

// FindVolcanitaType looks up a board type by id.
func FindVolcanitaType(id string) (VolcanitaType, bool) {
	for _, t := range VolcanitaTypes {
		if t.ID == id {
			return t, true
		}
	}
	return VolcanitaType{}, false
}
