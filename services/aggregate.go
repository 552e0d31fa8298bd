package services

import "sort"

// Floors used by the calculators. Expenses additionally use FloorGeneral.
const (
	FloorGeneral = 0
	FloorFirst   = 1
	FloorSecond  = 2
)

// Totals is a quantity summed overall and per floor.
type Totals struct {
	Total   float64         `json:"total"`
	ByFloor map[int]float64 `json:"by_floor"`
}

// Floor returns the total for one floor, zero when no row landed there.
func (t Totals) Floor(floor int) float64 {
	return t.ByFloor[floor]
}

func (t *Totals) add(floor int, qty float64) {
	if t.ByFloor == nil {
		t.ByFloor = make(map[int]float64)
	}
	t.Total += qty
	t.ByFloor[floor] += qty
}

// Aggregation rolls rows into totals per floor, per type key and overall.
type Aggregation struct {
	Totals
	ByType map[string]Totals `json:"by_type"`
}

// Type returns the totals for one type key, zero-valued when absent.
func (a Aggregation) Type(key string) Totals {
	return a.ByType[key]
}

// Keys returns the type keys present in the aggregation, sorted.
func (a Aggregation) Keys() []string {
	keys := make([]string, 0, len(a.ByType))
	for k := range a.ByType {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dimension tells Aggregate how to read a row: which floor it sits on,
// which type bucket it belongs to and which derived quantity to sum.
type Dimension[R any] struct {
	Floor    func(R) int
	Key      func(R) string
	Quantity func(R) float64
}

// Aggregate folds rows into an Aggregation. Row order does not matter and
// an empty slice yields zero totals.
func Aggregate[R any](rows []R, d Dimension[R]) Aggregation {
	agg := Aggregation{
		Totals: Totals{ByFloor: make(map[int]float64)},
		ByType: make(map[string]Totals),
	}
	for _, r := range rows {
		floor := 0
		if d.Floor != nil {
			floor = d.Floor(r)
		}
		key := ""
		if d.Key != nil {
			key = d.Key(r)
		}
		qty := d.Quantity(r)

		agg.add(floor, qty)
		t := agg.ByType[key]
		t.add(floor, qty)
		agg.ByType[key] = t
	}
	return agg
}

// Per-calculator dimensions. Derived quantities are read from the stored
// fields, which the store keeps in sync on every write.
var (
	InsulationByStructure = Dimension[InsulationRow]{
		Floor:    func(r InsulationRow) int { return r.Floor },
		Key:      func(r InsulationRow) string { return r.StructureType },
		Quantity: func(r InsulationRow) float64 { return r.Area },
	}

	VolcanitaAreaByBoard = Dimension[VolcanitaRow]{
		Floor:    func(r VolcanitaRow) int { return r.Floor },
		Key:      func(r VolcanitaRow) string { return r.BoardType },
		Quantity: func(r VolcanitaRow) float64 { return r.NetArea },
	}

	VolcanitaBoardsByBoard = Dimension[VolcanitaRow]{
		Floor:    func(r VolcanitaRow) int { return r.Floor },
		Key:      func(r VolcanitaRow) string { return r.BoardType },
		Quantity: func(r VolcanitaRow) float64 { return float64(r.BoardsRequired) },
	}

	ConcreteVolumeByMix = Dimension[ConcreteRow]{
		Key:      func(r ConcreteRow) string { return r.MixType },
		Quantity: func(r ConcreteRow) float64 { return r.Volume },
	}

	ConcreteAreaByMix = Dimension[ConcreteRow]{
		Key:      func(r ConcreteRow) string { return r.MixType },
		Quantity: func(r ConcreteRow) float64 { return r.Area },
	}
)

// VolcanitaTotals pairs the area and board aggregations of a drywall take-off.
type VolcanitaTotals struct {
	Area   Aggregation `json:"area"`
	Boards Aggregation `json:"boards"`
}

// AggregateVolcanita aggregates net area and boards for the same rows.
func AggregateVolcanita(rows []VolcanitaRow) VolcanitaTotals {
	return VolcanitaTotals{
		Area:   Aggregate(rows, VolcanitaAreaByBoard),
		Boards: Aggregate(rows, VolcanitaBoardsByBoard),
	}
}
