package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_Empty(t *testing.T) {
	agg := Aggregate([]InsulationRow{}, InsulationByStructure)
	assert.Zero(t, agg.Total)
	assert.Zero(t, agg.Floor(FloorFirst))
	assert.Zero(t, agg.Type("muro_exterior").Total)
	assert.Empty(t, agg.Keys())
}

func TestAggregate_InsulationByFloorAndType(t *testing.T) {
	rows := []InsulationRow{
		{Floor: 1, StructureType: "muro_exterior", Area: 10},
		{Floor: 1, StructureType: "tabique_interior", Area: 4.5},
		{Floor: 2, StructureType: "muro_exterior", Area: 7.25},
		{Floor: 2, StructureType: "cielo_techumbre", Area: 20},
	}

	agg := Aggregate(rows, InsulationByStructure)

	assert.InDelta(t, 41.75, agg.Total, 1e-9)
	assert.InDelta(t, 14.5, agg.Floor(FloorFirst), 1e-9)
	assert.InDelta(t, 27.25, agg.Floor(FloorSecond), 1e-9)
	assert.InDelta(t, agg.Total, agg.Floor(FloorFirst)+agg.Floor(FloorSecond), 1e-9)

	muro := agg.Type("muro_exterior")
	assert.InDelta(t, 17.25, muro.Total, 1e-9)
	assert.InDelta(t, 10, muro.Floor(FloorFirst), 1e-9)
	assert.InDelta(t, 7.25, muro.Floor(FloorSecond), 1e-9)

	assert.Equal(t, []string{"cielo_techumbre", "muro_exterior", "tabique_interior"}, agg.Keys())
}

func TestAggregate_OrderIndependent(t *testing.T) {
	rows := []ConcreteRow{
		{MixType: MixRadier, Volume: 1.5, Area: 15},
		{MixType: MixZapata, Volume: 0.24, Area: 2.4},
		{MixType: MixRadier, Volume: 0.5, Area: 5},
	}
	reversed := []ConcreteRow{rows[2], rows[1], rows[0]}

	a := Aggregate(rows, ConcreteVolumeByMix)
	b := Aggregate(reversed, ConcreteVolumeByMix)
	assert.InDelta(t, a.Total, b.Total, 1e-9)
	assert.InDelta(t, a.Type(MixRadier).Total, b.Type(MixRadier).Total, 1e-9)
	assert.InDelta(t, 2.0, a.Type(MixRadier).Total, 1e-9)
}

func TestAggregateVolcanita_BoardsArePerRowCeilings(t *testing.T) {
	// Three 1.5 m² panels need a board each; 4.5 m² pooled would be 2.
	rows := []VolcanitaRow{
		{Floor: 1, BoardType: "ST_TABIQUE", NetArea: 1.5, BoardsRequired: 1},
		{Floor: 1, BoardType: "ST_TABIQUE", NetArea: 1.5, BoardsRequired: 1},
		{Floor: 2, BoardType: "ST_TABIQUE", NetArea: 1.5, BoardsRequired: 1},
		{Floor: 2, BoardType: "RH", NetArea: 9.6, BoardsRequired: 4},
	}

	vt := AggregateVolcanita(rows)
	require.InDelta(t, 14.1, vt.Area.Total, 1e-9)
	assert.Equal(t, 7.0, vt.Boards.Total)
	assert.Equal(t, 3.0, vt.Boards.Type("ST_TABIQUE").Total)
	assert.Equal(t, 2.0, vt.Boards.Floor(FloorFirst))
	assert.Equal(t, 5.0, vt.Boards.Floor(FloorSecond))
}
