package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cubicacion/collections"
	"cubicacion/store"
	"cubicacion/testhelpers"
)

func newStore(t *testing.T) (*store.Store, context.Context) {
	t.Helper()
	app := testhelpers.NewTestApp(t)
	store.BindHooks(app)
	s := store.New(app, store.Options{
		InsulationPrices: map[string]int64{"muro_exterior": 2964, "cielo_techumbre": 6250, "tabique_interior": 1482},
		BoardPrices:      map[string]int64{"ST_CIELO": 9392, "ST_TABIQUE": 9392, "RH": 15289},
	})
	return s, context.Background()
}

func TestRows_CreateComputesDerivedFields(t *testing.T) {
	s, ctx := newStore(t)

	row, err := s.Volcanita.Create(ctx, map[string]any{
		"habitacion":     "Cocina",
		"tipo_volcanita": "RH",
		"ancho":          3,
		"alto":           "2.4",
		"ancho_ventana":  1.0,
		"alto_ventana":   1.0,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, row.ID)
	assert.InDelta(t, 6.2, row.NetArea, 1e-9)
	assert.Equal(t, 3, row.BoardsRequired)
	assert.Equal(t, 1, row.Floor, "floor defaults to 1")
	assert.Equal(t, "Pared", row.SurfaceType)
}

func TestRows_CreateRejectsDerivedAndUnknownFields(t *testing.T) {
	s, ctx := newStore(t)

	_, err := s.Volcanita.Create(ctx, map[string]any{"ancho": 1, "area_neto": 99, "color": "rojo"})
	var ve *store.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "campo calculado", ve.Fields["area_neto"])
	assert.Equal(t, "campo desconocido", ve.Fields["color"])

	_, err = s.Concrete.Create(ctx, map[string]any{"length": "mucho"})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "length")
}

func TestRows_InsulationWallClampsAtZero(t *testing.T) {
	s, ctx := newStore(t)

	row, err := s.Insulation.Create(ctx, map[string]any{
		"ancho": 1, "alto": 1, "ancho_puerta": 2, "alto_puerta": 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, row.Area)
	assert.Equal(t, "muro_exterior", row.StructureType)
}

func TestRows_UpdateRecomputesOnlyWhenDimensionsChange(t *testing.T) {
	s, ctx := newStore(t)

	row, err := s.Insulation.Create(ctx, map[string]any{"ancho": 3, "alto": 2.5, "largo": 4})
	require.NoError(t, err)
	assert.InDelta(t, 7.5, row.Area, 1e-9)

	row, err = s.Insulation.Update(ctx, row.ID, map[string]any{"orientacion": "Sur"})
	require.NoError(t, err)
	assert.Equal(t, "Sur", row.Orientation)
	assert.InDelta(t, 7.5, row.Area, 1e-9)

	// Switching to a ceiling changes the formula to width x length.
	row, err = s.Insulation.Update(ctx, row.ID, map[string]any{"tipo_superficie": "Cielo"})
	require.NoError(t, err)
	assert.InDelta(t, 12.0, row.Area, 1e-9)

	row, err = s.Insulation.Update(ctx, row.ID, map[string]any{"largo": 5})
	require.NoError(t, err)
	assert.InDelta(t, 15.0, row.Area, 1e-9)
}

func TestRows_ConcreteVolume(t *testing.T) {
	s, ctx := newStore(t)

	row, err := s.Concrete.Create(ctx, map[string]any{
		"tipo": "zapata", "name": "Zapata aislada", "qty": 2, "length": 2, "width": 3, "height": 0.1,
	})
	require.NoError(t, err)
	assert.InDelta(t, 12.0, row.Area, 1e-9)
	assert.InDelta(t, 1.2, row.Volume, 1e-9)

	row, err = s.Concrete.Update(ctx, row.ID, map[string]any{"qty": 1})
	require.NoError(t, err)
	assert.InDelta(t, 6.0, row.Area, 1e-9)
	assert.InDelta(t, 0.6, row.Volume, 1e-9)
}

func TestRows_MissingRow(t *testing.T) {
	s, ctx := newStore(t)

	var nf *store.NotFoundError
	_, err := s.Volcanita.Get(ctx, "missing00000000")
	require.ErrorAs(t, err, &nf)

	_, err = s.Volcanita.Update(ctx, "missing00000000", map[string]any{"ancho": 1})
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing00000000", nf.ID)

	err = s.Concrete.Delete(ctx, "missing00000000")
	require.ErrorAs(t, err, &nf)
}

func TestRows_ListDeleteAndReset(t *testing.T) {
	s, ctx := newStore(t)

	for i := 0; i < 3; i++ {
		_, err := s.Concrete.Create(ctx, map[string]any{"length": 1, "width": 1, "height": 0.1})
		require.NoError(t, err)
	}

	rows, err := s.Concrete.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.NoError(t, s.Concrete.Delete(ctx, rows[0].ID))
	rows, err = s.Concrete.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	n, err := s.Concrete.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rows, err = s.Concrete.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDerivedFixes_RecomputeStaleRows(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rec := testhelpers.CreateTestConcrete(t, app, "radier", "Losa", 1, 2, 2, 0.1)
	rec.Set("volume", 50)
	require.NoError(t, app.Save(rec))

	n, err := collections.MigrateStaleDerived(app, store.DerivedFixes()...)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := app.FindRecordById(collections.Concrete, rec.Id)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, got.GetFloat("volume"), 1e-9)
}
