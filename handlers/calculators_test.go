package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cubicacion/services"
	"cubicacion/store"
	"cubicacion/testhelpers"
)

func TestHandleRowCreate_DerivesArea(t *testing.T) {
	app, st := newTestStore(t)

	rec := call(t, app, HandleRowCreate(st.Insulation), http.MethodPost, "/insulation",
		`{"room":"cocina","ancho":4,"alto":2.5,"ancho_puerta":0.9,"alto_puerta":2}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	row := decode[services.InsulationRow](t, rec)
	assert.InDelta(t, 8.2, row.Area, 1e-9)
	assert.Equal(t, "muro_exterior", row.StructureType)
	assert.Equal(t, 1, row.Floor)
}

func TestHandleRowCreate_RejectsDerivedAndUnknownFields(t *testing.T) {
	app, st := newTestStore(t)

	rec := call(t, app, HandleRowCreate(st.Volcanita), http.MethodPost, "/volcanita",
		`{"ancho":2,"alto":2.4,"planchas_requeridas":99,"color":"azul"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	fields := decode[apiError](t, rec).Fields
	assert.Contains(t, fields, "planchas_requeridas")
	assert.Contains(t, fields, "color")

	list := decode[[]services.VolcanitaRow](t, call(t, app, HandleRowList(st.Volcanita), http.MethodGet, "/volcanita", ""))
	assert.Empty(t, list)
}

func TestHandleRowGet(t *testing.T) {
	app, st := newTestStore(t)
	row := testhelpers.CreateTestConcrete(t, app, services.MixZapata, "Z1", 2, 0.5, 0.5, 0.4)

	rec := call(t, app, HandleRowGet(st.Concrete), http.MethodGet, "/sika/"+row.Id, "", "id", row.Id)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[services.ConcreteRow](t, rec)
	assert.Equal(t, row.Id, got.ID)
	assert.InDelta(t, 2*0.5*0.5*0.4, got.Volume, 1e-9)

	rec = call(t, app, HandleRowGet(st.Concrete), http.MethodGet, "/sika/nope", "", "id", "nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, decode[apiError](t, rec).Detail)
}

func TestHandleRowUpdate_RecomputesOnDimensionChange(t *testing.T) {
	app, st := newTestStore(t)
	row := testhelpers.CreateTestConcrete(t, app, services.MixZapata, "Z1", 4, 0.6, 0.6, 0.5)

	rec := call(t, app, HandleRowUpdate(st.Concrete), http.MethodPatch, "/sika/"+row.Id,
		`{"height":"0.4"}`, "id", row.Id)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[services.ConcreteRow](t, rec)
	assert.InDelta(t, 0.4, got.Height, 1e-9)
	assert.InDelta(t, 4*0.6*0.6*0.4, got.Volume, 1e-9)

	rec = call(t, app, HandleRowUpdate(st.Concrete), http.MethodPatch, "/sika/nope", `{"qty":1}`, "id", "nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleRowDeleteAndReset(t *testing.T) {
	app, st := newTestStore(t)
	first := testhelpers.CreateTestInsulation(t, app, "muro_exterior", 1, 3, 2.4)
	testhelpers.CreateTestInsulation(t, app, "tabique_interior", 2, 2, 2.4)
	testhelpers.CreateTestInsulation(t, app, "tabique_interior", 2, 5, 2.4)

	rec := call(t, app, HandleRowDelete(st.Insulation), http.MethodDelete, "/insulation/"+first.Id, "", "id", first.Id)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = call(t, app, HandleRowReset(st.Insulation), http.MethodPost, "/insulation/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[resetResponse](t, rec).Deleted)

	list := decode[[]services.InsulationRow](t, call(t, app, HandleRowList(st.Insulation), http.MethodGet, "/insulation", ""))
	assert.Empty(t, list)
}

func TestHandleTotals(t *testing.T) {
	app, st := newTestStore(t)
	testhelpers.CreateTestInsulation(t, app, "muro_exterior", 1, 2, 2)
	testhelpers.CreateTestInsulation(t, app, "muro_exterior", 2, 1, 2)

	rec := call(t, app, HandleTotals(st, services.CalcInsulation), http.MethodGet, "/insulation/totals", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tot := decode[store.CalculatorTotals](t, rec)
	require.NotNil(t, tot.Insulation)
	require.NotNil(t, tot.Order)
	assert.InDelta(t, 6.0, tot.Insulation.Totals.Total, 1e-9)
	assert.InDelta(t, 4.0, tot.Insulation.Totals.Floor(1), 1e-9)
	assert.Equal(t, int64(6*2964), tot.Order.Total)
}
