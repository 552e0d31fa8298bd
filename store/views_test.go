package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cubicacion/services"
	"cubicacion/store"
)

func TestDashboard_InvalidatedOnWrite(t *testing.T) {
	s, ctx := newStore(t)
	it := createItem(t, ctx, s, "Campana", "electrodomesticos", 89990)

	d, err := s.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Items)
	assert.Equal(t, int64(0), d.Spending.Total)

	e, err := s.Expenses.Create(ctx, store.ExpenseInput{ItemID: &it.ID, Quantity: intPtr(2)})
	require.NoError(t, err)

	d, err = s.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(179980), d.Spending.Total)
	assert.Equal(t, int64(179980), d.Spending.Pending)
	assert.Equal(t, 1, d.ItemUsage[it.ID])

	_, err = s.Expenses.TogglePaid(ctx, e.ID, "saul")
	require.NoError(t, err)

	d, err = s.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(179980), d.Spending.ByPayer["saul"])
}

func TestTotals_FollowRowChanges(t *testing.T) {
	s, ctx := newStore(t)

	_, err := s.Volcanita.Create(ctx, map[string]any{"tipo_volcanita": "RH", "ancho": 2, "alto": 2.5})
	require.NoError(t, err)

	tot, err := s.Totals(ctx, services.CalcVolcanita)
	require.NoError(t, err)
	require.NotNil(t, tot.Order)
	assert.Equal(t, int64(2), tot.Order.Boards)
	assert.Equal(t, int64(2*15289), tot.Order.Total)

	_, err = s.Volcanita.Create(ctx, map[string]any{"tipo_volcanita": "RH", "ancho": 1, "alto": 1, "floor": 2})
	require.NoError(t, err)

	tot, err = s.Totals(ctx, services.CalcVolcanita)
	require.NoError(t, err)
	assert.Equal(t, int64(3), tot.Order.Boards)
	assert.Equal(t, 1.0, tot.Volcanita.Boards.Floor(2))

	_, err = s.Totals(ctx, "pintura")
	var ve *store.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestTotals_Concrete(t *testing.T) {
	s, ctx := newStore(t)

	_, err := s.Concrete.Create(ctx, map[string]any{"tipo": "radier", "length": 10, "width": 1, "height": 0.1})
	require.NoError(t, err)

	tot, err := s.Totals(ctx, services.CalcConcrete)
	require.NoError(t, err)
	require.NotNil(t, tot.Concrete)
	assert.InDelta(t, 1.0, tot.Concrete.Radier.Volume, 1e-9)
	assert.Equal(t, int64(13), tot.Concrete.Radier.Cement) // 1 x 11.12 x 1.1 = 12.232
	assert.Equal(t, int64(2), tot.Concrete.SikaContainer)  // 10 x 2 x 1.1 = 22 kg
}

func TestExpenseView_OptimisticCommands(t *testing.T) {
	s, ctx := newStore(t)
	it := createItem(t, ctx, s, "Sofá", "muebles", 450000)
	e, err := s.Expenses.Create(ctx, store.ExpenseInput{ItemID: &it.ID, Quantity: intPtr(1)})
	require.NoError(t, err)

	view, err := s.ExpenseView(ctx)
	require.NoError(t, err)
	require.Len(t, view.Get(), 1)

	// A rejected write leaves the view as it was.
	_, err = s.UpdateQuantity(ctx, e.ID, 0)
	var ve *store.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, int64(1), view.Get()[0].Quantity)

	updated, err := s.UpdateQuantity(ctx, e.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated.Quantity)
	assert.Equal(t, int64(3), view.Get()[0].Quantity)

	// The write invalidated the cache; the next view is rebuilt from storage.
	fresh, err := s.ExpenseView(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), fresh.Get()[0].Quantity)
}

func TestSummaryInput_LoadsEveryCalculator(t *testing.T) {
	s, ctx := newStore(t)

	_, err := s.Insulation.Create(ctx, map[string]any{"ancho": 2, "alto": 2})
	require.NoError(t, err)

	in, err := s.SummaryInput(ctx, "")
	require.NoError(t, err)
	assert.Len(t, in.Insulation, 1)
	assert.Empty(t, in.Volcanita)
	assert.Equal(t, services.MixRadier, in.Radier.MixType)
	assert.Equal(t, services.MixZapata, in.Zapata.MixType)
	assert.Equal(t, int64(2964), in.InsulationPrices["muro_exterior"])
}
