package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cubicacion/services"
	"cubicacion/store"
)

func createItem(t *testing.T, ctx context.Context, s *store.Store, name, category string, price int64) services.CatalogItem {
	t.Helper()
	it, err := s.Items.Create(ctx, store.ItemInput{Name: &name, UnitPrice: &price, Category: &category})
	require.NoError(t, err)
	return it
}

func TestExpenses_CreateDefaults(t *testing.T) {
	s, ctx := newStore(t)
	it := createItem(t, ctx, s, "Ventana", "materiales", 118000)

	paid := false
	e, err := s.Expenses.Create(ctx, store.ExpenseInput{ItemID: &it.ID, Paid: &paid, PaidBy: strPtr("saul")})
	require.NoError(t, err)

	assert.Equal(t, int64(1), e.Quantity)
	assert.Equal(t, "general", e.Room)
	assert.Equal(t, 0, e.Floor)
	assert.Equal(t, time.Now().Format(time.DateOnly), e.Date)
	assert.False(t, e.Paid)
	assert.Nil(t, e.PaidBy, "an unpaid expense has no payer")
}

func TestExpenses_CreateValidation(t *testing.T) {
	s, ctx := newStore(t)
	it := createItem(t, ctx, s, "Ventana", "materiales", 118000)

	floor := 3
	cases := map[string]struct {
		in    store.ExpenseInput
		field string
	}{
		"missing item": {store.ExpenseInput{}, "item"},
		"unknown item": {store.ExpenseInput{ItemID: strPtr("nope00000000000")}, "item"},
		"zero qty":     {store.ExpenseInput{ItemID: &it.ID, Quantity: intPtr(0)}, "quantity"},
		"bad floor":    {store.ExpenseInput{ItemID: &it.ID, Floor: &floor}, "floor"},
		"bad room":     {store.ExpenseInput{ItemID: &it.ID, Room: strPtr("garage")}, "room"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Expenses.Create(ctx, tc.in)
			var ve *store.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tc.field)
		})
	}
}

func TestExpenses_TogglePaid(t *testing.T) {
	s, ctx := newStore(t)
	it := createItem(t, ctx, s, "Cama", "muebles", 399990)
	e, err := s.Expenses.Create(ctx, store.ExpenseInput{ItemID: &it.ID})
	require.NoError(t, err)

	e, err = s.Expenses.TogglePaid(ctx, e.ID, "jessenia")
	require.NoError(t, err)
	assert.True(t, e.Paid)
	require.NotNil(t, e.PaidBy)
	assert.Equal(t, "jessenia", *e.PaidBy)

	e, err = s.Expenses.TogglePaid(ctx, e.ID, "saul")
	require.NoError(t, err)
	assert.False(t, e.Paid)
	assert.Nil(t, e.PaidBy)

	var nf *store.NotFoundError
	_, err = s.Expenses.TogglePaid(ctx, "missing00000000", "saul")
	require.ErrorAs(t, err, &nf)
}

func TestExpenses_UpdateQuantity(t *testing.T) {
	s, ctx := newStore(t)
	it := createItem(t, ctx, s, "Porcelanato 60x60", "materiales", 12490)
	e, err := s.Expenses.Create(ctx, store.ExpenseInput{ItemID: &it.ID, Quantity: intPtr(38)})
	require.NoError(t, err)

	e, err = s.Expenses.UpdateQuantity(ctx, e.ID, 40)
	require.NoError(t, err)
	assert.Equal(t, int64(40), e.Quantity)

	_, err = s.Expenses.UpdateQuantity(ctx, e.ID, 0)
	var ve *store.ValidationError
	require.ErrorAs(t, err, &ve)

	got, err := s.Expenses.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(40), got.Quantity)
}

func TestExpenses_ListByItemAndFilter(t *testing.T) {
	s, ctx := newStore(t)
	sofa := createItem(t, ctx, s, "Sofá", "muebles", 450000)
	piso := createItem(t, ctx, s, "Piso flotante", "materiales", 13990)

	second := 2
	_, err := s.Expenses.Create(ctx, store.ExpenseInput{ItemID: &sofa.ID, Room: strPtr("living")})
	require.NoError(t, err)
	_, err = s.Expenses.Create(ctx, store.ExpenseInput{ItemID: &piso.ID, Quantity: intPtr(35), Floor: &second})
	require.NoError(t, err)
	_, err = s.Expenses.Create(ctx, store.ExpenseInput{ItemID: &piso.ID, Quantity: intPtr(5), Floor: &second})
	require.NoError(t, err)

	byItem, err := s.Expenses.ListByItem(ctx, piso.ID)
	require.NoError(t, err)
	assert.Len(t, byItem, 2)

	catalog, err := s.Items.Catalog(ctx)
	require.NoError(t, err)

	muebles, err := s.Expenses.Filter(ctx, services.ExpenseFilter{Category: "muebles"}, catalog)
	require.NoError(t, err)
	require.Len(t, muebles, 1)
	assert.Equal(t, "living", muebles[0].Room)

	upstairs, err := s.Expenses.Filter(ctx, services.ExpenseFilter{Floor: &second}, catalog)
	require.NoError(t, err)
	assert.Equal(t, int64(40*13990), services.Spending(upstairs, catalog).Total)
}
