package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimistic_CommitSuccess(t *testing.T) {
	view := NewOptimistic([]Expense{{ID: "a", Quantity: 1}, {ID: "b", Quantity: 2}})

	var seen []Expense
	got, err := view.Do(
		func(list []Expense) []Expense {
			return UpdateExpense(list, "a", func(e *Expense) { e.Quantity = 5 })
		},
		func(tentative []Expense) ([]Expense, error) {
			seen = view.Get()
			// The authoritative write answers with its own value.
			return ReplaceExpense(tentative, Expense{ID: "a", Quantity: 6}), nil
		},
	)
	require.NoError(t, err)

	assert.Equal(t, int64(5), seen[0].Quantity, "readers see the tentative state during commit")
	assert.Equal(t, int64(6), got[0].Quantity)
	assert.Equal(t, int64(6), view.Get()[0].Quantity)
	assert.Equal(t, int64(2), view.Get()[1].Quantity)
}

func TestOptimistic_CommitFailureRestoresSnapshot(t *testing.T) {
	initial := []Expense{{ID: "a", Paid: false}}
	view := NewOptimistic(initial)

	boom := errors.New("write failed")
	got, err := view.Do(
		func(list []Expense) []Expense {
			return UpdateExpense(list, "a", func(e *Expense) { e.Paid = true })
		},
		func([]Expense) ([]Expense, error) { return nil, boom },
	)
	require.ErrorIs(t, err, boom)

	assert.False(t, got[0].Paid)
	assert.False(t, view.Get()[0].Paid)
	assert.False(t, initial[0].Paid, "tentative transform must not touch the snapshot")
}

func TestReplaceExpense_UnknownID(t *testing.T) {
	list := []Expense{{ID: "a", Quantity: 1}}
	out := ReplaceExpense(list, Expense{ID: "z", Quantity: 9})
	assert.Equal(t, list, out)
}
