package services

import "sync"

// Optimistic holds a locally cached view that is updated before the
// authoritative write completes. Readers see the tentative state while the
// write is in flight; a failed write restores the snapshot taken before it.
//
// Commands are serialized: one Do runs at a time.
type Optimistic[S any] struct {
	cmd   sync.Mutex
	mu    sync.RWMutex
	state S
}

// NewOptimistic returns a view seeded with an initial state.
func NewOptimistic[S any](initial S) *Optimistic[S] {
	return &Optimistic[S]{state: initial}
}

// Get returns the current state, tentative or committed.
func (o *Optimistic[S]) Get() S {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// Do applies tentative to the current state, then runs commit with the
// tentative state. On success the state becomes what commit returns; on
// failure the pre-command snapshot is restored and the error returned.
//
// tentative must not mutate its argument in place: the snapshot shares
// backing storage with it.
func (o *Optimistic[S]) Do(tentative func(S) S, commit func(S) (S, error)) (S, error) {
	o.cmd.Lock()
	defer o.cmd.Unlock()

	o.mu.Lock()
	snapshot := o.state
	next := tentative(snapshot)
	o.state = next
	o.mu.Unlock()

	final, err := commit(next)

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.state = snapshot
		return snapshot, err
	}
	o.state = final
	return final, nil
}

// ReplaceExpense returns a copy of list with the expense of the same id
// swapped for e. The list is returned unchanged when no id matches.
func ReplaceExpense(list []Expense, e Expense) []Expense {
	out := make([]Expense, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == e.ID {
			out[i] = e
			break
		}
	}
	return out
}

// UpdateExpense returns a copy of list with fn applied to the expense with
// the given id.
func UpdateExpense(list []Expense, id string, fn func(*Expense)) []Expense {
	out := make([]Expense, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == id {
			fn(&out[i])
			break
		}
	}
	return out
}
