// Package store persists the catalog, the expenses, the calculator rows and
// the dosage configs in PocketBase collections. Every write that touches a
// measurement recomputes the row's derived quantities before it is saved.
//
// All methods return the typed errors of errors.go: ValidationError,
// NotFoundError and ConflictError for caller mistakes, OperationError for
// anything else.
package store

import (
	"github.com/pocketbase/pocketbase/core"

	"cubicacion/services"
)

// Options are the configured prices and contributors used by the cached
// views.
type Options struct {
	InsulationPrices map[string]int64
	BoardPrices      map[string]int64
	Contributors     []services.Contributor
}

// Store groups the per-kind stores of one app.
type Store struct {
	app  core.App
	opts Options

	Items      *Items
	Expenses   *Expenses
	Dosage     *Dosage
	Insulation *Rows[services.InsulationRow]
	Volcanita  *Rows[services.VolcanitaRow]
	Concrete   *Rows[services.ConcreteRow]
}

// New returns a Store bound to app.
func New(app core.App, opts Options) *Store {
	return &Store{
		app:        app,
		opts:       opts,
		Items:      &Items{app: app},
		Expenses:   &Expenses{app: app},
		Dosage:     &Dosage{app: app},
		Insulation: NewRows(app, InsulationKind),
		Volcanita:  NewRows(app, VolcanitaKind),
		Concrete:   NewRows(app, ConcreteKind),
	}
}
