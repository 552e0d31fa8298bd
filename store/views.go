package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"

	"cubicacion/collections"
	"cubicacion/services"
)

// Cache keys in app.Store().
const (
	viewDashboard = "view:dashboard"
	viewExpenses  = "view:expenses"
	viewTotals    = "view:totals:"
)

// viewsFor lists the cache keys a change in a collection makes stale.
var viewsFor = map[string][]string{
	collections.Items:      {viewDashboard, viewExpenses},
	collections.Expenses:   {viewDashboard, viewExpenses},
	collections.Insulation: {viewTotals + services.CalcInsulation},
	collections.Volcanita:  {viewTotals + services.CalcVolcanita},
	collections.Concrete:   {viewTotals + services.CalcConcrete},
	collections.SikaConfig: {viewTotals + services.CalcConcrete},
}

// BindHooks drops the cached views whenever a record of a collection they
// are built from is created, updated or deleted.
func BindHooks(app core.App) {
	invalidate := func(e *core.RecordEvent) error {
		name := e.Record.Collection().Name
		for _, key := range viewsFor[name] {
			e.App.Store().Remove(key)
		}
		log.Debug().Str("collection", name).Str("id", e.Record.Id).Msg("cached views invalidated")
		return e.Next()
	}

	app.OnRecordAfterCreateSuccess(collections.All...).BindFunc(invalidate)
	app.OnRecordAfterUpdateSuccess(collections.All...).BindFunc(invalidate)
	app.OnRecordAfterDeleteSuccess(collections.All...).BindFunc(invalidate)
}

// cached returns the value under key, building and storing it on a miss.
func cached[T any](app core.App, key string, build func() (T, error)) (T, error) {
	if v, ok := app.Store().GetOk(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}
	t, err := build()
	if err != nil {
		return t, err
	}
	app.Store().Set(key, t)
	return t, nil
}

// Dashboard is the spending overview of the whole build.
type Dashboard struct {
	Spending     services.SpendingTotals `json:"spending"`
	Budget       services.BudgetSummary  `json:"budget"`
	Contributors []services.Contributor  `json:"contributors"`
	Items        int                     `json:"items"`
	Expenses     int                     `json:"expenses"`
	ItemUsage    map[string]int          `json:"item_usage"`
}

// Dashboard returns the cached spending overview.
func (s *Store) Dashboard(ctx context.Context) (Dashboard, error) {
	return cached(s.app, viewDashboard, func() (Dashboard, error) {
		items, err := s.Items.List(ctx)
		if err != nil {
			return Dashboard{}, err
		}
		expenses, err := s.Expenses.List(ctx)
		if err != nil {
			return Dashboard{}, err
		}
		spending := services.Spending(expenses, services.NewCatalog(items))
		return Dashboard{
			Spending:     spending,
			Budget:       services.Budget(s.opts.Contributors, spending),
			Contributors: s.opts.Contributors,
			Items:        len(items),
			Expenses:     len(expenses),
			ItemUsage:    services.ItemUsage(expenses),
		}, nil
	})
}

// ExpenseView returns the cached expense list used for optimistic edits.
func (s *Store) ExpenseView(ctx context.Context) (*services.Optimistic[[]services.Expense], error) {
	return cached(s.app, viewExpenses, func() (*services.Optimistic[[]services.Expense], error) {
		list, err := s.Expenses.List(ctx)
		if err != nil {
			return nil, err
		}
		return services.NewOptimistic(list), nil
	})
}

// TogglePaid flips an expense's paid flag in the cached view first and
// then in the database. The view is restored if the write fails.
func (s *Store) TogglePaid(ctx context.Context, id, payer string) (services.Expense, error) {
	view, err := s.ExpenseView(ctx)
	if err != nil {
		return services.Expense{}, err
	}

	var updated services.Expense
	_, err = view.Do(
		func(list []services.Expense) []services.Expense {
			return services.UpdateExpense(list, id, func(e *services.Expense) {
				e.Paid = !e.Paid
				e.PaidBy = nil
				if e.Paid && payer != "" {
					p := payer
					e.PaidBy = &p
				}
			})
		},
		func(list []services.Expense) ([]services.Expense, error) {
			e, err := s.Expenses.TogglePaid(ctx, id, payer)
			if err != nil {
				return nil, err
			}
			updated = e
			return services.ReplaceExpense(list, e), nil
		},
	)
	return updated, err
}

// UpdateQuantity changes an expense's quantity in the cached view first and
// then in the database. The view is restored if the write fails.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int64) (services.Expense, error) {
	view, err := s.ExpenseView(ctx)
	if err != nil {
		return services.Expense{}, err
	}

	var updated services.Expense
	_, err = view.Do(
		func(list []services.Expense) []services.Expense {
			return services.UpdateExpense(list, id, func(e *services.Expense) { e.Quantity = quantity })
		},
		func(list []services.Expense) ([]services.Expense, error) {
			e, err := s.Expenses.UpdateQuantity(ctx, id, quantity)
			if err != nil {
				return nil, err
			}
			updated = e
			return services.ReplaceExpense(list, e), nil
		},
	)
	return updated, err
}

// CalculatorTotals is the aggregated state of one calculator. Only the
// fields of that calculator are set.
type CalculatorTotals struct {
	Calculator string                    `json:"calculator"`
	Insulation *services.Aggregation     `json:"insulation,omitempty"`
	Volcanita  *services.VolcanitaTotals `json:"volcanita,omitempty"`
	Order      *services.Order           `json:"order,omitempty"`
	Concrete   *services.ConcreteTakeoff `json:"concrete,omitempty"`
}

// Totals returns the cached aggregation of one calculator.
func (s *Store) Totals(ctx context.Context, calculator string) (CalculatorTotals, error) {
	return cached(s.app, viewTotals+calculator, func() (CalculatorTotals, error) {
		in, err := s.SummaryInput(ctx, calculator)
		if err != nil {
			return CalculatorTotals{}, err
		}
		t := CalculatorTotals{Calculator: calculator}
		switch calculator {
		case services.CalcInsulation:
			agg := services.Aggregate(in.Insulation, services.InsulationByStructure)
			order := services.InsulationOrder(in.Insulation, in.InsulationPrices)
			t.Insulation, t.Order = &agg, &order
		case services.CalcVolcanita:
			vt := services.AggregateVolcanita(in.Volcanita)
			order := services.VolcanitaOrder(in.Volcanita, in.BoardPrices)
			t.Volcanita, t.Order = &vt, &order
		case services.CalcConcrete:
			takeoff := services.ProjectConcrete(in.Concrete, in.Radier, in.Zapata)
			t.Concrete = &takeoff
		}
		return t, nil
	})
}

// SummaryInput loads the rows a calculator's summary and export need.
// An empty calculator name loads all three.
func (s *Store) SummaryInput(ctx context.Context, calculator string) (services.SummaryInput, error) {
	in := services.SummaryInput{
		InsulationPrices: s.opts.InsulationPrices,
		BoardPrices:      s.opts.BoardPrices,
	}
	all := calculator == ""
	var err error

	if !all && !slices.Contains(services.Calculators, calculator) {
		return in, invalid("calculator", fmt.Sprintf("calculadora desconocida: %s", calculator))
	}

	if all || calculator == services.CalcInsulation {
		if in.Insulation, err = s.Insulation.List(ctx); err != nil {
			return in, err
		}
	}
	if all || calculator == services.CalcVolcanita {
		if in.Volcanita, err = s.Volcanita.List(ctx); err != nil {
			return in, err
		}
	}
	if all || calculator == services.CalcConcrete {
		if in.Concrete, err = s.Concrete.List(ctx); err != nil {
			return in, err
		}
		if in.Radier, in.Zapata, err = s.Dosage.Pair(ctx); err != nil {
			return in, err
		}
	}
	return in, nil
}
