package handlers

import (
	"net/http"
	"slices"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"

	"cubicacion/services"
	"cubicacion/store"
)

type expenseListResponse struct {
	Expenses []services.Expense      `json:"expenses"`
	Totals   services.SpendingTotals `json:"totals"`
}

// parseExpenseFilter reads ?room=, ?floor= and ?category=.
func parseExpenseFilter(e *core.RequestEvent) (services.ExpenseFilter, error) {
	q := e.Request.URL.Query()
	f := services.ExpenseFilter{
		Room:     strings.TrimSpace(q.Get("room")),
		Category: strings.TrimSpace(q.Get("category")),
	}
	if raw := strings.TrimSpace(q.Get("floor")); raw != "" {
		floor, err := cast.ToIntE(raw)
		if err != nil || !slices.Contains([]int{services.FloorGeneral, services.FloorFirst, services.FloorSecond}, floor) {
			return f, &store.ValidationError{Msg: "Filtro inválido", Fields: map[string]string{"floor": "debe ser 0, 1 o 2"}}
		}
		f.Floor = &floor
	}
	return f, nil
}

// HandleExpenseList returns the expenses matching the query filters with
// their totals. It reads from the cached expense view, so a toggle that is
// still being written already shows.
func HandleExpenseList(st *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ctx := e.Request.Context()
		filter, err := parseExpenseFilter(e)
		if err != nil {
			return respondError(e, err)
		}

		view, err := st.ExpenseView(ctx)
		if err != nil {
			return respondError(e, err)
		}
		catalog, err := st.Items.Catalog(ctx)
		if err != nil {
			return respondError(e, err)
		}

		list := filter.Apply(view.Get(), catalog)
		return e.JSON(http.StatusOK, expenseListResponse{
			Expenses: list,
			Totals:   services.Spending(list, catalog),
		})
	}
}

// HandleExpenseGet returns one expense.
func HandleExpenseGet(st *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		expense, err := st.Expenses.Get(e.Request.Context(), e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, err)
		}
		return e.JSON(http.StatusOK, expense)
	}
}

// HandleExpenseCreate logs a purchase.
func HandleExpenseCreate(st *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in store.ExpenseInput
		if err := bind(e, &in); err != nil {
			return respondError(e, err)
		}

		expense, err := st.Expenses.Create(e.Request.Context(), in)
		if err != nil {
			return respondError(e, err)
		}

		SetToast(e, "success", "Gasto agregado")
		return e.JSON(http.StatusCreated, expense)
	}
}

// HandleExpenseUpdate patches an expense.
func HandleExpenseUpdate(st *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in store.ExpenseInput
		if err := bind(e, &in); err != nil {
			return respondError(e, err)
		}

		expense, err := st.Expenses.Update(e.Request.Context(), e.Request.PathValue("id"), in)
		if err != nil {
			return respondError(e, err)
		}

		SetToast(e, "success", "Gasto actualizado")
		return e.JSON(http.StatusOK, expense)
	}
}

// HandleExpenseDelete removes an expense.
func HandleExpenseDelete(st *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := st.Expenses.Delete(e.Request.Context(), e.Request.PathValue("id")); err != nil {
			return respondError(e, err)
		}

		SetToast(e, "success", "Gasto eliminado")
		return e.NoContent(http.StatusNoContent)
	}
}

type togglePaidRequest struct {
	PaidBy string `json:"paid_by" form:"paid_by" validate:"max=100"`
}

// HandleExpenseTogglePaid flips the paid flag. The optional paid_by names
// the payer when the expense becomes paid.
func HandleExpenseTogglePaid(st *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req togglePaidRequest
		if err := bind(e, &req); err != nil {
			return respondError(e, err)
		}

		expense, err := st.TogglePaid(e.Request.Context(), e.Request.PathValue("id"), strings.TrimSpace(req.PaidBy))
		if err != nil {
			return respondError(e, err)
		}

		msg := "Marcado como pendiente"
		if expense.Paid {
			msg = "Marcado como pagado"
		}
		SetToast(e, "success", msg)
		return e.JSON(http.StatusOK, expense)
	}
}

type quantityRequest struct {
	Quantity int64 `json:"quantity" form:"quantity"`
}

// HandleExpenseQuantity sets an expense's quantity. Quantities below 1
// answer 422 and leave the expense unchanged.
func HandleExpenseQuantity(st *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req quantityRequest
		if err := bind(e, &req); err != nil {
			return respondError(e, err)
		}

		expense, err := st.UpdateQuantity(e.Request.Context(), e.Request.PathValue("id"), req.Quantity)
		if err != nil {
			return respondError(e, err)
		}
		return e.JSON(http.StatusOK, expense)
	}
}
