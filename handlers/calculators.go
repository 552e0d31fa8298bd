package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"

	"cubicacion/store"
)

// HandleRowList returns every row of a calculator.
func HandleRowList[T any](rows *store.Rows[T]) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		list, err := rows.List(e.Request.Context())
		if err != nil {
			return respondError(e, err)
		}
		return e.JSON(http.StatusOK, list)
	}
}

// HandleRowGet returns one row.
func HandleRowGet[T any](rows *store.Rows[T]) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		row, err := rows.Get(e.Request.Context(), e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, err)
		}
		return e.JSON(http.StatusOK, row)
	}
}

// HandleRowCreate adds a row. Omitted fields take their defaults and the
// derived values are computed by the store.
func HandleRowCreate[T any](rows *store.Rows[T]) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		fields := map[string]any{}
		if err := bind(e, &fields); err != nil {
			return respondError(e, err)
		}

		row, err := rows.Create(e.Request.Context(), fields)
		if err != nil {
			return respondError(e, err)
		}
		return e.JSON(http.StatusCreated, row)
	}
}

// HandleRowUpdate patches a row with the fields present in the body.
func HandleRowUpdate[T any](rows *store.Rows[T]) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		fields := map[string]any{}
		if err := bind(e, &fields); err != nil {
			return respondError(e, err)
		}

		row, err := rows.Update(e.Request.Context(), e.Request.PathValue("id"), fields)
		if err != nil {
			return respondError(e, err)
		}
		return e.JSON(http.StatusOK, row)
	}
}

// HandleRowDelete removes a row.
func HandleRowDelete[T any](rows *store.Rows[T]) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := rows.Delete(e.Request.Context(), e.Request.PathValue("id")); err != nil {
			return respondError(e, err)
		}
		return e.NoContent(http.StatusNoContent)
	}
}

type resetResponse struct {
	Deleted int `json:"deleted"`
}

// HandleRowReset clears a calculator.
func HandleRowReset[T any](rows *store.Rows[T]) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		n, err := rows.Reset(e.Request.Context())
		if err != nil {
			return respondError(e, err)
		}

		SetToast(e, "success", "Cálculos reiniciados")
		return e.JSON(http.StatusOK, resetResponse{Deleted: n})
	}
}

// HandleTotals returns the aggregated take-off of one calculator.
func HandleTotals(st *store.Store, calculator string) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		totals, err := st.Totals(e.Request.Context(), calculator)
		if err != nil {
			return respondError(e, err)
		}
		return e.JSON(http.StatusOK, totals)
	}
}

// RegisterCalculator mounts the CRUD, reset and totals routes of one
// calculator under prefix.
func RegisterCalculator[T any](r *router.Router[*core.RequestEvent], st *store.Store, prefix, calculator string, rows *store.Rows[T]) {
	r.GET(prefix, HandleRowList(rows))
	r.POST(prefix, HandleRowCreate(rows))
	r.GET(prefix+"/{id}", HandleRowGet(rows))
	r.PATCH(prefix+"/{id}", HandleRowUpdate(rows))
	r.DELETE(prefix+"/{id}", HandleRowDelete(rows))
	r.POST(prefix+"/reset", HandleRowReset(rows))
	r.GET(prefix+"/totals", HandleTotals(st, calculator))
}
