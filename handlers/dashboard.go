package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"cubicacion/store"
)

// HandleDashboard returns the spending and budget overview.
func HandleDashboard(st *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		d, err := st.Dashboard(e.Request.Context())
		if err != nil {
			return respondError(e, err)
		}
		return e.JSON(http.StatusOK, d)
	}
}
