package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"

	"cubicacion/services"
	"cubicacion/store"
	"cubicacion/templates"
)

var summaryTitles = map[string]string{
	services.CalcInsulation: "Pedido de aislación",
	services.CalcVolcanita:  "Pedido de volcanita",
	services.CalcConcrete:   "Materiales de hormigón",
}

// HandleSummary returns the order text of one calculator, detailed when
// ?detail=1. Browsers asking for text/html get it wrapped in a page.
func HandleSummary(st *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ctx := e.Request.Context()
		calculator := e.Request.PathValue("calculator")
		detailed := cast.ToBool(e.Request.URL.Query().Get("detail"))

		in, err := st.SummaryInput(ctx, calculator)
		if err != nil {
			return respondError(e, err)
		}
		text, err := services.Summary(calculator, in, detailed)
		if err != nil {
			return respondError(e, err)
		}

		if strings.Contains(e.Request.Header.Get("Accept"), "text/html") {
			e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
			e.Response.WriteHeader(http.StatusOK)
			return templates.SummaryPage(summaryTitles[calculator], text, detailed).Render(ctx, e.Response)
		}
		return e.String(http.StatusOK, text)
	}
}
