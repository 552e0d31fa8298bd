package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog"

	"cubicacion/services"
	"cubicacion/store"
)

const exportDateLayout = "02-01-2006"

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

func writeAttachment(e *core.RequestEvent, contentType, filename string, body []byte) error {
	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	e.Response.WriteHeader(http.StatusOK)
	_, err := e.Response.Write(body)
	return err
}

// HandleExportTakeoff downloads a workbook with one sheet per calculator
// plus the expense ledger.
func HandleExportTakeoff(st *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ctx := e.Request.Context()

		in, err := st.SummaryInput(ctx, "")
		if err != nil {
			return respondError(e, err)
		}
		expenses, err := st.Expenses.List(ctx)
		if err != nil {
			return respondError(e, err)
		}
		catalog, err := st.Items.Catalog(ctx)
		if err != nil {
			return respondError(e, err)
		}

		now := time.Now()
		data := services.TakeoffExport(in, expenses, catalog, now.Format(exportDateLayout))
		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("export_excel: failed to generate")
			return ErrorToast(e, http.StatusInternalServerError, "No se pudo generar el archivo Excel")
		}

		filename := fmt.Sprintf("cubicacion_%s.xlsx", now.Format("2006-01-02"))
		return writeAttachment(e, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", filename, xlsxBytes)
	}
}

// HandleExportPDF downloads the take-off sheet of one calculator as a PDF.
// The route pattern is /export/{file} with file = <calculator>.pdf.
func HandleExportPDF(st *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ctx := e.Request.Context()

		calculator, ok := strings.CutSuffix(e.Request.PathValue("file"), ".pdf")
		if !ok || calculator == "" {
			return ErrorToast(e, http.StatusNotFound, "Exportación no encontrada")
		}

		in, err := st.SummaryInput(ctx, calculator)
		if err != nil {
			return respondError(e, err)
		}
		sheet, err := services.SheetFor(calculator, in)
		if err != nil {
			return respondError(e, err)
		}

		now := time.Now()
		data := services.ExportData{
			Title:       sheet.Title,
			CreatedDate: now.Format(exportDateLayout),
			Sheets:      []services.ExportSheet{sheet},
		}
		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("calculator", calculator).Msg("export_pdf: failed to generate")
			return ErrorToast(e, http.StatusInternalServerError, "No se pudo generar el PDF")
		}

		filename := fmt.Sprintf("%s_%s.pdf", sanitizeFilename(calculator), now.Format("2006-01-02"))
		return writeAttachment(e, "application/pdf", filename, pdfBytes)
	}
}
