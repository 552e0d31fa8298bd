package services

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// excelStyles are the cell styles shared by every sheet of a workbook.
type excelStyles struct {
	title, subtitle, header, group, element, label, value int
}

func newExcelStyles(f *excelize.File) (excelStyles, error) {
	var s excelStyles
	var err error

	if s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	}); err != nil {
		return s, fmt.Errorf("create title style: %w", err)
	}

	if s.subtitle, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	}); err != nil {
		return s, fmt.Errorf("create subtitle style: %w", err)
	}

	// Column header: bold white text on charcoal, centered.
	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	}); err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}

	if s.group, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 10},
		Border: thinBorders(),
	}); err != nil {
		return s, fmt.Errorf("create group style: %w", err)
	}

	if s.element, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	}); err != nil {
		return s, fmt.Errorf("create element style: %w", err)
	}

	if s.label, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return s, fmt.Errorf("create summary label style: %w", err)
	}

	if s.value, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	}); err != nil {
		return s, fmt.Errorf("create summary value style: %w", err)
	}
	return s, nil
}

var excelColumns = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

// GenerateExcel creates a workbook with one sheet per ExportSheet and returns
// the file contents.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newExcelStyles(f)
	if err != nil {
		return nil, err
	}

	sheets := data.Sheets
	if len(sheets) == 0 {
		sheets = []ExportSheet{{Name: data.Title, Title: data.Title}}
	}

	used := make(map[string]bool)
	for i, sh := range sheets {
		name := sheetName(sh.Name, i, used)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, fmt.Errorf("set sheet name: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("new sheet %s: %w", name, err)
		}
		if err := writeSheet(f, name, sh, data.CreatedDate, styles); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetName trims a tab name to Excel's 31 character limit and keeps it
// unique within the workbook.
func sheetName(name string, i int, used map[string]bool) string {
	if name == "" {
		name = "Cubicación"
	}
	if utf8.RuneCountInString(name) > 31 {
		name = string([]rune(name)[:31])
	}
	if used[name] {
		suffix := fmt.Sprintf(" %d", i+1)
		r := []rune(name)
		if len(r)+len(suffix) > 31 {
			r = r[:31-len(suffix)]
		}
		name = string(r) + suffix
	}
	used[name] = true
	return name
}

func writeSheet(f *excelize.File, sheet string, sh ExportSheet, date string, st excelStyles) error {
	lastCol := excelColumns[len(excelColumns)-1]

	widths := []float64{6, 44, 8, 24, 12, 10, 14, 16}
	for i, col := range excelColumns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// Rows 1-2: title and date.
	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", sanitizeExcelCell(sh.Title))
	f.SetCellStyle(sheet, "A1", lastCol+"1", st.title)

	if err := f.MergeCell(sheet, "A2", lastCol+"2"); err != nil {
		return fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheet, "A2", "Fecha: "+date)
	f.SetCellStyle(sheet, "A2", lastCol+"2", st.subtitle)

	// Row 4: column headers.
	headers := []string{"#", "Descripción", "Piso", "Medidas", "Cantidad", "Unidad", "Precio Unit.", "Total"}
	for i, h := range headers {
		f.SetCellValue(sheet, excelColumns[i]+"4", h)
	}
	f.SetCellStyle(sheet, "A4", lastCol+"4", st.header)

	row := 5
	for _, r := range sh.Rows {
		n := fmt.Sprintf("%d", row)

		desc := r.Description
		if r.Level == 1 {
			desc = "  " + desc
		}
		f.SetCellValue(sheet, "A"+n, r.Index)
		f.SetCellValue(sheet, "B"+n, sanitizeExcelCell(desc))
		if r.Level == 1 && r.Floor != 0 {
			f.SetCellValue(sheet, "C"+n, r.Floor)
		}
		f.SetCellValue(sheet, "D"+n, sanitizeExcelCell(r.Dims))
		f.SetCellValue(sheet, "E"+n, r.Qty)
		f.SetCellValue(sheet, "F"+n, sanitizeExcelCell(r.UOM))
		if r.UnitPrice != 0 {
			f.SetCellValue(sheet, "G"+n, FormatCLPInt(r.UnitPrice))
		}
		if r.Amount != 0 {
			f.SetCellValue(sheet, "H"+n, FormatCLPInt(r.Amount))
		}

		style := st.element
		if r.Level == 0 {
			style = st.group
		}
		f.SetCellStyle(sheet, "A"+n, lastCol+n, style)
		row++
	}

	// Blank row, then totals.
	row++
	for _, t := range sh.Totals {
		n := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "G"+n, t.Label+":")
		f.SetCellStyle(sheet, "G"+n, "G"+n, st.label)
		f.SetCellValue(sheet, "H"+n, t.Value)
		f.SetCellStyle(sheet, "H"+n, "H"+n, st.value)
		row++
	}
	return nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
