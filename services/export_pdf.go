package services

import (
	"fmt"
	"math"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF renders the export sheets one after another as a landscape
// A4 document and returns the raw PDF bytes.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, data.Title, data.CreatedDate)
	for _, sh := range data.Sheets {
		addSheetTitle(m, sh.Title)
		addTableHeader(m)
		for _, r := range sh.Rows {
			addTableRow(m, r)
		}
		addSummary(m, sh.Totals)
	}
	addFooter(m, data.CreatedDate)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

var (
	grey      = &props.Color{Red: 80, Green: 80, Blue: 80}
	lightGrey = &props.Color{Red: 140, Green: 140, Blue: 140}
	white     = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// line adds a full-width row holding a single text.
func line(m core.Maroto, height float64, s string, p props.Text) {
	m.AddRows(row.New(height).Add(col.New(12).Add(text.New(s, p))))
}

func addHeader(m core.Maroto, title, date string) {
	line(m, 12, title, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center})
	line(m, 8, "Fecha: "+date, props.Text{Size: 9, Align: align.Right, Color: grey})
	m.AddRows(row.New(4))
}

func addSheetTitle(m core.Maroto, title string) {
	line(m, 9, title, props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Left})
}

// pdfColumns are the take-off table columns on a 12-unit grid.
var pdfColumns = []struct {
	title string
	width int
}{
	{"#", 1}, {"Descripción", 4}, {"Medidas", 2}, {"Cantidad", 1},
	{"Unidad", 1}, {"Precio", 1}, {"Total", 2},
}

// addTableHeader adds the column header row of a take-off table.
func addTableHeader(m core.Maroto) {
	cell := &props.Cell{BackgroundColor: &props.Color{Red: 33, Green: 37, Blue: 41}}
	center := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center, Color: white}
	left := center
	left.Align = align.Left

	cols := make([]core.Col, 0, len(pdfColumns))
	for i, c := range pdfColumns {
		p := center
		if i == 1 {
			p = left
		}
		cols = append(cols, col.New(c.width).Add(text.New(c.title, p)).WithStyle(cell))
	}
	m.AddRows(row.New(8).Add(cols...))
}

// addTableRow adds one take-off row, bold for groups and shaded for elements.
func addTableRow(m core.Maroto, r ExportRow) {
	var cellStyle *props.Cell
	var textSize float64 = 7
	var textStyle fontstyle.Type = fontstyle.Normal
	descPrefix := ""

	switch r.Level {
	case 0:
		textStyle = fontstyle.Bold
		textSize = 8
	default:
		descPrefix = "  "
		cellStyle = &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
	}

	baseText := props.Text{Size: textSize, Style: textStyle, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	price, amount := "", ""
	if r.UnitPrice != 0 {
		price = FormatCLPInt(r.UnitPrice)
	}
	if r.Amount != 0 {
		amount = FormatCLPInt(r.Amount)
	}

	cells := []struct {
		s string
		p props.Text
	}{
		{r.Index, baseText},
		{descPrefix + r.Description, leftText},
		{r.Dims, baseText},
		{formatQty(r.Qty), rightText},
		{r.UOM, baseText},
		{price, rightText},
		{amount, rightText},
	}
	cols := make([]core.Col, len(cells))
	for i, c := range cells {
		cols[i] = col.New(pdfColumns[i].width).Add(text.New(c.s, c.p))
		if cellStyle != nil {
			cols[i] = cols[i].WithStyle(cellStyle)
		}
	}

	m.AddRows(row.New(7).Add(cols...))
}

// addSummary adds the totals block under a table.
func addSummary(m core.Maroto, totals []ExportTotal) {
	m.AddRows(row.New(4))

	cell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	style := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	for _, t := range totals {
		m.AddRows(row.New(8).Add(
			col.New(8).Add(text.New(t.Label, style)).WithStyle(cell),
			col.New(4).Add(text.New(t.Value, style)).WithStyle(cell),
		))
	}
	m.AddRows(row.New(6))
}

func addFooter(m core.Maroto, date string) {
	line(m, 6, "Generado el "+date, props.Text{Size: 7, Align: align.Left, Color: lightGrey})
}

// formatQty prints whole quantities without decimals and fractional ones
// with two.
func formatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}
