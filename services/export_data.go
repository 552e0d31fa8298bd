package services

import "fmt"

// ExportRow is a single line of a take-off sheet. Level 0 rows are group
// headers (a structure type, board type or mix), level 1 rows are the
// measured elements under them.
type ExportRow struct {
	Level       int    // 0 = group, 1 = element
	Index       string // "1", "1.1" etc
	Description string
	Floor       int
	Dims        string
	Qty         float64
	UOM         string
	UnitPrice   int64
	Amount      int64
}

// ExportTotal is a labelled figure printed under a sheet's rows.
type ExportTotal struct {
	Label string
	Value string
}

// ExportSheet is one calculator's take-off, ready to render.
type ExportSheet struct {
	Name   string // sheet tab, max 31 chars
	Title  string
	Rows   []ExportRow
	Totals []ExportTotal
}

// ExportData holds all data needed for an export.
type ExportData struct {
	Title       string
	CreatedDate string
	Sheets      []ExportSheet
}

// InsulationSheet lists each structure type with its priced area and the
// zones that make it up.
func InsulationSheet(rows []InsulationRow, prices map[string]int64) ExportSheet {
	o := InsulationOrder(rows, prices)
	s := ExportSheet{Name: "Aislación", Title: "Aislación - Lana de Vidrio"}

	for i, l := range o.Lines {
		group := fmt.Sprintf("%d", i+1)
		s.Rows = append(s.Rows, ExportRow{
			Level:       0,
			Index:       group,
			Description: fmt.Sprintf("%s (%s)", l.Name, l.Spec),
			Qty:         l.Area,
			UOM:         "m²",
			UnitPrice:   l.UnitPrice,
			Amount:      l.Subtotal,
		})
		n := 0
		for _, r := range rows {
			if r.StructureType != l.Key {
				continue
			}
			n++
			dims := formatDim(r.Width) + " × " + formatDim(r.Height)
			if r.IsCeiling() {
				dims = formatDim(r.Width) + " × " + formatDim(r.Length)
			}
			s.Rows = append(s.Rows, ExportRow{
				Level:       1,
				Index:       fmt.Sprintf("%s.%d", group, n),
				Description: fmt.Sprintf("%s - %s %s", RoomName(r.Room), r.SurfaceType, r.Orientation),
				Floor:       r.Floor,
				Dims:        dims + openings(r.DoorWidth, r.DoorHeight, r.WindowWidth, r.WindowHeight),
				Qty:         r.Area,
				UOM:         "m²",
			})
		}
	}

	s.Totals = []ExportTotal{
		{"Piso 1", FormatM2(o.Area.Floor(FloorFirst))},
		{"Piso 2", FormatM2(o.Area.Floor(FloorSecond))},
		{"Total área", FormatM2(o.Area.Total)},
		{"Total precio", FormatCLPInt(o.Total)},
	}
	return s
}

// VolcanitaSheet lists each board type with its priced board count and the
// panels that make it up.
func VolcanitaSheet(rows []VolcanitaRow, prices map[string]int64) ExportSheet {
	o := VolcanitaOrder(rows, prices)
	s := ExportSheet{Name: "Volcanita", Title: "Volcanita - Planchas 1.2 × 2.4 m"}

	for i, l := range o.Lines {
		group := fmt.Sprintf("%d", i+1)
		s.Rows = append(s.Rows, ExportRow{
			Level:       0,
			Index:       group,
			Description: fmt.Sprintf("%s (%s)", l.Name, l.Spec),
			Qty:         float64(l.Boards),
			UOM:         "planchas",
			UnitPrice:   l.UnitPrice,
			Amount:      l.Subtotal,
		})
		n := 0
		for _, r := range rows {
			if r.BoardType != l.Key {
				continue
			}
			n++
			s.Rows = append(s.Rows, ExportRow{
				Level:       1,
				Index:       fmt.Sprintf("%s.%d", group, n),
				Description: fmt.Sprintf("%s - %s %s (%s)", RoomName(r.Room), r.SurfaceType, r.Orientation, FormatM2(r.NetArea)),
				Floor:       r.Floor,
				Dims:        formatDim(r.Width) + " × " + formatDim(r.Height) + openings(0, 0, r.WindowWidth, r.WindowHeight),
				Qty:         float64(r.BoardsRequired),
				UOM:         "planchas",
			})
		}
	}

	s.Totals = []ExportTotal{
		{"Total área", FormatM2(o.Area.Total)},
		{"Total planchas", FormatNumber(o.Boards)},
		{"Total precio", FormatCLPInt(o.Total)},
	}
	return s
}

// ConcreteSheet lists the elements per mix type followed by the material
// order for each mix and the additive containers.
func ConcreteSheet(rows []ConcreteRow, radier, zapata DosageConfig) ExportSheet {
	t := ProjectConcrete(rows, radier, zapata)
	s := ExportSheet{Name: "Hormigón", Title: "Hormigón y Sika"}

	for i, m := range []MaterialQuantities{t.Radier, t.Zapata} {
		group := fmt.Sprintf("%d", i+1)
		title := mixTitles[m.MixType]
		s.Rows = append(s.Rows, ExportRow{
			Level:       0,
			Index:       group,
			Description: title,
			Qty:         m.Volume,
			UOM:         "m³",
		})
		n := 0
		for _, r := range rows {
			if r.MixType != m.MixType {
				continue
			}
			n++
			s.Rows = append(s.Rows, ExportRow{
				Level:       1,
				Index:       fmt.Sprintf("%s.%d", group, n),
				Description: r.Name,
				Dims: fmt.Sprintf("%d × %s × %s × %s",
					r.Qty, formatDim(r.Length), formatDim(r.Width), formatDim(r.Height)),
				Qty: r.Volume,
				UOM: "m³",
			})
		}
		for _, mat := range []struct {
			name string
			qty  float64
			uom  string
		}{
			{"Cemento (25kg)", float64(m.Cement), "sacos"},
			{"Arena Gruesa", float64(m.Sand), "unidades"},
			{"Grava", float64(m.Gravel), "unidades"},
			{"Agua Potable", m.Water, "litros"},
			{"Sika", m.SikaKg, "kg"},
		} {
			n++
			s.Rows = append(s.Rows, ExportRow{
				Level:       1,
				Index:       fmt.Sprintf("%s.%d", group, n),
				Description: mat.name,
				Qty:         mat.qty,
				UOM:         mat.uom,
			})
		}
	}

	s.Totals = []ExportTotal{
		{"Volumen radier", FormatM3(t.Radier.Volume)},
		{"Volumen zapatas", FormatM3(t.Zapata.Volume)},
		{"Sika total", fmt.Sprintf("%.1f kg", t.TotalSikaKg)},
		{"Bidones", fmt.Sprintf("%d × %sL", t.SikaContainer, formatDim(t.ContainerKg))},
	}
	return s
}

// ExpensesSheet lists every expense with its amount, grouped by floor, and
// the paid and pending totals.
func ExpensesSheet(expenses []Expense, c Catalog) ExportSheet {
	s := ExportSheet{Name: "Gastos", Title: "Gastos"}
	totals := Spending(expenses, c)

	for gi, floor := range []int{FloorGeneral, FloorFirst, FloorSecond} {
		group := fmt.Sprintf("%d", gi+1)
		label := "General"
		if floor != FloorGeneral {
			label = fmt.Sprintf("Piso %d", floor)
		}
		s.Rows = append(s.Rows, ExportRow{
			Level:       0,
			Index:       group,
			Description: label,
			Floor:       floor,
			Amount:      totals.ByFloor[floor],
		})
		n := 0
		for _, e := range expenses {
			if e.Floor != floor {
				continue
			}
			n++
			it := c[e.ItemID]
			name := it.Name
			if name == "" {
				name = e.ItemID
			}
			s.Rows = append(s.Rows, ExportRow{
				Level:       1,
				Index:       fmt.Sprintf("%s.%d", group, n),
				Description: fmt.Sprintf("%s - %s", name, RoomName(e.Room)),
				Floor:       floor,
				Dims:        e.Date,
				Qty:         float64(e.Quantity),
				UOM:         "un",
				UnitPrice:   it.UnitPrice,
				Amount:      c.ExpenseAmount(e),
			})
		}
	}

	s.Totals = []ExportTotal{
		{"Total gastado", FormatCLPInt(totals.Total)},
		{"Pagado", FormatCLPInt(totals.Paid)},
		{"Pendiente", FormatCLPInt(totals.Pending)},
	}
	return s
}

// SheetFor builds the export sheet of one calculator.
func SheetFor(calculator string, in SummaryInput) (ExportSheet, error) {
	switch calculator {
	case CalcInsulation:
		return InsulationSheet(in.Insulation, in.InsulationPrices), nil
	case CalcVolcanita:
		return VolcanitaSheet(in.Volcanita, in.BoardPrices), nil
	case CalcConcrete:
		return ConcreteSheet(in.Concrete, in.Radier, in.Zapata), nil
	}
	return ExportSheet{}, fmt.Errorf("unknown calculator %q", calculator)
}

// TakeoffExport bundles every calculator sheet plus the expenses sheet.
func TakeoffExport(in SummaryInput, expenses []Expense, c Catalog, date string) ExportData {
	return ExportData{
		Title:       "Cubicación",
		CreatedDate: date,
		Sheets: []ExportSheet{
			InsulationSheet(in.Insulation, in.InsulationPrices),
			VolcanitaSheet(in.Volcanita, in.BoardPrices),
			ConcreteSheet(in.Concrete, in.Radier, in.Zapata),
			ExpensesSheet(expenses, c),
		},
	}
}
