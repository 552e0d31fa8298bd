package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"
)

type itemDef struct {
	key         string
	name        string
	description string
	unitPrice   int64
	category    string
	link        string
	notes       string
}

type expenseDef struct {
	item     string // itemDef.key
	quantity int64
	room     string
	floor    int
	date     string
	paid     bool
	paidBy   string
	notes    string
}

var seedItems = []itemDef{
	{key: "vol-st", name: "Volcanita Standard 10mm (1.2x2.4)", unitPrice: 9392, category: "materiales",
		link: "https://www.sodimac.cl/sodimac-cl/product/110157/volcanita-standard"},
	{key: "vol-rh", name: "Volcanita RH (Verde) 10mm", description: "Resistente a la humedad, ideal para baños",
		unitPrice: 15289, category: "materiales",
		link: "https://www.sodimac.cl/sodimac-cl/product/110158/volcanita-rh"},
	{key: "porcelanato", name: "Porcelanato 60x60", description: "Porcelanato para pisos", unitPrice: 12490, category: "materiales"},
	{key: "piso-flotante", name: "Piso Flotante 8mm", unitPrice: 13990, category: "materiales"},
	{key: "puerta", name: "Puerta Interior Completa", description: "Puerta + marco + bisagras", unitPrice: 38990, category: "materiales"},
	{key: "ventana", name: "Ventana Termopanel 1.2x1.0m", unitPrice: 118000, category: "materiales"},
	{key: "muebles-cocina", name: "Muebles de cocina modulares", description: "Set completo de muebles altos y bajos",
		unitPrice: 850000, category: "muebles", notes: "Cotización pendiente"},
	{key: "encimera", name: "Cocina encimera 4 platos", unitPrice: 189990, category: "electrodomesticos",
		link: "https://www.falabella.com/falabella-cl/product/12345/cocina-encimera"},
	{key: "campana", name: "Campana extractora", unitPrice: 89990, category: "electrodomesticos"},
	{key: "sofa", name: "Sofá 3 cuerpos", unitPrice: 450000, category: "muebles"},
	{key: "bano", name: "WC + Lavamanos + Accesorios", description: "Set completo de baño", unitPrice: 320000, category: "plomeria"},
	{key: "cama", name: "Cama 2 plazas con colchón", unitPrice: 399990, category: "muebles",
		link: "https://www.paris.cl/cama-2-plazas"},
}

var seedExpenses = []expenseDef{
	{item: "vol-st", quantity: 88, room: "general", floor: 0, date: "2024-01-15", paid: true, paidBy: "jessenia"},
	{item: "vol-rh", quantity: 25, room: "bano", floor: 1, date: "2024-01-15", paid: true, paidBy: "jessenia"},
	{item: "porcelanato", quantity: 38, room: "general", floor: 1, date: "2024-01-20"},
	{item: "piso-flotante", quantity: 35, room: "general", floor: 2, date: "2024-01-20"},
	{item: "puerta", quantity: 6, room: "general", floor: 0, date: "2024-01-25"},
	{item: "ventana", quantity: 9, room: "general", floor: 0, date: "2024-01-25"},
	{item: "muebles-cocina", quantity: 1, room: "cocina", floor: 1, date: "2024-02-01", notes: "Cotización pendiente"},
	{item: "encimera", quantity: 1, room: "cocina", floor: 1, date: "2024-02-01"},
	{item: "campana", quantity: 1, room: "cocina", floor: 1, date: "2024-02-01"},
	{item: "sofa", quantity: 1, room: "living", floor: 1, date: "2024-02-05"},
	{item: "bano", quantity: 1, room: "bano", floor: 1, date: "2024-02-10"},
	{item: "cama", quantity: 1, room: "pieza-grande", floor: 2, date: "2024-02-15"},
}

// Seed fills an empty catalog with the starting items and expenses.
// It returns early if any item already exists.
func Seed(app core.App) error {
	itemsCol, err := app.FindCollectionByNameOrId(Items)
	if err != nil {
		return fmt.Errorf("seed: could not find items collection: %w", err)
	}
	n, err := app.CountRecords(itemsCol)
	if err != nil {
		return fmt.Errorf("seed: could not count items: %w", err)
	}
	if n > 0 {
		return nil // already seeded
	}

	expensesCol, err := app.FindCollectionByNameOrId(Expenses)
	if err != nil {
		return fmt.Errorf("seed: could not find expenses collection: %w", err)
	}

	log.Info().Int("items", len(seedItems)).Int("expenses", len(seedExpenses)).
		Msg("seed: catalog is empty, inserting seed data")

	return app.RunInTransaction(func(txApp core.App) error {
		ids := make(map[string]string, len(seedItems))
		for _, d := range seedItems {
			rec := core.NewRecord(itemsCol)
			rec.Set("name", d.name)
			rec.Set("description", d.description)
			rec.Set("unit_price", d.unitPrice)
			rec.Set("category", d.category)
			rec.Set("link", d.link)
			rec.Set("notes", d.notes)
			if err := txApp.Save(rec); err != nil {
				return fmt.Errorf("seed: save item %q: %w", d.name, err)
			}
			ids[d.key] = rec.Id
		}

		for _, d := range seedExpenses {
			rec := core.NewRecord(expensesCol)
			rec.Set("item", ids[d.item])
			rec.Set("quantity", d.quantity)
			rec.Set("room", d.room)
			rec.Set("floor", d.floor)
			rec.Set("date", d.date)
			rec.Set("paid", d.paid)
			rec.Set("paid_by", d.paidBy)
			rec.Set("notes", d.notes)
			if err := txApp.Save(rec); err != nil {
				return fmt.Errorf("seed: save expense for %q: %w", d.item, err)
			}
		}
		return nil
	})
}
