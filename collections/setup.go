// Package collections creates the PocketBase collections backing the
// catalog, the expenses and the three take-off calculators, and runs the
// startup data fixes.
package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"

	"cubicacion/services"
)

// Collection names.
const (
	Items      = "items"
	Expenses   = "expenses"
	Volcanita  = "volcanita_calculations"
	Insulation = "insulation_calculations"
	Concrete   = "sika_calculations"
	SikaConfig = "sika_config"
)

// All lists every collection Setup creates, parents first.
var All = []string{Items, Expenses, Volcanita, Insulation, Concrete, SikaConfig}

func ptr(v float64) *float64 { return &v }

func timestamps(c *core.Collection) {
	c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
}

// dimension adds an optional real-valued measurement field. Number fields
// are never Required here: PocketBase rejects a required zero.
func dimension(c *core.Collection, names ...string) {
	for _, n := range names {
		c.Fields.Add(&core.NumberField{Name: n})
	}
}

// Setup creates any missing collection. Existing collections are left
// untouched.
func Setup(app core.App) error {
	items, err := ensureCollection(app, Items, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true, Max: 200})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.NumberField{Name: "unit_price", OnlyInt: true, Min: ptr(0)})
		c.Fields.Add(&core.SelectField{
			Name:      "category",
			Required:  true,
			Values:    services.CategoryValues(),
			MaxSelect: 1,
		})
		c.Fields.Add(&core.URLField{Name: "link"})
		c.Fields.Add(&core.NumberField{Name: "local_price", OnlyInt: true, Min: ptr(0)})
		c.Fields.Add(&core.TextField{Name: "local_description"})
		c.Fields.Add(&core.TextField{Name: "notes"})
		timestamps(c)
	})
	if err != nil {
		return err
	}

	if _, err := ensureCollection(app, Expenses, func(c *core.Collection) {
		// No cascade: items with expenses cannot be deleted.
		c.Fields.Add(&core.RelationField{
			Name:          "item",
			Required:      true,
			CollectionId:  items.Id,
			CascadeDelete: false,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true, OnlyInt: true, Min: ptr(1)})
		c.Fields.Add(&core.SelectField{
			Name:      "room",
			Required:  true,
			Values:    services.RoomValues(),
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "floor", OnlyInt: true, Min: ptr(0), Max: ptr(2)})
		c.Fields.Add(&core.TextField{Name: "date", Pattern: `^\d{4}-\d{2}-\d{2}$`})
		c.Fields.Add(&core.BoolField{Name: "paid"})
		c.Fields.Add(&core.TextField{Name: "paid_by"})
		c.Fields.Add(&core.TextField{Name: "notes"})
		timestamps(c)
		c.AddIndex("idx_expenses_item", false, "item", "")
	}); err != nil {
		return err
	}

	if _, err := ensureCollection(app, Volcanita, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "habitacion"})
		c.Fields.Add(&core.NumberField{Name: "floor", OnlyInt: true, Min: ptr(1), Max: ptr(2)})
		c.Fields.Add(&core.TextField{Name: "tipo_superficie"})
		c.Fields.Add(&core.TextField{Name: "orientacion"})
		dimension(c, "ancho", "alto", "ancho_ventana", "alto_ventana")
		c.Fields.Add(&core.SelectField{
			Name:      "tipo_volcanita",
			Required:  true,
			Values:    services.VolcanitaTypeValues(),
			MaxSelect: 1,
		})
		dimension(c, "area_neto")
		c.Fields.Add(&core.NumberField{Name: "planchas_requeridas", OnlyInt: true, Min: ptr(0)})
		timestamps(c)
	}); err != nil {
		return err
	}

	if _, err := ensureCollection(app, Insulation, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "room"})
		c.Fields.Add(&core.SelectField{
			Name:      "tipo_estructura",
			Required:  true,
			Values:    services.InsulationTypeValues(),
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "tipo_superficie"})
		c.Fields.Add(&core.TextField{Name: "orientacion"})
		c.Fields.Add(&core.NumberField{Name: "floor", OnlyInt: true, Min: ptr(1), Max: ptr(2)})
		dimension(c, "ancho", "alto", "largo",
			"ancho_puerta", "alto_puerta", "ancho_ventana", "alto_ventana", "area")
		timestamps(c)
	}); err != nil {
		return err
	}

	if _, err := ensureCollection(app, Concrete, func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "tipo",
			Required:  true,
			Values:    services.MixTypes,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "name"})
		c.Fields.Add(&core.NumberField{Name: "qty", OnlyInt: true})
		dimension(c, "length", "width", "height", "volume", "area")
		timestamps(c)
	}); err != nil {
		return err
	}

	if _, err := ensureCollection(app, SikaConfig, func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "tipo",
			Required:  true,
			Values:    services.MixTypes,
			MaxSelect: 1,
		})
		dimension(c, "cement", "sand", "gravel", "water", "sika_dosage", "sika_container", "waste")
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_sika_config_tipo", true, "tipo", "")
	}); err != nil {
		return err
	}

	return nil
}

// ensureCollection returns the named collection, creating it first when it
// does not exist yet. addFields populates a new collection before it is saved.
func ensureCollection(app core.App, name string, addFields func(*core.Collection)) (*core.Collection, error) {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Debug().Str("collection", name).Msg("collection already exists, skipping creation")
		return existing, nil
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		return nil, fmt.Errorf("create collection %q: %w", name, err)
	}

	log.Info().Str("collection", name).Str("id", collection.Id).Msg("created collection")
	return collection, nil
}
