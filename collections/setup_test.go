package collections_test

import (
	"testing"

	"cubicacion/collections"
	"cubicacion/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range collections.All {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	ids := make(map[string]string)
	for _, name := range collections.All {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	if err := collections.Setup(app); err != nil {
		t.Fatalf("second Setup() error: %v", err)
	}

	for _, name := range collections.All {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q id changed after second Setup(): %s -> %s", name, ids[name], col.Id)
		}
	}
}

func assertFields(t *testing.T, app core.App, name string, fields []string) *core.Collection {
	t.Helper()
	col, err := app.FindCollectionByNameOrId(name)
	if err != nil {
		t.Fatalf("collection %q not found: %v", name, err)
	}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("%s: missing field %q", name, f)
		}
	}
	return col
}

func TestSetup_ItemsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col := assertFields(t, app, collections.Items, []string{
		"name", "description", "unit_price", "category", "link",
		"local_price", "local_description", "notes", "created", "updated",
	})

	sf, ok := col.Fields.GetByName("category").(*core.SelectField)
	if !ok {
		t.Fatal("items.category is not a SelectField")
	}
	if len(sf.Values) != 8 {
		t.Errorf("items.category: expected 8 values, got %d", len(sf.Values))
	}
}

func TestSetup_ExpensesFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col := assertFields(t, app, collections.Expenses, []string{
		"item", "quantity", "room", "floor", "date", "paid", "paid_by", "notes", "created", "updated",
	})

	rf, ok := col.Fields.GetByName("item").(*core.RelationField)
	if !ok {
		t.Fatal("expenses.item is not a RelationField")
	}
	if rf.CascadeDelete {
		t.Error("expenses.item: expected CascadeDelete=false")
	}
	if rf.MaxSelect != 1 {
		t.Errorf("expenses.item: expected MaxSelect=1, got %d", rf.MaxSelect)
	}
	items, _ := app.FindCollectionByNameOrId(collections.Items)
	if rf.CollectionId != items.Id {
		t.Errorf("expenses.item points at %q, want items (%s)", rf.CollectionId, items.Id)
	}
}

func TestSetup_CalculatorFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	assertFields(t, app, collections.Volcanita, []string{
		"habitacion", "floor", "tipo_superficie", "orientacion", "ancho", "alto",
		"ancho_ventana", "alto_ventana", "tipo_volcanita", "area_neto", "planchas_requeridas",
		"created", "updated",
	})
	assertFields(t, app, collections.Insulation, []string{
		"room", "tipo_estructura", "tipo_superficie", "orientacion", "floor",
		"ancho", "alto", "largo", "ancho_puerta", "alto_puerta", "ancho_ventana", "alto_ventana",
		"area", "created", "updated",
	})
	assertFields(t, app, collections.Concrete, []string{
		"tipo", "name", "qty", "length", "width", "height", "volume", "area", "created", "updated",
	})
	assertFields(t, app, collections.SikaConfig, []string{
		"tipo", "cement", "sand", "gravel", "water", "sika_dosage", "sika_container", "waste", "updated",
	})
}

func TestSetup_SikaConfigUniqueTipo(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId(collections.SikaConfig)

	first := core.NewRecord(col)
	first.Set("tipo", "radier")
	if err := app.Save(first); err != nil {
		t.Fatalf("save first config: %v", err)
	}

	dup := core.NewRecord(col)
	dup.Set("tipo", "radier")
	if err := app.Save(dup); err == nil {
		t.Error("expected unique index on sika_config.tipo to reject a second radier config")
	}
}

func TestSetup_ExpenseQuantityMinimum(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	item := testhelpers.CreateTestItem(t, app, "Tornillos", 1990, "materiales")

	col, _ := app.FindCollectionByNameOrId(collections.Expenses)
	rec := core.NewRecord(col)
	rec.Set("item", item.Id)
	rec.Set("quantity", 0)
	rec.Set("room", "general")
	if err := app.Save(rec); err == nil {
		t.Error("expected quantity 0 to be rejected")
	}
}
