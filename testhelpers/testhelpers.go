// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"cubicacion/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	if err := collections.Setup(app); err != nil {
		t.Fatalf("failed to set up collections: %v", err)
	}

	return app
}

func save(t *testing.T, app core.App, collection string, fields map[string]any) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collection)
	if err != nil {
		t.Fatalf("failed to find %s collection: %v", collection, err)
	}

	record := core.NewRecord(col)
	for k, v := range fields {
		record.Set(k, v)
	}
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test %s record: %v", collection, err)
	}
	return record
}

// CreateTestItem creates a catalog item and returns it.
func CreateTestItem(t *testing.T, app core.App, name string, unitPrice int64, category string) *core.Record {
	t.Helper()
	return save(t, app, collections.Items, map[string]any{
		"name":       name,
		"unit_price": unitPrice,
		"category":   category,
	})
}

// CreateTestExpense creates an unpaid expense for an item and returns it.
func CreateTestExpense(t *testing.T, app core.App, itemID string, quantity int64, room string, floor int) *core.Record {
	t.Helper()
	return save(t, app, collections.Expenses, map[string]any{
		"item":     itemID,
		"quantity": quantity,
		"room":     room,
		"floor":    floor,
		"date":     "2025-01-15",
	})
}

// CreateTestInsulation creates a wall insulation row with its area already
// computed.
func CreateTestInsulation(t *testing.T, app core.App, structureType string, floor int, width, height float64) *core.Record {
	t.Helper()
	return save(t, app, collections.Insulation, map[string]any{
		"room":            "cocina",
		"tipo_estructura": structureType,
		"tipo_superficie": "Pared",
		"orientacion":     "Norte",
		"floor":           floor,
		"ancho":           width,
		"alto":            height,
		"area":            width * height,
	})
}

// CreateTestConcrete creates a concrete row with volume and area computed.
func CreateTestConcrete(t *testing.T, app core.App, mixType, name string, qty int, length, width, height float64) *core.Record {
	t.Helper()
	area := float64(qty) * length * width
	return save(t, app, collections.Concrete, map[string]any{
		"tipo":   mixType,
		"name":   name,
		"qty":    qty,
		"length": length,
		"width":  width,
		"height": height,
		"volume": area * height,
		"area":   area,
	})
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
