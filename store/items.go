package store

import (
	"context"
	"strings"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"cubicacion/collections"
	"cubicacion/services"
)

// ItemInput carries the writable fields of a catalog item. Nil fields are
// left untouched on update. A zero LocalPrice clears the local price.
type ItemInput struct {
	Name             *string `json:"name" validate:"omitempty,max=200"`
	Description      *string `json:"description"`
	UnitPrice        *int64  `json:"unit_price" validate:"omitempty,min=0"`
	Category         *string `json:"category"`
	Link             *string `json:"link"`
	LocalPrice       *int64  `json:"local_price" validate:"omitempty,min=0"`
	LocalDescription *string `json:"local_description"`
	Notes            *string `json:"notes"`
}

// Items is the catalog store.
type Items struct {
	app core.App
}

func decodeItem(rec *core.Record) services.CatalogItem {
	it := services.CatalogItem{
		ID:               rec.Id,
		Name:             rec.GetString("name"),
		Description:      rec.GetString("description"),
		UnitPrice:        int64(rec.GetInt("unit_price")),
		Category:         rec.GetString("category"),
		Link:             rec.GetString("link"),
		LocalDescription: rec.GetString("local_description"),
		Notes:            rec.GetString("notes"),
		Created:          rec.GetDateTime("created").Time(),
		Updated:          rec.GetDateTime("updated").Time(),
	}
	if lp := int64(rec.GetInt("local_price")); lp > 0 {
		it.LocalPrice = &lp
	}
	return it
}

func (in ItemInput) check(create bool) error {
	bad := make(map[string]string)
	if create && in.Name == nil {
		bad["name"] = "requerido"
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		bad["name"] = "requerido"
	}
	if create && in.UnitPrice == nil {
		bad["unit_price"] = "requerido"
	}
	if in.UnitPrice != nil && *in.UnitPrice < 0 {
		bad["unit_price"] = "debe ser mayor o igual a 0"
	}
	if in.LocalPrice != nil && *in.LocalPrice < 0 {
		bad["local_price"] = "debe ser mayor o igual a 0"
	}
	if len(bad) > 0 {
		return &ValidationError{Msg: "Datos inválidos", Fields: bad}
	}
	return nil
}

func (in ItemInput) apply(rec *core.Record) {
	if in.Name != nil {
		rec.Set("name", strings.TrimSpace(*in.Name))
	}
	if in.Description != nil {
		rec.Set("description", *in.Description)
	}
	if in.UnitPrice != nil {
		rec.Set("unit_price", *in.UnitPrice)
	}
	if in.Category != nil {
		rec.Set("category", *in.Category)
	}
	if in.Link != nil {
		rec.Set("link", *in.Link)
	}
	if in.LocalPrice != nil {
		rec.Set("local_price", *in.LocalPrice)
	}
	if in.LocalDescription != nil {
		rec.Set("local_description", *in.LocalDescription)
	}
	if in.Notes != nil {
		rec.Set("notes", *in.Notes)
	}
}

// List returns the catalog, oldest first.
func (s *Items) List(ctx context.Context) ([]services.CatalogItem, error) {
	records, err := s.app.FindRecordsByFilter(collections.Items, "1=1", "created", 0, 0, nil)
	if err != nil {
		return nil, fail(ctx, "items.list", "Error al obtener los productos", nil, err)
	}
	items := make([]services.CatalogItem, 0, len(records))
	for _, rec := range records {
		items = append(items, decodeItem(rec))
	}
	return items, nil
}

// Search filters the catalog by name, description or category label.
func (s *Items) Search(ctx context.Context, query string) ([]services.CatalogItem, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return services.SearchItems(items, query), nil
}

// Catalog returns the catalog indexed by id.
func (s *Items) Catalog(ctx context.Context) (services.Catalog, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return services.NewCatalog(items), nil
}

// Get returns one catalog item.
func (s *Items) Get(ctx context.Context, id string) (services.CatalogItem, error) {
	rec, err := s.app.FindRecordById(collections.Items, id)
	if err != nil {
		return services.CatalogItem{}, fail(ctx, "items.get", "Error al obtener el producto",
			&NotFoundError{Kind: "producto", ID: id}, err)
	}
	return decodeItem(rec), nil
}

// Create adds a catalog item. Name and unit price are required.
func (s *Items) Create(ctx context.Context, in ItemInput) (services.CatalogItem, error) {
	const op, msg = "items.create", "Error al crear el producto"
	if err := in.check(true); err != nil {
		return services.CatalogItem{}, err
	}

	col, err := s.app.FindCollectionByNameOrId(collections.Items)
	if err != nil {
		return services.CatalogItem{}, fail(ctx, op, msg, nil, err)
	}
	rec := core.NewRecord(col)
	rec.Set("category", "otros")
	in.apply(rec)

	if err := s.app.Save(rec); err != nil {
		return services.CatalogItem{}, fail(ctx, op, msg, nil, err)
	}
	return decodeItem(rec), nil
}

// Update changes the given fields of an item.
func (s *Items) Update(ctx context.Context, id string, in ItemInput) (services.CatalogItem, error) {
	const op, msg = "items.update", "Error al actualizar el producto"
	if err := in.check(false); err != nil {
		return services.CatalogItem{}, err
	}

	rec, err := s.app.FindRecordById(collections.Items, id)
	if err != nil {
		return services.CatalogItem{}, fail(ctx, op, msg, &NotFoundError{Kind: "producto", ID: id}, err)
	}
	in.apply(rec)

	if err := s.app.Save(rec); err != nil {
		return services.CatalogItem{}, fail(ctx, op, msg, nil, err)
	}
	return decodeItem(rec), nil
}

// Delete removes an item that no expense references.
func (s *Items) Delete(ctx context.Context, id string) error {
	const op, msg = "items.delete", "Error al eliminar el producto"

	rec, err := s.app.FindRecordById(collections.Items, id)
	if err != nil {
		return fail(ctx, op, msg, &NotFoundError{Kind: "producto", ID: id}, err)
	}

	n, err := s.app.CountRecords(collections.Expenses, dbx.HashExp{"item": id})
	if err != nil {
		return fail(ctx, op, msg, nil, err)
	}
	if n > 0 {
		return &ConflictError{Msg: "No se puede eliminar el producto porque tiene gastos asociados"}
	}

	if err := s.app.Delete(rec); err != nil {
		return fail(ctx, op, msg, nil, err)
	}
	return nil
}
