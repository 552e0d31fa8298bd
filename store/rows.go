package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"

	"cubicacion/collections"
)

// RowKind describes one calculator collection: which fields a caller may
// write, which of them feed the derived quantities, and how to turn a
// record into its typed row.
type RowKind[T any] struct {
	Collection string
	Label      string // noun used in user-facing messages

	Text    []string
	Numbers []string

	// Dimensions are the editable fields the derived values depend on.
	// An update touching none of them leaves the derived values alone.
	Dimensions []string
	Derived    []string
	Defaults   map[string]any

	Decode func(*core.Record) T
	Derive func(T) map[string]any
}

// Fix returns the startup migration entry recomputing this kind's derived
// fields.
func (k RowKind[T]) Fix() collections.DerivedFix {
	return collections.DerivedFix{
		Collection: k.Collection,
		Derive: func(rec *core.Record) map[string]any {
			return k.Derive(k.Decode(rec))
		},
	}
}

// clean checks field names and coerces numbers. Derived and unknown
// names are rejected.
func (k RowKind[T]) clean(fields map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	bad := make(map[string]string)
	for name, v := range fields {
		switch {
		case slices.Contains(k.Derived, name):
			bad[name] = "campo calculado"
		case slices.Contains(k.Numbers, name):
			f, err := cast.ToFloat64E(v)
			if err != nil {
				bad[name] = "debe ser un número"
				continue
			}
			out[name] = f
		case slices.Contains(k.Text, name):
			s, err := cast.ToStringE(v)
			if err != nil {
				bad[name] = "debe ser texto"
				continue
			}
			out[name] = s
		default:
			bad[name] = "campo desconocido"
		}
	}
	if len(bad) > 0 {
		return nil, &ValidationError{Msg: "Datos inválidos", Fields: bad}
	}
	return out, nil
}

func (k RowKind[T]) touchesDimensions(fields map[string]any) bool {
	for name := range fields {
		if slices.Contains(k.Dimensions, name) {
			return true
		}
	}
	return false
}

func (k RowKind[T]) derive(rec *core.Record) {
	for name, v := range k.Derive(k.Decode(rec)) {
		rec.Set(name, v)
	}
}

// Rows is the record store of one calculator kind.
type Rows[T any] struct {
	app  core.App
	kind RowKind[T]
}

// NewRows binds a row kind to an app.
func NewRows[T any](app core.App, kind RowKind[T]) *Rows[T] {
	return &Rows[T]{app: app, kind: kind}
}

func (r *Rows[T]) notFound(id string) *NotFoundError {
	return &NotFoundError{Kind: r.kind.Label, ID: id}
}

// List returns every row, oldest first.
func (r *Rows[T]) List(ctx context.Context) ([]T, error) {
	records, err := r.app.FindRecordsByFilter(r.kind.Collection, "1=1", "created", 0, 0, nil)
	if err != nil {
		return nil, fail(ctx, r.kind.Collection+".list",
			fmt.Sprintf("Error al obtener los cálculos de %s", r.kind.Label), nil, err)
	}
	rows := make([]T, 0, len(records))
	for _, rec := range records {
		rows = append(rows, r.kind.Decode(rec))
	}
	return rows, nil
}

// Get returns one row.
func (r *Rows[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	rec, err := r.app.FindRecordById(r.kind.Collection, id)
	if err != nil {
		return zero, fail(ctx, r.kind.Collection+".get",
			fmt.Sprintf("Error al obtener el cálculo de %s", r.kind.Label), r.notFound(id), err)
	}
	return r.kind.Decode(rec), nil
}

// Create inserts a row. Missing fields take the kind's defaults and the
// derived values are computed before the insert.
func (r *Rows[T]) Create(ctx context.Context, fields map[string]any) (T, error) {
	var zero T
	op := r.kind.Collection + ".create"
	msg := fmt.Sprintf("Error al crear el cálculo de %s", r.kind.Label)

	values, err := r.kind.clean(fields)
	if err != nil {
		return zero, err
	}

	col, err := r.app.FindCollectionByNameOrId(r.kind.Collection)
	if err != nil {
		return zero, fail(ctx, op, msg, nil, err)
	}

	rec := core.NewRecord(col)
	for name, v := range r.kind.Defaults {
		rec.Set(name, v)
	}
	for name, v := range values {
		rec.Set(name, v)
	}
	r.kind.derive(rec)

	if err := r.app.Save(rec); err != nil {
		return zero, fail(ctx, op, msg, nil, err)
	}

	zerolog.Ctx(ctx).Debug().Str("collection", r.kind.Collection).Str("id", rec.Id).Msg("row created")
	return r.kind.Decode(rec), nil
}

// Update merges a partial set of fields into the stored row. Derived
// values are recomputed when a dimension changed.
func (r *Rows[T]) Update(ctx context.Context, id string, partial map[string]any) (T, error) {
	var zero T
	op := r.kind.Collection + ".update"
	msg := fmt.Sprintf("Error al actualizar el cálculo de %s", r.kind.Label)

	values, err := r.kind.clean(partial)
	if err != nil {
		return zero, err
	}

	rec, err := r.app.FindRecordById(r.kind.Collection, id)
	if err != nil {
		return zero, fail(ctx, op, msg, r.notFound(id), err)
	}

	for name, v := range values {
		rec.Set(name, v)
	}
	if r.kind.touchesDimensions(values) {
		r.kind.derive(rec)
	}

	if err := r.app.Save(rec); err != nil {
		return zero, fail(ctx, op, msg, nil, err)
	}
	return r.kind.Decode(rec), nil
}

// Delete removes one row.
func (r *Rows[T]) Delete(ctx context.Context, id string) error {
	op := r.kind.Collection + ".delete"
	msg := fmt.Sprintf("Error al eliminar el cálculo de %s", r.kind.Label)

	rec, err := r.app.FindRecordById(r.kind.Collection, id)
	if err != nil {
		return fail(ctx, op, msg, r.notFound(id), err)
	}
	if err := r.app.Delete(rec); err != nil {
		return fail(ctx, op, msg, nil, err)
	}
	return nil
}

// Reset deletes every row of the kind and returns how many were removed.
func (r *Rows[T]) Reset(ctx context.Context) (int, error) {
	op := r.kind.Collection + ".reset"
	msg := fmt.Sprintf("Error al reiniciar los cálculos de %s", r.kind.Label)

	n := 0
	err := r.app.RunInTransaction(func(txApp core.App) error {
		records, err := txApp.FindAllRecords(r.kind.Collection)
		if err != nil {
			return err
		}
		for _, rec := range records {
			if err := txApp.Delete(rec); err != nil {
				return err
			}
		}
		n = len(records)
		return nil
	})
	if err != nil {
		return 0, fail(ctx, op, msg, nil, err)
	}

	zerolog.Ctx(ctx).Info().Str("collection", r.kind.Collection).Int("rows", n).Msg("rows reset")
	return n, nil
}
