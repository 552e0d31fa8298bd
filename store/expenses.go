package store

import (
	"context"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"cubicacion/collections"
	"cubicacion/services"
)

// ExpenseInput carries the writable fields of an expense. Nil fields keep
// their stored (or default) value.
type ExpenseInput struct {
	ItemID   *string `json:"item"`
	Quantity *int64  `json:"quantity" validate:"omitempty,min=1"`
	Room     *string `json:"room"`
	Floor    *int    `json:"floor" validate:"omitempty,min=0,max=2"`
	Date     *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Paid     *bool   `json:"paid"`
	PaidBy   *string `json:"paid_by"`
	Notes    *string `json:"notes"`
}

// Expenses is the purchase log store.
type Expenses struct {
	app core.App
}

func decodeExpense(rec *core.Record) services.Expense {
	e := services.Expense{
		ID:       rec.Id,
		ItemID:   rec.GetString("item"),
		Quantity: int64(rec.GetInt("quantity")),
		Room:     rec.GetString("room"),
		Floor:    rec.GetInt("floor"),
		Date:     rec.GetString("date"),
		Paid:     rec.GetBool("paid"),
		Notes:    rec.GetString("notes"),
		Created:  rec.GetDateTime("created").Time(),
		Updated:  rec.GetDateTime("updated").Time(),
	}
	if by := rec.GetString("paid_by"); by != "" {
		e.PaidBy = &by
	}
	return e
}

func notFoundExpense(id string) *NotFoundError {
	return &NotFoundError{Kind: "gasto", ID: id}
}

func (s *Expenses) check(in ExpenseInput, create bool) error {
	bad := make(map[string]string)
	if create && (in.ItemID == nil || *in.ItemID == "") {
		bad["item"] = "requerido"
	} else if in.ItemID != nil {
		if _, err := s.app.FindRecordById(collections.Items, *in.ItemID); err != nil {
			bad["item"] = "el producto no existe"
		}
	}
	if in.Quantity != nil && *in.Quantity < 1 {
		bad["quantity"] = "La cantidad debe ser al menos 1"
	}
	if in.Floor != nil && (*in.Floor < services.FloorGeneral || *in.Floor > services.FloorSecond) {
		bad["floor"] = "debe ser 0, 1 o 2"
	}
	if len(bad) > 0 {
		return &ValidationError{Msg: "Datos inválidos", Fields: bad}
	}
	return nil
}

func (in ExpenseInput) apply(rec *core.Record) {
	if in.ItemID != nil {
		rec.Set("item", *in.ItemID)
	}
	if in.Quantity != nil {
		rec.Set("quantity", *in.Quantity)
	}
	if in.Room != nil {
		rec.Set("room", *in.Room)
	}
	if in.Floor != nil {
		rec.Set("floor", *in.Floor)
	}
	if in.Date != nil {
		rec.Set("date", *in.Date)
	}
	if in.Paid != nil {
		rec.Set("paid", *in.Paid)
	}
	if in.PaidBy != nil {
		rec.Set("paid_by", *in.PaidBy)
	}
	if in.Notes != nil {
		rec.Set("notes", *in.Notes)
	}
	if !rec.GetBool("paid") {
		rec.Set("paid_by", "")
	}
}

func (s *Expenses) find(ctx context.Context, op, msg string, filter string, params dbx.Params) ([]services.Expense, error) {
	records, err := s.app.FindRecordsByFilter(collections.Expenses, filter, "created", 0, 0, params)
	if err != nil {
		return nil, fail(ctx, op, msg, nil, err)
	}
	out := make([]services.Expense, 0, len(records))
	for _, rec := range records {
		out = append(out, decodeExpense(rec))
	}
	return out, nil
}

// List returns every expense, oldest first.
func (s *Expenses) List(ctx context.Context) ([]services.Expense, error) {
	return s.find(ctx, "expenses.list", "Error al obtener los gastos", "1=1", nil)
}

// Filter returns the expenses matching f against the catalog.
func (s *Expenses) Filter(ctx context.Context, f services.ExpenseFilter, c services.Catalog) ([]services.Expense, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(all, c), nil
}

// ListByItem returns the expenses referencing one catalog item.
func (s *Expenses) ListByItem(ctx context.Context, itemID string) ([]services.Expense, error) {
	return s.find(ctx, "expenses.list_by_item", "Error al obtener los gastos del producto",
		"item = {:item}", dbx.Params{"item": itemID})
}

// Get returns one expense.
func (s *Expenses) Get(ctx context.Context, id string) (services.Expense, error) {
	rec, err := s.app.FindRecordById(collections.Expenses, id)
	if err != nil {
		return services.Expense{}, fail(ctx, "expenses.get", "Error al obtener el gasto", notFoundExpense(id), err)
	}
	return decodeExpense(rec), nil
}

// Create logs a purchase. Quantity defaults to 1, room to "general",
// floor to 0 and date to today. paid_by is only kept for paid expenses.
func (s *Expenses) Create(ctx context.Context, in ExpenseInput) (services.Expense, error) {
	const op, msg = "expenses.create", "Error al crear el gasto"
	if err := s.check(in, true); err != nil {
		return services.Expense{}, err
	}

	col, err := s.app.FindCollectionByNameOrId(collections.Expenses)
	if err != nil {
		return services.Expense{}, fail(ctx, op, msg, nil, err)
	}
	rec := core.NewRecord(col)
	rec.Set("quantity", 1)
	rec.Set("room", "general")
	rec.Set("floor", services.FloorGeneral)
	rec.Set("date", time.Now().Format(time.DateOnly))
	rec.Set("paid", false)
	in.apply(rec)

	if err := s.app.Save(rec); err != nil {
		return services.Expense{}, fail(ctx, op, msg, nil, err)
	}
	return decodeExpense(rec), nil
}

// Update changes the given fields of an expense.
func (s *Expenses) Update(ctx context.Context, id string, in ExpenseInput) (services.Expense, error) {
	const op, msg = "expenses.update", "Error al actualizar el gasto"
	if err := s.check(in, false); err != nil {
		return services.Expense{}, err
	}

	rec, err := s.app.FindRecordById(collections.Expenses, id)
	if err != nil {
		return services.Expense{}, fail(ctx, op, msg, notFoundExpense(id), err)
	}
	in.apply(rec)

	if err := s.app.Save(rec); err != nil {
		return services.Expense{}, fail(ctx, op, msg, nil, err)
	}
	return decodeExpense(rec), nil
}

// UpdateQuantity sets the quantity of an expense. Quantities below 1 are
// rejected.
func (s *Expenses) UpdateQuantity(ctx context.Context, id string, quantity int64) (services.Expense, error) {
	return s.Update(ctx, id, ExpenseInput{Quantity: &quantity})
}

// TogglePaid flips the paid flag. A newly paid expense records payer
// (empty means unknown); an unpaid one forgets its payer.
func (s *Expenses) TogglePaid(ctx context.Context, id, payer string) (services.Expense, error) {
	const op, msg = "expenses.toggle_paid", "Error al actualizar el estado de pago"

	rec, err := s.app.FindRecordById(collections.Expenses, id)
	if err != nil {
		return services.Expense{}, fail(ctx, op, msg, notFoundExpense(id), err)
	}

	paid := !rec.GetBool("paid")
	rec.Set("paid", paid)
	if paid {
		rec.Set("paid_by", payer)
	} else {
		rec.Set("paid_by", "")
	}

	if err := s.app.Save(rec); err != nil {
		return services.Expense{}, fail(ctx, op, msg, nil, err)
	}
	return decodeExpense(rec), nil
}

// Delete removes one expense.
func (s *Expenses) Delete(ctx context.Context, id string) error {
	const op, msg = "expenses.delete", "Error al eliminar el gasto"

	rec, err := s.app.FindRecordById(collections.Expenses, id)
	if err != nil {
		return fail(ctx, op, msg, notFoundExpense(id), err)
	}
	if err := s.app.Delete(rec); err != nil {
		return fail(ctx, op, msg, nil, err)
	}
	return nil
}
