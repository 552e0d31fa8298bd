package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"cubicacion/store"
)

// HandleItemList returns the catalog, filtered by ?q= when given.
func HandleItemList(st *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		items, err := st.Items.Search(e.Request.Context(), e.Request.URL.Query().Get("q"))
		if err != nil {
			return respondError(e, err)
		}
		return e.JSON(http.StatusOK, items)
	}
}

// HandleItemGet returns one catalog item.
func HandleItemGet(st *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		item, err := st.Items.Get(e.Request.Context(), e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, err)
		}
		return e.JSON(http.StatusOK, item)
	}
}

// HandleItemCreate adds a catalog item.
func HandleItemCreate(st *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in store.ItemInput
		if err := bind(e, &in); err != nil {
			return respondError(e, err)
		}

		item, err := st.Items.Create(e.Request.Context(), in)
		if err != nil {
			return respondError(e, err)
		}

		SetToast(e, "success", "Producto creado")
		return e.JSON(http.StatusCreated, item)
	}
}

// HandleItemUpdate patches a catalog item.
func HandleItemUpdate(st *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in store.ItemInput
		if err := bind(e, &in); err != nil {
			return respondError(e, err)
		}

		item, err := st.Items.Update(e.Request.Context(), e.Request.PathValue("id"), in)
		if err != nil {
			return respondError(e, err)
		}

		SetToast(e, "success", "Producto actualizado")
		return e.JSON(http.StatusOK, item)
	}
}

// HandleItemDelete removes a catalog item. Items with expenses answer 409.
func HandleItemDelete(st *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if err := st.Items.Delete(e.Request.Context(), id); err != nil {
			return respondError(e, err)
		}

		SetToast(e, "success", "Producto eliminado")
		return e.NoContent(http.StatusNoContent)
	}
}

// HandleItemExpenses lists the expenses of one item.
func HandleItemExpenses(st *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ctx := e.Request.Context()
		id := e.Request.PathValue("id")
		if _, err := st.Items.Get(ctx, id); err != nil {
			return respondError(e, err)
		}

		expenses, err := st.Expenses.ListByItem(ctx, id)
		if err != nil {
			return respondError(e, err)
		}
		return e.JSON(http.StatusOK, expenses)
	}
}
