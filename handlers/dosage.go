package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"cubicacion/store"
)

// HandleDosageList returns the stored dosage configs.
func HandleDosageList(st *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		list, err := st.Dosage.List(e.Request.Context())
		if err != nil {
			return respondError(e, err)
		}
		return e.JSON(http.StatusOK, list)
	}
}

// HandleDosageGet returns the config of one mix type, creating it from the
// defaults on first access.
func HandleDosageGet(st *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		cfg, err := st.Dosage.GetOrCreateDefault(e.Request.Context(), e.Request.PathValue("tipo"))
		if err != nil {
			return respondError(e, err)
		}
		return e.JSON(http.StatusOK, cfg)
	}
}

// HandleDosageUpdate changes the rates of one mix type.
func HandleDosageUpdate(st *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in store.DosageInput
		if err := bind(e, &in); err != nil {
			return respondError(e, err)
		}

		cfg, err := st.Dosage.Update(e.Request.Context(), e.Request.PathValue("tipo"), in)
		if err != nil {
			return respondError(e, err)
		}

		SetToast(e, "success", "Configuración guardada")
		return e.JSON(http.StatusOK, cfg)
	}
}
