package handlers

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"
)

// SetToast sets the HX-Trigger response header so an HTMX client shows a
// toast notification. If an HX-Trigger header already exists, the toast
// payload is merged into the existing JSON object.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	toast := map[string]string{
		"message": message,
		"type":    toastType,
	}

	trigger := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &trigger); err != nil {
			log.Warn().Err(err).Msg("toast: existing HX-Trigger is not valid JSON, overwriting")
			trigger = map[string]any{}
		}
	}
	trigger["showToast"] = toast

	data, err := json.Marshal(trigger)
	if err != nil {
		log.Error().Err(err).Msg("toast: failed to marshal HX-Trigger JSON")
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))
}

// ErrorToast sets an error toast and writes the JSON error envelope.
// HX-Reswap: none keeps HTMX from swapping the error body into the DOM
// while the HX-Trigger header still fires the toast event.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	return errorResponse(e, statusCode, apiError{Detail: message})
}

func errorResponse(e *core.RequestEvent, statusCode int, body apiError) error {
	SetToast(e, "error", body.Detail)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.JSON(statusCode, body)
}
