package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog"

	"cubicacion/store"
)

// apiError is the error envelope of every 4xx/5xx JSON response.
type apiError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

var validate = validator.New()

func init() {
	// Report fields by their JSON name.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// bind decodes the request body into dst and runs its validator tags.
// Failures come back as a *store.ValidationError.
func bind(e *core.RequestEvent, dst any) error {
	if err := e.BindBody(dst); err != nil {
		return &store.ValidationError{Msg: "Cuerpo de la solicitud inválido: " + err.Error()}
	}
	if reflect.Indirect(reflect.ValueOf(dst)).Kind() != reflect.Struct {
		return nil
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return &store.ValidationError{Msg: err.Error()}
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return &store.ValidationError{Msg: "Error de validación", Fields: fields}
	}
	return nil
}

// respondError maps a store error to its status code and writes the error
// envelope with a toast.
func respondError(e *core.RequestEvent, err error) error {
	var (
		ve *store.ValidationError
		nf *store.NotFoundError
		ce *store.ConflictError
		oe *store.OperationError
	)
	switch {
	case errors.As(err, &ve):
		return errorResponse(e, http.StatusUnprocessableEntity, apiError{Detail: ve.Msg, Fields: ve.Fields})
	case errors.As(err, &nf):
		return errorResponse(e, http.StatusNotFound, apiError{Detail: nf.Error()})
	case errors.As(err, &ce):
		return errorResponse(e, http.StatusConflict, apiError{Detail: ce.Msg})
	case errors.As(err, &oe):
		return errorResponse(e, http.StatusInternalServerError, apiError{Detail: oe.Msg})
	}

	zerolog.Ctx(e.Request.Context()).Error().Err(err).Str("path", e.Request.URL.Path).Msg("unhandled error")
	return errorResponse(e, http.StatusInternalServerError, apiError{Detail: "Error interno del servidor"})
}
