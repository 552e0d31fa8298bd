package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an id, stores a logger carrying
// that id in the request context (see zerolog.Ctx) and logs the outcome.
// A well-formed incoming X-Request-ID is reused.
func RequestLogger(base zerolog.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		logger := base.With().Str("request_id", id).Logger()
		e.Request = e.Request.WithContext(logger.WithContext(e.Request.Context()))
		e.Response.Header().Set(RequestIDHeader, id)

		start := time.Now()
		err := e.Next()

		ev := logger.Info()
		if err != nil {
			ev = logger.Error().Err(err)
		}
		ev.Str("method", e.Request.Method).
			Str("path", e.Request.URL.Path).
			Int("status", e.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}
