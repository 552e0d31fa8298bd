package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/stretchr/testify/require"

	"cubicacion/services"
	"cubicacion/store"
	"cubicacion/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

func newTestStore(t *testing.T) (*pocketbase.PocketBase, *store.Store) {
	t.Helper()
	app := testhelpers.NewTestApp(t)
	store.BindHooks(app)
	return app, store.New(app, store.Options{
		InsulationPrices: map[string]int64{"muro_exterior": 2964, "cielo_techumbre": 6250, "tabique_interior": 1482},
		BoardPrices:      map[string]int64{"ST_CIELO": 9392, "ST_TABIQUE": 9392, "RH": 15289},
		Contributors:     services.DefaultContributors,
	})
}

// call runs handler against a request built from method, target and an
// optional JSON body. pathValues are alternating name, value pairs.
func call(t *testing.T, app *pocketbase.PocketBase, handler func(*core.RequestEvent) error,
	method, target, body string, pathValues ...string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}

	rec := httptest.NewRecorder()
	require.NoError(t, handler(newTestRequestEvent(app, req, rec)))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}
