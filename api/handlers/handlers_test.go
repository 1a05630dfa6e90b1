package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/EO-DataHub/eodhp-resource-services/api/services"
	"github.com/EO-DataHub/eodhp-resource-services/db"
	"github.com/EO-DataHub/eodhp-resource-services/models"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	router *mux.Router
	store  *db.MemoryStore
}

// newTestAPI builds the full router over an in-memory store seeded with users and products.
func newTestAPI(t *testing.T, users, products []models.Record) *testAPI {
	t.Helper()

	store := db.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "users", users))
	require.NoError(t, store.Save(ctx, "products", products))

	svc := &services.Service{Store: store}
	eh := NewErrorHandler(false)

	r := mux.NewRouter()
	Register(r, services.NewUserService(svc, "users"), services.NewProductService(svc, "products"), eh)
	r.NotFoundHandler = eh.Wrap(RouteNotFound)
	r.MethodNotAllowedHandler = eh.Wrap(MethodNotAllowed)

	return &testAPI{router: r, store: store}
}

func (a *testAPI) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, target, &buf)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// envelope mirrors models.Response with the data decoded generically.
type envelope struct {
	Status  string                     `json:"status"`
	Results *int                       `json:"results"`
	Data    map[string]json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func dataRecord(t *testing.T, env envelope, key string) models.Record {
	t.Helper()

	var rec models.Record
	require.NoError(t, json.Unmarshal(env.Data[key], &rec))
	return rec
}

func dataRecords(t *testing.T, env envelope, key string) []models.Record {
	t.Helper()

	var recs []models.Record
	require.NoError(t, json.Unmarshal(env.Data[key], &recs))
	return recs
}
