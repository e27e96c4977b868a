package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yannn/strictdata/pkg/adapters/memory"
	"github.com/yannn/strictdata/pkg/annotation"
	"github.com/yannn/strictdata/pkg/domain"
	"github.com/yannn/strictdata/pkg/observability"
	"github.com/yannn/strictdata/pkg/registry"
	"github.com/yannn/strictdata/pkg/schema"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	promReg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics("strictdata", promReg)
	require.NoError(t, err)

	reg := registry.New(
		registry.WithSource(annotation.MapSource{
			"Order": `
				@options StrictNumberTypeCheck
				@property int $id
				@property float $total
				@property string $status
				@enum Statuses $status
				@property string[] $tags
			`,
			"Broken": "@enum Missing $x",
		}),
		registry.WithProviders(memory.NewRegistry(map[string][]any{
			"Statuses": {"new", "paid"},
		})),
		registry.WithHooks(metrics.Hooks()),
	)
	return NewHandler(reg, WithMetrics(promReg), WithVersion("1.2.3"))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGetHealthAndInfo(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, "GET", "/info", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"app":"strictdata-http","version":"1.2.3"}`, w.Body.String())
}

func TestGetClass(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "GET", "/classes/Order", "")
	require.Equal(t, http.StatusOK, w.Code)

	var view schema.ClassView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "Order", view.Name)
	assert.Equal(t, []string{"StrictNumeric"}, view.Options)
	require.Len(t, view.Properties, 4)
	assert.Equal(t, "id", view.Properties[0].Name)
	assert.Equal(t, "Statuses", view.Properties[2].Enum.Provider)

	w = do(t, h, "GET", "/classes/Nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, "GET", "/classes", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Order"`)
}

func TestValidate(t *testing.T) {
	h := newTestHandler(t)

	t.Run("valid record", func(t *testing.T) {
		w := do(t, h, "POST", "/classes/Order/validate", `{"id": 7, "total": 9.5, "status": "paid", "tags": ["a"]}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp ValidateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Valid)
		assert.Equal(t, "paid", resp.Values["status"])
	})

	t.Run("invalid record", func(t *testing.T) {
		w := do(t, h, "POST", "/classes/Order/validate", `{"id": "7", "status": "lost", "ghost": 1}`)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp ValidateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Valid)
		assert.Empty(t, resp.Values)
		require.Len(t, resp.Violations, 3)
		assert.Equal(t, "ghost", resp.Violations[0].Property)
		assert.Equal(t, string(domain.KindPropertyNotExist), resp.Violations[0].Kind)
		assert.Equal(t, string(domain.KindPropertyTypeInvalid), resp.Violations[1].Kind)
		assert.Equal(t, string(domain.KindPropertyValueInvalid), resp.Violations[2].Kind)
	})

	t.Run("bad body", func(t *testing.T) {
		w := do(t, h, "POST", "/classes/Order/validate", `[1,2`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("lazy definition error", func(t *testing.T) {
		w := do(t, h, "POST", "/classes/Broken/validate", `{"x": 1}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Missing")
	})

	t.Run("metrics", func(t *testing.T) {
		w := do(t, h, "GET", "/metrics", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "strictdata_property_access_total")
	})
}

func TestGetJSONSchema(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "GET", "/classes/Order/jsonschema", "")
	require.Equal(t, http.StatusOK, w.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "Order", doc["title"])
	assert.Contains(t, doc["properties"], "total")
}

func TestRequestID(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "POST", "/classes/Order/validate", `{"id": 1}`)
	generated := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(generated)
	require.NoError(t, err)

	var resp ValidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, generated, resp.RequestID)

	const supplied = "0b5c1c1e-8d7a-4c41-9d4e-6f0f6d8a1b2c"
	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(RequestIDHeader, supplied)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, supplied, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	h := newTestHandler(t)
	w := do(t, h, "OPTIONS", "/classes/Order/validate", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
