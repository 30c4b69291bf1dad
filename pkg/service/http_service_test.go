package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/open-feature/go-sdk-lite/pkg/model"
	"github.com/open-feature/go-sdk-lite/pkg/openfeature"
	"github.com/open-feature/go-sdk-lite/pkg/provider"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, p provider.IProvider) http.Handler {
	t.Helper()
	logger, _ := test.NewNullLogger()
	api := openfeature.NewAPI(logger)
	api.SetProvider(p)
	return newRouter(api, api.Client("test", "1.0.0"))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestGreeting_StorageUpdate_ChangesGreeting(t *testing.T) {
	p, err := provider.NewInMemoryProvider(nil)
	require.NoError(t, err)
	router := newTestRouter(t, p)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, DefaultGreeting, decode(t, rec)["message"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/provider/storage",
		strings.NewReader(`{"greeting": "Hello OpenFeature!"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "Hello OpenFeature!", decode(t, rec)["message"])
}

func TestSetStorage_UnsupportedProvider_BadRequest(t *testing.T) {
	router := newTestRouter(t, provider.NoopProvider{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/provider/storage", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/provider/storage", strings.NewReader(`not json`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvaluate_ReturnsDetails(t *testing.T) {
	p, err := provider.NewInMemoryProvider(map[string]interface{}{"ratio": 0.5, "greeting": "hi"})
	require.NoError(t, err)
	router := newTestRouter(t, p)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/flags/number/ratio?default=1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, 0.5, body["value"])
	assert.Equal(t, "ratio", body["key"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/flags/number/greeting?default=1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, 1.0, body["value"])
	assert.Equal(t, string(model.TypeMismatchErrorCode), body["errorCode"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/flags/boolean/x?default=maybe", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/flags/date/x", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEvaluateRaw_ParsesDefaults(t *testing.T) {
	logger, _ := test.NewNullLogger()
	client := openfeature.NewAPI(logger).Client("test", "")
	ctx := context.Background()

	d, err := EvaluateRaw(ctx, client, model.Boolean, "f", "true", model.EvaluationContext{})
	require.NoError(t, err)
	assert.Equal(t, true, d.Value)

	d, err = EvaluateRaw(ctx, client, model.Object, "f", `{"a": 1}`, model.EvaluationContext{})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": 1.0}, d.Value)

	d, err = EvaluateRaw(ctx, client, model.Number, "f", "", model.EvaluationContext{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, d.Value)

	_, err = EvaluateRaw(ctx, client, model.Object, "f", `[`, model.EvaluationContext{})
	assert.Error(t, err)
	_, err = EvaluateRaw(ctx, client, model.Number, "f", "abc", model.EvaluationContext{})
	assert.Error(t, err)
}

func TestServe_NoConfiguration_Error(t *testing.T) {
	logger, _ := test.NewNullLogger()
	svc := &HTTPService{}

	assert.Error(t, svc.Serve(context.Background(), openfeature.NewAPI(logger)))
}

func TestServe_StopsOnCancel(t *testing.T) {
	logger, _ := test.NewNullLogger()
	svc := &HTTPService{HTTPServiceConfiguration: &HTTPServiceConfiguration{Port: 0, ClientName: "test"}}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx, openfeature.NewAPI(logger)) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop")
	}
}

func TestMetrics_Exposed(t *testing.T) {
	router := newTestRouter(t, provider.NoopProvider{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
