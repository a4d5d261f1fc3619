package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestPreferences_RoundTrip(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/preferences", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())

	rec = api.do(http.MethodPut, "/api/preferences", `{"theme":"dark","printer":{"width":58}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"theme":"dark","printer":{"width":58}}`, rec.Body.String())

	rec = api.do(http.MethodPut, "/api/preferences", `{"theme":null}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"printer":{"width":58}}`, rec.Body.String())
}

func TestPutPreferences_BadBody(t *testing.T) {
	for _, body := range []string{`[1,2]`, `"dark"`, `null`, `{bad`, `{"":1}`} {
		api := newTestAPI(t)

		rec := api.do(http.MethodPut, "/api/preferences", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestPreferences_Disabled(t *testing.T) {
	router := NewHandler(&service.Services{}, nil, nil, logger.Nop()).Init()

	for _, method := range []string{http.MethodGet, http.MethodPut} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, "/api/preferences", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusNotFound, rec.Code, method)
	}
}
