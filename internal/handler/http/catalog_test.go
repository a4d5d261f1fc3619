package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-pos-terminal/internal/store"
	"github.com/MKhiriev/go-pos-terminal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestFindByBarcode(t *testing.T) {
	api := newTestAPI(t)
	api.catalog.EXPECT().FindByBarcode(gomock.Any(), "7790001").Return(models.LocalProduct{
		ID: "p-1", Barcode: "7790001", Name: "Yerba", Price: decimal.RequireFromString("1500.50"), Stock: 4,
	}, nil)

	rec := api.do(http.MethodGet, "/api/catalog/barcode/7790001", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.LocalProduct
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "p-1", got.ID)
	assert.True(t, decimal.RequireFromString("1500.50").Equal(got.Price))
}

func TestFindByBarcode_NotFound(t *testing.T) {
	api := newTestAPI(t)
	api.catalog.EXPECT().FindByBarcode(gomock.Any(), "000").Return(models.LocalProduct{}, store.ErrProductNotFound)

	rec := api.do(http.MethodGet, "/api/catalog/barcode/000", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchCatalog(t *testing.T) {
	api := newTestAPI(t)
	api.catalog.EXPECT().Search(gomock.Any(), "yerba", 10).Return([]models.LocalProduct{{ID: "p-1"}}, nil)

	rec := api.do(http.MethodGet, "/api/catalog/search?q=yerba&limit=10", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.LocalProduct
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 1)
}

func TestSearchCatalog_NoMatchesIsArray(t *testing.T) {
	api := newTestAPI(t)
	api.catalog.EXPECT().Search(gomock.Any(), "", 0).Return(nil, nil)

	rec := api.do(http.MethodGet, "/api/catalog/search", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSearchCatalog_BadLimit(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/catalog/search?limit=x", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshCatalog(t *testing.T) {
	tests := []struct {
		name       string
		refreshed  bool
		wantStatus int
	}{
		{name: "refreshed", refreshed: true, wantStatus: http.StatusOK},
		{name: "remote failed", refreshed: false, wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			api.catalog.EXPECT().RefreshFromRemote(gomock.Any()).Return(tt.refreshed)

			rec := api.do(http.MethodPost, "/api/catalog/refresh", "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			var got refreshResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.refreshed, got.Refreshed)
		})
	}
}
