// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-pos-terminal/internal/config"
	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAdapter создаёт httpRemoteAdapter, направленный на тестовый сервер
func newTestAdapter(t *testing.T, serverURL string) *httpRemoteAdapter {
	t.Helper()
	adapterCfg := config.TerminalAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second, APIToken: "secret"}

	a, err := NewHTTPRemoteAdapter(adapterCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpRemoteAdapter)
}

func testSale(id string) models.SaleRecord {
	return models.SaleRecord{
		ID:     id,
		SoldAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Items: []models.SaleItem{{
			ProductID:       "p-1",
			Name:            "Yerba",
			UnitPrice:       decimal.RequireFromString("1000"),
			Quantity:        2,
			DiscountPercent: decimal.RequireFromString("10"),
			Subtotal:        decimal.RequireFromString("1800"),
		}},
		Total:             decimal.RequireFromString("2000"),
		TotalWithDiscount: decimal.RequireFromString("1800"),
		PaymentMethod:     models.PaymentCash,
		Cashier:           "ana",
	}
}

// ── CreateSalesBatch ────────────────────────────────────────────────────────

func TestCreateSalesBatch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/ventas/sync-batch", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var body models.SyncBatchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Sales, 2)
		// порядок и offline_id сохраняются
		assert.Equal(t, "sale-1", body.Sales[0].OfflineID)
		assert.Equal(t, "sale-2", body.Sales[1].OfflineID)
		assert.True(t, decimal.RequireFromString("200").Equal(body.Sales[0].Items[0].Discount))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"srv-1","numero_ticket":7,"estado":"completada"},{"estado":"error"}]`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	results, err := a.CreateSalesBatch(context.Background(), []models.SaleRecord{testSale("sale-1"), testSale("sale-2")})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Accepted())
	assert.Equal(t, 7, results[0].TicketNumber)
	assert.False(t, results[1].Accepted())
}

func TestCreateSalesBatch_Empty(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	results, err := a.CreateSalesBatch(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.False(t, called)
}

func TestCreateSalesBatch_ServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("maintenance"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.CreateSalesBatch(context.Background(), []models.SaleRecord{testSale("sale-1")})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestCreateSalesBatch_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.CreateSalesBatch(context.Background(), []models.SaleRecord{testSale("sale-1")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode sync batch response")
}

func TestCreateSalesBatch_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	a := newTestAdapter(t, srv.URL)
	_, err := a.CreateSalesBatch(ctx, []models.SaleRecord{testSale("sale-1")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sync batch request")
}

// ── FetchCatalogPage ────────────────────────────────────────────────────────

func TestFetchCatalogPage_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/productos", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		assert.Equal(t, "true", r.URL.Query().Get("activo"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"p-1","codigo_barras":"779","nombre":"Yerba","precio_venta":"1500.50","stock_actual":4,"activo":true}],"total":101,"page":2,"limit":100,"total_pages":2}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	page, err := a.FetchCatalogPage(context.Background(), models.CatalogPageRequest{Page: 2, Limit: 100})

	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "779", page.Data[0].Barcode)
	assert.True(t, decimal.RequireFromString("1500.5").Equal(page.Data[0].SalePrice))
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, int64(101), page.Total)
}

func TestFetchCatalogPage_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.FetchCatalogPage(context.Background(), models.CatalogPageRequest{Page: 1, Limit: 10})

	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── Ping ────────────────────────────────────────────────────────────────────

func TestPing(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(status)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.Ping(context.Background()))

	status = http.StatusBadGateway
	assert.ErrorIs(t, a.Ping(context.Background()), ErrBadGateway)
}

func TestPing_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	a := newTestAdapter(t, url)
	err := a.Ping(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "health request")
}

// ── normalizeBaseURL ────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "adds scheme", raw: "localhost:8000", want: "http://localhost:8000"},
		{name: "trims slash", raw: "https://pos.example.com/", want: "https://pos.example.com"},
		{name: "trims spaces", raw: "  http://a:1  ", want: "http://a:1"},
		{name: "empty", raw: "   ", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPRemoteAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPRemoteAdapter(config.TerminalAdapter{}, logger.Nop())
	assert.Error(t, err)
}
