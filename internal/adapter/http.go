package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-pos-terminal/internal/config"
	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/internal/utils"
	"github.com/MKhiriev/go-pos-terminal/models"
	"github.com/go-resty/resty/v2"
)

const (
	syncBatchPath = "/v1/ventas/sync-batch"
	productsPath  = "/v1/productos"
	healthPath    = "/health"
)

type httpRemoteAdapter struct {
	client *utils.HTTPClient
	token  string

	logger *logger.Logger
}

// NewHTTPRemoteAdapter constructs an HTTP/REST implementation of [RemoteAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and request
// timeout. A non-empty adapterCfg.APIToken is sent as a bearer token on every
// request.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPRemoteAdapter(adapterCfg config.TerminalAdapter, logger *logger.Logger) (RemoteAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	return &httpRemoteAdapter{
		client: client,
		token:  strings.TrimSpace(adapterCfg.APIToken),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// CreateSalesBatch implements [RemoteAdapter]. It POSTs the sales to
// POST /v1/ventas/sync-batch with their ids as offline_id and decodes the
// per-sale results. An empty input is a no-op.
func (h *httpRemoteAdapter) CreateSalesBatch(ctx context.Context, sales []models.SaleRecord) ([]models.SaleResult, error) {
	if len(sales) == 0 {
		return nil, nil
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(toSyncBatchRequest(sales)).
		Post(syncBatchPath)
	if err != nil {
		return nil, fmt.Errorf("sync batch request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var results []models.SaleResult
	if err = json.Unmarshal(resp.Body(), &results); err != nil {
		return nil, fmt.Errorf("decode sync batch response: %w", err)
	}

	if len(results) != len(sales) {
		h.logger.Warn().
			Str("func", "httpRemoteAdapter.CreateSalesBatch").
			Int("submitted", len(sales)).
			Int("results", len(results)).
			Msg("remote returned a different number of results")
	}

	return results, nil
}

// FetchCatalogPage implements [RemoteAdapter]. It GETs one page of active
// products from GET /v1/productos.
func (h *httpRemoteAdapter) FetchCatalogPage(ctx context.Context, req models.CatalogPageRequest) (models.CatalogPage, error) {
	var page models.CatalogPage

	resp, err := h.authedRequest(ctx).
		SetQueryParams(map[string]string{
			"page":   strconv.Itoa(req.Page),
			"limit":  strconv.Itoa(req.Limit),
			"activo": "true",
		}).
		SetResult(&page).
		Get(productsPath)
	if err != nil {
		return models.CatalogPage{}, fmt.Errorf("catalog page request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CatalogPage{}, err
	}

	return page, nil
}

// Ping implements [RemoteAdapter] with GET /health.
func (h *httpRemoteAdapter) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get(healthPath)
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetHeader("Authorization", "Bearer "+h.token)
	}
	return req
}
