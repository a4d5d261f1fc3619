package http

import (
	"net/http"

	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/internal/service"
	"github.com/MKhiriev/go-pos-terminal/internal/utils"
	"github.com/MKhiriev/go-pos-terminal/models"
	"github.com/go-chi/chi/v5"
)

type refreshResponse struct {
	Refreshed bool `json:"refreshed"`
}

func (h *Handler) findByBarcode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	product, err := h.services.CatalogService.FindByBarcode(r.Context(), code)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.findByBarcode").Str("barcode", code).Msg("product lookup failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, product, http.StatusOK)
}

func (h *Handler) searchCatalog(w http.ResponseWriter, r *http.Request) {
	limit, err := limitFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	products, err := h.services.CatalogService.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.searchCatalog").Msg("catalog search failed")
		http.Error(w, "catalog search failed", statusFromError(err))
		return
	}
	if products == nil {
		products = []models.LocalProduct{}
	}

	utils.WriteJSON(w, products, http.StatusOK)
}

// refreshCatalog replaces the local catalog with the remote one. On failure
// the local rows are kept and 502 is returned.
func (h *Handler) refreshCatalog(w http.ResponseWriter, r *http.Request) {
	if !h.services.CatalogService.RefreshFromRemote(r.Context()) {
		utils.WriteJSON(w, refreshResponse{Refreshed: false}, statusFromError(service.ErrCatalogRefreshFailed))
		return
	}

	utils.WriteJSON(w, refreshResponse{Refreshed: true}, http.StatusOK)
}
