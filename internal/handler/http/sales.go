package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/internal/utils"
	"github.com/MKhiriev/go-pos-terminal/models"
)

// createSale records a confirmed sale and nudges the sync job. The response
// is sent once the sale is durable locally, whatever the network state.
func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var sale models.SaleRecord
	if err := json.NewDecoder(r.Body).Decode(&sale); err != nil {
		log.Err(err).Str("func", "*Handler.createSale").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	stored, err := h.services.SyncService.EnqueueSale(r.Context(), sale)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createSale").Msg("error recording sale")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	h.services.SyncJob.TriggerDrainIfOnline()

	utils.WriteJSON(w, stored, http.StatusCreated)
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	limit, err := limitFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	sales, err := h.services.SyncService.RecentSales(r.Context(), limit)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listSales").Msg("error listing sales")
		http.Error(w, "error listing sales", statusFromError(err))
		return
	}
	if sales == nil {
		sales = []models.SaleRecord{}
	}

	utils.WriteJSON(w, sales, http.StatusOK)
}

// limitFromQuery reads the optional "limit" parameter; zero means default.
func limitFromQuery(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, ErrInvalidLimit
	}
	return limit, nil
}
