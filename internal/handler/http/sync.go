package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/internal/utils"
)

type connectivityRequest struct {
	Online *bool `json:"online"`
}

type connectivityResponse struct {
	Online bool `json:"online"`
}

func (h *Handler) getSyncStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.services.StatusService.GetSyncStats(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getSyncStats").Msg("error reading sync stats")
		http.Error(w, "error reading sync stats", statusFromError(err))
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

func (h *Handler) forceRecovery(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	report, err := h.services.RecoveryService.ForceRecovery(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.forceRecovery").Msg("error recovering sync queue")
		http.Error(w, "error recovering sync queue", statusFromError(err))
		return
	}

	if report.Recovered > 0 {
		h.services.SyncJob.TriggerDrainIfOnline()
	}

	utils.WriteJSON(w, report, http.StatusOK)
}

// triggerSync asks for a drain cycle without waiting for it.
func (h *Handler) triggerSync(w http.ResponseWriter, r *http.Request) {
	h.services.SyncJob.TriggerDrainIfOnline()

	utils.WriteJSON(w, connectivityResponse{Online: h.services.Connectivity.IsOnline()}, http.StatusAccepted)
}

// wake handles the background wake-up signal of the host OS. While offline
// the remote side is probed first; a successful probe triggers the drain
// through the online transition hook.
func (h *Handler) wake(w http.ResponseWriter, r *http.Request) {
	if h.services.Connectivity.IsOnline() {
		h.services.SyncJob.TriggerDrainIfOnline()
	} else {
		h.services.Connectivity.Probe(r.Context())
	}

	utils.WriteJSON(w, connectivityResponse{Online: h.services.Connectivity.IsOnline()}, http.StatusAccepted)
}

func (h *Handler) setConnectivity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req connectivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.setConnectivity").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if req.Online == nil {
		http.Error(w, ErrMissingOnlineFlag.Error(), statusFromError(ErrMissingOnlineFlag))
		return
	}

	h.services.Connectivity.SetOnline(*req.Online)

	utils.WriteJSON(w, connectivityResponse{Online: *req.Online}, http.StatusOK)
}
