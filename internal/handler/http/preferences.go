package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/internal/utils"
)

func (h *Handler) getPreferences(w http.ResponseWriter, r *http.Request) {
	if h.prefs == nil {
		http.Error(w, ErrPreferencesDisabled.Error(), statusFromError(ErrPreferencesDisabled))
		return
	}

	utils.WriteJSON(w, h.prefs.All(), http.StatusOK)
}

// putPreferences merges the body into the stored blob. A null value removes
// the key.
func (h *Handler) putPreferences(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if h.prefs == nil {
		http.Error(w, ErrPreferencesDisabled.Error(), statusFromError(ErrPreferencesDisabled))
		return
	}

	var patch map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil || patch == nil {
		log.Err(err).Str("func", "*Handler.putPreferences").Msg("Invalid JSON was passed")
		http.Error(w, "preferences must be a JSON object", http.StatusBadRequest)
		return
	}

	if err := h.prefs.Merge(patch); err != nil {
		log.Err(err).Str("func", "*Handler.putPreferences").Msg("error saving preferences")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, h.prefs.All(), http.StatusOK)
}
