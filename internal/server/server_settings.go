package server

import (
	"encoding/json"
	"net/http"

	"github.com/izzyreal/scriptgate/internal/settings"
)

type settingsResponse struct {
	settings.Settings
	DelayChoices []float64 `json:"delay_choices"`
}

func (s *stateStore) getSettingsHandler(w http.ResponseWriter, r *http.Request) {
	current := settings.Load(s.kv)
	writeJSON(w, http.StatusOK, settingsResponse{Settings: current, DelayChoices: settings.ChoicesWith(current.DelaySeconds)})
}

// putSettingsHandler merges the supplied fields over the stored settings.
func (s *stateStore) putSettingsHandler(w http.ResponseWriter, r *http.Request) {
	current := settings.Load(s.kv)
	if err := json.NewDecoder(r.Body).Decode(&current); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	saved, err := settings.Save(s.kv, current)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, settingsResponse{Settings: saved, DelayChoices: settings.ChoicesWith(saved.DelaySeconds)})
}
