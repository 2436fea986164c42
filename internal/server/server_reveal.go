package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/izzyreal/scriptgate/internal/catalog"
	"github.com/izzyreal/scriptgate/internal/reveal"
	"github.com/izzyreal/scriptgate/internal/settings"
)

type startRevealRequest struct {
	ID           int64   `json:"id"`
	DelaySeconds float64 `json:"delay_seconds,omitempty"`
}

func (s *stateStore) revealStatusHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sequencer.Snapshot())
}

// startRevealHandler begins the placeholder sequence for one script. The
// page may pass the delay picked in its selector; otherwise the stored
// setting applies.
func (s *stateStore) startRevealHandler(w http.ResponseWriter, r *http.Request) {
	var req startRevealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	rec, err := s.catalog.Get(req.ID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "script not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if req.DelaySeconds != 0 && !settings.ValidDelay(req.DelaySeconds) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("delay_seconds must be a positive number up to %d", settings.MaxDelaySeconds))
		return
	}

	cfg := settings.Load(s.kv).RevealConfig()
	if req.DelaySeconds > 0 {
		cfg.Delay = time.Duration(req.DelaySeconds * float64(time.Second))
	}
	if _, err := s.sequencer.Start(rec, cfg); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, s.sequencer.Snapshot())
}

func (s *stateStore) cancelRevealHandler(w http.ResponseWriter, r *http.Request) {
	s.sequencer.Cancel()
	writeJSON(w, http.StatusOK, s.sequencer.Snapshot())
}

func (s *stateStore) copyRevealHandler(w http.ResponseWriter, r *http.Request) {
	ok, err := s.sequencer.CopyAgain()
	if err != nil {
		if errors.Is(err, reveal.ErrNotRevealed) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	snap := s.sequencer.Snapshot()
	writeJSON(w, http.StatusOK, copyResponse{Copied: ok, Notice: snap.Notice, Code: snap.Code})
}
