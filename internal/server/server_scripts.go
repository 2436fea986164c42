package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/izzyreal/scriptgate/internal/catalog"
	"github.com/izzyreal/scriptgate/internal/reveal"
	"github.com/izzyreal/scriptgate/internal/settings"
)

const maxImportBytes = 4 << 20

type scriptView struct {
	catalog.Record
	ImageURL string `json:"image_url"`
}

type listScriptsResponse struct {
	Scripts      []scriptView `json:"scripts"`
	Matched      int          `json:"matched"`
	Total        int          `json:"total"`
	CountDisplay string       `json:"count_display"`
	Origin       string       `json:"origin"`
}

func toScriptView(r catalog.Record) scriptView {
	img := r.Image
	if img == "" {
		img = fmt.Sprintf("/api/v1/scripts/%d/image.svg", r.ID)
	}
	return scriptView{Record: r, ImageURL: img}
}

func (s *stateStore) listScriptsHandler(w http.ResponseWriter, r *http.Request) {
	matched := s.catalog.Search(r.URL.Query().Get("q"))
	total := s.catalog.Len()
	views := make([]scriptView, 0, len(matched))
	for _, rec := range matched {
		views = append(views, toScriptView(rec))
	}
	writeJSON(w, http.StatusOK, listScriptsResponse{
		Scripts:      views,
		Matched:      len(matched),
		Total:        total,
		CountDisplay: fmt.Sprintf("%d / %d", len(matched), total),
		Origin:       string(s.catalog.Origin()),
	})
}

func (s *stateStore) getScriptHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.scriptFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toScriptView(rec))
}

func (s *stateStore) scriptImageHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.scriptFromRequest(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = io.WriteString(w, catalog.PlaceholderSVG(rec.ID, rec.Name))
}

func (s *stateStore) scriptFromRequest(w http.ResponseWriter, r *http.Request) (catalog.Record, bool) {
	id, ok := intURLParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid script id")
		return catalog.Record{}, false
	}
	rec, err := s.catalog.Get(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "script not found")
			return catalog.Record{}, false
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return catalog.Record{}, false
	}
	return rec, true
}

// importScriptsHandler takes the raw developer JSON as the request body.
func (s *stateStore) importScriptsHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read request body")
		return
	}
	res, err := s.catalog.Import(string(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, catalog.Notice(err))
		return
	}
	s.catalogChanged()
	writeJSON(w, http.StatusOK, res)
}

type copyResponse struct {
	Copied bool   `json:"copied"`
	Notice string `json:"notice"`
	Code   string `json:"code,omitempty"`
}

// copyScriptHandler copies a card's code without the placeholder sequence.
func (s *stateStore) copyScriptHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.scriptFromRequest(w, r)
	if !ok {
		return
	}
	copied := rec.Code != "" && s.clipboard != nil && s.clipboard.Copy(rec.Code) == nil
	notice := reveal.NoticeManualCopied
	if !copied {
		notice = reveal.NoticeManualFailed
	}
	writeJSON(w, http.StatusOK, copyResponse{Copied: copied, Notice: notice, Code: rec.Code})
}

type resetResponse struct {
	Message string         `json:"message"`
	Origin  catalog.Origin `json:"origin"`
	Count   int            `json:"count"`
}

// resetHandler clears every persisted slot and reloads the catalog.
func (s *stateStore) resetHandler(w http.ResponseWriter, r *http.Request) {
	s.sequencer.Cancel()
	if err := settings.Clear(s.kv); err != nil {
		slog.Warn("reset settings", "error", err)
	}
	if err := s.executors.Clear(); err != nil {
		slog.Warn("reset executors", "error", err)
	}
	res := s.catalog.Reset(r.Context())
	s.catalogChanged()
	writeJSON(w, http.StatusOK, resetResponse{Message: "Local edits cleared", Origin: res.Origin, Count: res.Count})
}
