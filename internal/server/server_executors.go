package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/izzyreal/scriptgate/internal/executor"
)

const maxUploadBytes = 256 << 20

type executorView struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Size        string `json:"size,omitempty"`
	DownloadURL string `json:"download_url"`
}

func toExecutorViews(entries []executor.Entry) []executorView {
	out := make([]executorView, 0, len(entries))
	for i, e := range entries {
		out = append(out, executorView{
			Index:       i,
			Name:        e.Name,
			Location:    e.Location(),
			Size:        e.Size(),
			DownloadURL: fmt.Sprintf("/api/v1/executors/%d/download", i),
		})
	}
	return out
}

func (s *stateStore) listExecutorsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"executors": toExecutorViews(s.executors.Entries())})
}

// addExecutorHandler accepts JSON {name,url} or a multipart form with name
// and either url or file.
func (s *stateStore) addExecutorHandler(w http.ResponseWriter, r *http.Request) {
	var (
		entry executor.Entry
		err   error
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		entry, err = s.addExecutorFromForm(w, r)
	default:
		var req struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		}
		if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		entry, err = s.executors.AddURL(req.Name, req.URL)
	}
	if err != nil {
		switch {
		case errors.Is(err, executor.ErrNameRequired), errors.Is(err, executor.ErrSourceRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("add executor", "error", err)
			writeError(w, http.StatusInternalServerError, "could not store executor")
		}
		return
	}
	message := "Added executor (URL)"
	if entry.BlobID != "" {
		message = "Added executor (uploaded)"
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":   message,
		"executors": toExecutorViews(s.executors.Entries()),
	})
}

func (s *stateStore) addExecutorFromForm(w http.ResponseWriter, r *http.Request) (executor.Entry, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return executor.Entry{}, fmt.Errorf("%w: %v", executor.ErrSourceRequired, err)
	}
	name := r.FormValue("name")
	if url := strings.TrimSpace(r.FormValue("url")); url != "" {
		return s.executors.AddURL(name, url)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		if strings.TrimSpace(name) == "" {
			return executor.Entry{}, executor.ErrNameRequired
		}
		return executor.Entry{}, executor.ErrSourceRequired
	}
	defer file.Close()
	return s.executors.AddUpload(name, header.Filename, header.Header.Get("Content-Type"), file)
}

func (s *stateStore) deleteExecutorHandler(w http.ResponseWriter, r *http.Request) {
	index, ok := intURLParam(r, "index")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid executor index")
		return
	}
	if _, err := s.executors.Delete(int(index)); err != nil {
		if errors.Is(err, executor.ErrNotFound) {
			writeError(w, http.StatusNotFound, "executor not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Deleted executor",
		"executors": toExecutorViews(s.executors.Entries()),
	})
}

func (s *stateStore) downloadExecutorHandler(w http.ResponseWriter, r *http.Request) {
	index, ok := intURLParam(r, "index")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid executor index")
		return
	}
	rc, entry, err := s.executors.Open(int(index))
	switch {
	case errors.Is(err, executor.ErrNoBlob):
		http.Redirect(w, r, entry.URL, http.StatusFound)
		return
	case errors.Is(err, executor.ErrNotFound):
		writeError(w, http.StatusNotFound, "executor not found")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", entry.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": entry.DownloadName()}))
	if entry.SizeBytes > 0 {
		w.Header().Set("Content-Length", fmt.Sprint(entry.SizeBytes))
	}
	if _, err := io.Copy(w, rc); err != nil {
		slog.Debug("executor download interrupted", "index", index, "error", err)
	}
}
