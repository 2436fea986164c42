package server

import (
	"io"
	"net/http"

	"github.com/izzyreal/scriptgate/internal/catalog"
)

func (s *stateStore) uiHandler(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/favicon.ico":
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = io.WriteString(w, catalog.PlaceholderSVG(0, "SG"))
	case "/":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexHTML))
	case "/ui/app.js":
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		_, _ = w.Write([]byte(uiAppJS))
	case "/ui/shared.js":
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		_, _ = w.Write([]byte(uiSharedJS))
	default:
		http.NotFound(w, r)
	}
}
