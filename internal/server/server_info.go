package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/izzyreal/scriptgate/internal/version"
)

type serverInfoResponse struct {
	Name       string `json:"name"`
	APIVersion int    `json:"api_version"`
	Version    string `json:"version"`
	Hostname   string `json:"hostname,omitempty"`
}

func serverInfoHandler(w http.ResponseWriter, r *http.Request) {
	host, _ := os.Hostname()
	host = strings.TrimSpace(host)
	writeJSON(w, http.StatusOK, serverInfoResponse{
		Name:       "scriptgate",
		APIVersion: 1,
		Version:    currentVersion(),
		Hostname:   host,
	})
}

func currentVersion() string {
	return version.Current()
}
