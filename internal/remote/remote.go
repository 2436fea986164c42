// Package remote fetches the catalog document from a URL or a local file.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/izzyreal/scriptgate/internal/catalog"
	"github.com/izzyreal/scriptgate/internal/version"
)

const maxDocumentBytes = 8 << 20

type Source struct {
	Location string
	Client   *http.Client
	Timeout  time.Duration
}

func New(location string, timeout time.Duration) *Source {
	return &Source{Location: strings.TrimSpace(location), Timeout: timeout}
}

func (s *Source) Fetch(ctx context.Context) ([]catalog.Input, error) {
	loc := strings.TrimSpace(s.Location)
	if loc == "" {
		return nil, fmt.Errorf("no remote catalog configured")
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	var (
		data []byte
		err  error
	)
	switch {
	case strings.HasPrefix(loc, "http://"), strings.HasPrefix(loc, "https://"):
		data, err = s.fetchHTTP(ctx, loc)
	default:
		data, err = os.ReadFile(strings.TrimPrefix(loc, "file://"))
		if err != nil {
			err = fmt.Errorf("read catalog file: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}
	return catalog.DecodeDocument(data)
}

func (s *Source) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("User-Agent", version.UserAgent())

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch catalog: status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("read catalog body: %w", err)
	}
	return data, nil
}
