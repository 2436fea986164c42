package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/izzyreal/scriptgate/internal/config"
	"github.com/izzyreal/scriptgate/internal/reveal"
	"github.com/izzyreal/scriptgate/internal/store"
)

type fakeClipboard struct {
	mu     sync.Mutex
	fail   bool
	copies []string
}

func (c *fakeClipboard) Copy(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("clipboard unavailable")
	}
	c.copies = append(c.copies, text)
	return nil
}

func (c *fakeClipboard) last() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.copies) == 0 {
		return ""
	}
	return c.copies[len(c.copies)-1]
}

type testEnv struct {
	ts        *httptest.Server
	state     *stateStore
	kv        *store.Memory
	clock     *reveal.FakeClock
	clipboard *fakeClipboard
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Storage = config.StorageMemory

	env := &testEnv{
		kv:        store.NewMemory(),
		clock:     reveal.NewFakeClock(time.Unix(0, 0)),
		clipboard: &fakeClipboard{},
	}
	env.state = newStateStore(env.kv, cfg, env.clock, env.clipboard)
	env.state.catalog.Load(context.Background())
	env.ts = httptest.NewServer(buildRouter(env.state))
	t.Cleanup(func() {
		env.state.sequencer.Cancel()
		env.ts.Close()
	})
	return env
}

func (e *testEnv) url(path string) string {
	return e.ts.URL + path
}

func mustJSONRequest(t *testing.T, client *http.Client, method, url string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request JSON: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

func mustRawJSONRequest(t *testing.T, client *http.Client, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

func decodeJSONBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return string(data)
}

func requireStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d body=%s", want, resp.StatusCode, readBody(t, resp))
	}
}
