// Package executor keeps the list of downloadable executors. An entry either
// points at an external URL or at a file uploaded into the blob directory.
package executor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/izzyreal/scriptgate/internal/store"
)

const SlotKey = "scriptgate.executors.v1"

var (
	ErrNameRequired   = errors.New("name required")
	ErrSourceRequired = errors.New("provide URL or upload a file")
	ErrNotFound       = errors.New("executor not found")
	ErrNoBlob         = errors.New("executor has no uploaded file")
)

type Entry struct {
	Name        string    `json:"name"`
	URL         string    `json:"url,omitempty"`
	BlobID      string    `json:"blob_id,omitempty"`
	FileName    string    `json:"file_name,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	SizeBytes   int64     `json:"size_bytes,omitempty"`
	CreatedUTC  time.Time `json:"created_utc"`
}

// Location is what the list shows under the name.
func (e Entry) Location() string {
	if e.URL != "" {
		return e.URL
	}
	return "(local file)"
}

func (e Entry) Size() string {
	if e.BlobID == "" {
		return ""
	}
	return humanize.Bytes(uint64(e.SizeBytes))
}

// DownloadName is the file name offered to the browser.
func (e Entry) DownloadName() string {
	if strings.TrimSpace(e.Name) != "" {
		return e.Name
	}
	if e.FileName != "" {
		return e.FileName
	}
	return "executor.bin"
}

type List struct {
	kv      store.KV
	blobDir string
	now     func() time.Time

	mu sync.Mutex
}

func NewList(kv store.KV, blobDir string) *List {
	return &List{kv: kv, blobDir: blobDir, now: func() time.Time { return time.Now().UTC() }}
}

// Entries returns the stored list; an unreadable slot is treated as empty.
func (l *List) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

func (l *List) load() []Entry {
	raw, ok, err := l.kv.Get(SlotKey)
	if err != nil {
		slog.Warn("read executors", "error", err)
		return []Entry{}
	}
	if !ok {
		return []Entry{}
	}
	var out []Entry
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		slog.Debug("discarding unreadable executors", "error", err)
		return []Entry{}
	}
	if out == nil {
		out = []Entry{}
	}
	return out
}

func (l *List) save(entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode executors: %w", err)
	}
	if err := l.kv.Set(SlotKey, string(data)); err != nil {
		return fmt.Errorf("persist executors: %w", err)
	}
	return nil
}

func (l *List) AddURL(name, url string) (Entry, error) {
	name, url = strings.TrimSpace(name), strings.TrimSpace(url)
	if name == "" {
		return Entry{}, ErrNameRequired
	}
	if url == "" {
		return Entry{}, ErrSourceRequired
	}
	e := Entry{Name: name, URL: url, CreatedUTC: l.now()}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.save(append(l.load(), e)); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// AddUpload stores r as a blob and appends an entry pointing at it.
func (l *List) AddUpload(name, fileName, contentType string, r io.Reader) (Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, ErrNameRequired
	}
	if r == nil {
		return Entry{}, ErrSourceRequired
	}
	if strings.TrimSpace(contentType) == "" {
		contentType = "application/octet-stream"
	}
	if err := os.MkdirAll(l.blobDir, 0o755); err != nil {
		return Entry{}, fmt.Errorf("create blob directory: %w", err)
	}
	id := uuid.NewString()
	path := filepath.Join(l.blobDir, id)
	f, err := os.Create(path)
	if err != nil {
		return Entry{}, fmt.Errorf("create blob: %w", err)
	}
	n, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return Entry{}, fmt.Errorf("write blob: %w", err)
	}
	if fileName = strings.TrimSpace(fileName); fileName != "" {
		fileName = filepath.Base(fileName)
	}
	e := Entry{
		Name:        name,
		BlobID:      id,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   n,
		CreatedUTC:  l.now(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.save(append(l.load(), e)); err != nil {
		_ = os.Remove(path)
		return Entry{}, err
	}
	slog.Info("executor uploaded", "name", name, "size", e.Size())
	return e, nil
}

func (l *List) Delete(index int) (Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := l.load()
	if index < 0 || index >= len(entries) {
		return Entry{}, fmt.Errorf("%w: index %d", ErrNotFound, index)
	}
	e := entries[index]
	entries = append(entries[:index], entries[index+1:]...)
	if err := l.save(entries); err != nil {
		return Entry{}, err
	}
	if e.BlobID != "" {
		l.removeBlob(e.BlobID)
	}
	return e, nil
}

// Open returns the uploaded file of the entry at index.
func (l *List) Open(index int) (io.ReadCloser, Entry, error) {
	entries := l.Entries()
	if index < 0 || index >= len(entries) {
		return nil, Entry{}, fmt.Errorf("%w: index %d", ErrNotFound, index)
	}
	e := entries[index]
	if e.BlobID == "" {
		return nil, e, ErrNoBlob
	}
	f, err := os.Open(filepath.Join(l.blobDir, filepath.Base(e.BlobID)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, e, fmt.Errorf("%w: blob missing", ErrNotFound)
		}
		return nil, e, fmt.Errorf("open blob: %w", err)
	}
	return f, e, nil
}

// Clear drops the list and every uploaded blob.
func (l *List) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.load() {
		if e.BlobID != "" {
			l.removeBlob(e.BlobID)
		}
	}
	if err := l.kv.Remove(SlotKey); err != nil {
		return fmt.Errorf("clear executors: %w", err)
	}
	return nil
}

func (l *List) removeBlob(id string) {
	if err := os.Remove(filepath.Join(l.blobDir, filepath.Base(id))); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("remove executor blob", "blob_id", id, "error", err)
	}
}
