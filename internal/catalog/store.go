package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/izzyreal/scriptgate/internal/store"
)

// SlotKey is the persisted slot holding the serialized collection.
const SlotKey = "scriptgate.scripts.v2"

var ErrNotFound = errors.New("script not found")

// Source provides the remote catalog document.
type Source interface {
	Fetch(ctx context.Context) ([]Input, error)
}

// Origin names where the collection came from on the last load.
type Origin string

const (
	OriginPersisted Origin = "persisted"
	OriginRemote    Origin = "remote"
	OriginDefaults  Origin = "defaults"
)

type LoadResult struct {
	Origin Origin `json:"origin"`
	Count  int    `json:"count"`
}

type ImportResult struct {
	Mode    ImportMode `json:"mode"`
	Message string     `json:"message"`
	Count   int        `json:"count"`
	Total   int        `json:"total"`
	Remaps  []Remap    `json:"remaps,omitempty"`
}

// Store owns the in-memory collection and keeps it in sync with its slot.
// All mutations replace the slice wholesale, so readers never see a
// partially applied batch.
type Store struct {
	kv       store.KV
	source   Source
	defaults []Input

	mu      sync.RWMutex
	records []Record
	origin  Origin
}

type Option func(*Store)

func WithSource(src Source) Option {
	return func(s *Store) { s.source = src }
}

func WithDefaults(defaults []Input) Option {
	return func(s *Store) { s.defaults = defaults }
}

func NewStore(kv store.KV, opts ...Option) *Store {
	s := &Store{kv: kv, defaults: Defaults()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load builds the collection from, in order of preference, the persisted
// slot, the remote document and the built-in defaults. It never fails; every
// problem degrades to the next tier.
func (s *Store) Load(ctx context.Context) LoadResult {
	candidates, origin := s.fetchRemote(ctx)
	if persisted, ok := s.restoreInputs(); ok {
		candidates, origin = persisted, OriginPersisted
	} else if len(candidates) == 0 {
		candidates, origin = s.defaults, OriginDefaults
	}
	records, _ := Normalize(nil, candidates, true)

	s.mu.Lock()
	s.records = records
	s.origin = origin
	s.mu.Unlock()

	slog.Info("catalog loaded", "origin", origin, "count", len(records))
	return LoadResult{Origin: origin, Count: len(records)}
}

func (s *Store) fetchRemote(ctx context.Context) ([]Input, Origin) {
	if s.source == nil {
		return nil, OriginRemote
	}
	items, err := s.source.Fetch(ctx)
	if err != nil {
		slog.Debug("remote catalog unavailable", "error", err)
		return nil, OriginRemote
	}
	return items, OriginRemote
}

// Replace sets the whole collection to the normalized batch.
func (s *Store) Replace(candidates []Input) []Remap {
	s.mu.Lock()
	records, remaps := Normalize(s.records, candidates, true)
	s.records = records
	s.mu.Unlock()

	s.persistOrLog()
	return remaps
}

// Append adds the normalized batch after the existing records.
func (s *Store) Append(candidates []Input) []Remap {
	s.mu.Lock()
	records, remaps := AppendUnique(s.records, candidates)
	s.records = records
	s.mu.Unlock()

	s.persistOrLog()
	return remaps
}

// Import applies free-form developer JSON. On error the collection is left
// untouched and the error carries a notice suitable for display.
func (s *Store) Import(raw string) (ImportResult, error) {
	batch, err := ParseDeveloperJSON(raw)
	if err != nil {
		return ImportResult{}, err
	}
	var remaps []Remap
	switch batch.Mode {
	case ModeAppend:
		remaps = s.Append(batch.Items)
	default:
		remaps = s.Replace(batch.Items)
	}
	for _, rm := range remaps {
		slog.Info("script id reassigned", "index", rm.Index, "requested", rm.Requested, "assigned", rm.Assigned)
	}
	return ImportResult{
		Mode:    batch.Mode,
		Message: batch.Mode.Message(),
		Count:   len(batch.Items),
		Total:   s.Len(),
		Remaps:  remaps,
	}, nil
}

// Persist writes the current collection to its slot.
func (s *Store) Persist() error {
	s.mu.RLock()
	data, err := json.Marshal(s.records)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := s.kv.Set(SlotKey, string(data)); err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}
	return nil
}

func (s *Store) persistOrLog() {
	if err := s.Persist(); err != nil {
		slog.Warn("catalog not persisted", "error", err)
	}
}

// Restore replaces the collection with the persisted slot. It reports false
// and changes nothing when the slot is absent or cannot be decoded.
func (s *Store) Restore() bool {
	items, ok := s.restoreInputs()
	if !ok {
		return false
	}
	records, _ := Normalize(nil, items, true)
	s.mu.Lock()
	s.records = records
	s.origin = OriginPersisted
	s.mu.Unlock()
	return true
}

func (s *Store) restoreInputs() ([]Input, bool) {
	raw, ok, err := s.kv.Get(SlotKey)
	if err != nil {
		slog.Warn("read persisted catalog", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	items, err := DecodeDocument([]byte(raw))
	if err != nil {
		slog.Debug("discarding unreadable persisted catalog", "error", err)
		return nil, false
	}
	return items, true
}

// Reset drops the persisted slot and loads again.
func (s *Store) Reset(ctx context.Context) LoadResult {
	if err := s.kv.Remove(SlotKey); err != nil {
		slog.Warn("clear persisted catalog", "error", err)
	}
	return s.Load(ctx)
}

func (s *Store) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) Origin() Origin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.origin
}

func (s *Store) Get(id int64) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return Record{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
}
