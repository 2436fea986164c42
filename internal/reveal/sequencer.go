// Package reveal gates a script's code behind two timed placeholders.
//
// A sequence moves Idle -> ShowingFirstPlaceholder -> ShowingSecondPlaceholder
// -> Revealed, each placeholder lasting the configured delay. Cancel moves any
// active sequence to Closed. Only one sequence runs at a time; starting a new
// one abandons the previous one.
package reveal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/izzyreal/scriptgate/internal/catalog"
)

type State int

const (
	Idle State = iota
	ShowingFirstPlaceholder
	ShowingSecondPlaceholder
	Revealed
	Closed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ShowingFirstPlaceholder:
		return "showing_first_placeholder"
	case ShowingSecondPlaceholder:
		return "showing_second_placeholder"
	case Revealed:
		return "revealed"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(text []byte) error {
	for st := Idle; st <= Closed; st++ {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown reveal state %q", text)
}

const (
	TitleWaiting = "Displaying ads before revealing script"

	NoticeAutoCopied   = "Script copied to clipboard"
	NoticeAutoFailed   = "Automatic copy failed; use Copy button"
	NoticeManualCopied = "Copied to clipboard"
	NoticeManualFailed = "Copy failed"
)

var (
	ErrNotRevealed  = errors.New("no revealed script to copy")
	ErrInvalidDelay = errors.New("delay must be positive")
)

// Slot identifies one placeholder request.
type Slot struct {
	Index      int    `json:"index"`
	Identifier string `json:"identifier"`
	Provider   string `json:"provider"`
}

// Placeholder renders a timed placeholder. Errors are logged and never hold
// the sequence back.
type Placeholder interface {
	Show(ctx context.Context, slot Slot) error
}

// Clipboard copies text; an error means the copy did not happen.
type Clipboard interface {
	Copy(text string) error
}

// Notifier receives transient notifications.
type Notifier interface {
	Notify(message string)
}

// Config is read once per sequence.
type Config struct {
	Delay        time.Duration
	PlaceholderA string
	PlaceholderB string
	Provider     string
}

func (c Config) slot(index int) Slot {
	id := c.PlaceholderA
	if index == 2 {
		id = c.PlaceholderB
	}
	return Slot{Index: index, Identifier: id, Provider: c.Provider}
}

// Snapshot is a consistent view of the sequencer.
type Snapshot struct {
	State        State           `json:"state"`
	Title        string          `json:"title"`
	Record       *catalog.Record `json:"record,omitempty"`
	Placeholders []Slot          `json:"placeholders"`
	Code         string          `json:"code,omitempty"`
	Copied       *bool           `json:"copied,omitempty"`
	Notice       string          `json:"notice,omitempty"`
	DelaySeconds float64         `json:"delay_seconds"`
}

type Sequencer struct {
	clock       Clock
	placeholder Placeholder
	clipboard   Clipboard
	notifier    Notifier

	mu           sync.Mutex
	gen          uint64
	cancel       context.CancelFunc
	state        State
	record       *catalog.Record
	cfg          Config
	placeholders []Slot
	copied       *bool
	notice       string
}

type Option func(*Sequencer)

func WithClock(c Clock) Option             { return func(s *Sequencer) { s.clock = c } }
func WithPlaceholder(p Placeholder) Option { return func(s *Sequencer) { s.placeholder = p } }
func WithClipboard(c Clipboard) Option     { return func(s *Sequencer) { s.clipboard = c } }
func WithNotifier(n Notifier) Option       { return func(s *Sequencer) { s.notifier = n } }

func New(opts ...Option) *Sequencer {
	s := &Sequencer{clock: SystemClock()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins a fresh sequence for rec, abandoning any sequence in
// progress. The returned channel is closed when this sequence has either
// revealed and attempted the copy, or been abandoned.
func (s *Sequencer) Start(rec catalog.Record, cfg Config) (<-chan struct{}, error) {
	if cfg.Delay <= 0 {
		return nil, ErrInvalidDelay
	}
	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	s.cancel = cancel
	s.cfg = cfg
	s.record = &rec
	s.state = ShowingFirstPlaceholder
	s.placeholders = []Slot{cfg.slot(1)}
	s.copied = nil
	s.notice = ""
	first := s.clock.After(cfg.Delay)
	s.mu.Unlock()

	slog.Debug("reveal sequence started", "script_id", rec.ID, "delay", cfg.Delay)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()
		s.run(ctx, gen, rec, cfg, first)
	}()
	return done, nil
}

func (s *Sequencer) run(ctx context.Context, gen uint64, rec catalog.Record, cfg Config, first <-chan time.Time) {
	s.show(ctx, cfg.slot(1))
	var firstAt time.Time
	select {
	case <-ctx.Done():
		return
	case firstAt = <-first:
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	s.state = ShowingSecondPlaceholder
	s.placeholders = append(s.placeholders, cfg.slot(2))
	// Measured from the first deadline.
	second := s.clock.After(cfg.Delay - s.clock.Now().Sub(firstAt))
	s.mu.Unlock()

	s.show(ctx, cfg.slot(2))
	select {
	case <-ctx.Done():
		return
	case <-second:
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	s.state = Revealed
	s.mu.Unlock()
	slog.Debug("script revealed", "script_id", rec.ID)

	ok := s.copy(rec.Code)
	notice := NoticeAutoCopied
	if !ok {
		notice = NoticeAutoFailed
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	s.copied = &ok
	s.notice = notice
	s.mu.Unlock()
	s.notify(notice)
}

func (s *Sequencer) show(ctx context.Context, slot Slot) {
	if s.placeholder == nil {
		return
	}
	if err := s.placeholder.Show(ctx, slot); err != nil {
		slog.Debug("placeholder failed to render", "slot", slot.Index, "identifier", slot.Identifier, "error", err)
	}
}

func (s *Sequencer) copy(text string) bool {
	if s.clipboard == nil || text == "" {
		return false
	}
	if err := s.clipboard.Copy(text); err != nil {
		slog.Debug("clipboard copy failed", "error", err)
		return false
	}
	return true
}

func (s *Sequencer) notify(msg string) {
	if s.notifier != nil {
		s.notifier.Notify(msg)
	}
}

// Cancel closes the active sequence. A closed sequence never resumes.
func (s *Sequencer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Idle {
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	s.state = Closed
	s.record = nil
	s.placeholders = nil
	s.copied = nil
	s.notice = ""
}

// CopyAgain copies the revealed code once more. It may be called any number
// of times while the sequence stays revealed.
func (s *Sequencer) CopyAgain() (bool, error) {
	s.mu.Lock()
	if s.state != Revealed || s.record == nil {
		s.mu.Unlock()
		return false, ErrNotRevealed
	}
	code := s.record.Code
	gen := s.gen
	s.mu.Unlock()

	ok := s.copy(code)
	notice := NoticeManualCopied
	if !ok {
		notice = NoticeManualFailed
	}

	s.mu.Lock()
	if s.gen == gen {
		s.copied = &ok
		s.notice = notice
	}
	s.mu.Unlock()
	s.notify(notice)
	return ok, nil
}

func (s *Sequencer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Sequencer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		State:        s.state,
		Placeholders: append([]Slot(nil), s.placeholders...),
		Notice:       s.notice,
		DelaySeconds: s.cfg.Delay.Seconds(),
	}
	if s.record != nil {
		rec := *s.record
		if s.state != Revealed {
			rec.Code = ""
		}
		snap.Record = &rec
	}
	switch s.state {
	case ShowingFirstPlaceholder, ShowingSecondPlaceholder:
		snap.Title = TitleWaiting
	case Revealed:
		snap.Title = "Script: " + s.record.Name
		snap.Code = s.record.Code
		if s.copied != nil {
			v := *s.copied
			snap.Copied = &v
		}
	}
	return snap
}
