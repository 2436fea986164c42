package reveal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/izzyreal/scriptgate/internal/catalog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingClipboard struct {
	mu     sync.Mutex
	fail   bool
	copies []string
}

func (c *recordingClipboard) Copy(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.copies = append(c.copies, text)
	if c.fail {
		return errors.New("clipboard unavailable")
	}
	return nil
}

func (c *recordingClipboard) setFail(v bool) {
	c.mu.Lock()
	c.fail = v
	c.mu.Unlock()
}

func (c *recordingClipboard) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.copies)
}

type recordingPlaceholder struct {
	mu    sync.Mutex
	fail  bool
	slots []Slot
}

func (p *recordingPlaceholder) Show(_ context.Context, slot Slot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.slots = append(p.slots, slot)
	if p.fail {
		return errors.New("ad network blocked")
	}
	return nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(msg string) {
	n.mu.Lock()
	n.messages = append(n.messages, msg)
	n.mu.Unlock()
}

func (n *recordingNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.messages) == 0 {
		return ""
	}
	return n.messages[len(n.messages)-1]
}

const testDelay = 4 * time.Second

var testConfig = Config{Delay: testDelay, PlaceholderA: "slot-a", PlaceholderB: "slot-b", Provider: "ca-pub-test"}

type harness struct {
	clock       *FakeClock
	clipboard   *recordingClipboard
	placeholder *recordingPlaceholder
	notifier    *recordingNotifier
	seq         *Sequencer
}

func newHarness() *harness {
	h := &harness{
		clock:       NewFakeClock(time.Unix(0, 0)),
		clipboard:   &recordingClipboard{},
		placeholder: &recordingPlaceholder{},
		notifier:    &recordingNotifier{},
	}
	h.seq = New(
		WithClock(h.clock),
		WithClipboard(h.clipboard),
		WithPlaceholder(h.placeholder),
		WithNotifier(h.notifier),
	)
	return h
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("sequence did not finish")
	}
}

var script = catalog.Record{ID: 7, Name: "UUID v4", Link: "#", Code: "function uuidv4(){}"}

func TestSequenceOrdering(t *testing.T) {
	h := newHarness()
	if got := h.seq.State(); got != Idle {
		t.Fatalf("initial state %s", got)
	}

	done, err := h.seq.Start(script, testConfig)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	snap := h.seq.Snapshot()
	if snap.State != ShowingFirstPlaceholder || snap.Title != TitleWaiting || snap.Code != "" {
		t.Fatalf("unexpected snapshot after start: %+v", snap)
	}
	if snap.Record == nil || snap.Record.Code != "" {
		t.Fatalf("code must stay hidden before reveal: %+v", snap.Record)
	}

	h.clock.Advance(testDelay - time.Millisecond)
	if got := h.seq.State(); got != ShowingFirstPlaceholder {
		t.Fatalf("state before first delay elapsed: %s", got)
	}

	h.clock.Advance(time.Millisecond)
	h.clock.BlockUntil(1)
	if got := h.seq.State(); got != ShowingSecondPlaceholder {
		t.Fatalf("state after first delay: %s", got)
	}

	h.clock.Advance(testDelay - time.Millisecond)
	if got := h.seq.State(); got != ShowingSecondPlaceholder {
		t.Fatalf("revealed before second delay elapsed: %s", got)
	}
	h.clock.Advance(time.Millisecond)
	waitDone(t, done)

	snap = h.seq.Snapshot()
	if snap.State != Revealed || snap.Code != script.Code {
		t.Fatalf("unexpected revealed snapshot: %+v", snap)
	}
	if snap.Title != "Script: UUID v4" {
		t.Fatalf("unexpected title %q", snap.Title)
	}
	if snap.Copied == nil || !*snap.Copied || snap.Notice != NoticeAutoCopied {
		t.Fatalf("expected automatic copy, got copied=%v notice=%q", snap.Copied, snap.Notice)
	}
	if len(snap.Placeholders) != 2 || snap.Placeholders[0].Identifier != "slot-a" || snap.Placeholders[1].Identifier != "slot-b" {
		t.Fatalf("unexpected placeholders %+v", snap.Placeholders)
	}
	if h.notifier.last() != NoticeAutoCopied {
		t.Fatalf("unexpected notification %q", h.notifier.last())
	}
	if h.clipboard.count() != 1 {
		t.Fatalf("expected one copy, got %d", h.clipboard.count())
	}
}

func TestSingleLargeAdvanceReveals(t *testing.T) {
	for _, step := range []time.Duration{2 * testDelay, 2*testDelay + time.Millisecond, 10 * testDelay} {
		h := newHarness()
		done, err := h.seq.Start(script, testConfig)
		if err != nil {
			t.Fatalf("start: %v", err)
		}
		h.clock.Advance(step)
		waitDone(t, done)
		if got := h.seq.State(); got != Revealed {
			t.Fatalf("advance %v: state %s", step, got)
		}
	}
}

func TestSecondDelayCountsFromFirstDeadline(t *testing.T) {
	h := newHarness()
	done, _ := h.seq.Start(script, testConfig)

	// Overshoot the first deadline; the overshoot is taken off the second wait.
	h.clock.Advance(testDelay + time.Second)
	h.clock.BlockUntil(1)
	if got := h.seq.State(); got != ShowingSecondPlaceholder {
		t.Fatalf("state %s", got)
	}
	h.clock.Advance(testDelay - time.Second)
	waitDone(t, done)
	if got := h.seq.State(); got != Revealed {
		t.Fatalf("state %s", got)
	}
}

func TestPlaceholderFailureDoesNotBlock(t *testing.T) {
	h := newHarness()
	h.placeholder.fail = true

	done, err := h.seq.Start(script, testConfig)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	h.clock.Advance(testDelay)
	h.clock.BlockUntil(1)
	h.clock.Advance(testDelay)
	waitDone(t, done)

	if got := h.seq.State(); got != Revealed {
		t.Fatalf("state %s", got)
	}
	h.placeholder.mu.Lock()
	defer h.placeholder.mu.Unlock()
	if len(h.placeholder.slots) != 2 || h.placeholder.slots[0].Provider != "ca-pub-test" {
		t.Fatalf("placeholders not requested: %+v", h.placeholder.slots)
	}
}

func TestClipboardFailureStillReveals(t *testing.T) {
	h := newHarness()
	h.clipboard.setFail(true)

	done, _ := h.seq.Start(script, testConfig)
	h.clock.Advance(testDelay)
	h.clock.BlockUntil(1)
	h.clock.Advance(testDelay)
	waitDone(t, done)

	snap := h.seq.Snapshot()
	if snap.State != Revealed || snap.Code != script.Code {
		t.Fatalf("expected reveal despite copy failure: %+v", snap)
	}
	if snap.Copied == nil || *snap.Copied || snap.Notice != NoticeAutoFailed {
		t.Fatalf("expected failed copy, got copied=%v notice=%q", snap.Copied, snap.Notice)
	}

	for i := 0; i < 2; i++ {
		ok, err := h.seq.CopyAgain()
		if err != nil || ok {
			t.Fatalf("retry %d: ok=%v err=%v", i, ok, err)
		}
		if h.notifier.last() != NoticeManualFailed {
			t.Fatalf("unexpected notification %q", h.notifier.last())
		}
	}

	h.clipboard.setFail(false)
	ok, err := h.seq.CopyAgain()
	if err != nil || !ok {
		t.Fatalf("recovered copy: ok=%v err=%v", ok, err)
	}
	if h.notifier.last() != NoticeManualCopied {
		t.Fatalf("unexpected notification %q", h.notifier.last())
	}
	if got := h.seq.State(); got != Revealed {
		t.Fatalf("copy changed state to %s", got)
	}
	if h.clipboard.count() != 4 {
		t.Fatalf("expected four copy attempts, got %d", h.clipboard.count())
	}
}

func TestCopyAgainRequiresReveal(t *testing.T) {
	h := newHarness()
	if _, err := h.seq.CopyAgain(); !errors.Is(err, ErrNotRevealed) {
		t.Fatalf("idle copy: %v", err)
	}
	done, _ := h.seq.Start(script, testConfig)
	if _, err := h.seq.CopyAgain(); !errors.Is(err, ErrNotRevealed) {
		t.Fatalf("copy during placeholder: %v", err)
	}
	h.seq.Cancel()
	waitDone(t, done)
}

func TestCancelFromEveryActiveState(t *testing.T) {
	stages := []struct {
		name     string
		advances int
	}{
		{name: "first placeholder", advances: 0},
		{name: "second placeholder", advances: 1},
		{name: "revealed", advances: 2},
	}
	for _, tc := range stages {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness()
			done, _ := h.seq.Start(script, testConfig)
			for i := 0; i < tc.advances; i++ {
				h.clock.BlockUntil(1)
				h.clock.Advance(testDelay)
			}
			switch tc.advances {
			case 1:
				h.clock.BlockUntil(1)
				if got := h.seq.State(); got != ShowingSecondPlaceholder {
					t.Fatalf("state %s", got)
				}
			case 2:
				waitDone(t, done)
			}

			h.seq.Cancel()
			waitDone(t, done)

			snap := h.seq.Snapshot()
			if snap.State != Closed || snap.Code != "" || snap.Record != nil || len(snap.Placeholders) != 0 {
				t.Fatalf("unexpected snapshot after cancel: %+v", snap)
			}
			if _, err := h.seq.CopyAgain(); !errors.Is(err, ErrNotRevealed) {
				t.Fatalf("copy after cancel: %v", err)
			}

			// A closed sequence never resumes.
			h.clock.Advance(10 * testDelay)
			if got := h.seq.State(); got != Closed {
				t.Fatalf("closed sequence resumed into %s", got)
			}
		})
	}
}

func TestCancelWhenIdleIsNoop(t *testing.T) {
	h := newHarness()
	h.seq.Cancel()
	if got := h.seq.State(); got != Idle {
		t.Fatalf("state %s", got)
	}
}

func TestStartAfterCancelIsIndependent(t *testing.T) {
	h := newHarness()
	first, _ := h.seq.Start(script, testConfig)
	h.clock.Advance(testDelay)
	h.clock.BlockUntil(1)
	h.seq.Cancel()
	waitDone(t, first)
	h.clock.Advance(testDelay)

	other := catalog.Record{ID: 2, Name: "Random Greeter", Code: "greet()"}
	cfg := testConfig
	cfg.Delay = time.Second
	second, err := h.seq.Start(other, cfg)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	snap := h.seq.Snapshot()
	if snap.State != ShowingFirstPlaceholder || snap.Record.ID != 2 || len(snap.Placeholders) != 1 {
		t.Fatalf("second sequence did not start fresh: %+v", snap)
	}
	h.clock.Advance(time.Second)
	h.clock.BlockUntil(1)
	h.clock.Advance(time.Second)
	waitDone(t, second)
	if snap := h.seq.Snapshot(); snap.State != Revealed || snap.Code != "greet()" {
		t.Fatalf("unexpected final snapshot: %+v", snap)
	}
}

func TestStartAbandonsRunningSequence(t *testing.T) {
	h := newHarness()
	first, _ := h.seq.Start(script, testConfig)

	other := catalog.Record{ID: 3, Name: "Simple Counter", Code: "counter()"}
	second, _ := h.seq.Start(other, testConfig)
	waitDone(t, first)

	h.clock.Advance(testDelay)
	h.clock.BlockUntil(1)
	h.clock.Advance(testDelay)
	waitDone(t, second)

	snap := h.seq.Snapshot()
	if snap.State != Revealed || snap.Code != "counter()" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if h.clipboard.count() != 1 {
		t.Fatalf("abandoned sequence copied: %d copies", h.clipboard.count())
	}
}

func TestStartRejectsNonPositiveDelay(t *testing.T) {
	h := newHarness()
	if _, err := h.seq.Start(script, Config{}); !errors.Is(err, ErrInvalidDelay) {
		t.Fatalf("expected ErrInvalidDelay, got %v", err)
	}
	if got := h.seq.State(); got != Idle {
		t.Fatalf("state %s", got)
	}
}

func TestStateStrings(t *testing.T) {
	for s, want := range map[State]string{
		Idle:                     "idle",
		ShowingFirstPlaceholder:  "showing_first_placeholder",
		ShowingSecondPlaceholder: "showing_second_placeholder",
		Revealed:                 "revealed",
		Closed:                   "closed",
	} {
		if got := s.String(); got != want {
			t.Fatalf("String()=%q want %q", got, want)
		}
	}
}

func TestStateTextRoundTrip(t *testing.T) {
	for st := Idle; st <= Closed; st++ {
		text, _ := st.MarshalText()
		var got State
		if err := got.UnmarshalText(text); err != nil || got != st {
			t.Fatalf("%s: got %s err %v", st, got, err)
		}
	}
	var s State
	if err := s.UnmarshalText([]byte("paused")); err == nil {
		t.Fatalf("expected error for unknown state")
	}
}
