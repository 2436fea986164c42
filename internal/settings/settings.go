// Package settings stores the runtime settings slot: which placeholder
// identifiers are requested and how long each one is shown.
package settings

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/izzyreal/scriptgate/internal/reveal"
	"github.com/izzyreal/scriptgate/internal/store"
)

const SlotKey = "scriptgate.settings.v2"

const (
	DefaultPlaceholderA = "2117641886"
	DefaultPlaceholderB = "4339398974"
	DefaultProvider     = "ca-pub-7601925052503417"
	DefaultDelaySeconds = 4
	MaxDelaySeconds     = 600
)

// DelayChoices are the delays offered by the page.
var DelayChoices = []float64{2, 3, 4, 5, 6, 8, 10}

// ChoicesWith returns DelayChoices with current added in order when it is a
// valid delay the list does not already offer.
func ChoicesWith(current float64) []float64 {
	out := slices.Clone(DelayChoices)
	if !ValidDelay(current) || slices.Contains(out, current) {
		return out
	}
	out = append(out, current)
	slices.Sort(out)
	return out
}

type Settings struct {
	PlaceholderA string  `json:"placeholder_a"`
	PlaceholderB string  `json:"placeholder_b"`
	Provider     string  `json:"provider"`
	DelaySeconds float64 `json:"delay_seconds"`
}

func Defaults() Settings {
	return Settings{
		PlaceholderA: DefaultPlaceholderA,
		PlaceholderB: DefaultPlaceholderB,
		Provider:     DefaultProvider,
		DelaySeconds: DefaultDelaySeconds,
	}
}

// WithDefaults fills blank identifiers and an unusable delay.
func (s Settings) WithDefaults() Settings {
	d := Defaults()
	s.PlaceholderA = strings.TrimSpace(s.PlaceholderA)
	s.PlaceholderB = strings.TrimSpace(s.PlaceholderB)
	s.Provider = strings.TrimSpace(s.Provider)
	if s.PlaceholderA == "" {
		s.PlaceholderA = d.PlaceholderA
	}
	if s.PlaceholderB == "" {
		s.PlaceholderB = d.PlaceholderB
	}
	if s.Provider == "" {
		s.Provider = d.Provider
	}
	if !ValidDelay(s.DelaySeconds) {
		s.DelaySeconds = d.DelaySeconds
	}
	return s
}

// ValidDelay reports whether seconds is a usable wait: positive and at most
// MaxDelaySeconds.
func ValidDelay(seconds float64) bool {
	return !math.IsNaN(seconds) && seconds > 0 && seconds <= MaxDelaySeconds
}

func (s Settings) Validate() []string {
	var errs []string
	if !ValidDelay(s.DelaySeconds) {
		errs = append(errs, fmt.Sprintf("delay_seconds must be a positive number up to %d", MaxDelaySeconds))
	}
	for _, f := range []struct{ name, value string }{
		{"placeholder_a", s.PlaceholderA},
		{"placeholder_b", s.PlaceholderB},
		{"provider", s.Provider},
	} {
		if strings.ContainsAny(f.value, "\"<>") {
			errs = append(errs, fmt.Sprintf("%s contains invalid characters", f.name))
		}
	}
	return errs
}

func (s Settings) Delay() time.Duration {
	return time.Duration(s.DelaySeconds * float64(time.Second))
}

// RevealConfig is the sequencer configuration for these settings.
func (s Settings) RevealConfig() reveal.Config {
	s = s.WithDefaults()
	return reveal.Config{
		Delay:        s.Delay(),
		PlaceholderA: s.PlaceholderA,
		PlaceholderB: s.PlaceholderB,
		Provider:     s.Provider,
	}
}

// Load reads the slot. A missing or unreadable slot yields the defaults.
func Load(kv store.KV) Settings {
	raw, ok, err := kv.Get(SlotKey)
	if err != nil {
		slog.Warn("read settings", "error", err)
		return Defaults()
	}
	if !ok {
		return Defaults()
	}
	var s Settings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		slog.Debug("discarding unreadable settings", "error", err)
		return Defaults()
	}
	return s.WithDefaults()
}

func Save(kv store.KV, s Settings) (Settings, error) {
	if errs := s.Validate(); len(errs) > 0 {
		return s, fmt.Errorf("invalid settings: %s", strings.Join(errs, "; "))
	}
	s = s.WithDefaults()
	data, err := json.Marshal(s)
	if err != nil {
		return s, fmt.Errorf("encode settings: %w", err)
	}
	if err := kv.Set(SlotKey, string(data)); err != nil {
		return s, fmt.Errorf("persist settings: %w", err)
	}
	return s, nil
}

func Clear(kv store.KV) error {
	if err := kv.Remove(SlotKey); err != nil {
		return fmt.Errorf("clear settings: %w", err)
	}
	return nil
}
