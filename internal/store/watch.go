package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	watchDebounce = 150 * time.Millisecond
	// watchMaxWait bounds how long a steady stream of writes can hold back
	// a notification.
	watchMaxWait = 4 * watchDebounce
)

// debounceWait is the delay before the next check, given when the first
// unreported event of the current burst arrived.
func debounceWait(now, burstStart time.Time) time.Duration {
	rest := watchMaxWait - now.Sub(burstStart)
	if rest < 0 {
		return 0
	}
	return min(watchDebounce, rest)
}

// Watcher is implemented by backends whose slots can be changed by another
// process. fn is called once per changed key after writes settle.
type Watcher interface {
	Watch(ctx context.Context, keys []string, fn func(key string)) error
}

func (d *Dir) Watch(ctx context.Context, keys []string, fn func(key string)) error {
	return watchKeys(ctx, d.root, keys, d.fingerprint, fn)
}

// Watch observes the directory holding the database; sqlite touches the
// WAL file on every commit, and updated_utc tells which slot moved.
func (s *Store) Watch(ctx context.Context, keys []string, fn func(key string)) error {
	var path string
	row := s.db.QueryRow(`SELECT file FROM pragma_database_list WHERE name = 'main'`)
	if err := row.Scan(&path); err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	if path == "" {
		return fmt.Errorf("in-memory database cannot be watched")
	}
	return watchKeys(ctx, filepath.Dir(path), keys, func(key string) (string, error) {
		ts, ok, err := s.AppStateUpdatedAt(key)
		if err != nil || !ok {
			return "", err
		}
		return ts.Format(time.RFC3339Nano), nil
	}, fn)
}

func watchKeys(ctx context.Context, dir string, keys []string, fingerprint func(string) (string, error), fn func(string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create watched directory: %w", err)
	}
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	last := make(map[string]string, len(keys))
	for _, k := range keys {
		fp, _ := fingerprint(k)
		last[k] = fp
	}

	var (
		timer      *time.Timer
		timerCh    <-chan time.Time
		burstStart time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			now := time.Now()
			if timerCh == nil {
				burstStart = now
			}
			wait := debounceWait(now, burstStart)
			if timer == nil {
				timer = time.NewTimer(wait)
			} else {
				timer.Reset(wait)
			}
			timerCh = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("slot watcher error", "dir", dir, "error", err)
		case <-timerCh:
			timerCh = nil
			for _, k := range keys {
				fp, err := fingerprint(k)
				if err != nil {
					slog.Debug("slot fingerprint failed", "key", k, "error", err)
					continue
				}
				if fp == last[k] {
					continue
				}
				last[k] = fp
				fn(k)
			}
		}
	}
}
