package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/izzyreal/scriptgate/internal/catalog"
	"github.com/izzyreal/scriptgate/internal/clipboard"
	"github.com/izzyreal/scriptgate/internal/config"
	"github.com/izzyreal/scriptgate/internal/executor"
	"github.com/izzyreal/scriptgate/internal/remote"
	"github.com/izzyreal/scriptgate/internal/reveal"
	"github.com/izzyreal/scriptgate/internal/settings"
	"github.com/izzyreal/scriptgate/internal/store"
)

// stateStore is everything the handlers share. The catalog and sequencer
// guard themselves; the slots are read fresh on each request.
type stateStore struct {
	kv        store.KV
	catalog   *catalog.Store
	sequencer *reveal.Sequencer
	executors *executor.List
	clipboard reveal.Clipboard

	advertiser *mdnsAdvertiser
}

func newStateStore(kv store.KV, cfg config.File, clock reveal.Clock, cb reveal.Clipboard) *stateStore {
	var opts []catalog.Option
	if cfg.RemoteCatalog != "" {
		opts = append(opts, catalog.WithSource(remote.New(cfg.RemoteCatalog, time.Duration(cfg.FetchTimeoutSeconds)*time.Second)))
	}
	return &stateStore{
		kv:      kv,
		catalog: catalog.NewStore(kv, opts...),
		sequencer: reveal.New(
			reveal.WithClock(clock),
			reveal.WithClipboard(cb),
			reveal.WithPlaceholder(logPlaceholder{}),
			reveal.WithNotifier(logNotifier{}),
		),
		executors: executor.NewList(kv, cfg.ExecutorBlobDir()),
		clipboard: cb,
	}
}

// LoadConfig resolves the server configuration from SCRIPTGATE_CONFIG and
// the environment overrides.
func LoadConfig() (config.File, error) {
	cfg, err := config.Load(envOrDefault("SCRIPTGATE_CONFIG", ""))
	if err != nil {
		return cfg, err
	}
	cfg.Listen = envOrDefault("SCRIPTGATE_ADDR", cfg.Listen)
	cfg.DataDir = envOrDefault("SCRIPTGATE_DATA_DIR", cfg.DataDir)
	cfg.Storage = envOrDefault("SCRIPTGATE_STORAGE", cfg.Storage)
	cfg.RemoteCatalog = envOrDefault("SCRIPTGATE_REMOTE_CATALOG", cfg.RemoteCatalog)
	if errs := cfg.Validate(); len(errs) > 0 {
		return cfg, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// OpenBackend opens the slot storage selected by cfg.
func OpenBackend(cfg config.File) (store.KV, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Storage {
	case config.StorageMemory:
		return store.NewMemory(), noop, nil
	case config.StorageDir:
		d, err := store.OpenDir(cfg.SlotDir())
		if err != nil {
			return nil, nil, err
		}
		return d, noop, nil
	default:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
		db, err := store.Open(cfg.DatabasePath())
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	}
}

func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	kv, closeKV, err := OpenBackend(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeKV(); err != nil {
			slog.Warn("close storage", "error", err)
		}
	}()

	s := newStateStore(kv, cfg, reveal.SystemClock(), clipboard.New(cfg.Clipboard))
	s.catalog.Load(ctx)

	if mdnsEnabled(cfg.MDNS.Enabled) {
		adv, err := newMDNSAdvertiser(cfg.Listen, cfg.MDNS.Instance, s.mdnsText)
		if err == nil {
			err = adv.announce()
		}
		if err != nil {
			slog.Error("mdns advertising disabled", "error", err)
		} else {
			slog.Info("mdns advertising enabled", "service", mdnsService, "instance", adv.instance, "port", adv.port)
			s.advertiser = adv
			defer adv.stop()
		}
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           buildRouter(s),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("scriptgate server started", "addr", cfg.Listen, "storage", cfg.Storage)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.sequencer.Cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		slog.Info("scriptgate server stopped")
		return nil
	})
	if w, ok := kv.(store.Watcher); ok {
		g.Go(func() error {
			if err := s.watchSlots(gctx, w); err != nil {
				slog.Warn("slot watcher stopped", "error", err)
			}
			return nil
		})
	}
	return g.Wait()
}

// watchSlots re-reads the catalog when another process rewrites its slot.
// The last write wins.
func (s *stateStore) watchSlots(ctx context.Context, w store.Watcher) error {
	return w.Watch(ctx, []string{catalog.SlotKey, settings.SlotKey, executor.SlotKey}, func(key string) {
		switch key {
		case catalog.SlotKey:
			if s.catalog.Restore() {
				slog.Info("catalog reloaded after external change", "count", s.catalog.Len())
				s.catalogChanged()
			}
		default:
			slog.Debug("slot changed externally", "key", key)
		}
	})
}

type logPlaceholder struct{}

func (logPlaceholder) Show(_ context.Context, slot reveal.Slot) error {
	slog.Debug("placeholder requested", "index", slot.Index, "identifier", slot.Identifier, "provider", slot.Provider)
	return nil
}

type logNotifier struct{}

func (logNotifier) Notify(message string) {
	slog.Info("notification", "message", message)
}
