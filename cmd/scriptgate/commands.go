package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/izzyreal/scriptgate/internal/catalog"
	"github.com/izzyreal/scriptgate/internal/clipboard"
	"github.com/izzyreal/scriptgate/internal/config"
	"github.com/izzyreal/scriptgate/internal/executor"
	"github.com/izzyreal/scriptgate/internal/remote"
	"github.com/izzyreal/scriptgate/internal/reveal"
	"github.com/izzyreal/scriptgate/internal/server"
	"github.com/izzyreal/scriptgate/internal/settings"
	"github.com/izzyreal/scriptgate/internal/store"
	"github.com/izzyreal/scriptgate/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scriptgate",
		Short:         "scriptgate - script catalog with timed reveal",
		Version:       version.Current(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCmd(),
		newImportCmd(),
		newListCmd(),
		newRevealCmd(),
		newResetCmd(),
	)
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return server.Run(cmd.Context())
		},
	}
}

// openCatalog opens the configured storage and loads the catalog from it.
func openCatalog(ctx context.Context) (*catalog.Store, store.KV, config.File, func(), error) {
	cfg, err := server.LoadConfig()
	if err != nil {
		return nil, nil, cfg, nil, err
	}
	kv, closeKV, err := server.OpenBackend(cfg)
	if err != nil {
		return nil, nil, cfg, nil, err
	}
	var opts []catalog.Option
	if cfg.RemoteCatalog != "" {
		opts = append(opts, catalog.WithSource(remote.New(cfg.RemoteCatalog, time.Duration(cfg.FetchTimeoutSeconds)*time.Second)))
	}
	cat := catalog.NewStore(kv, opts...)
	cat.Load(ctx)
	return cat, kv, cfg, func() { _ = closeKV() }, nil
}

func newImportCmd() *cobra.Command {
	var appendMode bool
	cmd := &cobra.Command{
		Use:   "import [--append] <file|->",
		Short: "Load developer JSON into the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			cat, _, _, closeFn, err := openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			out := cmd.OutOrStdout()
			if appendMode {
				batch, err := catalog.ParseDeveloperJSON(string(raw))
				if err != nil {
					return errors.New(catalog.Notice(err))
				}
				remaps := cat.Append(batch.Items)
				printRemaps(out, remaps)
				fmt.Fprintf(out, "%s (%d), %d total\n", catalog.ModeAppend.Message(), len(batch.Items), cat.Len())
				return nil
			}
			res, err := cat.Import(string(raw))
			if err != nil {
				return errors.New(catalog.Notice(err))
			}
			printRemaps(out, res.Remaps)
			fmt.Fprintf(out, "%s (%d), %d total\n", res.Message, res.Count, res.Total)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&appendMode, "append", "a", false, "append records instead of replacing")
	return cmd
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func printRemaps(w io.Writer, remaps []catalog.Remap) {
	for _, rm := range remaps {
		fmt.Fprintf(w, "item %d: id %d already taken, assigned %d\n", rm.Index, rm.Requested, rm.Assigned)
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [query]",
		Short: "Print scripts matching an optional query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, _, _, closeFn, err := openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			all := cat.Records()
			matched := catalog.Filter(all, query)
			writeRecordList(cmd.OutOrStdout(), matched, len(all))
			return nil
		},
	}
}

func writeRecordList(w io.Writer, records []catalog.Record, total int) {
	for _, r := range records {
		fmt.Fprintf(w, "%5d  %s\n", r.ID, r.Name)
	}
	fmt.Fprintf(w, "%d / %d\n", len(records), total)
}

type terminalPlaceholder struct {
	w io.Writer
}

func (p terminalPlaceholder) Show(_ context.Context, slot reveal.Slot) error {
	_, err := fmt.Fprintf(p.w, "[placeholder %d] %s (%s)\n", slot.Index, slot.Identifier, slot.Provider)
	return err
}

type terminalNotifier struct {
	w io.Writer
}

func (n terminalNotifier) Notify(message string) {
	fmt.Fprintln(n.w, message)
}

func newRevealCmd() *cobra.Command {
	var delay float64
	cmd := &cobra.Command{
		Use:   "reveal <id>",
		Short: "Show both placeholders, then print and copy a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid script id %q", args[0])
			}
			cat, kv, cfg, closeFn, err := openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			rec, err := cat.Get(id)
			if err != nil {
				return err
			}
			rc := settings.Load(kv).RevealConfig()
			if delay != 0 && !settings.ValidDelay(delay) {
				return fmt.Errorf("--delay must be a positive number up to %d", settings.MaxDelaySeconds)
			}
			if delay > 0 {
				rc.Delay = time.Duration(delay * float64(time.Second))
			}
			out := cmd.OutOrStdout()
			seq := reveal.New(
				reveal.WithClipboard(clipboard.New(cfg.Clipboard)),
				reveal.WithPlaceholder(terminalPlaceholder{w: out}),
				reveal.WithNotifier(terminalNotifier{w: cmd.ErrOrStderr()}),
			)
			return runReveal(cmd.Context(), seq, rec, rc, out)
		},
	}
	cmd.Flags().Float64VarP(&delay, "delay", "d", 0, "seconds per placeholder (default from settings)")
	return cmd
}

func runReveal(ctx context.Context, seq *reveal.Sequencer, rec catalog.Record, rc reveal.Config, out io.Writer) error {
	fmt.Fprintln(out, reveal.TitleWaiting)
	done, err := seq.Start(rec, rc)
	if err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		seq.Cancel()
		<-done
		return ctx.Err()
	case <-done:
	}
	snap := seq.Snapshot()
	fmt.Fprintln(out, snap.Title)
	fmt.Fprintln(out, snap.Code)
	return nil
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear stored scripts, settings and executors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := server.LoadConfig()
			if err != nil {
				return err
			}
			kv, closeKV, err := server.OpenBackend(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closeKV() }()
			if err := executor.NewList(kv, cfg.ExecutorBlobDir()).Clear(); err != nil {
				return err
			}
			if err := settings.Clear(kv); err != nil {
				return err
			}
			if err := kv.Remove(catalog.SlotKey); err != nil {
				return fmt.Errorf("clear catalog: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Local edits cleared")
			return nil
		},
	}
}
