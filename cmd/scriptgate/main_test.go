package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/izzyreal/scriptgate/internal/catalog"
	"github.com/izzyreal/scriptgate/internal/reveal"
)

func TestInitLoggingLevelFromEnv(t *testing.T) {
	cases := []struct {
		name    string
		env     string
		debugOn bool
		infoOn  bool
		warnOn  bool
		errorOn bool
	}{
		{name: "debug", env: "debug", debugOn: true, infoOn: true, warnOn: true, errorOn: true},
		{name: "warn", env: "warn", debugOn: false, infoOn: false, warnOn: true, errorOn: true},
		{name: "error", env: "error", debugOn: false, infoOn: false, warnOn: false, errorOn: true},
		{name: "default", env: "", debugOn: false, infoOn: true, warnOn: true, errorOn: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("SCRIPTGATE_LOG_LEVEL", tc.env)
			t.Setenv("SCRIPTGATE_LOG_FILE", "")
			initLogging()
			h := slog.Default().Handler()
			ctx := context.Background()
			if got := h.Enabled(ctx, slog.LevelDebug); got != tc.debugOn {
				t.Fatalf("debug enabled=%v want %v", got, tc.debugOn)
			}
			if got := h.Enabled(ctx, slog.LevelInfo); got != tc.infoOn {
				t.Fatalf("info enabled=%v want %v", got, tc.infoOn)
			}
			if got := h.Enabled(ctx, slog.LevelWarn); got != tc.warnOn {
				t.Fatalf("warn enabled=%v want %v", got, tc.warnOn)
			}
			if got := h.Enabled(ctx, slog.LevelError); got != tc.errorOn {
				t.Fatalf("error enabled=%v want %v", got, tc.errorOn)
			}
		})
	}
}

func TestInitLoggingFansOutToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scriptgate.log")
	t.Setenv("SCRIPTGATE_LOG_LEVEL", "info")
	t.Setenv("SCRIPTGATE_LOG_FILE", path)
	initLogging()
	defer func() {
		t.Setenv("SCRIPTGATE_LOG_FILE", "")
		initLogging()
	}()

	slog.Info("fanout check", "count", 3)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"fanout check"`) || !strings.Contains(string(data), `"count":3`) {
		t.Fatalf("expected JSON record in log file, got %q", string(data))
	}
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func useDirStorage(t *testing.T) {
	t.Helper()
	t.Setenv("SCRIPTGATE_CONFIG", "")
	t.Setenv("SCRIPTGATE_STORAGE", "dir")
	t.Setenv("SCRIPTGATE_DATA_DIR", t.TempDir())
	t.Setenv("SCRIPTGATE_REMOTE_CATALOG", "")
}

func TestHelpListsCommands(t *testing.T) {
	out, err := runCLI(t, "", "--help")
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	for _, name := range []string{"serve", "import", "list", "reveal", "reset"} {
		if !strings.Contains(out, name) {
			t.Fatalf("help output missing %q: %s", name, out)
		}
	}
}

func TestListDefaultsAndQuery(t *testing.T) {
	useDirStorage(t)
	out, err := runCLI(t, "", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Hello World Logger") || !strings.HasSuffix(out, "7 / 7\n") {
		t.Fatalf("unexpected list output: %q", out)
	}

	out, err = runCLI(t, "", "list", "counter")
	if err != nil {
		t.Fatalf("list query: %v", err)
	}
	if !strings.Contains(out, "Simple Counter") || !strings.HasSuffix(out, "1 / 7\n") {
		t.Fatalf("unexpected filtered output: %q", out)
	}
}

func TestImportPersistsAcrossCommands(t *testing.T) {
	useDirStorage(t)
	out, err := runCLI(t, `[{"id":3,"name":"One"},{"id":3,"name":"Two"}]`, "import", "-")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "assigned 4") || !strings.Contains(out, "Replaced scripts (2), 2 total") {
		t.Fatalf("unexpected import output: %q", out)
	}

	out, err = runCLI(t, `{"scripts":[{"name":"Three"}]}`, "import", "--append", "-")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if !strings.Contains(out, "Appended scripts (1), 3 total") {
		t.Fatalf("unexpected append output: %q", out)
	}

	out, err = runCLI(t, "", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "    5  Three") || !strings.HasSuffix(out, "3 / 3\n") {
		t.Fatalf("unexpected list after import: %q", out)
	}

	if _, err := runCLI(t, "", "reset"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	out, err = runCLI(t, "", "list")
	if err != nil {
		t.Fatalf("list after reset: %v", err)
	}
	if !strings.HasSuffix(out, "7 / 7\n") {
		t.Fatalf("expected defaults after reset, got %q", out)
	}
}

func TestImportAppendAcceptsEveryShape(t *testing.T) {
	useDirStorage(t)
	cases := []struct {
		input string
		added int
		total int
	}{
		{input: `{"name":"solo"}`, added: 1, total: 8},
		{input: `[{"name":"a"},{"id":1,"name":"b"}]`, added: 2, total: 10},
		{input: `{"scripts":[{"name":"c"}]}`, added: 1, total: 11},
	}
	for _, tc := range cases {
		out, err := runCLI(t, tc.input, "import", "-a", "-")
		if err != nil {
			t.Fatalf("append %s: %v", tc.input, err)
		}
		want := fmt.Sprintf("Appended scripts (%d), %d total", tc.added, tc.total)
		if !strings.Contains(out, want) {
			t.Fatalf("append %s: expected %q in %q", tc.input, want, out)
		}
	}
	out, err := runCLI(t, "", "list", "solo")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "    8  solo") {
		t.Fatalf("appended record missing: %q", out)
	}

	if _, err := runCLI(t, "{", "import", "--append", "-"); err == nil || !strings.HasPrefix(err.Error(), "JSON parse error: ") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestRevealRejectsOversizedDelay(t *testing.T) {
	useDirStorage(t)
	if _, err := runCLI(t, "", "reveal", "--delay", "1e12", "1"); err == nil || !strings.Contains(err.Error(), "--delay") {
		t.Fatalf("expected delay error, got %v", err)
	}
}

func TestImportRejectsEmptyInput(t *testing.T) {
	useDirStorage(t)
	_, err := runCLI(t, "   ", "import", "-")
	if err == nil || err.Error() != "No JSON provided" {
		t.Fatalf("expected empty input error, got %v", err)
	}
}

type stubClipboard struct{ got string }

func (c *stubClipboard) Copy(text string) error {
	c.got = text
	return nil
}

func TestRunRevealPrintsCodeAfterBothPlaceholders(t *testing.T) {
	clock := reveal.NewFakeClock(time.Unix(0, 0))
	cb := &stubClipboard{}
	var out bytes.Buffer
	seq := reveal.New(
		reveal.WithClock(clock),
		reveal.WithClipboard(cb),
	)
	rec := catalog.Record{ID: 9, Name: "Nine", Link: "#", Code: "print(9)"}
	cfg := reveal.Config{Delay: time.Second, PlaceholderA: "a", PlaceholderB: "b", Provider: "p"}

	go func() {
		clock.BlockUntil(1)
		clock.Advance(time.Second)
		clock.BlockUntil(1)
		clock.Advance(time.Second)
	}()
	if err := runReveal(context.Background(), seq, rec, cfg, &out); err != nil {
		t.Fatalf("run reveal: %v", err)
	}
	want := reveal.TitleWaiting + "\nScript: Nine\nprint(9)\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", out.String(), want)
	}
	if cb.got != "print(9)" {
		t.Fatalf("expected code on clipboard, got %q", cb.got)
	}
}

func TestRunRevealCancelledByContext(t *testing.T) {
	clock := reveal.NewFakeClock(time.Unix(0, 0))
	seq := reveal.New(reveal.WithClock(clock))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := runReveal(ctx, seq, catalog.Record{ID: 1, Code: "x"}, reveal.Config{Delay: time.Second}, &bytes.Buffer{})
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if seq.State() != reveal.Closed {
		t.Fatalf("expected closed sequence, got %s", seq.State())
	}
}
