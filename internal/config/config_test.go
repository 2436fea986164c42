package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseValidConfig(t *testing.T) {
	cfg, err := Parse([]byte(`
version: 1
listen: 127.0.0.1:9000
data_dir: /var/lib/scriptgate
storage: dir
remote_catalog: https://example.com/scripts.json
fetch_timeout_seconds: 3
clipboard: none
mdns:
  enabled: false
`), "test-valid")
	if err != nil {
		t.Fatalf("parse valid config: %v", err)
	}
	if cfg.Listen != "127.0.0.1:9000" || cfg.Storage != StorageDir || cfg.MDNS.Enabled {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if got := cfg.SlotDir(); got != filepath.Join("/var/lib/scriptgate", "slots") {
		t.Fatalf("slot dir %q", got)
	}
}

func TestParseKeepsDefaultsForOmittedFields(t *testing.T) {
	cfg, err := Parse([]byte("version: 1\nlisten: \":7000\"\n"), "test-partial")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	def := Default()
	if cfg.Storage != def.Storage || cfg.DataDir != def.DataDir || !cfg.MDNS.Enabled || cfg.Clipboard != "system" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestParseEmptyDocumentIsDefault(t *testing.T) {
	cfg, err := Parse(nil, "empty")
	if err != nil {
		t.Fatalf("parse empty: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestParseRejectsUnsupportedVersion(t *testing.T) {
	_, err := Parse([]byte("version: 2\n"), "test-version")
	if err == nil || !strings.Contains(err.Error(), "unsupported config version") {
		t.Fatalf("expected unsupported version error, got: %v", err)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("version: 1\nlisten_addr: x\n"), "test-unknown")
	if err == nil || !strings.Contains(err.Error(), "parse YAML") {
		t.Fatalf("expected unknown field error, got: %v", err)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.Storage = "postgres"
	cfg.Clipboard = "x11"
	cfg.FetchTimeoutSeconds = -1
	cfg.MDNS.Instance = "has space"
	errs := cfg.Validate()
	joined := strings.Join(errs, "; ")
	for _, want := range []string{"storage must be one of", "clipboard must be one of", "fetch_timeout_seconds", "mdns.instance"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in %q", want, joined)
		}
	}

	cfg = Default()
	cfg.Storage = StorageMemory
	cfg.DataDir = ""
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Fatalf("memory storage should not need data_dir: %v", errs)
	}
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("version: ["), "test-yaml")
	if err == nil || !strings.Contains(err.Error(), "parse YAML") {
		t.Fatalf("expected parse YAML error, got: %v", err)
	}
}

func TestLoad(t *testing.T) {
	if cfg, err := Load(""); err != nil || cfg != Default() {
		t.Fatalf("empty path: %+v %v", cfg, err)
	}
	path := filepath.Join(t.TempDir(), "scriptgate.yaml")
	if err := os.WriteFile(path, []byte("version: 1\nstorage: memory\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil || cfg.Storage != StorageMemory {
		t.Fatalf("load: %+v %v", cfg, err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil || !strings.Contains(err.Error(), "read config file") {
		t.Fatalf("expected read error, got %v", err)
	}
}
