package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

type File struct {
	Version             int    `yaml:"version" json:"version"`
	Listen              string `yaml:"listen" json:"listen"`
	DataDir             string `yaml:"data_dir" json:"data_dir"`
	Storage             string `yaml:"storage" json:"storage"`
	RemoteCatalog       string `yaml:"remote_catalog,omitempty" json:"remote_catalog,omitempty"`
	FetchTimeoutSeconds int    `yaml:"fetch_timeout_seconds" json:"fetch_timeout_seconds"`
	Clipboard           string `yaml:"clipboard" json:"clipboard"`
	MDNS                MDNS   `yaml:"mdns" json:"mdns"`
}

type MDNS struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Instance string `yaml:"instance,omitempty" json:"instance,omitempty"`
}

const (
	StorageSQLite = "sqlite"
	StorageDir    = "dir"
	StorageMemory = "memory"
)

func Default() File {
	return File{
		Version:             1,
		Listen:              ":8112",
		DataDir:             "scriptgate-data",
		Storage:             StorageSQLite,
		FetchTimeoutSeconds: 5,
		Clipboard:           "system",
		MDNS:                MDNS{Enabled: true},
	}
}

// Load reads path on top of the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (File, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config file %q: %w", path, err)
	}

	return Parse(data, path)
}

func Parse(data []byte, source string) (File, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse YAML in %q: %w", source, err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return cfg, fmt.Errorf("invalid config in %q: %s", source, strings.Join(errs, "; "))
	}
	return cfg, nil
}

func (cfg File) Validate() []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported config version %d", cfg.Version))
	}
	if strings.TrimSpace(cfg.Listen) == "" {
		errs = append(errs, "listen is required")
	}
	if !slices.Contains([]string{StorageSQLite, StorageDir, StorageMemory}, cfg.Storage) {
		errs = append(errs, "storage must be one of sqlite,dir,memory")
	}
	if cfg.Storage != StorageMemory && strings.TrimSpace(cfg.DataDir) == "" {
		errs = append(errs, "data_dir is required unless storage is memory")
	}
	if cfg.FetchTimeoutSeconds < 0 {
		errs = append(errs, "fetch_timeout_seconds must be >= 0")
	}
	if !slices.Contains([]string{"system", "none"}, cfg.Clipboard) {
		errs = append(errs, "clipboard must be one of system,none")
	}
	if strings.ContainsAny(cfg.MDNS.Instance, " \t\n\r") {
		errs = append(errs, "mdns.instance must not contain whitespace")
	}

	return errs
}

func (cfg File) DatabasePath() string {
	return filepath.Join(cfg.DataDir, "scriptgate.db")
}

func (cfg File) SlotDir() string {
	return filepath.Join(cfg.DataDir, "slots")
}

func (cfg File) ExecutorBlobDir() string {
	return filepath.Join(cfg.DataDir, "executors")
}
