package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Dir keeps each slot in its own file under a directory, one JSON document
// per key. Other processes may edit the files directly.
type Dir struct {
	root string
}

func OpenDir(root string) (*Dir, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("slot directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create slot directory: %w", err)
	}
	return &Dir{root: root}, nil
}

func (d *Dir) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(d.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read slot %q: %w", key, err)
	}
	return string(data), true, nil
}

func (d *Dir) Set(key, value string) error {
	final := d.pathFor(key)
	tmp, err := os.CreateTemp(d.root, ".slot-*")
	if err != nil {
		return fmt.Errorf("create temp slot: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write slot %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close slot %q: %w", key, err)
	}
	if err := os.Rename(tmpName, final); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace slot %q: %w", key, err)
	}
	return nil
}

func (d *Dir) Remove(key string) error {
	if err := os.Remove(d.pathFor(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove slot %q: %w", key, err)
	}
	return nil
}

func (d *Dir) fingerprint(key string) (string, error) {
	st, err := os.Stat(d.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return fmt.Sprintf("%d:%s", st.Size(), st.ModTime().UTC().Format(time.RFC3339Nano)), nil
}

func (d *Dir) pathFor(key string) string {
	return filepath.Join(d.root, SlotFileName(key))
}

// SlotFileName maps a key to a file name that is safe on every platform.
func SlotFileName(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		key = "_"
	}
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String() + ".json"
}
