// Package clipboard adapts the system clipboard to the copy-only interface
// used by the reveal sequencer.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/izzyreal/scriptgate/internal/reveal"
)

var ErrUnsupported = errors.New("clipboard unsupported on this system")

type System struct{}

func (System) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Disabled always fails, leaving the manual copy path to the page.
type Disabled struct{}

func (Disabled) Copy(string) error { return ErrUnsupported }

// New picks an implementation for a configured mode ("system" or "none").
func New(mode string) reveal.Clipboard {
	if mode == "none" {
		return Disabled{}
	}
	return System{}
}
