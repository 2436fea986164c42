package clipboard

import (
	"errors"
	"testing"
)

func TestDisabledAlwaysFails(t *testing.T) {
	if err := New("none").Copy("x"); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if _, ok := New("system").(System); !ok {
		t.Fatalf("system mode should return System")
	}
}
