package errcode

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsComparesByCode(t *testing.T) {
	err := New(RoomNotFound)

	if !errors.Is(err, New(RoomNotFound)) {
		t.Error("same code should match")
	}
	if errors.Is(err, New(RoomIsEnded)) {
		t.Error("different code should not match")
	}

	wrapped := fmt.Errorf("lookup: %w", err)
	if !errors.Is(wrapped, New(RoomNotFound)) {
		t.Error("wrapped error should still match by code")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(PeriodicNotFound)); got != PeriodicNotFound {
		t.Errorf("got %d", got)
	}
	if got := CodeOf(errors.New("boom")); got != CurrentProcessFailed {
		t.Errorf("foreign error got %d, want CurrentProcessFailed", got)
	}
	if got := CodeOf(nil); got != 0 {
		t.Errorf("nil got %d, want 0", got)
	}
}

func TestMessages(t *testing.T) {
	if New(RoomNotFound).Error() != "room not found" {
		t.Error("unexpected message")
	}
	if New(Code(999999)).Error() != "error code: 999999" {
		t.Error("unknown code should render numerically")
	}
}
