package registry

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: foo", ErrAlreadyInstalled), "AlreadyInstalled"},
		{fmt.Errorf("%w: %w", ErrStoreIO, errors.New("disk full")), "StoreIOError"},
		{fmt.Errorf("outer: %w", fmt.Errorf("%w: x", ErrUnreachable)), "Unreachable"},
		{fmt.Errorf("%w: /x: %w", ErrRemoveFailed, errors.New("permission denied")), "RemoveFailed"},
		{errors.New("plain"), ""},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
