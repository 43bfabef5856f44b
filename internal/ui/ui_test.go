package ui

import (
	"bytes"
	"testing"
)

func TestLinePlainWriter(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.OK("installed %s %s", "foo", "1.0")
	p.Warn("path missing")
	p.Error("not found: %s", "bar")

	want := "[ok] installed foo 1.0\n[warn] path missing\n[error] not found: bar\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestCount(t *testing.T) {
	p := New(&bytes.Buffer{})
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 repositories"},
		{1, "1 repository"},
		{1204, "1,204 repositories"},
	}
	for _, tt := range tests {
		if got := p.Count(tt.n, "repository", "repositories"); got != tt.want {
			t.Errorf("Count(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestNumber(t *testing.T) {
	p := New(&bytes.Buffer{})
	if got := p.Number(1234567); got != "1,234,567" {
		t.Errorf("Number = %q", got)
	}
}
