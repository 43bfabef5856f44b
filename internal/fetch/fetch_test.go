package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"https://example.com/pkg/app-1.2.art", "app-1.2.art", false},
		{"https://example.com/pkg/app-1.2.mpkg.zip?token=abc", "app-1.2.mpkg.zip", false},
		{"https://example.com/", "", true},
		{"https://example.com", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := FileName(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FileName(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FileName(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestDownload(t *testing.T) {
	payload := []byte("archive bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(payload)))
		w.Write(payload)
	}))
	defer server.Close()

	var progress bytes.Buffer
	c := New(WithHTTPClient(server.Client()), WithProgress(&progress))

	dest := t.TempDir()
	got, err := c.Download(context.Background(), server.URL+"/files/foo-1.0.art", dest)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if got != filepath.Join(dest, "foo-1.0.art") {
		t.Errorf("path = %q", got)
	}

	data, err := os.ReadFile(got)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("content = %q, want %q", data, payload)
	}
	if !strings.Contains(progress.String(), "100%") {
		t.Errorf("progress output %q missing 100%%", progress.String())
	}
}

func TestDownloadNotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	c := New(WithHTTPClient(server.Client()), WithProgress(nil))
	dest := t.TempDir()

	if _, err := c.Download(context.Background(), server.URL+"/missing-1.0.art", dest); err == nil {
		t.Fatal("expected error for 404")
	}

	entries, _ := os.ReadDir(dest)
	if len(entries) != 0 {
		t.Errorf("expected no files left behind, found %d", len(entries))
	}
}

func TestDownloadCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(WithHTTPClient(server.Client()), WithProgress(nil))
	if _, err := c.Download(ctx, server.URL+"/a-1.art", t.TempDir()); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
