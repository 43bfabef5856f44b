package registry

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/depot-labs/depot/internal/config"
	"github.com/depot-labs/depot/internal/store"
	"github.com/stretchr/testify/require"
)

// fakeVCS treats URLs in reachable as existing remotes. Clone writes a
// README into dest unless failClone is set.
type fakeVCS struct {
	mu        sync.Mutex
	reachable map[string]bool
	failClone bool
	lsRemotes []string
	clones    []string
}

func newFakeVCS(urls ...string) *fakeVCS {
	f := &fakeVCS{reachable: map[string]bool{}}
	for _, u := range urls {
		f.reachable[u] = true
	}
	return f
}

func (f *fakeVCS) LsRemote(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lsRemotes = append(f.lsRemotes, url)
	if !f.reachable[url] {
		return errors.New("exit status 128")
	}
	return nil
}

func (f *fakeVCS) Clone(_ context.Context, url, dest string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clones = append(f.clones, url)
	if err := os.MkdirAll(dest, 0755); err != nil {
		return err
	}
	if f.failClone {
		// Simulate git leaving partial content behind.
		_ = os.WriteFile(filepath.Join(dest, "partial"), []byte("x"), 0644)
		return errors.New("exit status 128")
	}
	return os.WriteFile(filepath.Join(dest, "README.md"), []byte("# "+url), 0644)
}

// failingFetcher always fails to download.
type failingFetcher struct{}

func (failingFetcher) Download(context.Context, string, string) (string, error) {
	return "", errors.New("connection refused")
}

// testPaths returns an isolated configuration rooted in a temp dir.
func testPaths(t *testing.T) config.Paths {
	t.Helper()
	home := t.TempDir()
	return config.Paths{
		Home:       home,
		InstallDir: filepath.Join(home, "installed"),
		StagingDir: filepath.Join(home, "downloads"),
		DBFile:     filepath.Join(home, "db.yaml"),
		ReposFile:  filepath.Join(home, "repos.yaml"),
	}
}

func newTestRegistry(t *testing.T, opts ...Option) (*Registry, config.Paths) {
	t.Helper()
	paths := testPaths(t)
	if len(opts) == 0 {
		opts = []Option{WithVCS(newFakeVCS()), WithFetcher(failingFetcher{})}
	}
	return New(paths, opts...), paths
}

// writeArtifact builds a zip archive named filename in a temp dir.
func writeArtifact(t *testing.T, filename string, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), filename)
	require.NoError(t, os.WriteFile(path, zipBytes(t, files), 0644))
	return path
}

func zipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	tmp := filepath.Join(t.TempDir(), "archive.zip")
	f, err := os.Create(tmp)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	data, err := os.ReadFile(tmp)
	require.NoError(t, err)
	return data
}

// loadRecords reads the record store directly.
func loadRecords(t *testing.T, paths config.Paths) store.Records {
	t.Helper()
	records, err := store.NewRecordStore(paths.DBFile).Load()
	require.NoError(t, err)
	return records
}

// readFileOrNil returns the file content, or nil when it does not exist.
func readFileOrNil(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return data
}
