package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRepoListLoadMissing(t *testing.T) {
	list, err := NewRepoListStore(filepath.Join(t.TempDir(), "repos.yaml")).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{}, list.Repos)
}

func TestRepoListAddRemove(t *testing.T) {
	list := &RepoList{}

	assert.True(t, list.Add("https://a"))
	assert.True(t, list.Add("https://b"))
	assert.False(t, list.Add("https://a"), "duplicate must be rejected")
	assert.Equal(t, []string{"https://a", "https://b"}, list.Repos)

	assert.True(t, list.Contains("https://b"))
	assert.True(t, list.Remove("https://a"))
	assert.False(t, list.Remove("https://a"))
	assert.Equal(t, []string{"https://b"}, list.Repos)
}

func TestRepoListSaveFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repos.yaml")
	s := NewRepoListStore(path)

	require.NoError(t, s.Save(&RepoList{}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "repos: []\n", string(data))
}

func TestRepoListRejectsDuplicatesOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repos.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repos:\n  - https://a\n  - https://a\n"), 0o644))

	_, err := NewRepoListStore(path).Load()
	assert.Error(t, err)
}

func TestRepoListRoundTripKeepsOrder(t *testing.T) {
	dir := t.TempDir()

	rapid.Check(t, func(rt *rapid.T) {
		s := NewRepoListStore(filepath.Join(dir, "repos.yaml"))
		urls := rapid.SliceOfDistinct(
			rapid.StringMatching(`https://git\.example\.com/[a-z]{1,6}/[a-z]{1,8}\.git`),
			rapid.ID[string],
		).Draw(rt, "urls")

		if err := s.Save(&RepoList{Repos: urls}); err != nil {
			rt.Fatalf("Save: %v", err)
		}
		got, err := s.Load()
		if err != nil {
			rt.Fatalf("Load: %v", err)
		}
		if len(got.Repos) != len(urls) {
			rt.Fatalf("loaded %d urls, want %d", len(got.Repos), len(urls))
		}
		for i := range urls {
			if got.Repos[i] != urls[i] {
				rt.Fatalf("position %d = %q, want %q", i, got.Repos[i], urls[i])
			}
		}
	})
}
