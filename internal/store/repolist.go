package store

import (
	"context"
	"slices"
)

// RepoList is the ordered set of known source-repository URLs.
type RepoList struct {
	Repos []string `yaml:"repos" json:"repos"`
}

// Contains reports whether url is already listed.
func (l *RepoList) Contains(url string) bool {
	return slices.Contains(l.Repos, url)
}

// Add appends url. It reports false and leaves the list alone when url is
// already present.
func (l *RepoList) Add(url string) bool {
	if l.Contains(url) {
		return false
	}
	l.Repos = append(l.Repos, url)
	return true
}

// Remove deletes url, keeping the order of the remaining entries.
func (l *RepoList) Remove(url string) bool {
	i := slices.Index(l.Repos, url)
	if i < 0 {
		return false
	}
	l.Repos = slices.Delete(l.Repos, i, i+1)
	return true
}

// RepoListStore reads and writes the repository list file.
type RepoListStore struct {
	path string
}

// NewRepoListStore returns a store backed by the YAML file at path.
func NewRepoListStore(path string) *RepoListStore {
	return &RepoListStore{path: path}
}

// Path returns the backing file location.
func (s *RepoListStore) Path() string { return s.path }

// Load reads the list. A missing file yields an empty list.
func (s *RepoListStore) Load() (*RepoList, error) {
	list := &RepoList{}
	if _, err := readDocument(s.path, reposDoc, list); err != nil {
		return nil, err
	}
	if list.Repos == nil {
		list.Repos = []string{}
	}
	return list, nil
}

// Save rewrites the whole file.
func (s *RepoListStore) Save(list *RepoList) error {
	if list.Repos == nil {
		list.Repos = []string{}
	}
	return writeDocument(s.path, list)
}

// Lock serializes access to the list across processes.
func (s *RepoListStore) Lock(ctx context.Context) (func() error, error) {
	return lockFile(ctx, s.path)
}
