package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/depot-labs/depot/internal/config"
	"github.com/depot-labs/depot/internal/fetch"
	"github.com/depot-labs/depot/internal/store"
	"github.com/depot-labs/depot/internal/vcs"
)

// Fetcher downloads a remote artifact into destDir and returns its local path.
type Fetcher interface {
	Download(ctx context.Context, url, destDir string) (string, error)
}

// VCS is the version-control client used to probe and clone repositories.
type VCS interface {
	LsRemote(ctx context.Context, url string) error
	Clone(ctx context.Context, url, dest string) error
}

// Entry pairs a record with its name.
type Entry struct {
	Name string `json:"name"`
	store.Record
}

// Registry runs operations against one install root and its stores.
type Registry struct {
	paths   config.Paths
	records *store.RecordStore
	repos   *store.RepoListStore
	fetcher Fetcher
	vcs     VCS
	logger  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithFetcher replaces the HTTP collaborator.
func WithFetcher(f Fetcher) Option {
	return func(r *Registry) {
		r.fetcher = f
	}
}

// WithVCS replaces the git collaborator.
func WithVCS(v VCS) Option {
	return func(r *Registry) {
		r.vcs = v
	}
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// New creates a Registry for the given paths.
func New(paths config.Paths, opts ...Option) *Registry {
	r := &Registry{
		paths:   paths,
		records: store.NewRecordStore(paths.DBFile),
		repos:   store.NewRepoListStore(paths.ReposFile),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.fetcher == nil {
		r.fetcher = fetch.New()
	}
	if r.vcs == nil {
		r.vcs = vcs.New(paths.Git)
	}
	return r
}

// withRecords locks the record store, loads it and hands the records to fn.
// When fn reports dirty the records are saved before the lock is released.
func (r *Registry) withRecords(ctx context.Context, fn func(store.Records) (dirty bool, err error)) error {
	unlock, err := r.records.Lock(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreIO, err)
	}
	defer func() {
		if err := unlock(); err != nil {
			r.logger.Warn("releasing record store lock", "path", r.records.Path(), "error", err)
		}
	}()

	records, err := r.records.Load()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreIO, err)
	}

	dirty, err := fn(records)
	if err != nil {
		return err
	}
	if !dirty {
		return nil
	}
	if err := r.records.Save(records); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreIO, err)
	}
	return nil
}

// withRepos is withRecords for the repository list.
func (r *Registry) withRepos(ctx context.Context, fn func(*store.RepoList) (dirty bool, err error)) error {
	unlock, err := r.repos.Lock(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreIO, err)
	}
	defer func() {
		if err := unlock(); err != nil {
			r.logger.Warn("releasing repository list lock", "path", r.repos.Path(), "error", err)
		}
	}()

	list, err := r.repos.Load()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreIO, err)
	}

	dirty, err := fn(list)
	if err != nil {
		return err
	}
	if !dirty {
		return nil
	}
	if err := r.repos.Save(list); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreIO, err)
	}
	return nil
}
