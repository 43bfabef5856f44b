package registry

import (
	"context"
	"fmt"
	"slices"

	"github.com/depot-labs/depot/internal/store"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentProbes bounds the ls-remote subprocesses CheckRepos runs at once.
const maxConcurrentProbes = 4

// RepoStatus is the reachability of one listed repository.
type RepoStatus struct {
	URL       string `json:"url"`
	Reachable bool   `json:"reachable"`
	Error     string `json:"error,omitempty"`
}

// AddRepo appends url to the repository list after confirming it is reachable.
func (r *Registry) AddRepo(ctx context.Context, url string) error {
	return r.withRepos(ctx, func(list *store.RepoList) (bool, error) {
		if list.Contains(url) {
			return false, fmt.Errorf("%w: %s", ErrDuplicateRepo, url)
		}
		if err := r.vcs.LsRemote(ctx, url); err != nil {
			return false, fmt.Errorf("%w: %s: %w", ErrUnreachable, url, err)
		}
		list.Add(url)
		r.logger.Info("added repository", "url", url)
		return true, nil
	})
}

// RemoveRepo deletes url from the repository list.
func (r *Registry) RemoveRepo(ctx context.Context, url string) error {
	return r.withRepos(ctx, func(list *store.RepoList) (bool, error) {
		if !list.Remove(url) {
			return false, fmt.Errorf("%w: %s", ErrNotFound, url)
		}
		r.logger.Info("removed repository", "url", url)
		return true, nil
	})
}

// ListRepos returns the listed URLs in insertion order.
func (r *Registry) ListRepos(ctx context.Context) ([]string, error) {
	var urls []string
	err := r.withRepos(ctx, func(list *store.RepoList) (bool, error) {
		urls = slices.Clone(list.Repos)
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	if urls == nil {
		urls = []string{}
	}
	return urls, nil
}

// CheckRepos probes every listed repository concurrently. Unreachable
// repositories are reported in the result, not as an error.
func (r *Registry) CheckRepos(ctx context.Context) ([]RepoStatus, error) {
	urls, err := r.ListRepos(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]RepoStatus, len(urls))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentProbes)
	for i, url := range urls {
		g.Go(func() error {
			statuses[i] = RepoStatus{URL: url, Reachable: true}
			if err := r.vcs.LsRemote(gCtx, url); err != nil {
				statuses[i].Reachable = false
				statuses[i].Error = err.Error()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return statuses, ctx.Err()
}
