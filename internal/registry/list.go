package registry

import (
	"context"
	"os"

	"github.com/depot-labs/depot/internal/store"
)

// List returns every record sorted by name.
func (r *Registry) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := r.withRecords(ctx, func(records store.Records) (bool, error) {
		for _, name := range records.Names() {
			entries = append(entries, Entry{Name: name, Record: records[name]})
		}
		return false, nil
	})
	return entries, err
}

// Check returns the records whose path no longer exists on disk.
func (r *Registry) Check(ctx context.Context) ([]Entry, error) {
	entries, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	var missing []Entry
	for _, e := range entries {
		if _, err := os.Stat(e.Path); os.IsNotExist(err) {
			r.logger.Warn("recorded path is missing", "name", e.Name, "path", e.Path)
			missing = append(missing, e)
		}
	}
	return missing, nil
}
