package registry

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/depot-labs/depot/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSortedByName(t *testing.T) {
	url := "https://example.com/alpha.git"
	reg, _ := newTestRegistry(t, WithVCS(newFakeVCS(url)), WithFetcher(failingFetcher{}))

	_, err := reg.Install(context.Background(), writeArtifact(t, "zulu-1.art", map[string]string{"z": "z"}))
	require.NoError(t, err)
	_, err = reg.Clone(context.Background(), url, "")
	require.NoError(t, err)

	entries, err := reg.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "alpha", entries[0].Name)
	assert.Equal(t, store.KindRepository, entries[0].Kind)
	assert.Equal(t, "zulu", entries[1].Name)
	assert.Equal(t, "1", entries[1].Version)
}

func TestListEmpty(t *testing.T) {
	reg, _ := newTestRegistry(t)
	entries, err := reg.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCheckReportsMissingPaths(t *testing.T) {
	reg, paths := newTestRegistry(t)
	_, err := reg.Install(context.Background(), writeArtifact(t, "present-1.art", map[string]string{"p": "p"}))
	require.NoError(t, err)

	records := loadRecords(t, paths)
	records["gone"] = store.Record{Kind: store.KindPackage, Version: "1", Path: filepath.Join(paths.InstallDir, "gone")}
	require.NoError(t, store.NewRecordStore(paths.DBFile).Save(records))

	missing, err := reg.Check(context.Background())
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, "gone", missing[0].Name)
}
