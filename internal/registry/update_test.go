package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateAbsentBehavesLikeInstall(t *testing.T) {
	artifact := writeArtifact(t, "foo-1.0.mpkg.zip", map[string]string{"a.txt": "a", "dir/b.txt": "b"})

	viaInstall, installPaths := newTestRegistry(t)
	installed, err := viaInstall.Install(context.Background(), artifact)
	require.NoError(t, err)

	viaUpdate, updatePaths := newTestRegistry(t)
	updated, err := viaUpdate.Update(context.Background(), artifact)
	require.NoError(t, err)

	assert.Equal(t, installed.Name, updated.Name)
	assert.Equal(t, installed.Version, updated.Version)
	assert.Equal(t, installed.Kind, updated.Kind)
	assert.Equal(t, filepath.Join(updatePaths.InstallDir, "foo"), updated.Path)

	for _, rel := range []string{"a.txt", "dir/b.txt"} {
		assert.FileExists(t, filepath.Join(installPaths.InstallDir, "foo", rel))
		assert.FileExists(t, filepath.Join(updatePaths.InstallDir, "foo", rel))
	}
}

func TestUpdateReplacesInstalledVersion(t *testing.T) {
	reg, paths := newTestRegistry(t)
	_, err := reg.Install(context.Background(), writeArtifact(t, "foo-1.0.art", map[string]string{"old.txt": "1"}))
	require.NoError(t, err)

	entry, err := reg.Update(context.Background(), writeArtifact(t, "foo-2.0.art", map[string]string{"new.txt": "2"}))
	require.NoError(t, err)
	assert.Equal(t, "2.0", entry.Version)

	dir := filepath.Join(paths.InstallDir, "foo")
	assert.NoFileExists(t, filepath.Join(dir, "old.txt"))
	assert.FileExists(t, filepath.Join(dir, "new.txt"))
	assert.Equal(t, "2.0", loadRecords(t, paths)["foo"].Version)
}

func TestUpdateInvalidNameHasNoSideEffects(t *testing.T) {
	reg, paths := newTestRegistry(t)
	_, err := reg.Install(context.Background(), writeArtifact(t, "foo-1.0.art", map[string]string{"a": "a"}))
	require.NoError(t, err)
	before := readFileOrNil(t, paths.DBFile)

	_, err = reg.Update(context.Background(), writeArtifact(t, "foo-2.0-beta.art", map[string]string{"a": "a"}))
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Equal(t, before, readFileOrNil(t, paths.DBFile))
	assert.DirExists(t, filepath.Join(paths.InstallDir, "foo"))
}

func TestUpdateFailedInstallLeavesPackageRemoved(t *testing.T) {
	reg, paths := newTestRegistry(t)
	_, err := reg.Install(context.Background(), writeArtifact(t, "foo-1.0.art", map[string]string{"a": "a"}))
	require.NoError(t, err)

	broken := filepath.Join(t.TempDir(), "foo-2.0.art")
	require.NoError(t, os.WriteFile(broken, []byte("garbage"), 0644))

	_, err = reg.Update(context.Background(), broken)
	assert.ErrorIs(t, err, ErrExtractFailed)
	assert.NotContains(t, loadRecords(t, paths), "foo")
	assert.NoDirExists(t, filepath.Join(paths.InstallDir, "foo"))
}
