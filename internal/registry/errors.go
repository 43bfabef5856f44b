package registry

import "errors"

// Classified failures. Operations wrap these with context; match with errors.Is.
var (
	// ErrInvalidFormat indicates the artifact does not end in a recognized suffix.
	ErrInvalidFormat = errors.New("invalid artifact format")

	// ErrInvalidName indicates the artifact base name is not <name>-<version>.
	ErrInvalidName = errors.New("invalid artifact name")

	// ErrAlreadyInstalled indicates a record with the same name exists.
	ErrAlreadyInstalled = errors.New("already installed")

	// ErrAlreadyExists indicates the destination path or name is taken.
	ErrAlreadyExists = errors.New("already exists")

	// ErrDownloadFailed indicates a remote artifact could not be fetched.
	ErrDownloadFailed = errors.New("download failed")

	// ErrExtractFailed indicates the artifact could not be extracted.
	ErrExtractFailed = errors.New("extraction failed")

	// ErrNotFound indicates the named record or repository URL does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRemoveFailed indicates an installed directory could not be deleted,
	// even after clearing read-only bits.
	ErrRemoveFailed = errors.New("remove failed")

	// ErrUnreachable indicates git ls-remote failed for a repository URL.
	ErrUnreachable = errors.New("repository unreachable")

	// ErrCloneFailed indicates git clone exited with an error.
	ErrCloneFailed = errors.New("clone failed")

	// ErrDuplicateRepo indicates the URL is already in the repository list.
	ErrDuplicateRepo = errors.New("repository already listed")

	// ErrStoreIO indicates a store file could not be read, parsed or written.
	ErrStoreIO = errors.New("store I/O error")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrInvalidFormat, "InvalidFormat"},
	{ErrInvalidName, "InvalidName"},
	{ErrAlreadyInstalled, "AlreadyInstalled"},
	{ErrAlreadyExists, "AlreadyExists"},
	{ErrDownloadFailed, "DownloadFailed"},
	{ErrExtractFailed, "ExtractFailed"},
	{ErrNotFound, "NotFound"},
	{ErrRemoveFailed, "RemoveFailed"},
	{ErrUnreachable, "Unreachable"},
	{ErrCloneFailed, "CloneFailed"},
	{ErrDuplicateRepo, "DuplicateRepo"},
	{ErrStoreIO, "StoreIOError"},
}

// KindOf returns the classification name of err, or "" when err is not one
// of the registry's classified failures.
func KindOf(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}
