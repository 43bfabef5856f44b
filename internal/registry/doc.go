// Package registry implements Depot's mutation operations: installing and
// removing packages from archive artifacts, updating them, cloning
// repositories and managing the repository list. Each operation locks the
// relevant store, loads it, validates, performs its filesystem side effects
// and writes the store back, returning one of the classified errors in
// errors.go on failure.
package registry
