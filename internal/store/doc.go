// Package store persists Depot's two on-disk documents: the record store
// (installed name -> record) and the repository list. Both are YAML files
// that are read whole, validated against an embedded JSON schema, mutated in
// memory by the caller and rewritten whole through an atomic rename. An
// advisory lock file serializes concurrent invocations.
//
// The store has no business rules; conflict detection lives in the registry
// package.
package store
