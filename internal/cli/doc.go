// Package cli defines the Cobra command tree for the depot CLI. Each file
// registers one top-level command with the root command. Commands parse
// arguments, call into internal/registry or internal/updater, and format the
// result; they hold no registry logic of their own.
package cli
