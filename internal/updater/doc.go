// Package updater implements self-update. It asks a fixed release endpoint
// for the latest version, downloads the binary built for the running platform
// and swaps it in for the current executable, rolling back if the new binary
// does not answer "version --json".
package updater
