// Package platform provides cross-platform filesystem helpers: permission
// changes that are no-ops on Windows and a recursive delete that tolerates
// read-only files and directories.
package platform
