// Package vcs wraps the external git client used to probe and clone remote
// repositories.
package vcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Git runs git subprocesses.
type Git struct {
	// Binary is the git executable; defaults to "git" on PATH.
	Binary string
	// Output receives clone progress. Nil discards it.
	Output io.Writer
}

// New returns a Git using binary (or "git" when empty).
func New(binary string) *Git {
	if binary == "" {
		binary = "git"
	}
	return &Git{Binary: binary}
}

// LsRemote runs `git ls-remote <url>` and returns an error when the remote
// cannot be listed. Credential prompts are disabled so an unreachable
// private remote fails instead of blocking.
func (g *Git) LsRemote(ctx context.Context, url string) error {
	cmd := g.command(ctx, "ls-remote", url)
	cmd.Stdout = io.Discard
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git ls-remote %s: %w\n%s", url, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Clone runs `git clone <url> <dest>`.
func (g *Git) Clone(ctx context.Context, url, dest string) error {
	cmd := g.command(ctx, "clone", url, dest)
	var stderr strings.Builder
	if g.Output != nil {
		cmd.Stdout = g.Output
		cmd.Stderr = io.MultiWriter(g.Output, &stderr)
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git clone %s: %w\n%s", url, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func (g *Git) command(ctx context.Context, args ...string) *exec.Cmd {
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	return cmd
}
