package vcs

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// requireGit skips the test when git is not installed.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// initRepo creates a repository with one commit and returns its path.
func initRepo(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "origin")
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com")
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	run("init", "-q")
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# origin\n"), 0644); err != nil {
		t.Fatal(err)
	}
	run("add", "README.md")
	run("commit", "-q", "-m", "initial")
	return dir
}

func TestNewDefaultsBinary(t *testing.T) {
	if g := New(""); g.Binary != "git" {
		t.Errorf("Binary = %q, want git", g.Binary)
	}
}

func TestLsRemote(t *testing.T) {
	requireGit(t)
	origin := initRepo(t)
	g := New("")

	if err := g.LsRemote(context.Background(), origin); err != nil {
		t.Fatalf("LsRemote on valid repo: %v", err)
	}
	if err := g.LsRemote(context.Background(), filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing repository")
	}
}

func TestClone(t *testing.T) {
	requireGit(t)
	origin := initRepo(t)
	dest := filepath.Join(t.TempDir(), "clone")

	if err := New("").Clone(context.Background(), origin, dest); err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "README.md")); err != nil {
		t.Errorf("cloned file missing: %v", err)
	}
}

func TestMissingBinary(t *testing.T) {
	g := New(filepath.Join(t.TempDir(), "no-such-git"))
	if err := g.LsRemote(context.Background(), "https://example.com/x.git"); err == nil {
		t.Error("expected error for missing git binary")
	}
}
