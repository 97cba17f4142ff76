package git

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "gopkg.in/src-d/go-git.v4"
	"gopkg.in/src-d/go-git.v4/plumbing/object"
)

func initRepo(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.txt"), []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := worktree.Add("app.txt"); err != nil {
		t.Fatal(err)
	}
	hash, err := worktree.Commit("Add app\n\nlonger body", &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatal(err)
	}
	return dir, hash.String()
}

func TestDescribe(t *testing.T) {
	dir, hash := initRepo(t)

	sub := filepath.Join(dir, "build", "out")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	info, err := Describe(sub)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if info.Revision != hash || info.ShortRevision != hash[:7] {
		t.Errorf("revision = %s/%s, want %s", info.Revision, info.ShortRevision, hash)
	}
	if info.Branch != "master" {
		t.Errorf("Branch = %q, want master", info.Branch)
	}
	if info.Subject != "Add app" {
		t.Errorf("Subject = %q", info.Subject)
	}
	if info.Dirty {
		t.Error("fresh commit reported dirty")
	}
	if got, want := info.Description(), "master@"+hash[:7]+": Add app"; got != want {
		t.Errorf("Description = %q, want %q", got, want)
	}
}

func TestDescribe_Dirty(t *testing.T) {
	dir, _ := initRepo(t)
	if err := os.WriteFile(filepath.Join(dir, "app.txt"), []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := Describe(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !info.Dirty {
		t.Error("modified worktree not reported dirty")
	}
}

func TestDescribe_NotRepository(t *testing.T) {
	if _, err := Describe(t.TempDir()); !errors.Is(err, ErrNotRepository) {
		t.Fatalf("err = %v, want ErrNotRepository", err)
	}
}

func TestBuildInfoDescription(t *testing.T) {
	b := &BuildInfo{ShortRevision: "abc1234"}
	if got := b.Description(); got != "abc1234" {
		t.Errorf("Description = %q", got)
	}
}
