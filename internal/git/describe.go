package git

import (
	"errors"
	"fmt"
	"strings"

	gogit "gopkg.in/src-d/go-git.v4"
)

// ErrNotRepository is returned when dir is not inside a git working tree
var ErrNotRepository = errors.New("not a git repository")

// BuildInfo identifies the source revision a build was produced from
type BuildInfo struct {
	Revision      string `json:"revision" yaml:"revision"`
	ShortRevision string `json:"shortRevision" yaml:"shortRevision"`
	Branch        string `json:"branch,omitempty" yaml:"branch,omitempty"`
	Subject       string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Dirty         bool   `json:"dirty,omitempty" yaml:"dirty,omitempty"`
}

// Describe reads HEAD of the repository containing dir
func Describe(dir string) (*BuildInfo, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err == gogit.ErrRepositoryNotExists {
		return nil, fmt.Errorf("%w: %s", ErrNotRepository, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	hash := head.Hash().String()
	info := &BuildInfo{
		Revision:      hash,
		ShortRevision: hash[:7],
	}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}

	if commit, err := repo.CommitObject(head.Hash()); err == nil {
		info.Subject = strings.TrimSpace(strings.SplitN(commit.Message, "\n", 2)[0])
	}

	if worktree, err := repo.Worktree(); err == nil {
		if status, err := worktree.Status(); err == nil {
			info.Dirty = !status.IsClean()
		}
	}

	return info, nil
}

// Description renders a one-line version description
func (b *BuildInfo) Description() string {
	ref := b.ShortRevision
	if b.Branch != "" {
		ref = b.Branch + "@" + ref
	}
	if b.Dirty {
		ref += "+dirty"
	}
	if b.Subject == "" {
		return ref
	}
	return ref + ": " + b.Subject
}
