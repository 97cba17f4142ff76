package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/sourceplane/udpublish/internal/fileset"
	"github.com/sourceplane/udpublish/internal/model"
)

// VersionService creates, fills and deletes component versions on the server.
type VersionService interface {
	CreateVersion(ctx context.Context, component, name, description string) (model.VersionID, error)
	DeleteVersion(ctx context.Context, id model.VersionID) error
	UploadFiles(ctx context.Context, component, version, rootDir string, includes, excludes []string) error
}

// Request describes one version to publish. Include and Exclude are
// newline-delimited pattern lists; no default include is applied here.
type Request struct {
	BaseDir     string
	DirOffset   string
	Include     string
	Exclude     string
	Component   string
	Version     string
	Description string
}

// Publisher creates a version and uploads the artifact set into it, deleting the
// version again when the upload fails.
type Publisher struct {
	Versions VersionService
	Out      io.Writer
}

// NewPublisher creates a publisher writing its transcript to out.
func NewPublisher(versions VersionService, out io.Writer) *Publisher {
	if out == nil {
		out = io.Discard
	}
	return &Publisher{Versions: versions, Out: out}
}

// Publish returns the id of the new version only when both creation and upload
// succeeded.
func (p *Publisher) Publish(ctx context.Context, req Request) (model.VersionID, error) {
	if err := ValidateVersionName(req.Version); err != nil {
		return uuid.Nil, err
	}

	workDir, err := resolveWorkDir(req.BaseDir, req.DirOffset)
	if err != nil {
		return uuid.Nil, err
	}

	fmt.Fprintf(p.Out, "  Creating new version: %s on component: %s\n", req.Version, req.Component)
	id, err := p.Versions.CreateVersion(ctx, req.Component, req.Version, req.Description)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: failed to create component version '%s' on component '%s': %w",
			model.ErrVersionCreationFailed, req.Version, req.Component, err)
	}
	fmt.Fprintf(p.Out, "  Successfully created new component version %s.\n", id)

	includes := fileset.SplitPatterns(req.Include)
	excludes := fileset.SplitPatterns(req.Exclude)

	fmt.Fprintf(p.Out, "  Working Directory: %s\n", workDir)
	fmt.Fprintf(p.Out, "  Includes: %s\n", strings.Join(includes, ", "))
	fmt.Fprintf(p.Out, "  Excludes: %s\n", strings.Join(excludes, ", "))
	fmt.Fprintln(p.Out, "  Adding files to component version.")

	if err := p.Versions.UploadFiles(ctx, req.Component, req.Version, workDir, includes, excludes); err != nil {
		uploadErr := &model.UploadError{Version: req.Version, VersionID: id, Err: err}

		fmt.Fprintf(p.Out, "  Deleting component version '%s' due to failed artifact upload.\n", id)
		// The caller's context may be what failed the upload; the delete still gets a chance.
		if delErr := p.Versions.DeleteVersion(context.WithoutCancel(ctx), id); delErr != nil {
			glog.Errorf("failed to delete component version %s: %v", id, delErr)
			fmt.Fprintf(p.Out, "  Failed to delete component version: %v\n", delErr)
			uploadErr.DeleteErr = delErr
		}
		return uuid.Nil, uploadErr
	}

	fmt.Fprintln(p.Out, "  Successfully uploaded files to version.")
	return id, nil
}

// ValidateVersionName checks the server's 1..255 character limit.
func ValidateVersionName(name string) error {
	n := utf8.RuneCountInString(name)
	if n == 0 || n > model.MaxVersionNameLength {
		return fmt.Errorf("%w: failed to create version '%s': version names must be between 1 and %d characters long (current length: %d)",
			model.ErrInvalidVersionName, name, model.MaxVersionNameLength, n)
	}
	return nil
}

// resolveWorkDir checks that baseDir exists and joins the trimmed offset onto it.
// The offset directory itself is not checked.
func resolveWorkDir(baseDir, offset string) (string, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("%w: failed to resolve base directory '%s': %w", model.ErrDirectoryNotFound, baseDir, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("%w: base artifact directory '%s' does not exist", model.ErrDirectoryNotFound, abs)
	}

	if offset = strings.TrimSpace(offset); offset != "" {
		return filepath.Join(abs, offset), nil
	}
	return abs, nil
}
