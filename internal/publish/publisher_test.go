package publish

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sourceplane/udpublish/internal/model"
)

// stubVersions records calls and returns canned errors.
type stubVersions struct {
	id        model.VersionID
	createErr error
	uploadErr error
	deleteErr error

	creates int
	uploads []uploadCall
	deletes []model.VersionID
}

type uploadCall struct {
	component, version, root string
	includes, excludes       []string
}

func (s *stubVersions) CreateVersion(_ context.Context, _, _, _ string) (model.VersionID, error) {
	s.creates++
	if s.createErr != nil {
		return uuid.Nil, s.createErr
	}
	return s.id, nil
}

func (s *stubVersions) DeleteVersion(_ context.Context, id model.VersionID) error {
	s.deletes = append(s.deletes, id)
	return s.deleteErr
}

func (s *stubVersions) UploadFiles(_ context.Context, component, version, root string, includes, excludes []string) error {
	s.uploads = append(s.uploads, uploadCall{component, version, root, includes, excludes})
	return s.uploadErr
}

func (s *stubVersions) calls() int {
	return s.creates + len(s.uploads) + len(s.deletes)
}

func newRequest(t *testing.T) Request {
	t.Helper()
	return Request{
		BaseDir:   t.TempDir(),
		Include:   "**/*.jar\n\n  lib/** \n",
		Exclude:   "",
		Component: "web",
		Version:   "1.0.0",
	}
}

func TestPublish_Success(t *testing.T) {
	versions := &stubVersions{id: uuid.New()}
	req := newRequest(t)
	req.DirOffset = "  dist "

	id, err := NewPublisher(versions, nil).Publish(context.Background(), req)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if id != versions.id {
		t.Errorf("id = %v, want %v", id, versions.id)
	}
	if len(versions.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1", len(versions.uploads))
	}

	up := versions.uploads[0]
	if filepath.Base(up.root) != "dist" {
		t.Errorf("upload root = %q, want offset dist joined", up.root)
	}
	if strings.Join(up.includes, ",") != "**/*.jar,lib/**" {
		t.Errorf("includes = %q", up.includes)
	}
	if up.excludes == nil || len(up.excludes) != 0 {
		t.Errorf("excludes = %#v, want empty non-nil list", up.excludes)
	}
	if len(versions.deletes) != 0 {
		t.Errorf("deletes = %d, want 0", len(versions.deletes))
	}
}

func TestPublish_InvalidVersionName(t *testing.T) {
	for _, name := range []string{"", strings.Repeat("v", 256)} {
		versions := &stubVersions{id: uuid.New()}
		req := newRequest(t)
		req.Version = name

		_, err := NewPublisher(versions, nil).Publish(context.Background(), req)
		if !errors.Is(err, model.ErrInvalidVersionName) {
			t.Errorf("len %d: err = %v, want ErrInvalidVersionName", len(name), err)
		}
		if versions.calls() != 0 {
			t.Errorf("len %d: remote calls = %d, want 0", len(name), versions.calls())
		}
	}
}

func TestPublish_MaxLengthVersionName(t *testing.T) {
	versions := &stubVersions{id: uuid.New()}
	req := newRequest(t)
	req.Version = strings.Repeat("v", 255)

	if _, err := NewPublisher(versions, nil).Publish(context.Background(), req); err != nil {
		t.Fatalf("Publish: %v", err)
	}
}

func TestValidateVersionName_CountsCharacters(t *testing.T) {
	if err := ValidateVersionName(strings.Repeat("é", 255)); err != nil {
		t.Errorf("255 two-byte characters rejected: %v", err)
	}
	err := ValidateVersionName(strings.Repeat("é", 256))
	if !errors.Is(err, model.ErrInvalidVersionName) {
		t.Fatalf("256 characters err = %v, want ErrInvalidVersionName", err)
	}
	if !strings.Contains(err.Error(), "current length: 256") {
		t.Errorf("message reports bytes instead of characters: %v", err)
	}
}

func TestPublish_DirectoryNotFound(t *testing.T) {
	versions := &stubVersions{id: uuid.New()}
	req := newRequest(t)
	req.BaseDir = filepath.Join(req.BaseDir, "missing")

	_, err := NewPublisher(versions, nil).Publish(context.Background(), req)
	if !errors.Is(err, model.ErrDirectoryNotFound) {
		t.Fatalf("err = %v, want ErrDirectoryNotFound", err)
	}
	if versions.calls() != 0 {
		t.Errorf("remote calls = %d, want 0", versions.calls())
	}
}

func TestPublish_CreateFails(t *testing.T) {
	remote := errors.New("409 conflict")
	versions := &stubVersions{createErr: remote}

	_, err := NewPublisher(versions, nil).Publish(context.Background(), newRequest(t))
	if !errors.Is(err, model.ErrVersionCreationFailed) || !errors.Is(err, remote) {
		t.Fatalf("err = %v, want ErrVersionCreationFailed wrapping remote error", err)
	}
	if len(versions.uploads) != 0 {
		t.Errorf("uploads = %d, want 0", len(versions.uploads))
	}
}

func TestPublish_UploadFailsDeletesVersion(t *testing.T) {
	uploadErr := errors.New("connection reset")
	versions := &stubVersions{id: uuid.New(), uploadErr: uploadErr}

	_, err := NewPublisher(versions, nil).Publish(context.Background(), newRequest(t))
	if !errors.Is(err, model.ErrUploadFailed) || !errors.Is(err, uploadErr) {
		t.Fatalf("err = %v, want ErrUploadFailed wrapping upload error", err)
	}
	if len(versions.deletes) != 1 || versions.deletes[0] != versions.id {
		t.Errorf("deletes = %v, want exactly [%v]", versions.deletes, versions.id)
	}
}

func TestPublish_DeleteFailureDoesNotMaskUploadError(t *testing.T) {
	uploadErr := errors.New("connection reset")
	deleteErr := errors.New("403 forbidden")
	versions := &stubVersions{id: uuid.New(), uploadErr: uploadErr, deleteErr: deleteErr}

	_, err := NewPublisher(versions, nil).Publish(context.Background(), newRequest(t))
	if !errors.Is(err, uploadErr) {
		t.Fatalf("err = %v, want upload error", err)
	}
	if errors.Is(err, deleteErr) {
		t.Errorf("err = %v, must not unwrap to the delete error", err)
	}

	var ue *model.UploadError
	if !errors.As(err, &ue) || ue.DeleteErr != deleteErr {
		t.Errorf("UploadError.DeleteErr = %v, want %v", ue, deleteErr)
	}
	if len(versions.deletes) != 1 {
		t.Errorf("deletes = %d, want 1", len(versions.deletes))
	}
}

func TestTask_Run(t *testing.T) {
	versions := &stubVersions{id: uuid.New()}
	task := &Task{Publisher: NewPublisher(versions, nil), Request: newRequest(t)}

	if err := task.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if task.VersionID != versions.id {
		t.Errorf("VersionID = %v, want %v", task.VersionID, versions.id)
	}
}
