package ucd

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/sourceplane/udpublish/internal/fileset"
	"github.com/sourceplane/udpublish/internal/model"
)

// CreateVersion creates an empty version of component and returns its id.
func (c *Client) CreateVersion(ctx context.Context, component, name, description string) (model.VersionID, error) {
	q := url.Values{
		"component": {component},
		"name":      {name},
	}
	if description != "" {
		q.Set("description", description)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := c.post("/cli/version/createVersion", q, "", nil).json(ctx, &created); err != nil {
		return uuid.Nil, err
	}

	id, err := uuid.Parse(created.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("server returned malformed version id %q: %w", created.ID, err)
	}
	return id, nil
}

// DeleteVersion removes a version and everything uploaded to it.
func (c *Client) DeleteVersion(ctx context.Context, id model.VersionID) error {
	return c.delete("/rest/deploy/version/" + id.String()).status(ctx)
}

// SetVersionProperty stamps a property value on a single version.
func (c *Client) SetVersionProperty(ctx context.Context, version, component, name, value string) error {
	q := url.Values{
		"component": {component},
		"version":   {version},
		"name":      {name},
		"value":     {value},
		"isSecure":  {"false"},
	}
	return c.put("/cli/version/versionProperties", q, "", nil).status(ctx)
}

// UploadFiles streams every file under rootDir selected by the include and
// exclude patterns to the version as one multipart request.
func (c *Client) UploadFiles(ctx context.Context, component, version, rootDir string, includes, excludes []string) error {
	files, err := fileset.Collect(rootDir, includes, excludes)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		glog.Warningf("no files under %s matched the include patterns %v", rootDir, includes)
	}

	pr, pw := io.Pipe()
	defer pr.Close()

	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeParts(mw, component, version, rootDir, files))
	}()

	return c.post("/cli/version/addFiles", nil, mw.FormDataContentType(), pr).status(ctx)
}

func writeParts(mw *multipart.Writer, component, version, rootDir string, files []string) error {
	if err := mw.WriteField("component", component); err != nil {
		return err
	}
	if err := mw.WriteField("version", version); err != nil {
		return err
	}

	for _, rel := range files {
		if err := writeFilePart(mw, rootDir, rel); err != nil {
			return err
		}
	}
	return mw.Close()
}

func writeFilePart(mw *multipart.Writer, rootDir, rel string) error {
	f, err := os.Open(filepath.Join(rootDir, filepath.FromSlash(rel)))
	if err != nil {
		return err
	}
	defer f.Close()

	part, err := mw.CreateFormFile("file", rel)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}
