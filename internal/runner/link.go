package runner

import (
	"context"
	"fmt"

	"github.com/golang/glog"
	"github.com/sourceplane/udpublish/internal/model"
	"github.com/sourceplane/udpublish/internal/render"
)

// AnnotateLink attaches linkURL to the version under linkName. It never
// fails the run: any error is logged as a warning and reported through the
// returned bool.
func AnnotateLink(ctx context.Context, links LinkService, tr render.Transcript, component, version, linkName, linkURL string) bool {
	tr.Step("Adding link %q to version %s", linkName, version)

	if err := links.AddVersionLink(ctx, component, version, linkName, linkURL); err != nil {
		err = fmt.Errorf("%w: %s: %w", model.ErrLinkAnnotationFailed, linkName, err)
		glog.Warningf("%v", err)
		tr.Warn("Failed to add link to version: %v", err)
		return false
	}

	tr.Done("Added link %s", linkURL)
	return true
}
