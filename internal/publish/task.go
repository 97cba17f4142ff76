package publish

import (
	"context"

	"github.com/sourceplane/udpublish/internal/model"
)

// Task wraps a publish so it can be handed to an executor. VersionID is set once
// Run returns successfully.
type Task struct {
	Publisher *Publisher
	Request   Request

	VersionID model.VersionID
}

func (t *Task) Name() string {
	return "publish-artifacts"
}

func (t *Task) Run(ctx context.Context) error {
	id, err := t.Publisher.Publish(ctx, t.Request)
	if err != nil {
		return err
	}
	t.VersionID = id
	return nil
}
