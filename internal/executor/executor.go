// Package executor decouples a unit of pipeline work from where it physically
// runs. The orchestrator only depends on the Executor result/error contract.
package executor

import (
	"context"
	"fmt"

	"github.com/golang/glog"
)

// Task is a named, one-shot unit of work.
type Task interface {
	Name() string
	Run(ctx context.Context) error
}

// Executor runs a task and blocks until it returns.
type Executor interface {
	Execute(ctx context.Context, task Task) error
}

// Local runs tasks inline on the calling goroutine. Channel is only a label used
// in logs and error messages.
type Local struct {
	Channel string
}

// NewLocal returns an executor bound to the named channel.
func NewLocal(channel string) *Local {
	if channel == "" {
		channel = "local"
	}
	return &Local{Channel: channel}
}

func (l *Local) Execute(ctx context.Context, task Task) error {
	glog.V(1).Infof("running task %q on channel %q", task.Name(), l.Channel)
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := task.Run(ctx); err != nil {
		return fmt.Errorf("failed to run %s on channel %s: %w", task.Name(), l.Channel, err)
	}
	return nil
}

// Func adapts a function into a Task.
func Func(name string, fn func(context.Context) error) Task {
	return &funcTask{name: name, fn: fn}
}

type funcTask struct {
	name string
	fn   func(context.Context) error
}

func (t *funcTask) Name() string                  { return t.name }
func (t *funcTask) Run(ctx context.Context) error { return t.fn(ctx) }
