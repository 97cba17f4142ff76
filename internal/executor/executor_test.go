package executor

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestLocal_Execute(t *testing.T) {
	ran := false
	task := Func("publish", func(context.Context) error {
		ran = true
		return nil
	})

	if err := NewLocal("").Execute(context.Background(), task); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !ran {
		t.Error("task did not run")
	}
}

func TestLocal_ExecuteWrapsError(t *testing.T) {
	boom := errors.New("boom")
	err := NewLocal("agent-1").Execute(context.Background(), Func("publish", func(context.Context) error {
		return boom
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapping %v", err, boom)
	}
	if !strings.Contains(err.Error(), "agent-1") {
		t.Errorf("err = %q, want channel name", err)
	}
}

func TestLocal_ExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := NewLocal("").Execute(ctx, Func("publish", func(context.Context) error {
		ran = true
		return nil
	}))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if ran {
		t.Error("task ran despite cancelled context")
	}
}
