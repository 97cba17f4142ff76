package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	pendingMarker = color.New(color.FgCyan).SprintFunc()
	doneMarker    = color.New(color.FgGreen).SprintFunc()
	failMarker    = color.New(color.FgRed).SprintFunc()
	skipMarker    = color.New(color.FgHiBlack).SprintFunc()
	warnMarker    = color.New(color.FgYellow).SprintFunc()
)

// Transcript writes the human-readable step log of a run
type Transcript struct {
	Out io.Writer
}

// Step announces a step that is about to run
func (t Transcript) Step(format string, args ...interface{}) {
	t.line(pendingMarker("□"), format, args...)
}

// Done reports a finished step
func (t Transcript) Done(format string, args ...interface{}) {
	t.line(doneMarker("✓"), format, args...)
}

// Skip reports a step that was not run
func (t Transcript) Skip(format string, args ...interface{}) {
	t.line(skipMarker("-"), format, args...)
}

// Warn reports a failure that did not stop the run
func (t Transcript) Warn(format string, args ...interface{}) {
	t.line(warnMarker("[Warning]"), format, args...)
}

// Fail reports the failure that ended the run
func (t Transcript) Fail(format string, args ...interface{}) {
	t.line(failMarker("✘"), format, args...)
}

func (t Transcript) line(marker, format string, args ...interface{}) {
	if t.Out == nil {
		return
	}
	fmt.Fprintf(t.Out, "%s %s\n", marker, fmt.Sprintf(format, args...))
}
