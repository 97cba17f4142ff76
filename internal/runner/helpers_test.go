package runner

import (
	"io"

	"github.com/fatih/color"
	"github.com/sourceplane/udpublish/internal/render"
)

func init() {
	color.NoColor = true
}

func renderTranscript(w io.Writer) render.Transcript {
	return render.Transcript{Out: w}
}
