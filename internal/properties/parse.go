package properties

import (
	"fmt"
	"strings"

	"github.com/sourceplane/udpublish/internal/model"
)

// Parse reads a newline-delimited list of name=value lines. A line without a
// '=' delimiter, or with an empty name, fails the whole parse. Whitespace-only
// lines are ignored and a repeated name keeps its last value.
func Parse(blob string) (model.DesiredProperties, error) {
	desired := model.DesiredProperties{}

	for _, line := range strings.Split(blob, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		name, value, ok := strings.Cut(line, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: missing property delimiter '=' in property definition '%s'",
				model.ErrMalformedPropertyLine, line)
		}
		desired[name] = strings.TrimSpace(value)
	}

	return desired, nil
}
