package expand

import (
	"os"
	"sort"
	"strings"
)

// Expander resolves ${NAME} and $NAME placeholders against an environment.
// Unknown names expand to the empty string and "$$" yields a literal "$".
type Expander struct {
	lookup func(string) (string, bool)
}

// NewExpander creates an expander over a fixed variable map
func NewExpander(vars map[string]string) *Expander {
	return &Expander{
		lookup: func(name string) (string, bool) {
			v, ok := vars[name]
			return v, ok
		},
	}
}

// FromEnviron creates an expander over the process environment
func FromEnviron() *Expander {
	return &Expander{lookup: os.LookupEnv}
}

// Expand substitutes every placeholder in s
func (e *Expander) Expand(s string) string {
	if !strings.Contains(s, "$") {
		return s
	}
	return os.Expand(s, func(name string) string {
		if name == "$" {
			return "$"
		}
		v, _ := e.lookup(name)
		return v
	})
}

// Lookup returns a single variable
func (e *Expander) Lookup(name string) (string, bool) {
	return e.lookup(name)
}

// Missing lists the placeholder names in s that have no value, sorted
func (e *Expander) Missing(s string) []string {
	seen := make(map[string]bool)
	os.Expand(s, func(name string) string {
		if name == "$" {
			return ""
		}
		if _, ok := e.lookup(name); !ok {
			seen[name] = true
		}
		return ""
	})

	missing := make([]string, 0, len(seen))
	for name := range seen {
		missing = append(missing, name)
	}
	sort.Strings(missing)
	return missing
}
