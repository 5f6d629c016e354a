package serialization

import (
	"fmt"
	"strings"

	"dsgprompt/internal/dsg"
	"dsgprompt/internal/sanitize"
)

// DetailNone in a detail key list suppresses all per-object detail.
const DetailNone = "NA"

// DetailKeys is the ordered list of attributes to render per object.
type DetailKeys []string

// Suppressed reports whether DetailNone is present.
func (d DetailKeys) Suppressed() bool {
	for _, k := range d {
		if k == DetailNone {
			return true
		}
	}
	return false
}

// Validate rejects keys that have no sanitizer registered.
func (d DetailKeys) Validate() error {
	for _, k := range d {
		if k == DetailNone {
			continue
		}
		if _, ok := sanitize.Lookup(k); !ok {
			return fmt.Errorf("%w: %q (known: %s)", ErrUnknownDetailKey, k, strings.Join(sanitize.Keys(), ", "))
		}
	}
	return nil
}

// pairs renders "key=value" for every requested key, using the absence
// sentinel for missing attributes.
func (d DetailKeys) pairs(attrs dsg.Attributes) []string {
	out := make([]string, 0, len(d))
	for _, k := range d {
		out = append(out, k+"="+attrs.Value(k))
	}
	return out
}
