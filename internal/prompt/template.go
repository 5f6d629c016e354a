// Package prompt fills a plain-text prompt template with a serialized scene
// and a user query.
//
// A template names its inputs with two placeholders:
//
//	{{scene_repr}}  the encoded scene graph (required)
//	{{query}}       the question asked about the scene
//
// Substitution is a single pass over the template, so placeholder text that
// appears inside the scene or the query is left as is.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	SceneReprPlaceholder = "{{scene_repr}}"
	QueryPlaceholder     = "{{query}}"
)

// ErrMissingPlaceholder is returned for a template without a scene slot.
var ErrMissingPlaceholder = errors.New("prompt: template has no " + SceneReprPlaceholder + " placeholder")

// Template is a parsed prompt template. It is immutable and safe for
// concurrent use.
type Template struct {
	name string
	text string
}

// ParseTemplate checks text for the scene placeholder.
func ParseTemplate(name, text string) (*Template, error) {
	if !strings.Contains(text, SceneReprPlaceholder) {
		return nil, fmt.Errorf("%s: %w", name, ErrMissingPlaceholder)
	}
	return &Template{name: name, text: text}, nil
}

// LoadTemplate reads and parses a template file.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt template: %w", err)
	}
	return ParseTemplate(path, string(data))
}

// Name is the file path or name the template was parsed under.
func (t *Template) Name() string { return t.name }

// HasQuery reports whether the template uses {{query}}.
func (t *Template) HasQuery() bool {
	return strings.Contains(t.text, QueryPlaceholder)
}

// Render substitutes every placeholder occurrence.
func (t *Template) Render(sceneRepr, query string) string {
	r := strings.NewReplacer(
		SceneReprPlaceholder, sceneRepr,
		QueryPlaceholder, query,
	)
	return r.Replace(t.text)
}
