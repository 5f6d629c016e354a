package dataset

import (
	"errors"
	"fmt"
	"path/filepath"

	"dsgprompt/internal/prompt"
)

// ErrUnknownScene is returned when a task names a scene with no encoding.
var ErrUnknownScene = errors.New("dataset: task references unknown scene")

// Prompt is a rendered prompt for one task.
type Prompt struct {
	TaskID  string
	SceneID string
	Text    string
}

// BuildPrompts renders tmpl once per task with the task's scene encoding.
// A scene ID may omit the ".json" extension.
func BuildPrompts(res *Result, tasks []Task, tmpl *prompt.Template) ([]Prompt, error) {
	out := make([]Prompt, 0, len(tasks))
	for _, task := range tasks {
		repr, ok := res.Get(task.SceneID)
		if !ok && filepath.Ext(task.SceneID) == "" {
			repr, ok = res.Get(task.SceneID + ".json")
		}
		if !ok {
			return nil, fmt.Errorf("%w: task %s scene %q", ErrUnknownScene, task.ID, task.SceneID)
		}
		out = append(out, Prompt{
			TaskID:  task.ID,
			SceneID: task.SceneID,
			Text:    tmpl.Render(repr, task.Query),
		})
	}
	return out, nil
}
