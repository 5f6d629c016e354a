package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Suite names a group of question files.
type Suite string

const (
	SuiteCount   Suite = "count"
	SuiteRoom    Suite = "room"
	SuiteSpatial Suite = "spatial"
	SuiteAll     Suite = "all"
)

var suiteFiles = map[Suite][]string{
	SuiteCount:   {"object-count.csv"},
	SuiteRoom:    {"room-attributes.csv"},
	SuiteSpatial: {"spatial-reasoning.csv"},
	SuiteAll:     {"object-count.csv", "spatial-reasoning.csv", "room-attributes.csv"},
}

// ErrUnknownSuite is returned for a suite name with no file list.
var ErrUnknownSuite = errors.New("dataset: unknown task suite")

// ParseSuite resolves a suite name.
func ParseSuite(name string) (Suite, error) {
	s := Suite(name)
	if _, ok := suiteFiles[s]; !ok {
		return "", fmt.Errorf("%w: %q (known: count, room, spatial, all)", ErrUnknownSuite, name)
	}
	return s, nil
}

// Files returns the CSV files the suite reads, in load order.
func (s Suite) Files() []string {
	return append([]string(nil), suiteFiles[s]...)
}

// Task is one question about one scene.
type Task struct {
	// ID is "<category>_<row id>", e.g. "object-count_0".
	ID       string
	Category string
	SceneID  string
	Query    string
	Answer   string
}

var requiredColumns = []string{"id", "scene_id", "query"}

// LoadTasks reads the suite's CSV files from dir. Each file needs id,
// scene_id and query columns; answer is optional. Task IDs must be unique
// across the suite.
func LoadTasks(dir string, suite Suite) ([]Task, error) {
	files, ok := suiteFiles[suite]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSuite, suite)
	}

	var tasks []Task
	seen := make(map[string]bool)
	for _, name := range files {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to open task file: %w", err)
		}
		category := strings.TrimSuffix(name, filepath.Ext(name))
		batch, err := readTasks(f, category)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		for _, task := range batch {
			if seen[task.ID] {
				return nil, fmt.Errorf("%s: duplicate task id %q", name, task.ID)
			}
			seen[task.ID] = true
		}
		tasks = append(tasks, batch...)
	}
	return tasks, nil
}

func readTasks(r io.Reader, category string) ([]Task, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty task file")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	answerCol, hasAnswer := col["answer"]

	var tasks []Task
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return tasks, nil
		}
		if err != nil {
			return nil, err
		}
		task := Task{
			ID:       category + "_" + row[col["id"]],
			Category: category,
			SceneID:  row[col["scene_id"]],
			Query:    row[col["query"]],
		}
		if hasAnswer {
			task.Answer = row[answerCol]
		}
		tasks = append(tasks, task)
	}
}
