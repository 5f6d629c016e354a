package dsg

import (
	"fmt"
	"sort"
)

// Labelspace is an immutable bidirectional mapping between semantic label
// codes and category names. Iteration order is ascending label code.
type Labelspace struct {
	labels []uint32
	names  map[uint32]string
	codes  map[string]uint32
}

// NewLabelspace builds a labelspace from code -> name pairs. Duplicate or
// empty names are rejected.
func NewLabelspace(entries map[uint32]string) (*Labelspace, error) {
	ls := &Labelspace{
		labels: make([]uint32, 0, len(entries)),
		names:  make(map[uint32]string, len(entries)),
		codes:  make(map[string]uint32, len(entries)),
	}
	for label, name := range entries {
		if name == "" {
			return nil, fmt.Errorf("dsg: label %d has an empty name", label)
		}
		if other, dup := ls.codes[name]; dup {
			return nil, fmt.Errorf("dsg: name %q used by labels %d and %d", name, min(label, other), max(label, other))
		}
		ls.labels = append(ls.labels, label)
		ls.names[label] = name
		ls.codes[name] = label
	}
	sort.Slice(ls.labels, func(i, j int) bool { return ls.labels[i] < ls.labels[j] })
	return ls, nil
}

// Name resolves a label code.
func (ls *Labelspace) Name(label uint32) (string, bool) {
	name, ok := ls.names[label]
	return name, ok
}

// Label resolves a category name.
func (ls *Labelspace) Label(name string) (uint32, bool) {
	label, ok := ls.codes[name]
	return label, ok
}

// Names returns every category name in iteration order.
func (ls *Labelspace) Names() []string {
	out := make([]string, len(ls.labels))
	for i, label := range ls.labels {
		out[i] = ls.names[label]
	}
	return out
}

// Len returns the number of categories.
func (ls *Labelspace) Len() int {
	return len(ls.labels)
}
