package serialization

import (
	"errors"
	"fmt"

	"dsgprompt/internal/dsg"
)

// Configuration errors are reported before any graph traversal.
var (
	ErrUnknownEncoding  = errors.New("serialization: unknown encoding")
	ErrUnknownDetailKey = errors.New("serialization: unknown detail key")
)

// Graph-consistency errors.
var (
	ErrUnknownLabel = errors.New("serialization: semantic label not in labelspace")
	ErrMissingNode  = errors.New("serialization: node referenced but not in graph")
)

// LabelError reports an object whose semantic label cannot be resolved. It
// is fatal: counting the object as zero would corrupt the room summaries.
type LabelError struct {
	Object dsg.NodeSymbol
	Label  uint32
	// Unlabeled is set when the object carries no semantic_label at all.
	Unlabeled bool
}

func (e *LabelError) Error() string {
	if e.Unlabeled {
		return fmt.Sprintf("serialization: object %s has no semantic label", e.Object)
	}
	return fmt.Sprintf("serialization: object %s has semantic label %d with no labelspace entry", e.Object, e.Label)
}

func (e *LabelError) Unwrap() error {
	return ErrUnknownLabel
}
