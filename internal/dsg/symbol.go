// Package dsg models the layered 3D scene graph consumed by the encoders:
// rooms own places, places own objects, and rooms are related to each other
// through adjacency (sibling) edges.
//
// A SceneGraph is built once by a loader (or a test) and is read-only
// afterwards. Nothing in the serialization path mutates it, so a single graph
// can be encoded from many goroutines at once.
package dsg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Category markers carried in the top byte of a NodeSymbol.
const (
	CategoryRoom   byte = 'R'
	CategoryPlace  byte = 'p'
	CategoryObject byte = 'O'
)

const (
	symbolCategoryShift = 56
	symbolIndexMask     = (uint64(1) << symbolCategoryShift) - 1
)

// ErrInvalidSymbol is returned when a node identifier cannot be parsed.
var ErrInvalidSymbol = errors.New("dsg: invalid node symbol")

// NodeSymbol is a globally unique node identifier. The top byte is a
// category marker (see CategoryObject and friends) and the low 56 bits are
// the human-facing sequence number reported as category_id.
type NodeSymbol uint64

// NewNodeSymbol packs a category marker and a sequence index.
func NewNodeSymbol(category byte, index uint64) NodeSymbol {
	return NodeSymbol(uint64(category)<<symbolCategoryShift | index&symbolIndexMask)
}

// Category returns the category marker.
func (s NodeSymbol) Category() byte {
	return byte(uint64(s) >> symbolCategoryShift)
}

// CategoryID returns the sequence index within the category.
func (s NodeSymbol) CategoryID() uint64 {
	return uint64(s) & symbolIndexMask
}

// IsObject reports whether the symbol is tagged as an object node.
func (s NodeSymbol) IsObject() bool {
	return s.Category() == CategoryObject
}

// String renders the symbol as "R(3)".
func (s NodeSymbol) String() string {
	return fmt.Sprintf("%c(%d)", s.Category(), s.CategoryID())
}

// ParseNodeSymbol parses "R3" or "R(3)".
func ParseNodeSymbol(s string) (NodeSymbol, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSymbol, s)
	}
	category := s[0]
	if !isSymbolCategory(category) {
		return 0, fmt.Errorf("%w: %q has no category marker", ErrInvalidSymbol, s)
	}
	digits := s[1:]
	if strings.HasPrefix(digits, "(") {
		if !strings.HasSuffix(digits, ")") {
			return 0, fmt.Errorf("%w: %q is missing a closing parenthesis", ErrInvalidSymbol, s)
		}
		digits = digits[1 : len(digits)-1]
	}
	index, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || index > symbolIndexMask {
		return 0, fmt.Errorf("%w: %q has a bad index", ErrInvalidSymbol, s)
	}
	return NewNodeSymbol(category, index), nil
}

func isSymbolCategory(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
