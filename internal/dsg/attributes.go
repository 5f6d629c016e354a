package dsg

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"dsgprompt/internal/sanitize"
)

// Absent is rendered in place of an attribute the node does not carry.
const Absent = "N/A"

// Recognized attribute keys.
const (
	KeySemanticLabel = "semantic_label"
	KeyPosition      = sanitize.KeyPosition
	KeyBoundingBox   = sanitize.KeyBoundingBox
	KeyWorldRObject  = sanitize.KeyWorldRObject
)

// Attributes is the sparse attribute record of a node. A nil field means the
// attribute is absent, which is never an error.
type Attributes struct {
	SemanticLabel *uint32
	Position      *r3.Vec
	BoundingBox   *r3.Box
	// WorldRObject is the object's orientation in the world frame.
	WorldRObject *quat.Number
}

// Lookup renders a single attribute in the textual form the sanitizer
// accepts. The second result is false when the attribute is absent or the
// key is not recognized.
func (a Attributes) Lookup(key string) (string, bool) {
	switch key {
	case KeySemanticLabel:
		if a.SemanticLabel == nil {
			return "", false
		}
		return strconv.FormatUint(uint64(*a.SemanticLabel), 10), true
	case KeyPosition:
		if a.Position == nil {
			return "", false
		}
		return FormatVec(*a.Position), true
	case KeyBoundingBox:
		if a.BoundingBox == nil {
			return "", false
		}
		return FormatBox(*a.BoundingBox), true
	case KeyWorldRObject:
		if a.WorldRObject == nil {
			return "", false
		}
		return FormatQuaternion(*a.WorldRObject), true
	default:
		return "", false
	}
}

// Value is Lookup with the Absent sentinel in place of a missing attribute.
func (a Attributes) Value(key string) string {
	if v, ok := a.Lookup(key); ok {
		return v
	}
	return Absent
}

// FormatVec renders "[1, 2, 3]".
func FormatVec(v r3.Vec) string {
	var sb strings.Builder
	writeVec(&sb, v)
	return sb.String()
}

// FormatBox renders "{min: [x, y, z], max: [x, y, z]}".
func FormatBox(b r3.Box) string {
	var sb strings.Builder
	sb.WriteString("{min: ")
	writeVec(&sb, b.Min)
	sb.WriteString(", max: ")
	writeVec(&sb, b.Max)
	sb.WriteByte('}')
	return sb.String()
}

// FormatQuaternion renders "Quaternion<w=1, x=0, y=0, z=0>".
func FormatQuaternion(q quat.Number) string {
	var sb strings.Builder
	sb.WriteString("Quaternion<w=")
	sb.WriteString(formatFloat(q.Real))
	sb.WriteString(", x=")
	sb.WriteString(formatFloat(q.Imag))
	sb.WriteString(", y=")
	sb.WriteString(formatFloat(q.Jmag))
	sb.WriteString(", z=")
	sb.WriteString(formatFloat(q.Kmag))
	sb.WriteByte('>')
	return sb.String()
}

func writeVec(sb *strings.Builder, v r3.Vec) {
	sb.WriteByte('[')
	sb.WriteString(formatFloat(v.X))
	sb.WriteString(", ")
	sb.WriteString(formatFloat(v.Y))
	sb.WriteString(", ")
	sb.WriteString(formatFloat(v.Z))
	sb.WriteByte(']')
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
