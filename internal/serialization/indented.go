package serialization

import (
	"fmt"
	"strings"
)

// EncodeIndented renders one tab-indented block per room followed by the
// room adjacency list:
//
//	Room (id = 3)
//		Room Object Summary:
//			- 2 chairs
//		Room Object Attributes:
//			- chair (id = 1, position=[1, 2, 3])
//	Edges (Room layer):
//		- Room(id=3) <----> Room(id=4)
func EncodeIndented(g Graph, keys DetailKeys) (string, error) {
	s, err := prepare(g, keys)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, room := range s.rooms {
		fmt.Fprintf(&sb, "Room (id = %d)\n", room.node.ID.CategoryID())
		sb.WriteString("\tRoom Object Summary:\n")
		for _, c := range room.counts.Nonzero() {
			fmt.Fprintf(&sb, "\t\t- %s\n", countPhrase(c.Count, c.Category))
		}

		if keys.Suppressed() {
			continue
		}
		sb.WriteString("\tRoom Object Attributes:\n")
		for _, obj := range room.objects {
			fmt.Fprintf(&sb, "\t\t- %s (id = %d", obj.category, obj.node.ID.CategoryID())
			for _, pair := range keys.pairs(obj.node.Attributes) {
				sb.WriteString(", ")
				sb.WriteString(pair)
			}
			sb.WriteString(")\n")
		}
	}

	sb.WriteString("Edges (Room layer):\n")
	for _, e := range s.edges {
		fmt.Fprintf(&sb, "\t- Room(id=%d) <----> Room(id=%d)\n", e.Source.CategoryID(), e.Target.CategoryID())
	}
	return sb.String(), nil
}
