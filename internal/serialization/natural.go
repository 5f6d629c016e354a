package serialization

import (
	"fmt"
	"strings"

	"dsgprompt/internal/dsg"
)

const (
	roomDescriptionsBanner = "~~~~~~~~~~ ROOM DESCRIPTIONS ~~~~~~~~~~"
	roomLayoutBanner       = "~~~~~~~~~~ ROOM LAYOUT SUMMARY ~~~~~~~~~~"
)

// EncodeNatural renders the scene as English prose: a summary per room, one
// sentence per object, and a closing paragraph on room adjacency.
func EncodeNatural(g Graph, keys DetailKeys) (string, error) {
	s, err := prepare(g, keys)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(roomDescriptionsBanner)
	sb.WriteString("\n")
	for _, room := range s.rooms {
		fmt.Fprintf(&sb, "\nROOM %d SUMMARY:\n", room.node.ID.CategoryID())
		sb.WriteString(summarizeObjects(room.counts))
		sb.WriteString("\n")
		if keys.Suppressed() {
			continue
		}
		for _, obj := range room.objects {
			sb.WriteString(describeObject(obj, keys))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(roomLayoutBanner)
	sb.WriteString("\n")
	if len(s.edges) == 0 {
		sb.WriteString("None of the rooms are connected to each other.\n")
		return sb.String(), nil
	}
	sb.WriteString("Additionally several rooms are connected to each other as follows:\n")
	sentences := make([]string, len(s.edges))
	for i, e := range s.edges {
		sentences[i] = fmt.Sprintf("Room %d is connected to Room %d.", e.Source.CategoryID(), e.Target.CategoryID())
	}
	sb.WriteString(strings.Join(sentences, " "))
	sb.WriteString("\n")
	return sb.String(), nil
}

func summarizeObjects(counts RoomCounts) string {
	nonzero := counts.Nonzero()
	items := make([]string, len(nonzero))
	for i, c := range nonzero {
		items[i] = fmt.Sprintf("%d of %s", c.Count, c.Category)
	}
	switch len(items) {
	case 0:
		return "Inside this room there are no objects."
	case 1:
		return "Inside this room there is " + items[0] + "."
	default:
		return "Inside this room there are " + joinList(items) + "."
	}
}

// describeObject lists the present attributes; absent ones are left out.
func describeObject(obj objectView, keys DetailKeys) string {
	var parts []string
	for _, k := range keys {
		if v, ok := obj.node.Attributes.Lookup(k); ok && v != dsg.Absent {
			parts = append(parts, k+" is "+v)
		}
	}
	sentence := "No attributes available"
	if len(parts) > 0 {
		sentence = joinList(parts)
	}
	return fmt.Sprintf("The %s (id = %d) has the following attributes: %s.", obj.category, obj.node.ID.CategoryID(), sentence)
}
