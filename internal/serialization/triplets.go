package serialization

import (
	"fmt"
	"strings"
)

// TripletSeparator joins consecutive triples.
const TripletSeparator = " \t | "

// EncodeTriplets renders subject-predicate-object triples: category counts
// per room, then object attributes per room, then room adjacency.
func EncodeTriplets(g Graph, keys DetailKeys) (string, error) {
	s, err := prepare(g, keys)
	if err != nil {
		return "", err
	}

	var triples []string
	for _, room := range s.rooms {
		roomID := room.node.ID.CategoryID()
		for _, c := range room.counts.Nonzero() {
			triples = append(triples, fmt.Sprintf("(Room [id = %d], has, %s [count = %d])", roomID, c.Category, c.Count))
		}
		if keys.Suppressed() {
			continue
		}
		for _, obj := range room.objects {
			triples = append(triples, fmt.Sprintf("(%s [room_id = %d object_id = %d], has, Attributes [%s])",
				obj.category, roomID, obj.node.ID.CategoryID(), strings.Join(keys.pairs(obj.node.Attributes), ", ")))
		}
	}
	for _, e := range s.edges {
		triples = append(triples, fmt.Sprintf("(Room [id = %d], connects to, Room [id = %d])", e.Source.CategoryID(), e.Target.CategoryID()))
	}
	return strings.Join(triples, TripletSeparator), nil
}
