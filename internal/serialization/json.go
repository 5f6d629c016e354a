package serialization

import (
	"encoding/json"
	"fmt"

	"dsgprompt/internal/dsg"
	"dsgprompt/internal/sanitize"
)

// EncodeJSON renders the scene as indented JSON:
//
//	{"rooms": [{"id": 3, "neighbor_rooms": [4],
//	            "objects": {"count summary": {"chair": 2},
//	                        "attributes": {"chair": {"id: 1": {"position": [1, 2, 3]}}}}}]}
//
// Attribute values are the sanitized structured form; an absent attribute
// is the string "N/A". Categories follow labelspace order and objects follow
// traversal order.
func EncodeJSON(g Graph, keys DetailKeys) (string, error) {
	s, err := prepare(g, keys)
	if err != nil {
		return "", err
	}

	rooms := make([]sanitize.Record, 0, len(s.rooms))
	for _, room := range s.rooms {
		neighbors := make([]uint64, 0, len(room.node.Siblings()))
		for _, id := range room.node.Siblings() {
			neighbors = append(neighbors, id.CategoryID())
		}

		summary := sanitize.Record{}
		for _, c := range room.counts.Nonzero() {
			summary = append(summary, sanitize.Field{Key: c.Category, Value: c.Count})
		}
		objects := sanitize.Record{{Key: "count summary", Value: summary}}

		if !keys.Suppressed() {
			details, err := objectDetails(s.categories, room.objects, keys)
			if err != nil {
				return "", err
			}
			objects = append(objects, sanitize.Field{Key: "attributes", Value: details})
		}

		rooms = append(rooms, sanitize.Record{
			{Key: "id", Value: room.node.ID.CategoryID()},
			{Key: "neighbor_rooms", Value: neighbors},
			{Key: "objects", Value: objects},
		})
	}

	out, err := json.MarshalIndent(sanitize.Record{{Key: "rooms", Value: rooms}}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal scene: %w", err)
	}
	return string(out), nil
}

// objectDetails groups objects by category, then by "id: <category_id>".
func objectDetails(categories []string, objects []objectView, keys DetailKeys) (sanitize.Record, error) {
	byCategory := make(map[string]sanitize.Record)
	for _, obj := range objects {
		attrs, err := sanitizedAttributes(obj.node, keys)
		if err != nil {
			return nil, err
		}
		id := fmt.Sprintf("id: %d", obj.node.ID.CategoryID())
		byCategory[obj.category] = append(byCategory[obj.category], sanitize.Field{Key: id, Value: attrs})
	}

	details := sanitize.Record{}
	for _, category := range categories {
		if rec, ok := byCategory[category]; ok {
			details = append(details, sanitize.Field{Key: category, Value: rec})
		}
	}
	return details, nil
}

func sanitizedAttributes(obj *dsg.Node, keys DetailKeys) (sanitize.Record, error) {
	out := sanitize.Record{}
	for _, key := range keys {
		raw, ok := obj.Attributes.Lookup(key)
		if !ok {
			out = out.Set(key, dsg.Absent)
			continue
		}
		rec, err := sanitize.Sanitize(key, key+" = "+raw)
		if err != nil {
			return nil, fmt.Errorf("object %s: %w", obj.ID, err)
		}
		for _, f := range rec {
			out = out.Set(f.Key, f.Value)
		}
	}
	return out, nil
}
