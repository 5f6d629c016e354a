package serialization

import (
	"fmt"

	"dsgprompt/internal/dsg"
)

// Graph is the read API the encoders need. *dsg.SceneGraph implements it.
type Graph interface {
	Layer(id dsg.LayerID) *dsg.Layer
	Node(id dsg.NodeSymbol) (*dsg.Node, bool)
	Labelspace(layer dsg.LayerID) (*dsg.Labelspace, bool)
}

// CategoryCount is the number of objects of one category in a room.
type CategoryCount struct {
	Category string
	Count    int
}

// RoomCounts holds a count for every labelspace category, zeros included,
// in labelspace order.
type RoomCounts struct {
	Room       dsg.NodeSymbol
	Categories []CategoryCount
}

// Nonzero returns the categories with at least one object.
func (rc RoomCounts) Nonzero() []CategoryCount {
	var out []CategoryCount
	for _, c := range rc.Categories {
		if c.Count > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Count returns the count for one category.
func (rc RoomCounts) Count(category string) int {
	for _, c := range rc.Categories {
		if c.Category == category {
			return c.Count
		}
	}
	return 0
}

// Total returns the number of objects in the room.
func (rc RoomCounts) Total() int {
	n := 0
	for _, c := range rc.Categories {
		n += c.Count
	}
	return n
}

// CountTable maps each room to its per-category object counts.
type CountTable struct {
	rooms []RoomCounts
	index map[dsg.NodeSymbol]int
}

// Rooms returns the per-room counts in room layer order.
func (t *CountTable) Rooms() []RoomCounts {
	return t.rooms
}

// Room returns the counts for one room.
func (t *CountTable) Room(id dsg.NodeSymbol) (RoomCounts, bool) {
	i, ok := t.index[id]
	if !ok {
		return RoomCounts{}, false
	}
	return t.rooms[i], true
}

// CountObjects walks rooms -> places -> objects once and tallies objects per
// category. Non-object children of a place are skipped.
func CountObjects(g Graph) (*CountTable, error) {
	s, err := aggregate(g)
	if err != nil {
		return nil, err
	}
	t := &CountTable{
		rooms: make([]RoomCounts, len(s.rooms)),
		index: make(map[dsg.NodeSymbol]int, len(s.rooms)),
	}
	for i, r := range s.rooms {
		t.rooms[i] = r.counts
		t.index[r.node.ID] = i
	}
	return t, nil
}

// ObjectsInRoom returns the object nodes under a room's places, in
// traversal order.
func ObjectsInRoom(g Graph, room *dsg.Node) ([]*dsg.Node, error) {
	var out []*dsg.Node
	err := walkObjects(g, room, func(obj *dsg.Node) error {
		out = append(out, obj)
		return nil
	})
	return out, err
}

// scene is the shared aggregation every encoder renders from.
type scene struct {
	categories []string
	rooms      []roomView
	edges      []dsg.Edge
}

type roomView struct {
	node    *dsg.Node
	counts  RoomCounts
	objects []objectView
}

type objectView struct {
	node     *dsg.Node
	category string
}

func aggregate(g Graph) (*scene, error) {
	ls, ok := g.Labelspace(dsg.LayerObjects)
	if !ok {
		ls, _ = dsg.NewLabelspace(nil)
	}
	s := &scene{categories: ls.Names()}
	slot := make(map[string]int, len(s.categories))
	for i, name := range s.categories {
		slot[name] = i
	}

	rooms := g.Layer(dsg.LayerRooms)
	s.edges = rooms.Edges()
	for _, room := range rooms.Nodes() {
		rv := roomView{
			node: room,
			counts: RoomCounts{
				Room:       room.ID,
				Categories: make([]CategoryCount, len(s.categories)),
			},
		}
		for i, name := range s.categories {
			rv.counts.Categories[i].Category = name
		}
		err := walkObjects(g, room, func(obj *dsg.Node) error {
			category, err := resolveCategory(ls, obj)
			if err != nil {
				return err
			}
			rv.counts.Categories[slot[category]].Count++
			rv.objects = append(rv.objects, objectView{node: obj, category: category})
			return nil
		})
		if err != nil {
			return nil, err
		}
		s.rooms = append(s.rooms, rv)
	}
	return s, nil
}

func walkObjects(g Graph, room *dsg.Node, fn func(*dsg.Node) error) error {
	for _, placeID := range room.Children() {
		place, ok := g.Node(placeID)
		if !ok {
			return fmt.Errorf("%w: %s under %s", ErrMissingNode, placeID, room.ID)
		}
		for _, childID := range place.Children() {
			if !childID.IsObject() {
				continue
			}
			obj, ok := g.Node(childID)
			if !ok {
				return fmt.Errorf("%w: %s under %s", ErrMissingNode, childID, placeID)
			}
			if err := fn(obj); err != nil {
				return err
			}
		}
	}
	return nil
}

func resolveCategory(ls *dsg.Labelspace, obj *dsg.Node) (string, error) {
	label := obj.Attributes.SemanticLabel
	if label == nil {
		return "", &LabelError{Object: obj.ID, Unlabeled: true}
	}
	name, ok := ls.Name(*label)
	if !ok {
		return "", &LabelError{Object: obj.ID, Label: *label}
	}
	return name, nil
}
