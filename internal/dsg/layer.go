package dsg

import (
	"fmt"
	"sort"
	"strings"
)

// LayerID identifies a layer of the scene graph. Higher layers own lower
// layers.
type LayerID uint8

const (
	LayerObjects LayerID = 2
	LayerPlaces  LayerID = 3
	LayerRooms   LayerID = 4
)

// String returns the logical layer name.
func (l LayerID) String() string {
	switch l {
	case LayerObjects:
		return "objects"
	case LayerPlaces:
		return "places"
	case LayerRooms:
		return "rooms"
	default:
		return fmt.Sprintf("layer(%d)", uint8(l))
	}
}

// ParseLayer resolves a logical layer name.
func ParseLayer(name string) (LayerID, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "objects", "object":
		return LayerObjects, nil
	case "places", "place":
		return LayerPlaces, nil
	case "rooms", "room":
		return LayerRooms, nil
	default:
		return 0, fmt.Errorf("dsg: unknown layer %q", name)
	}
}

// Edge is an undirected intra-layer edge. Source is always the smaller
// symbol.
type Edge struct {
	Source NodeSymbol
	Target NodeSymbol
}

func newEdge(a, b NodeSymbol) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{Source: a, Target: b}
}

// Layer is an ordered collection of nodes plus the edges between them.
type Layer struct {
	ID LayerID

	nodes []*Node
	edges []Edge
	seen  map[Edge]struct{}
}

func newLayer(id LayerID) *Layer {
	return &Layer{ID: id, seen: make(map[Edge]struct{})}
}

// Nodes returns the layer's nodes in ascending symbol order.
func (l *Layer) Nodes() []*Node {
	if l == nil {
		return nil
	}
	return l.nodes
}

// Edges returns the layer's intra-layer edges ordered by (source, target).
func (l *Layer) Edges() []Edge {
	if l == nil {
		return nil
	}
	return l.edges
}

// Len returns the number of nodes in the layer.
func (l *Layer) Len() int {
	if l == nil {
		return 0
	}
	return len(l.nodes)
}

func (l *Layer) insertNode(n *Node) {
	i := sort.Search(len(l.nodes), func(i int) bool { return l.nodes[i].ID >= n.ID })
	l.nodes = append(l.nodes, nil)
	copy(l.nodes[i+1:], l.nodes[i:])
	l.nodes[i] = n
}

func (l *Layer) insertEdge(e Edge) bool {
	if _, dup := l.seen[e]; dup {
		return false
	}
	l.seen[e] = struct{}{}
	i := sort.Search(len(l.edges), func(i int) bool {
		if l.edges[i].Source != e.Source {
			return l.edges[i].Source > e.Source
		}
		return l.edges[i].Target >= e.Target
	})
	l.edges = append(l.edges, Edge{})
	copy(l.edges[i+1:], l.edges[i:])
	l.edges[i] = e
	return true
}
