package dsg

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph construction.
var (
	ErrNodeNotFound  = errors.New("dsg: node not found")
	ErrDuplicateNode = errors.New("dsg: duplicate node")
	ErrInvalidEdge   = errors.New("dsg: invalid edge")
)

// SceneGraph is a layered scene graph with per-layer labelspaces.
type SceneGraph struct {
	layers      map[LayerID]*Layer
	nodes       map[NodeSymbol]*Node
	labelspaces map[LayerID]*Labelspace
}

// NewSceneGraph returns an empty graph with the room, place and object
// layers present.
func NewSceneGraph() *SceneGraph {
	g := &SceneGraph{
		layers:      make(map[LayerID]*Layer),
		nodes:       make(map[NodeSymbol]*Node),
		labelspaces: make(map[LayerID]*Labelspace),
	}
	for _, id := range []LayerID{LayerObjects, LayerPlaces, LayerRooms} {
		g.layers[id] = newLayer(id)
	}
	return g
}

// Layer returns the layer with the given id, or nil.
func (g *SceneGraph) Layer(id LayerID) *Layer {
	return g.layers[id]
}

// Node looks up a node by symbol.
func (g *SceneGraph) Node(id NodeSymbol) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Labelspace returns the labelspace scoped to a layer.
func (g *SceneGraph) Labelspace(layer LayerID) (*Labelspace, bool) {
	ls, ok := g.labelspaces[layer]
	return ls, ok
}

// NumNodes returns the total number of nodes across layers.
func (g *SceneGraph) NumNodes() int {
	return len(g.nodes)
}

// SetLabelspace installs the labelspace for a layer.
func (g *SceneGraph) SetLabelspace(layer LayerID, ls *Labelspace) {
	g.labelspaces[layer] = ls
}

// AddNode inserts a node into a layer.
func (g *SceneGraph) AddNode(id NodeSymbol, layer LayerID, attrs Attributes) (*Node, error) {
	if _, dup := g.nodes[id]; dup {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, id)
	}
	l, ok := g.layers[layer]
	if !ok {
		l = newLayer(layer)
		g.layers[layer] = l
	}
	n := &Node{ID: id, Layer: layer, Attributes: attrs}
	g.nodes[id] = n
	l.insertNode(n)
	return n, nil
}

// AddEdge connects two existing nodes. Nodes in the same layer become
// siblings; otherwise the node in the higher layer owns the other.
func (g *SceneGraph) AddEdge(a, b NodeSymbol) error {
	if a == b {
		return fmt.Errorf("%w: self edge on %s", ErrInvalidEdge, a)
	}
	na, ok := g.nodes[a]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, a)
	}
	nb, ok := g.nodes[b]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, b)
	}

	if na.Layer == nb.Layer {
		if g.layers[na.Layer].insertEdge(newEdge(a, b)) {
			na.siblings = insertSymbol(na.siblings, b)
			nb.siblings = insertSymbol(nb.siblings, a)
		}
		return nil
	}

	parent, child := na, nb
	if nb.Layer > na.Layer {
		parent, child = nb, na
	}
	if child.hasParent && child.parent != parent.ID {
		return fmt.Errorf("%w: %s already owned by %s, not %s", ErrInvalidEdge, child.ID, child.parent, parent.ID)
	}
	child.parent = parent.ID
	child.hasParent = true
	parent.children = insertSymbol(parent.children, child.ID)
	return nil
}
