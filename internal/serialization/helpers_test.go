package serialization

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"dsgprompt/internal/dsg"
)

// graphBuilder assembles small scene graphs for tests.
type graphBuilder struct {
	t *testing.T
	g *dsg.SceneGraph
}

func newGraphBuilder(t *testing.T, labels map[uint32]string) *graphBuilder {
	t.Helper()
	g := dsg.NewSceneGraph()
	ls, err := dsg.NewLabelspace(labels)
	require.NoError(t, err)
	g.SetLabelspace(dsg.LayerObjects, ls)
	return &graphBuilder{t: t, g: g}
}

func (b *graphBuilder) id(s string) dsg.NodeSymbol {
	b.t.Helper()
	id, err := dsg.ParseNodeSymbol(s)
	require.NoError(b.t, err)
	return id
}

func (b *graphBuilder) room(id string) *graphBuilder {
	b.t.Helper()
	_, err := b.g.AddNode(b.id(id), dsg.LayerRooms, dsg.Attributes{})
	require.NoError(b.t, err)
	return b
}

func (b *graphBuilder) place(id, room string) *graphBuilder {
	b.t.Helper()
	_, err := b.g.AddNode(b.id(id), dsg.LayerPlaces, dsg.Attributes{})
	require.NoError(b.t, err)
	require.NoError(b.t, b.g.AddEdge(b.id(room), b.id(id)))
	return b
}

func (b *graphBuilder) object(id, place string, attrs dsg.Attributes) *graphBuilder {
	b.t.Helper()
	_, err := b.g.AddNode(b.id(id), dsg.LayerObjects, attrs)
	require.NoError(b.t, err)
	require.NoError(b.t, b.g.AddEdge(b.id(place), b.id(id)))
	return b
}

func (b *graphBuilder) connect(a, c string) *graphBuilder {
	b.t.Helper()
	require.NoError(b.t, b.g.AddEdge(b.id(a), b.id(c)))
	return b
}

func (b *graphBuilder) build() *dsg.SceneGraph {
	return b.g
}

func label(v uint32) *uint32 { return &v }

func vec(x, y, z float64) *r3.Vec { return &r3.Vec{X: x, Y: y, Z: z} }

var testLabels = map[uint32]string{0: "chair", 1: "desk", 2: "lamp"}

// chairAndDesk is one room with one place holding a positioned chair and a
// desk with no position.
func chairAndDesk(t *testing.T) *dsg.SceneGraph {
	return newGraphBuilder(t, testLabels).
		room("R3").
		place("p1", "R3").
		object("O1", "p1", dsg.Attributes{SemanticLabel: label(0), Position: vec(1, 2, 3)}).
		object("O2", "p1", dsg.Attributes{SemanticLabel: label(1)}).
		build()
}

// office has three rooms, two of them adjacent, a non-object child under a
// place, and one empty room.
func office(t *testing.T) *dsg.SceneGraph {
	return newGraphBuilder(t, testLabels).
		room("R3").room("R4").room("R5").
		place("p10", "R3").place("p11", "R3").place("p12", "R4").
		object("O1", "p10", dsg.Attributes{SemanticLabel: label(0), Position: vec(1, 2, 3)}).
		object("O2", "p10", dsg.Attributes{SemanticLabel: label(0), Position: vec(4, 5, 6)}).
		object("O3", "p11", deskAttrs()).
		object("a1", "p11", dsg.Attributes{}).
		object("O4", "p12", dsg.Attributes{SemanticLabel: label(2)}).
		connect("R4", "R3").
		connect("R4", "R5").
		build()
}

// deskAttrs carries every attribute with a sanitizer.
func deskAttrs() dsg.Attributes {
	return dsg.Attributes{
		SemanticLabel: label(1),
		Position:      vec(0.5, 0, -1),
		BoundingBox:   &r3.Box{Min: r3.Vec{}, Max: r3.Vec{X: 2, Y: 1, Z: 0.75}},
		WorldRObject:  &quat.Number{Real: 1},
	}
}

// countingGraph records every read so tests can assert nothing was read.
type countingGraph struct {
	Graph
	reads int
}

func (c *countingGraph) Layer(id dsg.LayerID) *dsg.Layer {
	c.reads++
	return c.Graph.Layer(id)
}

func (c *countingGraph) Node(id dsg.NodeSymbol) (*dsg.Node, bool) {
	c.reads++
	return c.Graph.Node(id)
}

func (c *countingGraph) Labelspace(layer dsg.LayerID) (*dsg.Labelspace, bool) {
	c.reads++
	return c.Graph.Labelspace(layer)
}
