package dsg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

func sym(t *testing.T, s string) NodeSymbol {
	t.Helper()
	id, err := ParseNodeSymbol(s)
	require.NoError(t, err)
	return id
}

func TestSceneGraph_Ownership(t *testing.T) {
	g := NewSceneGraph()
	for _, n := range []struct {
		id    string
		layer LayerID
	}{
		{"R2", LayerRooms}, {"R1", LayerRooms},
		{"p5", LayerPlaces}, {"p4", LayerPlaces},
		{"O9", LayerObjects}, {"O8", LayerObjects},
	} {
		_, err := g.AddNode(sym(t, n.id), n.layer, Attributes{})
		require.NoError(t, err)
	}

	require.NoError(t, g.AddEdge(sym(t, "R1"), sym(t, "p5")))
	require.NoError(t, g.AddEdge(sym(t, "p4"), sym(t, "R1")), "child listed first still resolves ownership by layer")
	require.NoError(t, g.AddEdge(sym(t, "p4"), sym(t, "O9")))
	require.NoError(t, g.AddEdge(sym(t, "p4"), sym(t, "O8")))
	require.NoError(t, g.AddEdge(sym(t, "R2"), sym(t, "R1")))
	require.NoError(t, g.AddEdge(sym(t, "R1"), sym(t, "R2")), "duplicate sibling edge is ignored")

	rooms := g.Layer(LayerRooms)
	require.Equal(t, 2, rooms.Len())
	assert.Equal(t, sym(t, "R1"), rooms.Nodes()[0].ID)
	assert.Equal(t, []Edge{{Source: sym(t, "R1"), Target: sym(t, "R2")}}, rooms.Edges())

	r1, ok := g.Node(sym(t, "R1"))
	require.True(t, ok)
	assert.Equal(t, []NodeSymbol{sym(t, "p4"), sym(t, "p5")}, r1.Children())
	assert.Equal(t, []NodeSymbol{sym(t, "R2")}, r1.Siblings())

	p4, _ := g.Node(sym(t, "p4"))
	assert.Equal(t, []NodeSymbol{sym(t, "O8"), sym(t, "O9")}, p4.Children())
	parent, ok := p4.Parent()
	require.True(t, ok)
	assert.Equal(t, sym(t, "R1"), parent)
	assert.Equal(t, 6, g.NumNodes())
}

func TestSceneGraph_Errors(t *testing.T) {
	g := NewSceneGraph()
	_, err := g.AddNode(sym(t, "R1"), LayerRooms, Attributes{})
	require.NoError(t, err)
	_, err = g.AddNode(sym(t, "R1"), LayerRooms, Attributes{})
	assert.True(t, errors.Is(err, ErrDuplicateNode))

	assert.True(t, errors.Is(g.AddEdge(sym(t, "R1"), sym(t, "p1")), ErrNodeNotFound))
	assert.True(t, errors.Is(g.AddEdge(sym(t, "R1"), sym(t, "R1")), ErrInvalidEdge))

	_, err = g.AddNode(sym(t, "R2"), LayerRooms, Attributes{})
	require.NoError(t, err)
	_, err = g.AddNode(sym(t, "p1"), LayerPlaces, Attributes{})
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(sym(t, "R1"), sym(t, "p1")))
	assert.True(t, errors.Is(g.AddEdge(sym(t, "R2"), sym(t, "p1")), ErrInvalidEdge), "a place has one owner")
}

func TestLabelspace(t *testing.T) {
	ls, err := NewLabelspace(map[uint32]string{7: "lamp", 0: "chair", 3: "desk"})
	require.NoError(t, err)

	assert.Equal(t, []string{"chair", "desk", "lamp"}, ls.Names())
	assert.Equal(t, 3, ls.Len())

	name, ok := ls.Name(3)
	assert.True(t, ok)
	assert.Equal(t, "desk", name)
	label, ok := ls.Label("lamp")
	assert.True(t, ok)
	assert.Equal(t, uint32(7), label)

	_, ok = ls.Name(99)
	assert.False(t, ok)

	_, err = NewLabelspace(map[uint32]string{1: "chair", 2: "chair"})
	assert.Error(t, err)
	_, err = NewLabelspace(map[uint32]string{1: ""})
	assert.Error(t, err)
}

func TestAttributes_Lookup(t *testing.T) {
	label := uint32(4)
	attrs := Attributes{
		SemanticLabel: &label,
		Position:      &r3.Vec{X: 1, Y: 2.5, Z: -3},
		BoundingBox:   &r3.Box{Min: r3.Vec{}, Max: r3.Vec{X: 1, Y: 1, Z: 1}},
		WorldRObject:  &quat.Number{Real: 1},
	}

	assert.Equal(t, "4", attrs.Value(KeySemanticLabel))
	assert.Equal(t, "[1, 2.5, -3]", attrs.Value(KeyPosition))
	assert.Equal(t, "{min: [0, 0, 0], max: [1, 1, 1]}", attrs.Value(KeyBoundingBox))
	assert.Equal(t, "Quaternion<w=1, x=0, y=0, z=0>", attrs.Value(KeyWorldRObject))

	var empty Attributes
	for _, key := range []string{KeySemanticLabel, KeyPosition, KeyBoundingBox, KeyWorldRObject, "color"} {
		_, ok := empty.Lookup(key)
		assert.False(t, ok, key)
		assert.Equal(t, Absent, empty.Value(key))
	}
}
