package serialization

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dsgprompt/internal/dsg"
	"dsgprompt/internal/sanitize"
)

func TestEncodeIndented_ChairAndDesk(t *testing.T) {
	out, err := EncodeIndented(chairAndDesk(t), DetailKeys{"position"})
	require.NoError(t, err)

	want := "Room (id = 3)\n" +
		"\tRoom Object Summary:\n" +
		"\t\t- 1 chair\n" +
		"\t\t- 1 desk\n" +
		"\tRoom Object Attributes:\n" +
		"\t\t- chair (id = 1, position=[1, 2, 3])\n" +
		"\t\t- desk (id = 2, position=N/A)\n" +
		"Edges (Room layer):\n"
	assert.Equal(t, want, out)
	assert.NotContains(t, out, "chairs")
}

func TestEncodeIndented_Office(t *testing.T) {
	out, err := EncodeIndented(office(t), DetailKeys{"position", "world_R_object"})
	require.NoError(t, err)

	assert.Contains(t, out, "\t\t- 2 chairs\n")
	assert.Contains(t, out, "\t\t- 1 desk\n")
	assert.Contains(t, out, "\t\t- desk (id = 3, position=[0.5, 0, -1], world_R_object=Quaternion<w=1, x=0, y=0, z=0>)\n")
	assert.Contains(t, out, "\t\t- lamp (id = 4, position=N/A, world_R_object=N/A)\n")
	assert.Contains(t, out, "\t\t- chair (id = 1, position=[1, 2, 3], world_R_object=N/A)\n")
	assert.Equal(t, 3+4, strings.Count(out, "(id = "), "three rooms, four objects")
	assert.True(t, strings.HasSuffix(out, "Edges (Room layer):\n\t- Room(id=3) <----> Room(id=4)\n\t- Room(id=4) <----> Room(id=5)\n"))
	assert.Contains(t, out, "Room (id = 5)\n\tRoom Object Summary:\n\tRoom Object Attributes:\n")
}

func TestEncodeIndented_NoKeys(t *testing.T) {
	out, err := EncodeIndented(chairAndDesk(t), nil)
	require.NoError(t, err)
	assert.Contains(t, out, "\t\t- chair (id = 1)\n")
}

func TestEncodeJSON_ChairAndDesk(t *testing.T) {
	out, err := EncodeJSON(chairAndDesk(t), DetailKeys{"position"})
	require.NoError(t, err)

	want := `{
	  "rooms": [
	    {
	      "id": 3,
	      "neighbor_rooms": [],
	      "objects": {
	        "count summary": {"chair": 1, "desk": 1},
	        "attributes": {
	          "chair": {"id: 1": {"position": [1, 2, 3]}},
	          "desk": {"id: 2": {"position": "N/A"}}
	        }
	      }
	    }
	  ]
	}`
	assert.JSONEq(t, want, out)
	assert.True(t, strings.HasPrefix(out, "{\n  \"rooms\": ["), "two-space indentation")
}

func TestEncodeJSON_Office(t *testing.T) {
	out, err := EncodeJSON(office(t), DetailKeys{"bounding_box", "world_R_object"})
	require.NoError(t, err)

	var doc struct {
		Rooms []struct {
			ID            uint64  `json:"id"`
			NeighborRooms []int64 `json:"neighbor_rooms"`
			Objects       struct {
				CountSummary map[string]int                       `json:"count summary"`
				Attributes   map[string]map[string]map[string]any `json:"attributes"`
			} `json:"objects"`
		} `json:"rooms"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Rooms, 3)

	r3 := doc.Rooms[0]
	assert.Equal(t, uint64(3), r3.ID)
	assert.Equal(t, []int64{4}, r3.NeighborRooms)
	assert.Equal(t, map[string]int{"chair": 2, "desk": 1}, r3.Objects.CountSummary)
	desk := r3.Objects.Attributes["desk"]["id: 3"]
	assert.Equal(t, map[string]any{
		"min": []any{0.0, 0.0, 0.0},
		"max": []any{2.0, 1.0, 0.75},
	}, desk["bounding_box"])
	assert.Equal(t, map[string]any{"w": 1.0, "x": 0.0, "y": 0.0, "z": 0.0}, desk["world_R_object"])
	assert.Equal(t, "N/A", r3.Objects.Attributes["chair"]["id: 1"]["bounding_box"])

	assert.Equal(t, []int64{3, 5}, doc.Rooms[1].NeighborRooms)
	assert.Empty(t, doc.Rooms[2].Objects.CountSummary)

	assert.Less(t, strings.Index(out, `"chair"`), strings.Index(out, `"desk"`), "labelspace order")
	assert.Less(t, strings.Index(out, `"id: 1"`), strings.Index(out, `"id: 2"`), "traversal order")
}

func TestEncodeJSON_AlwaysValid(t *testing.T) {
	graphs := map[string]*dsg.SceneGraph{
		"chair and desk": chairAndDesk(t),
		"office":         office(t),
		"empty":          newGraphBuilder(t, testLabels).build(),
	}
	keyLists := []DetailKeys{
		nil,
		{DetailNone},
		{"position"},
		{"position", "bounding_box", "world_R_object"},
		{DetailNone, "position"},
	}
	for name, g := range graphs {
		for _, keys := range keyLists {
			out, err := EncodeJSON(g, keys)
			require.NoError(t, err)
			assert.True(t, json.Valid([]byte(out)), "%s %v: %s", name, keys, out)
		}
	}

	out, err := EncodeJSON(newGraphBuilder(t, testLabels).build(), nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rooms": []}`, out)
}

func TestEncodeJSON_Suppressed(t *testing.T) {
	out, err := EncodeJSON(chairAndDesk(t), DetailKeys{DetailNone})
	require.NoError(t, err)
	assert.NotContains(t, out, `"attributes"`)
	assert.Contains(t, out, `"count summary"`)
}

func TestEncodeTriplets_ChairAndDesk(t *testing.T) {
	out, err := EncodeTriplets(chairAndDesk(t), DetailKeys{"position"})
	require.NoError(t, err)

	want := strings.Join([]string{
		"(Room [id = 3], has, chair [count = 1])",
		"(Room [id = 3], has, desk [count = 1])",
		"(chair [room_id = 3 object_id = 1], has, Attributes [position=[1, 2, 3]])",
		"(desk [room_id = 3 object_id = 2], has, Attributes [position=N/A])",
	}, " \t | ")
	assert.Equal(t, want, out)
}

func TestEncodeTriplets_Office(t *testing.T) {
	out, err := EncodeTriplets(office(t), DetailKeys{DetailNone})
	require.NoError(t, err)

	triples := strings.Split(out, TripletSeparator)
	assert.Equal(t, []string{
		"(Room [id = 3], has, chair [count = 2])",
		"(Room [id = 3], has, desk [count = 1])",
		"(Room [id = 4], has, lamp [count = 1])",
		"(Room [id = 3], connects to, Room [id = 4])",
		"(Room [id = 4], connects to, Room [id = 5])",
	}, triples)
}

func TestEncodeNatural_ChairAndDesk(t *testing.T) {
	out, err := EncodeNatural(chairAndDesk(t), DetailKeys{"position"})
	require.NoError(t, err)

	want := "~~~~~~~~~~ ROOM DESCRIPTIONS ~~~~~~~~~~\n" +
		"\nROOM 3 SUMMARY:\n" +
		"Inside this room there are 1 of chair and 1 of desk.\n" +
		"The chair (id = 1) has the following attributes: position is [1, 2, 3].\n" +
		"The desk (id = 2) has the following attributes: No attributes available.\n" +
		"\n~~~~~~~~~~ ROOM LAYOUT SUMMARY ~~~~~~~~~~\n" +
		"None of the rooms are connected to each other.\n"
	assert.Equal(t, want, out)
}

func TestEncodeNatural_Office(t *testing.T) {
	out, err := EncodeNatural(office(t), DetailKeys{"position", "bounding_box", "world_R_object"})
	require.NoError(t, err)

	assert.Contains(t, out, "Inside this room there are 2 of chair and 1 of desk.\n")
	assert.Contains(t, out, "Inside this room there is 1 of lamp.\n")
	assert.Contains(t, out, "Inside this room there are no objects.\n")
	assert.Contains(t, out, "The desk (id = 3) has the following attributes: position is [0.5, 0, -1], "+
		"bounding_box is {min: [0, 0, 0], max: [2, 1, 0.75]}, and world_R_object is Quaternion<w=1, x=0, y=0, z=0>.\n")
	assert.Contains(t, out, "The chair (id = 1) has the following attributes: position is [1, 2, 3].\n")
	assert.Contains(t, out, "The lamp (id = 4) has the following attributes: No attributes available.\n")
	assert.True(t, strings.HasSuffix(out, "Additionally several rooms are connected to each other as follows:\n"+
		"Room 3 is connected to Room 4. Room 4 is connected to Room 5.\n"))
}

func TestSuppressedDetailIsUniform(t *testing.T) {
	g := office(t)
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			bare, err := Encode(g, kind, DetailKeys{DetailNone})
			require.NoError(t, err)
			withKeys, err := Encode(g, kind, DetailKeys{"position", DetailNone, "bounding_box"})
			require.NoError(t, err)
			assert.Equal(t, bare, withKeys)

			assert.NotContains(t, bare, "position")
			assert.NotContains(t, bare, "id = 1,")
		})
	}
}

func TestEncoders_CountsAgree(t *testing.T) {
	g := office(t)
	table, err := CountObjects(g)
	require.NoError(t, err)

	triplets, err := EncodeTriplets(g, DetailKeys{DetailNone})
	require.NoError(t, err)
	indented, err := EncodeIndented(g, DetailKeys{DetailNone})
	require.NoError(t, err)

	for _, rc := range table.Rooms() {
		for _, c := range rc.Nonzero() {
			assert.Contains(t, indented, "\t\t- "+countPhrase(c.Count, c.Category)+"\n")
			assert.Contains(t, triplets, c.Category+" [count = ")
		}
	}
}

func TestEncoders_UnknownLabelFailsAtomically(t *testing.T) {
	g := newGraphBuilder(t, testLabels).
		room("R1").
		place("p1", "R1").
		object("O1", "p1", dsg.Attributes{SemanticLabel: label(9)}).
		build()

	for _, kind := range Kinds() {
		out, err := Encode(g, kind, DetailKeys{"position"})
		assert.Empty(t, out, kind.String())
		assert.True(t, errors.Is(err, ErrUnknownLabel), kind.String())
	}
}

func TestEncoders_Deterministic(t *testing.T) {
	// Same scene, nodes and edges inserted in a different order.
	shuffled := newGraphBuilder(t, testLabels).
		room("R5").room("R4").room("R3").
		place("p12", "R4").place("p11", "R3").place("p10", "R3").
		object("O4", "p12", dsg.Attributes{SemanticLabel: label(2)}).
		object("a1", "p11", dsg.Attributes{}).
		object("O3", "p11", deskAttrs()).
		object("O2", "p10", dsg.Attributes{SemanticLabel: label(0), Position: vec(4, 5, 6)}).
		object("O1", "p10", dsg.Attributes{SemanticLabel: label(0), Position: vec(1, 2, 3)}).
		connect("R5", "R4").
		connect("R3", "R4").
		build()

	keys := DetailKeys{"position", "bounding_box", "world_R_object"}
	for _, kind := range Kinds() {
		a, err := Encode(office(t), kind, keys)
		require.NoError(t, err)
		b, err := Encode(shuffled, kind, keys)
		require.NoError(t, err)
		assert.Equal(t, a, b, kind.String())
	}
}

func TestEncoders_Concurrent(t *testing.T) {
	g := office(t)
	keys := DetailKeys{"position", "bounding_box"}

	want := make(map[Kind]string)
	for _, kind := range Kinds() {
		out, err := Encode(g, kind, keys)
		require.NoError(t, err)
		want[kind] = out
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		for _, kind := range Kinds() {
			wg.Add(1)
			go func(kind Kind) {
				defer wg.Done()
				out, err := Encode(g, kind, keys)
				assert.NoError(t, err)
				assert.Equal(t, want[kind], out)
			}(kind)
		}
	}
	wg.Wait()
}

func TestPrintedAttributesSanitize(t *testing.T) {
	// Every printed attribute must parse back through the sanitizer.
	g := office(t)
	for _, n := range g.Layer(dsg.LayerObjects).Nodes() {
		for _, key := range sanitize.Keys() {
			raw, ok := n.Attributes.Lookup(key)
			if !ok {
				continue
			}
			_, err := sanitize.Sanitize(key, key+" = "+raw)
			assert.NoError(t, err, "%s %s", n.ID, key)
		}
	}
}
