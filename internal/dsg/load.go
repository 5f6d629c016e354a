package dsg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"dsgprompt/internal/sanitize"
)

// graphFile is the on-disk scene graph layout:
//
//	{
//	  "labelspaces": {"objects": {"0": "chair", "1": "desk"}},
//	  "nodes": [{"id": "O1", "layer": "objects", "attributes": {"semantic_label": 0, "position": [1, 2, 3]}}],
//	  "edges": [{"source": "p10", "target": "O1"}]
//	}
type graphFile struct {
	Labelspaces map[string]map[string]string `json:"labelspaces"`
	Nodes       []nodeFile                   `json:"nodes"`
	Edges       []edgeFile                   `json:"edges"`
}

type nodeFile struct {
	ID         string                     `json:"id"`
	Layer      string                     `json:"layer"`
	Attributes map[string]json.RawMessage `json:"attributes,omitempty"`
}

type edgeFile struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Load reads a scene graph from a JSON file.
func Load(path string) (*SceneGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene graph: %w", err)
	}
	defer f.Close()

	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return g, nil
}

// Decode reads a scene graph from JSON.
func Decode(r io.Reader) (*SceneGraph, error) {
	var file graphFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse scene graph: %w", err)
	}

	g := NewSceneGraph()
	for layerName, entries := range file.Labelspaces {
		layer, err := ParseLayer(layerName)
		if err != nil {
			return nil, err
		}
		codes := make(map[uint32]string, len(entries))
		for code, name := range entries {
			label, err := strconv.ParseUint(code, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("labelspace %s: bad label code %q", layerName, code)
			}
			codes[uint32(label)] = name
		}
		ls, err := NewLabelspace(codes)
		if err != nil {
			return nil, fmt.Errorf("labelspace %s: %w", layerName, err)
		}
		g.SetLabelspace(layer, ls)
	}

	for _, nf := range file.Nodes {
		id, err := ParseNodeSymbol(nf.ID)
		if err != nil {
			return nil, err
		}
		layer, err := ParseLayer(nf.Layer)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", nf.ID, err)
		}
		attrs, err := decodeAttributes(nf.Attributes)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", nf.ID, err)
		}
		if _, err := g.AddNode(id, layer, attrs); err != nil {
			return nil, err
		}
	}

	for _, ef := range file.Edges {
		src, err := ParseNodeSymbol(ef.Source)
		if err != nil {
			return nil, err
		}
		dst, err := ParseNodeSymbol(ef.Target)
		if err != nil {
			return nil, err
		}
		if err := g.AddEdge(src, dst); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// decodeAttributes accepts structured JSON values or the printed string form
// of each attribute. Unrecognized keys are ignored.
func decodeAttributes(raw map[string]json.RawMessage) (Attributes, error) {
	var attrs Attributes
	for key, msg := range raw {
		text, isText := rawString(msg)
		switch key {
		case KeySemanticLabel:
			var label uint32
			if err := json.Unmarshal(msg, &label); err != nil {
				return attrs, fmt.Errorf("%s: %w", key, err)
			}
			attrs.SemanticLabel = &label

		case KeyPosition:
			var nums []float64
			if isText {
				rec, err := sanitize.Sanitize(key, key+" = "+text)
				if err != nil {
					return attrs, err
				}
				v, _ := rec.Get(key)
				nums, _ = v.([]float64)
			} else if err := json.Unmarshal(msg, &nums); err != nil {
				return attrs, fmt.Errorf("%s: %w", key, err)
			}
			vec, err := vec3(key, nums)
			if err != nil {
				return attrs, err
			}
			attrs.Position = &vec

		case KeyBoundingBox:
			box, err := decodeBox(key, msg, text, isText)
			if err != nil {
				return attrs, err
			}
			attrs.BoundingBox = &box

		case KeyWorldRObject:
			comps := map[string]float64{}
			if isText {
				rec, err := sanitize.Sanitize(key, key+" = "+text)
				if err != nil {
					return attrs, err
				}
				v, _ := rec.Get(key)
				inner, _ := v.(sanitize.Record)
				for _, f := range inner {
					comps[f.Key], _ = f.Value.(float64)
				}
			} else if err := json.Unmarshal(msg, &comps); err != nil {
				return attrs, fmt.Errorf("%s: %w", key, err)
			}
			q, err := quaternion(key, comps)
			if err != nil {
				return attrs, err
			}
			attrs.WorldRObject = &q
		}
	}
	return attrs, nil
}

func decodeBox(key string, msg json.RawMessage, text string, isText bool) (r3.Box, error) {
	var extents struct {
		Min []float64 `json:"min"`
		Max []float64 `json:"max"`
	}
	if isText {
		rec, err := sanitize.Sanitize(key, key+" = "+text)
		if err != nil {
			return r3.Box{}, err
		}
		v, _ := rec.Get(key)
		inner, ok := v.(sanitize.Record)
		if !ok {
			return r3.Box{}, fmt.Errorf("%s: want a record with min and max", key)
		}
		minV, _ := inner.Get("min")
		maxV, _ := inner.Get("max")
		extents.Min, _ = minV.([]float64)
		extents.Max, _ = maxV.([]float64)
	} else if err := json.Unmarshal(msg, &extents); err != nil {
		return r3.Box{}, fmt.Errorf("%s: %w", key, err)
	}
	lo, err := vec3(key+".min", extents.Min)
	if err != nil {
		return r3.Box{}, err
	}
	hi, err := vec3(key+".max", extents.Max)
	if err != nil {
		return r3.Box{}, err
	}
	return r3.Box{Min: lo, Max: hi}, nil
}

func vec3(key string, nums []float64) (r3.Vec, error) {
	if len(nums) != 3 {
		return r3.Vec{}, fmt.Errorf("%s: want 3 components, got %d", key, len(nums))
	}
	return r3.Vec{X: nums[0], Y: nums[1], Z: nums[2]}, nil
}

func quaternion(key string, comps map[string]float64) (quat.Number, error) {
	for _, c := range []string{"w", "x", "y", "z"} {
		if _, ok := comps[c]; !ok {
			return quat.Number{}, fmt.Errorf("%s: missing component %q", key, c)
		}
	}
	return quat.Number{Real: comps["w"], Imag: comps["x"], Jmag: comps["y"], Kmag: comps["z"]}, nil
}

func rawString(msg json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(msg)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}
