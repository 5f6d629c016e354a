// Package serialization flattens a scene graph into text for a language
// model. Four encoders share one aggregation pass (per-room category counts
// plus the objects under each room) and differ only in rendering:
//
//   - indented: tab-indented outline
//   - json: structured JSON with sanitized attribute values
//   - triplets: (subject, predicate, object) triples
//   - natural: English prose
//
// Encoders are pure functions of a read-only graph and are safe to run
// concurrently. Configuration mistakes (unknown encoding, unknown detail key)
// are reported before the graph is touched.
package serialization

import (
	"fmt"
	"strings"
)

// Kind selects one encoder. The set is closed.
type Kind int

const (
	KindIndented Kind = iota + 1
	KindJSON
	KindTriplets
	KindNatural
)

var kindNames = map[Kind]string{
	KindIndented: "indented",
	KindJSON:     "json",
	KindTriplets: "triplets",
	KindNatural:  "natural",
}

// Kinds returns every encoding in a stable order.
func Kinds() []Kind {
	return []Kind{KindIndented, KindJSON, KindTriplets, KindNatural}
}

// String returns the configuration name of the encoding.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a configuration name such as "json".
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (known: %s)", ErrUnknownEncoding, name, strings.Join(Names(), ", "))
}

// Names returns the configuration names of every encoding.
func Names() []string {
	names := make([]string, 0, len(kindNames))
	for _, k := range Kinds() {
		names = append(names, kindNames[k])
	}
	return names
}

// Encoder renders a graph with the given detail keys.
type Encoder func(g Graph, keys DetailKeys) (string, error)

// Encoder returns the function implementing k.
func (k Kind) Encoder() (Encoder, error) {
	switch k {
	case KindIndented:
		return EncodeIndented, nil
	case KindJSON:
		return EncodeJSON, nil
	case KindTriplets:
		return EncodeTriplets, nil
	case KindNatural:
		return EncodeNatural, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, k)
	}
}

// Encode renders g with the selected encoder.
func Encode(g Graph, kind Kind, keys DetailKeys) (string, error) {
	enc, err := kind.Encoder()
	if err != nil {
		return "", err
	}
	return enc(g, keys)
}

// EncodeNamed is Encode with the encoding given by configuration name. An
// unknown name fails before the graph is read.
func EncodeNamed(g Graph, name string, keys DetailKeys) (string, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return "", err
	}
	return Encode(g, kind, keys)
}

// prepare validates configuration, then runs the shared aggregation.
func prepare(g Graph, keys DetailKeys) (*scene, error) {
	if err := keys.Validate(); err != nil {
		return nil, err
	}
	return aggregate(g)
}
