// Package sanitize recovers structured values from the textual form of scene
// graph attributes, e.g. "position = [1.0 2.0 3.0]" or
// "world_R_object = Quaternion<w=1, x=0, y=0, z=0>".
//
// Each recognized key has its own small grammar. Parsers are stateless and
// safe for concurrent use. Malformed input always yields a *ParseError; a
// default value is never substituted.
package sanitize

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Keys with a registered parser.
const (
	KeyPosition     = "position"
	KeyBoundingBox  = "bounding_box"
	KeyWorldRObject = "world_R_object"
)

// ErrUnknownKey is returned by Sanitize for keys without a parser.
var ErrUnknownKey = errors.New("sanitize: no parser registered for key")

// Func parses one raw "<key> = <value>" string into {key: value}.
type Func func(raw string) (Record, error)

var registry = map[string]Func{
	KeyPosition:     Position,
	KeyBoundingBox:  BoundingBox,
	KeyWorldRObject: WorldR,
}

// Lookup returns the parser registered for key.
func Lookup(key string) (Func, bool) {
	fn, ok := registry[key]
	return fn, ok
}

// Keys returns the registered keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Sanitize parses raw with the parser registered for key. The key named in
// raw must match.
func Sanitize(key, raw string) (Record, error) {
	fn, ok := Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	rec, err := fn(raw)
	if err != nil {
		return nil, err
	}
	if len(rec) != 1 || rec[0].Key != key {
		return nil, &ParseError{Key: key, Raw: raw, Msg: fmt.Sprintf("attribute is named %q, want %q", strings.Join(rec.Keys(), ","), key)}
	}
	return rec, nil
}

// Position parses "<key> = [x y z]". Brackets may hold only numbers,
// separated by whitespace or commas.
func Position(raw string) (Record, error) {
	p := newParser(KeyPosition, raw)
	key, err := p.header()
	if err != nil {
		return nil, err
	}
	nums, err := p.numberList()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return Record{{Key: key, Value: nums}}, nil
}

// BoundingBox parses a record of bare keys, e.g.
// "bounding_box = {min: [0, 0, 0], max: [1, 1, 1]}". Input without outer
// braces is read as if it were wrapped in them.
func BoundingBox(raw string) (Record, error) {
	p := newParser(KeyBoundingBox, raw)
	if p.peek().typ == tokenLBrace && wrapped(p.toks) {
		p.advance()
		rec, err := p.fields(tokenRBrace)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokenRBrace); err != nil {
			return nil, err
		}
		if err := p.expectEOF(); err != nil {
			return nil, err
		}
		return rec, nil
	}
	rec, err := p.fields(tokenEOF)
	if err != nil {
		return nil, err
	}
	if len(rec) == 0 {
		return nil, p.fail(p.peek(), "empty bounding box")
	}
	return rec, nil
}

// WorldR parses exactly "<key> = Quaternion<comp=val, comp=val, ...>".
func WorldR(raw string) (Record, error) {
	p := newParser(KeyWorldRObject, raw)
	key, err := p.header()
	if err != nil {
		return nil, err
	}
	if err := p.expectLiteral(tokenIdent, "Quaternion"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenLAngle); err != nil {
		return nil, err
	}
	comps := Record{}
	for {
		if len(comps) > 0 {
			tok := p.advance()
			if tok.typ == tokenRAngle {
				break
			}
			if tok.typ != tokenComma {
				return nil, p.unexpected(tok, "',' or '>'")
			}
		}
		name, err := p.expect(tokenIdent)
		if err != nil {
			return nil, err
		}
		if err := p.expectLiteral(tokenAssign, "="); err != nil {
			return nil, err
		}
		if _, dup := comps.Get(name.value); dup {
			return nil, p.fail(name, "duplicate component %q", name.value)
		}
		v, err := p.number()
		if err != nil {
			return nil, err
		}
		comps = append(comps, Field{Key: name.value, Value: v})
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return Record{{Key: key, Value: comps}}, nil
}

// wrapped reports whether the opening brace at toks[0] is closed by the last
// token before EOF, i.e. the braces enclose the whole input.
func wrapped(toks []token) bool {
	depth := 0
	for i, tok := range toks {
		switch tok.typ {
		case tokenLBrace:
			depth++
		case tokenRBrace:
			depth--
			if depth == 0 {
				return toks[i+1].typ == tokenEOF
			}
		}
	}
	return false
}
