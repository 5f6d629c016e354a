package sanitize

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformed is wrapped by every ParseError.
var ErrMalformed = errors.New("sanitize: malformed attribute")

// ParseError reports malformed attribute text. Raw is the offending input,
// unchanged.
type ParseError struct {
	Key    string
	Raw    string
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	key := e.Key
	if key == "" {
		key = "attribute"
	}
	return fmt.Sprintf("sanitize: malformed %s at offset %d: %s (raw %q)", key, e.Offset, e.Msg, e.Raw)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformed
}

// parser is a recursive-descent parser over the token stream of one raw
// attribute string.
type parser struct {
	key  string
	raw  string
	toks []token
	pos  int
}

func newParser(key, raw string) *parser {
	return &parser{key: key, raw: raw, toks: tokenize(raw)}
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) advance() token {
	tok := p.toks[p.pos]
	if tok.typ != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) fail(tok token, format string, args ...any) error {
	return &ParseError{Key: p.key, Raw: p.raw, Offset: tok.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) unexpected(tok token, want string) error {
	if tok.typ == tokenIllegal {
		return p.fail(tok, "unexpected %q, want %s", tok.value, want)
	}
	if tok.typ == tokenEOF {
		return p.fail(tok, "unexpected end of input, want %s", want)
	}
	return p.fail(tok, "unexpected %s %q, want %s", tok.typ, tok.value, want)
}

func (p *parser) expect(typ tokenType) (token, error) {
	tok := p.advance()
	if tok.typ != typ {
		return tok, p.unexpected(tok, typ.String())
	}
	return tok, nil
}

// expectLiteral requires a token of the given type whose text matches exactly.
func (p *parser) expectLiteral(typ tokenType, value string) error {
	tok := p.advance()
	if tok.typ != typ || tok.value != value {
		return p.unexpected(tok, strconv.Quote(value))
	}
	return nil
}

func (p *parser) expectEOF() error {
	if tok := p.peek(); tok.typ != tokenEOF {
		return p.unexpected(tok, "end of input")
	}
	return nil
}

func (p *parser) number() (float64, error) {
	tok, err := p.expect(tokenNumber)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok.value, 64)
	if err != nil {
		return 0, p.fail(tok, "bad number %q", tok.value)
	}
	return v, nil
}

// header parses "<ident> =" and returns the identifier.
func (p *parser) header() (string, error) {
	name, err := p.expect(tokenIdent)
	if err != nil {
		return "", err
	}
	if err := p.expectLiteral(tokenAssign, "="); err != nil {
		return "", err
	}
	return name.value, nil
}

// numberList parses "[n n n]" or "[n, n, n]". Elements are separated by
// whitespace or a single comma.
func (p *parser) numberList() ([]float64, error) {
	if _, err := p.expect(tokenLBracket); err != nil {
		return nil, err
	}
	nums := []float64{}
	for {
		tok := p.peek()
		if tok.typ == tokenRBracket {
			p.advance()
			return nums, nil
		}
		if len(nums) > 0 && tok.typ == tokenComma {
			p.advance()
			tok = p.peek()
		}
		if tok.typ != tokenNumber {
			return nil, p.unexpected(tok, "number")
		}
		v, err := p.number()
		if err != nil {
			return nil, err
		}
		nums = append(nums, v)
	}
}

// value parses a number, array or record.
func (p *parser) value() (any, error) {
	switch tok := p.peek(); tok.typ {
	case tokenNumber:
		return p.number()
	case tokenLBracket:
		return p.array()
	case tokenLBrace:
		p.advance()
		rec, err := p.fields(tokenRBrace)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokenRBrace); err != nil {
			return nil, err
		}
		return rec, nil
	default:
		return nil, p.unexpected(tok, "number, '[' or '{'")
	}
}

// array returns []float64 when every element is a number, otherwise []any.
func (p *parser) array() (any, error) {
	if _, err := p.expect(tokenLBracket); err != nil {
		return nil, err
	}
	var items []any
	allNumbers := true
	for {
		tok := p.peek()
		if tok.typ == tokenRBracket {
			p.advance()
			break
		}
		if len(items) > 0 && tok.typ == tokenComma {
			p.advance()
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		if _, ok := v.(float64); !ok {
			allNumbers = false
		}
		items = append(items, v)
	}
	if !allNumbers {
		return items, nil
	}
	nums := make([]float64, len(items))
	for i, v := range items {
		nums[i] = v.(float64)
	}
	return nums, nil
}

// fields parses "key: value, key = value" up to the closing token, which is
// left unconsumed.
func (p *parser) fields(closing tokenType) (Record, error) {
	rec := Record{}
	for {
		if p.peek().typ == closing {
			return rec, nil
		}
		if len(rec) > 0 {
			if _, err := p.expect(tokenComma); err != nil {
				return nil, err
			}
		}
		name, err := p.expect(tokenIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokenAssign); err != nil {
			return nil, err
		}
		if _, dup := rec.Get(name.value); dup {
			return nil, p.fail(name, "duplicate key %q", name.value)
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		rec = append(rec, Field{Key: name.value, Value: v})
	}
}
