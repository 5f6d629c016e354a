package sanitize

import "fmt"

type tokenType uint8

const (
	tokenEOF tokenType = iota
	tokenIllegal
	tokenIdent
	tokenNumber
	tokenLBrace   // {
	tokenRBrace   // }
	tokenLBracket // [
	tokenRBracket // ]
	tokenLAngle   // <
	tokenRAngle   // >
	tokenAssign   // = or :
	tokenComma
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "end of input"
	case tokenIllegal:
		return "illegal character"
	case tokenIdent:
		return "identifier"
	case tokenNumber:
		return "number"
	case tokenLBrace:
		return "'{'"
	case tokenRBrace:
		return "'}'"
	case tokenLBracket:
		return "'['"
	case tokenRBracket:
		return "']'"
	case tokenLAngle:
		return "'<'"
	case tokenRAngle:
		return "'>'"
	case tokenAssign:
		return "'=' or ':'"
	case tokenComma:
		return "','"
	default:
		return fmt.Sprintf("token(%d)", uint8(t))
	}
}

type token struct {
	typ   tokenType
	value string
	pos   int // byte offset into the raw input
}

// lexer splits an attribute string into tokens. It never fails; bad input
// surfaces as a tokenIllegal that the parser rejects with context.
type lexer struct {
	input string
	pos   int
}

func tokenize(input string) []token {
	l := &lexer{input: input}
	var toks []token
	for {
		tok := l.next()
		toks = append(toks, tok)
		if tok.typ == tokenEOF {
			return toks
		}
	}
}

func (l *lexer) next() token {
	l.skipSpace()
	if l.pos >= len(l.input) {
		return token{typ: tokenEOF, pos: l.pos}
	}

	start := l.pos
	ch := l.input[l.pos]
	switch ch {
	case '{':
		l.pos++
		return token{typ: tokenLBrace, value: "{", pos: start}
	case '}':
		l.pos++
		return token{typ: tokenRBrace, value: "}", pos: start}
	case '[':
		l.pos++
		return token{typ: tokenLBracket, value: "[", pos: start}
	case ']':
		l.pos++
		return token{typ: tokenRBracket, value: "]", pos: start}
	case '<':
		l.pos++
		return token{typ: tokenLAngle, value: "<", pos: start}
	case '>':
		l.pos++
		return token{typ: tokenRAngle, value: ">", pos: start}
	case '=', ':':
		l.pos++
		return token{typ: tokenAssign, value: string(ch), pos: start}
	case ',':
		l.pos++
		return token{typ: tokenComma, value: ",", pos: start}
	}

	if isDigit(ch) || ch == '-' || ch == '+' || ch == '.' {
		return l.scanNumber()
	}
	if isIdentStart(ch) {
		return l.scanIdent()
	}

	l.pos++
	return token{typ: tokenIllegal, value: string(ch), pos: start}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

// scanNumber accepts [+-]? (digits [. digits?] | . digits) ([eE] [+-]? digits)?
func (l *lexer) scanNumber() token {
	start := l.pos
	if c := l.input[l.pos]; c == '-' || c == '+' {
		l.pos++
	}
	intDigits := l.digits()
	fracDigits := 0
	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		l.pos++
		fracDigits = l.digits()
	}
	if intDigits == 0 && fracDigits == 0 {
		return l.illegalFrom(start)
	}
	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		l.pos++
		if l.pos < len(l.input) && (l.input[l.pos] == '-' || l.input[l.pos] == '+') {
			l.pos++
		}
		if l.digits() == 0 {
			return l.illegalFrom(start)
		}
	}
	// "1.5abc" and "1.2.3" are single malformed words, not two tokens.
	if l.pos < len(l.input) && (isIdentPart(l.input[l.pos]) || l.input[l.pos] == '.') {
		return l.illegalFrom(start)
	}
	return token{typ: tokenNumber, value: l.input[start:l.pos], pos: start}
}

func (l *lexer) scanIdent() token {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}
	return token{typ: tokenIdent, value: l.input[start:l.pos], pos: start}
}

func (l *lexer) digits() int {
	n := 0
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
		n++
	}
	return n
}

// illegalFrom swallows the rest of a malformed word so the parser reports
// it once.
func (l *lexer) illegalFrom(start int) token {
	for l.pos < len(l.input) && (isIdentPart(l.input[l.pos]) || l.input[l.pos] == '.') {
		l.pos++
	}
	if l.pos == start {
		l.pos++
	}
	return token{typ: tokenIllegal, value: l.input[start:l.pos], pos: start}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
