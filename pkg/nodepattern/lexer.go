package nodepattern

import (
	"strings"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokPunct
	tokNodeType
	tokPredicate
	tokFunctionCall
	tokSymbol
	tokString
	tokNumber
	tokRegexp
	tokParam
	tokConst
	tokWildcard
	tokUnify
	tokRest
)

var tokenNames = [...]string{
	tokEOF:          "end of pattern",
	tokPunct:        "punctuation",
	tokNodeType:     "node type",
	tokPredicate:    "predicate",
	tokFunctionCall: "function call",
	tokSymbol:       "symbol",
	tokString:       "string",
	tokNumber:       "number",
	tokRegexp:       "regexp",
	tokParam:        "param",
	tokConst:        "constant",
	tokWildcard:     "wildcard",
	tokUnify:        "unify",
	tokRest:         "rest",
}

func (k tokenKind) String() string {
	return tokenNames[k]
}

type token struct {
	kind tokenKind
	text string
	span Span

	// glued is set when no whitespace separates the token from the
	// previous one.
	glued bool
}

const punctChars = "(){}[]<>|$!^`+*?,"

type lexer struct {
	src    string
	pos    int
	tokens []token
}

func lex(src string) ([]token, error) {
	l := &lexer{src: src}
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
		if tok.kind == tokEOF {
			return l.tokens, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	start := l.pos
	l.skipSpaceAndComments()
	glued := l.pos == start

	if l.pos >= len(l.src) {
		return token{kind: tokEOF, span: Span{l.pos, l.pos}}, nil
	}

	begin := l.pos
	c := l.src[l.pos]
	emit := func(kind tokenKind) (token, error) {
		return token{kind: kind, text: l.src[begin:l.pos], span: Span{begin, l.pos}, glued: glued}, nil
	}

	switch {
	case strings.HasPrefix(l.src[l.pos:], "..."):
		l.pos += 3
		return emit(tokRest)

	case c == ':':
		if err := l.symbol(); err != nil {
			return token{}, err
		}
		return emit(tokSymbol)

	case c == '"':
		end := strings.IndexByte(l.src[l.pos+1:], '"')
		if end < 0 {
			return token{}, l.errorf(begin, "unterminated string")
		}
		l.pos += end + 2
		return emit(tokString)

	case c == '/':
		end := strings.IndexByte(l.src[l.pos+1:], '/')
		if end < 0 {
			return token{}, l.errorf(begin, "unterminated regexp")
		}
		l.pos += end + 2
		for l.pos < len(l.src) && isLower(l.src[l.pos]) {
			l.pos++
		}
		return emit(tokRegexp)

	case isDigit(c) || ((c == '-' || c == '+') && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1])):
		l.pos++
		l.number()
		return emit(tokNumber)

	case strings.IndexByte(punctChars, c) >= 0:
		l.pos++
		return emit(tokPunct)

	case c == '%':
		l.pos++
		for l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
			l.pos++
		}
		return emit(tokParam)

	case c == '_':
		l.pos++
		if l.pos < len(l.src) && isLower(l.src[l.pos]) {
			l.identifier()
			return emit(tokUnify)
		}
		return emit(tokWildcard)

	case c == '#':
		l.pos++
		l.identifier()
		l.methodSuffix()
		return emit(tokFunctionCall)

	case isLower(c):
		l.identifier()
		if l.pos < len(l.src) && l.src[l.pos] == '?' {
			l.pos++
			return emit(tokPredicate)
		}
		// Node types may contain dashes, as in block-pass.
		for l.pos < len(l.src) && (isIdentChar(l.src[l.pos]) || l.src[l.pos] == '-') {
			l.pos++
		}
		return emit(tokNodeType)

	case isUpper(c):
		for l.pos < len(l.src) && (isIdentChar(l.src[l.pos]) || strings.HasPrefix(l.src[l.pos:], "::")) {
			if l.src[l.pos] == ':' {
				l.pos += 2
				continue
			}
			l.pos++
		}
		return emit(tokConst)
	}

	return token{}, l.errorf(begin, "unexpected character %q", c)
}

// skipSpaceAndComments skips whitespace and "# ..." comments. A '#' directly
// followed by an identifier starts a function call instead.
func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			l.pos++
		case c == '#' && (l.pos+1 >= len(l.src) || !isLower(l.src[l.pos+1])):
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *lexer) symbol() error {
	begin := l.pos
	l.pos++ // ':'
	if l.pos >= len(l.src) {
		return l.errorf(begin, "empty symbol")
	}
	if l.src[l.pos] == '"' {
		end := strings.IndexByte(l.src[l.pos+1:], '"')
		if end < 0 {
			return l.errorf(begin, "unterminated symbol")
		}
		l.pos += end + 2
		return nil
	}
	if strings.HasPrefix(l.src[l.pos:], "[]") {
		l.pos += 2
		if l.pos < len(l.src) && l.src[l.pos] == '=' {
			l.pos++
		}
		return nil
	}
	start := l.pos
	for l.pos < len(l.src) && !isSymbolTerminator(l.src[l.pos]) {
		l.pos++
	}
	if l.pos == start {
		return l.errorf(begin, "empty symbol")
	}
	return nil
}

func (l *lexer) number() {
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos+1 < len(l.src) && l.src[l.pos] == '.' && isDigit(l.src[l.pos+1]) {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
}

func (l *lexer) identifier() {
	for l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
		l.pos++
	}
}

func (l *lexer) methodSuffix() {
	if l.pos < len(l.src) && (l.src[l.pos] == '?' || l.src[l.pos] == '!') {
		l.pos++
	}
}

func (l *lexer) errorf(offset int, format string, args ...any) error {
	return newSyntaxError(l.src, offset, format, args...)
}

func isSymbolTerminator(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || strings.IndexByte("(){}[]<>|,", c) >= 0
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

func isIdentChar(c byte) bool {
	return isLower(c) || isUpper(c) || isDigit(c) || c == '_'
}
