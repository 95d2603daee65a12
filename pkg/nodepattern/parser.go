package nodepattern

// Parse parses a complete pattern. The pattern must consist of exactly one
// top-level element. Failures are returned as *SyntaxError values matching
// ErrInvalidPattern.
func Parse(pattern string) (*Node, error) {
	tokens, err := lex(pattern)
	if err != nil {
		return nil, err
	}

	p := &parser{src: pattern, tokens: tokens}

	root, err := p.term()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok, "unexpected %s %q after pattern", tok.kind, tok.text)
	}

	return root, nil
}

type parser struct {
	src    string
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) isPunct(text string) bool {
	tok := p.peek()
	return tok.kind == tokPunct && tok.text == text
}

func (p *parser) expect(text string) (token, error) {
	if !p.isPunct(text) {
		tok := p.peek()
		return token{}, p.errorf(tok, "expected %q, found %s %q", text, tok.kind, tok.text)
	}
	return p.advance(), nil
}

func (p *parser) errorf(tok token, format string, args ...any) error {
	return newSyntaxError(p.src, tok.span.Begin, format, args...)
}

// term parses one element with its prefix and suffix operators.
func (p *parser) term() (*Node, error) {
	tok := p.peek()

	if tok.kind == tokPunct {
		if tag, ok := prefixOperators[tok.text]; ok {
			p.advance()
			child, err := p.term()
			if err != nil {
				return nil, err
			}
			return p.suffix(other(tag, Span{tok.span.Begin, child.Span.End}, child))
		}
	}

	node, err := p.atom()
	if err != nil {
		return nil, err
	}
	return p.suffix(node)
}

var prefixOperators = map[string]string{
	"$": "capture",
	"!": "negation",
	"^": "parent",
	"`": "descend",
}

var suffixOperators = map[string]string{
	"?": "optional",
	"*": "repetition",
	"+": "repetition",
}

// suffix wraps node in repetition operators written directly after it.
func (p *parser) suffix(node *Node) (*Node, error) {
	for {
		tok := p.peek()
		tag, ok := suffixOperators[tok.text]
		if tok.kind != tokPunct || !ok || !tok.glued {
			return node, nil
		}
		p.advance()
		node = other(tag, Span{node.Span.Begin, tok.span.End}, node)
	}
}

func (p *parser) atom() (*Node, error) {
	tok := p.advance()

	switch tok.kind {
	case tokEOF:
		return nil, p.errorf(tok, "unexpected end of pattern")

	case tokPunct:
		switch tok.text {
		case "(":
			return p.group(tok, ")", KindSequence, "")
		case "[":
			return p.group(tok, "]", KindOther, "intersection")
		case "<":
			return p.group(tok, ">", KindOther, "any_order")
		case "{":
			return p.union(tok)
		}
		return nil, p.errorf(tok, "unexpected %q", tok.text)

	case tokNodeType:
		return &Node{Kind: KindNodeType, Tag: tok.text, Span: tok.span}, nil

	case tokPredicate, tokFunctionCall:
		return p.call(tok)

	case tokSymbol, tokString, tokNumber, tokRegexp, tokParam, tokConst,
		tokWildcard, tokUnify, tokRest:
		return other(tok.kind.String(), tok.span), nil
	}

	return nil, p.errorf(tok, "unexpected %s", tok.kind)
}

// group parses elements up to the closing delimiter.
func (p *parser) group(open token, closing string, kind Kind, tag string) (*Node, error) {
	var children []*Node
	for !p.isPunct(closing) {
		if p.peek().kind == tokEOF {
			return nil, p.errorf(open, "unterminated %q", open.text)
		}
		child, err := p.term()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	closeTok := p.advance()

	if len(children) == 0 {
		return nil, p.errorf(open, "empty %q%s", open.text, closing)
	}

	return &Node{
		Kind:     kind,
		Tag:      tag,
		Span:     Span{open.span.Begin, closeTok.span.End},
		Children: children,
	}, nil
}

// union parses {a b c} and {a b | c}. Without pipes every element is an
// alternative. With pipes, the elements between two pipes form one
// alternative, wrapped in a subsequence when there is more than one.
func (p *parser) union(open token) (*Node, error) {
	var (
		branches [][]*Node
		current  []*Node
		piped    bool
	)

	for !p.isPunct("}") {
		tok := p.peek()
		if tok.kind == tokEOF {
			return nil, p.errorf(open, "unterminated %q", open.text)
		}
		if p.isPunct("|") {
			if len(current) == 0 {
				return nil, p.errorf(tok, "empty alternative")
			}
			p.advance()
			piped = true
			branches = append(branches, current)
			current = nil
			continue
		}
		child, err := p.term()
		if err != nil {
			return nil, err
		}
		current = append(current, child)
	}
	closeTok := p.advance()

	if len(current) == 0 {
		if piped {
			return nil, p.errorf(closeTok, "empty alternative")
		}
		return nil, p.errorf(open, "empty union")
	}
	branches = append(branches, current)

	union := &Node{
		Kind:  KindUnion,
		Span:  Span{open.span.Begin, closeTok.span.End},
		Piped: piped,
	}

	if !piped {
		union.Children = current
		return union, nil
	}

	for _, branch := range branches {
		if len(branch) == 1 {
			union.Children = append(union.Children, branch[0])
			continue
		}
		union.Children = append(union.Children, &Node{
			Kind:     KindSubsequence,
			Span:     Span{branch[0].Span.Begin, branch[len(branch)-1].Span.End},
			Children: branch,
		})
	}

	return union, nil
}

// call parses a predicate or function call with optional arguments.
func (p *parser) call(name token) (*Node, error) {
	tag := "predicate"
	if name.kind == tokFunctionCall {
		tag = "function_call"
	}

	if !p.isPunct("(") || !p.peek().glued {
		return other(tag, name.span), nil
	}
	p.advance()

	var args []*Node
	for !p.isPunct(")") {
		if p.peek().kind == tokEOF {
			return nil, p.errorf(name, "unterminated argument list")
		}
		if len(args) > 0 {
			if _, err := p.expect(","); err != nil {
				return nil, err
			}
		}
		arg, err := p.term()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	closeTok := p.advance()

	return other(tag, Span{name.span.Begin, closeTok.span.End}, args...), nil
}

func other(tag string, span Span, children ...*Node) *Node {
	return &Node{Kind: KindOther, Tag: tag, Span: span, Children: children}
}
