// Package typeexpr parses documentation type expressions such as
// "Promise<Array<string|number>>" and renders them with every type name
// replaced by a link.
//
// The grammar, loosest binding first:
//
//	tuple   = union { "," union }
//	union   = primary { "|" primary }
//	primary = name [ "<" tuple [ ">" ] ]
//
// A missing closing '>' is tolerated and stray trailing '>' characters are
// ignored.
package typeexpr

// Kind tells what an Expr node represents.
type Kind int

const (
	// KindName is a single type name with optional type arguments.
	KindName Kind = iota
	// KindUnion is a set of alternatives joined by '|'.
	KindUnion
	// KindTuple is a comma separated sequence, as found in type arguments.
	KindTuple
)

// Expr is a node of a parsed type expression.
type Expr struct {
	Kind Kind
	// Name is set for KindName.
	Name string
	// Args holds the angle-bracketed arguments of a KindName node, if any.
	Args *Expr
	// Items holds the members of a KindUnion or KindTuple node.
	Items []*Expr
}

// Names returns every type name in e in source order.
func (e *Expr) Names() []string {
	var out []string
	var walk func(*Expr)
	walk = func(n *Expr) {
		if n == nil {
			return
		}
		if n.Kind == KindName {
			out = append(out, n.Name)
			walk(n.Args)
			return
		}
		for _, it := range n.Items {
			walk(it)
		}
	}
	walk(e)
	return out
}

// parser handles parsing of type expressions using recursive descent.
type parser struct {
	src  string
	toks []token
	pos  int
}

// Parse parses a type expression.
func Parse(s string) (*Expr, error) {
	p := &parser{src: s, toks: tokenize(s)}
	e, err := p.parseTuple()
	if err != nil {
		return nil, err
	}
	for p.eat(tkRAngle) {
	}
	if p.cur().kind != tkEOF {
		return nil, p.errorf("unexpected %v", p.cur().kind)
	}
	return e, nil
}

// cur returns the current token.
func (p *parser) cur() token { return p.toks[p.pos] }

// eat consumes a token of the specified kind and returns true if successful.
func (p *parser) eat(k tokKind) bool {
	if p.cur().kind == k {
		p.pos++
		return true
	}
	return false
}

func (p *parser) errorf(format string, args ...any) error {
	return newSyntaxError(p.src, p.cur().pos, format, args...)
}

// parseTuple parses comma separated unions.
func (p *parser) parseTuple() (*Expr, error) {
	n, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tkComma {
		return n, nil
	}
	tuple := &Expr{Kind: KindTuple, Items: []*Expr{n}}
	for p.eat(tkComma) {
		rhs, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		tuple.Items = append(tuple.Items, rhs)
	}
	return tuple, nil
}

// parseUnion parses '|' separated primaries.
func (p *parser) parseUnion() (*Expr, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tkPipe {
		return n, nil
	}
	union := &Expr{Kind: KindUnion, Items: []*Expr{n}}
	for p.eat(tkPipe) {
		rhs, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		union.Items = append(union.Items, rhs)
	}
	return union, nil
}

// parsePrimary parses a name and its optional type arguments.
func (p *parser) parsePrimary() (*Expr, error) {
	t := p.cur()
	if t.kind != tkName {
		return nil, p.errorf("expected type name, got %v", t.kind)
	}
	p.pos++
	n := &Expr{Kind: KindName, Name: t.text}
	if p.eat(tkLAngle) {
		args, err := p.parseTuple()
		if err != nil {
			return nil, err
		}
		n.Args = args
		p.eat(tkRAngle)
	}
	return n, nil
}
