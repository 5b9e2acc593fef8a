package typeexpr

import "strings"

// tokKind represents the kind of token in a type expression.
type tokKind int

const (
	tkName tokKind = iota
	tkLAngle
	tkRAngle
	tkPipe
	tkComma
	tkEOF
)

func (k tokKind) String() string {
	switch k {
	case tkName:
		return "name"
	case tkLAngle:
		return "'<'"
	case tkRAngle:
		return "'>'"
	case tkPipe:
		return "'|'"
	case tkComma:
		return "','"
	default:
		return "end of expression"
	}
}

// token represents a single token in a type expression.
type token struct {
	kind tokKind
	text string
	pos  int
}

// tokenize splits a type expression into tokens. Anything that is not a
// delimiter is part of a name; surrounding whitespace is dropped.
func tokenize(s string) []token {
	var toks []token
	i := 0
	for i < len(s) {
		skipWhitespace(s, &i)
		if i >= len(s) {
			break
		}
		if tok, ok := scanDelimiter(s, &i); ok {
			toks = append(toks, tok)
			continue
		}
		start := i
		for i < len(s) && !isDelimiter(s[i]) {
			i++
		}
		toks = append(toks, token{kind: tkName, text: strings.TrimSpace(s[start:i]), pos: start})
	}
	toks = append(toks, token{kind: tkEOF, pos: len(s)})
	return toks
}

// skipWhitespace advances the position past any whitespace characters.
func skipWhitespace(s string, i *int) {
	for *i < len(s) {
		c := s[*i]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			*i++
			continue
		}
		break
	}
}

func isDelimiter(c byte) bool {
	return c == '<' || c == '>' || c == '|' || c == ','
}

// scanDelimiter scans one of the four structural characters.
func scanDelimiter(s string, i *int) (token, bool) {
	pos := *i
	var k tokKind
	switch s[pos] {
	case '<':
		k = tkLAngle
	case '>':
		k = tkRAngle
	case '|':
		k = tkPipe
	case ',':
		k = tkComma
	default:
		return token{}, false
	}
	*i++
	return token{kind: k, text: s[pos : pos+1], pos: pos}, true
}
