// Package comments finds the block comments in a unit's source text and
// decides which construct each one documents by looking at the first code
// line that follows it.
package comments

import "strings"

// Kind identifies the construct a comment documents.
type Kind int

const (
	KindNone Kind = iota
	KindProperty
	KindMethod
	KindGetter
	KindConstructor
)

func (k Kind) String() string {
	switch k {
	case KindProperty:
		return "property"
	case KindMethod:
		return "method"
	case KindGetter:
		return "getter"
	case KindConstructor:
		return "constructor"
	default:
		return "none"
	}
}

// Raw is a block comment with its delimiters and leading decoration
// removed.
type Raw struct {
	// Text holds the body lines joined with "\n".
	Text string
	// StartLine and EndLine are the 1-based lines of the opening and
	// closing delimiters.
	StartLine int
	EndLine   int
	// Trailing is the code that follows the closing delimiter on EndLine.
	Trailing string
}

// Lines splits the body into lines.
func (r Raw) Lines() []string {
	if r.Text == "" {
		return nil
	}
	return strings.Split(r.Text, "\n")
}

// Classified is a comment together with what it documents.
type Classified struct {
	Raw
	Kind Kind
	// Name is the member name captured by the matching rule. Method names
	// keep their static and async modifiers.
	Name string
	// Declaration is the trimmed code line the comment was classified by.
	Declaration string
}

// Extract scans src and classifies every block comment using the default
// rules.
func Extract(src string) []Classified {
	return NewClassifier().Extract(src)
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
