package fields

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// LiteralKind is the value type of a Literal.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBoolean
)

// Literal is a parsed default value.
type Literal struct {
	Kind LiteralKind
	// Text is the source text. Quoted strings keep their quotes.
	Text   string
	Number float64
	Bool   bool
}

var numberPattern = regexp.MustCompile(`^[-+]?(?:0[xX][0-9a-fA-F]+|(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?)$`)

// ParseLiteral classifies a default value's source text. Quoted text stays a
// verbatim string, numeric text becomes a number, true and false become
// booleans, and anything else is kept as a string.
func ParseLiteral(raw string) Literal {
	raw = strings.TrimSpace(raw)
	lit := Literal{Kind: LiteralString, Text: raw}
	if raw == "" || strings.ContainsRune(`'"`+"`", rune(raw[0])) {
		return lit
	}
	switch raw {
	case "true", "false":
		return Literal{Kind: LiteralBoolean, Text: raw, Bool: raw == "true"}
	}
	if !numberPattern.MatchString(raw) {
		return lit
	}
	if strings.ContainsAny(raw, "xX") {
		n, err := strconv.ParseInt(raw, 0, 64)
		if err != nil {
			return lit
		}
		return Literal{Kind: LiteralNumber, Text: raw, Number: float64(n)}
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return lit
	}
	return Literal{Kind: LiteralNumber, Text: raw, Number: n}
}

// String renders the literal the way it appears in a parameter table.
func (l Literal) String() string {
	switch l.Kind {
	case LiteralNumber:
		if l.Number == math.Trunc(l.Number) && math.Abs(l.Number) < 1e21 {
			return strconv.FormatFloat(l.Number, 'f', -1, 64)
		}
		return strconv.FormatFloat(l.Number, 'g', -1, 64)
	case LiteralBoolean:
		return strconv.FormatBool(l.Bool)
	default:
		return l.Text
	}
}
