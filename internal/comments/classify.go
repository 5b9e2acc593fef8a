package comments

import (
	"regexp"
	"strings"
)

// Rule recognizes one declaration shape. Match reports the member name it
// captured, if any.
type Rule struct {
	Kind  Kind
	Match func(decl string) (name string, ok bool)
}

const ident = `[A-Za-z_$#][\w$]*`

var (
	constructorPattern = regexp.MustCompile(`\bconstructor\s*\(`)
	getterPattern      = regexp.MustCompile(`^(?:static\s+)?get\s+(` + ident + `)`)
	methodPattern      = regexp.MustCompile(`^((?:static\s+)?(?:async\s+)?(` + ident + `))\s*\(`)
	propertyPattern    = regexp.MustCompile(`^this\.(` + ident + `)`)
)

// keywords that look like a call when followed by '('.
var controlKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"return": true, "function": true, "typeof": true, "await": true, "new": true,
	"super": true,
}

// DefaultRules returns the built-in rules in evaluation order. Each call
// returns a fresh slice.
func DefaultRules() []Rule {
	return []Rule{
		{Kind: KindConstructor, Match: matchConstructor},
		{Kind: KindGetter, Match: matchGetter},
		{Kind: KindMethod, Match: matchMethod},
		{Kind: KindProperty, Match: matchProperty},
	}
}

func matchConstructor(decl string) (string, bool) {
	return "", constructorPattern.MatchString(decl)
}

func matchGetter(decl string) (string, bool) {
	m := getterPattern.FindStringSubmatch(decl)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func matchMethod(decl string) (string, bool) {
	m := methodPattern.FindStringSubmatch(decl)
	if m == nil || controlKeywords[m[2]] {
		return "", false
	}
	return strings.Join(strings.Fields(m[1]), " "), true
}

func matchProperty(decl string) (string, bool) {
	m := propertyPattern.FindStringSubmatch(decl)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Classifier applies an ordered list of rules; the first match wins.
type Classifier struct {
	rules []Rule
}

// NewClassifier returns a classifier for rules, or for DefaultRules when
// none are given.
func NewClassifier(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Classify returns the kind and member name for a declaration line.
func (c *Classifier) Classify(decl string) (Kind, string) {
	decl = strings.TrimSpace(decl)
	for _, r := range c.rules {
		if name, ok := r.Match(decl); ok {
			return r.Kind, name
		}
	}
	return KindNone, ""
}

// Extract scans src and classifies each comment by the first non-blank,
// non line-comment code after it.
func (c *Classifier) Extract(src string) []Classified {
	lines := strings.Split(normalizeNewlines(src), "\n")
	raws := Scan(src)
	out := make([]Classified, 0, len(raws))
	for _, raw := range raws {
		decl := raw.Trailing
		if decl == "" {
			decl = followingLine(lines, raw.EndLine)
		}
		kind, name := c.Classify(decl)
		out = append(out, Classified{Raw: raw, Kind: kind, Name: name, Declaration: decl})
	}
	return out
}

// followingLine returns the first code line after the 1-based line end.
func followingLine(lines []string, end int) string {
	for i := end; i < len(lines); i++ {
		l := strings.TrimSpace(lines[i])
		if l == "" || strings.HasPrefix(l, "//") {
			continue
		}
		return l
	}
	return ""
}
