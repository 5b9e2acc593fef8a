package fields

import (
	"regexp"
	"strings"

	"github.com/example/docgen/internal/comments"
)

var (
	typeTag     = regexp.MustCompile(`@type\s*\{`)
	returnsTag  = regexp.MustCompile(`@returns?\s*\{`)
	paramTag    = regexp.MustCompile(`^@(?:param|arg|argument)\b`)
	knownTag    = regexp.MustCompile(`^@(?:type|param|arg|argument|returns?|example)\b`)
	exampleTag  = regexp.MustCompile(`^@example\b`)
	warnMarkers = []string{"{!}", "* "}
)

// Parse builds the record for a classified comment. Comments of kind
// KindNone yield ErrNotMember; member comments lacking a required tag yield
// a *MissingTagError.
func Parse(c comments.Classified) (Record, error) {
	lines := c.Lines()
	switch c.Kind {
	case comments.KindProperty:
		typ, ok := tagValue(c.Text, typeTag)
		if !ok {
			return nil, missing(c, "@type")
		}
		return Property{Name: c.Name, Type: typ, Description: memberDescription(lines)}, nil
	case comments.KindGetter:
		typ, ok := tagValue(c.Text, typeTag)
		if !ok {
			return nil, missing(c, "@type")
		}
		return Getter{
			Name:        c.Name,
			Type:        typ,
			Description: memberDescription(lines),
			Static:      strings.HasPrefix(c.Declaration, "static "),
		}, nil
	case comments.KindMethod:
		returns, ok := tagValue(c.Text, returnsTag)
		if !ok {
			return nil, missing(c, "@returns")
		}
		params, err := parseParams(c, lines)
		if err != nil {
			return nil, err
		}
		name, static, async := splitModifiers(c.Name)
		return Method{
			Name:        name,
			Params:      params,
			Returns:     returns,
			Description: methodDescription(lines),
			Example:     example(lines),
			Static:      static,
			Async:       async,
		}, nil
	case comments.KindConstructor:
		params, err := parseParams(c, lines)
		if err != nil {
			return nil, err
		}
		return Constructor{Params: params, Description: firstLine(lines)}, nil
	default:
		return nil, ErrNotMember
	}
}

func missing(c comments.Classified, tag string) error {
	return &MissingTagError{Kind: c.Kind, Member: c.Name, Tag: tag, Line: c.StartLine}
}

// splitModifiers strips the leading static and async keywords of a method
// name.
func splitModifiers(name string) (string, bool, bool) {
	var static, async bool
	for {
		switch {
		case strings.HasPrefix(name, "static "):
			static = true
			name = name[len("static "):]
		case strings.HasPrefix(name, "async "):
			async = true
			name = name[len("async "):]
		default:
			return name, static, async
		}
	}
}

// tagValue returns the brace-delimited value of the first tag matching
// pattern. Nested braces are kept, so "{Object<string, {a: number}>}" reads
// as one value.
func tagValue(text string, pattern *regexp.Regexp) (string, bool) {
	loc := pattern.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	v, _ := braced(text, loc[1]-1)
	v = strings.TrimSpace(v)
	return v, v != ""
}

// braced returns the text inside the braces opening at s[open] and the
// offset after the closing brace. An unclosed value ends at the line end.
func braced(s string, open int) (string, int) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[open+1 : i], i + 1
			}
		case '\n':
			return s[open+1 : i], i
		}
	}
	return s[open+1:], len(s)
}

func parseParams(c comments.Classified, lines []string) ([]Param, error) {
	args := make(map[string]comments.Argument)
	for _, a := range comments.Signature(c.Declaration) {
		args[a.Name] = a
	}

	var params []Param
	for _, l := range lines {
		l = strings.TrimSpace(l)
		loc := paramTag.FindStringIndex(l)
		if loc == nil {
			continue
		}
		rest := strings.TrimSpace(l[loc[1]:])
		if !strings.HasPrefix(rest, "{") {
			return nil, missing(c, "@param type")
		}
		typ, n := braced(rest, 0)
		typ = strings.TrimSpace(typ)
		if typ == "" {
			return nil, missing(c, "@param type")
		}
		p, tagDefault, desc := paramName(strings.TrimSpace(rest[n:]))
		p.Type = typ
		p.Description = strings.TrimPrefix(desc, "- ")

		if a, ok := args[p.Name]; ok && a.HasDefault {
			p.Optional = true
			lit := ParseLiteral(a.Default)
			p.Default = &lit
		} else if tagDefault != "" {
			lit := ParseLiteral(tagDefault)
			p.Default = &lit
		}
		params = append(params, p)
	}
	return params, nil
}

// paramName reads "name", "[name]" or "[name=default]" from the start of s
// and returns the rest as the description.
func paramName(s string) (Param, string, string) {
	if !strings.HasPrefix(s, "[") {
		i := strings.IndexAny(s, " \t")
		if i < 0 {
			return Param{Name: s}, "", ""
		}
		return Param{Name: s[:i]}, "", strings.TrimSpace(s[i:])
	}
	depth := 0
	end := len(s)
	for i := 0; i < len(s); i++ {
		if s[i] == '[' {
			depth++
		} else if s[i] == ']' {
			depth--
			if depth == 0 {
				end = i
				break
			}
		}
	}
	inner := s[1:end]
	desc := ""
	if end < len(s) {
		desc = strings.TrimSpace(s[end+1:])
	}
	name, def, _ := strings.Cut(inner, "=")
	return Param{Name: strings.TrimSpace(name), Optional: true}, strings.TrimSpace(def), desc
}

func descriptionLine(l string) Line {
	t := strings.TrimSpace(l)
	for _, m := range warnMarkers {
		if strings.HasPrefix(t, m) {
			return Line{Text: strings.TrimSpace(t[len(m):]), Warning: true}
		}
	}
	return Line{Text: t}
}

// isBlank reports lines that carry no text. A lone "*" is leftover
// decoration, not an empty warning.
func isBlank(l string) bool {
	t := strings.TrimSpace(l)
	return t == "" || t == "*"
}

func isTag(l string) bool {
	return strings.HasPrefix(strings.TrimSpace(l), "@")
}

// memberDescription collects the lines before the first recognized tag.
func memberDescription(lines []string) Description {
	var d Description
	for _, l := range lines {
		if knownTag.MatchString(strings.TrimSpace(l)) {
			break
		}
		if isTag(l) || isBlank(l) {
			continue
		}
		d = append(d, descriptionLine(l))
	}
	return d
}

// methodDescription collects the non-tag lines before the example.
func methodDescription(lines []string) Description {
	var d Description
	for _, l := range lines {
		t := strings.TrimSpace(l)
		if exampleTag.MatchString(t) {
			break
		}
		if isTag(t) || isBlank(t) {
			continue
		}
		d = append(d, descriptionLine(t))
	}
	return d
}

func firstLine(lines []string) Description {
	if len(lines) == 0 || isTag(lines[0]) || isBlank(lines[0]) {
		return nil
	}
	return Description{descriptionLine(lines[0])}
}

// example returns everything after an example tag to the end of the
// comment, verbatim, with trailing blank lines removed.
func example(lines []string) string {
	for i, l := range lines {
		t := strings.TrimSpace(l)
		loc := exampleTag.FindStringIndex(t)
		if loc == nil {
			continue
		}
		var body []string
		if rest := strings.TrimSpace(t[loc[1]:]); rest != "" {
			body = append(body, rest)
		}
		body = append(body, lines[i+1:]...)
		for len(body) > 0 && strings.TrimSpace(body[len(body)-1]) == "" {
			body = body[:len(body)-1]
		}
		return strings.Join(body, "\n")
	}
	return ""
}
