package comments

import "strings"

// Argument is one parameter of a declaration's argument list.
type Argument struct {
	Name string
	// Default is the source text of the default value, when HasDefault.
	Default    string
	HasDefault bool
}

// Signature reads the argument list of a declaration line such as
// "static async find(name = 'x', { limit } = {}) {". Arguments are split on
// top-level commas only, so defaults containing brackets or strings survive.
// A list that runs past the end of the line is read up to the line end.
func Signature(decl string) []Argument {
	open := strings.IndexByte(decl, '(')
	if open < 0 {
		return nil
	}
	var args []Argument
	for _, part := range splitTopLevel(decl[open+1:]) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		a := Argument{Name: part}
		if eq := topLevelAssign(part); eq >= 0 {
			a.Name = strings.TrimSpace(part[:eq])
			a.Default = strings.TrimSpace(part[eq+1:])
			a.HasDefault = true
		}
		a.Name = strings.TrimPrefix(a.Name, "...")
		args = append(args, a)
	}
	return args
}

// splitTopLevel splits s on commas at nesting depth zero and stops at the
// parenthesis that closes the list.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\'', '"', '`':
			i = skipQuoted(s, i)
		case '(', '[', '{':
			depth++
		case ']', '}':
			depth--
		case ')':
			if depth == 0 {
				return append(parts, s[start:i])
			}
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// skipQuoted returns the index of the quote closing the literal at i.
func skipQuoted(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		if s[j] == '\\' {
			j++
			continue
		}
		if s[j] == quote {
			return j
		}
	}
	return len(s) - 1
}

// topLevelAssign returns the index of the first '=' that is an assignment
// rather than part of a comparison or arrow, or -1.
func topLevelAssign(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\'', '"', '`':
			i = skipQuoted(s, i)
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '=':
			if depth != 0 {
				continue
			}
			if i+1 < len(s) && (s[i+1] == '=' || s[i+1] == '>') {
				i++
				continue
			}
			if i > 0 && strings.IndexByte("!<>=", s[i-1]) >= 0 {
				continue
			}
			return i
		}
	}
	return -1
}
