package comments

import "strings"

// Scan returns the block comments of src in source order. String literals
// and line comments are skipped so that comment delimiters inside them are
// not mistaken for real ones. An unterminated comment ends the scan.
func Scan(src string) []Raw {
	src = normalizeNewlines(src)
	var out []Raw
	line := 1
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '\n':
			line++
			i++
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return out
			}
			body := src[i+2 : i+2+end]
			start := line
			line += strings.Count(body, "\n")
			i += 2 + end + 2
			out = append(out, Raw{
				Text:      strings.Join(cleanBody(body), "\n"),
				StartLine: start,
				EndLine:   line,
				Trailing:  strings.TrimSpace(restOfLine(src, i)),
			})
		case c == '\'' || c == '"' || c == '`':
			i = skipString(src, i, &line)
		default:
			i++
		}
	}
	return out
}

// skipString returns the offset just past the string literal starting at i.
// Only template literals may span lines.
func skipString(src string, i int, line *int) int {
	quote := src[i]
	i++
	for i < len(src) {
		switch c := src[i]; {
		case c == '\\':
			if i+1 < len(src) && src[i+1] == '\n' {
				*line++
			}
			i += 2
			continue
		case c == quote:
			return i + 1
		case c == '\n':
			if quote != '`' {
				return i
			}
			*line++
		}
		i++
	}
	return i
}

func restOfLine(src string, i int) string {
	if nl := strings.IndexByte(src[i:], '\n'); nl >= 0 {
		return src[i : i+nl]
	}
	return src[i:]
}

// cleanBody strips the decoration of a comment body: the extra '*' of a
// "/**" opener, and on every line the indentation, one leading '*' and one
// space after it. Blank lines at either end are dropped.
func cleanBody(body string) []string {
	body = strings.TrimPrefix(body, "*")
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		l = strings.TrimLeft(l, " \t")
		if strings.HasPrefix(l, "*") {
			l = strings.TrimPrefix(l[1:], " ")
		}
		lines[i] = strings.TrimRight(l, " \t")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
