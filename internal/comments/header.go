package comments

import "regexp"

var classPattern = regexp.MustCompile(`(?m)(?:^|[\s=(])class\s+([A-Za-z_$][\w$]*)(?:\s+extends\s+([\w$.]+))?\s*\{`)

// Header is the class declaration of a unit.
type Header struct {
	Name    string
	Extends string
}

// ParseHeader finds the first class declaration in src.
func ParseHeader(src string) (Header, bool) {
	m := classPattern.FindStringSubmatch(src)
	if m == nil {
		return Header{}, false
	}
	return Header{Name: m[1], Extends: m[2]}, true
}

// Description returns the text of the first comment that documents no
// member, which by convention describes the unit itself.
func Description(cs []Classified) string {
	for _, c := range cs {
		if c.Kind == KindNone {
			return c.Text
		}
	}
	return ""
}
