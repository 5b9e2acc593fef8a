package fields

import (
	"errors"
	"fmt"

	"github.com/example/docgen/internal/comments"
)

// ErrNotMember is returned for comments that document no member.
var ErrNotMember = errors.New("comment does not document a member")

// MissingTagError reports a member comment without a tag its kind requires.
// The member is left out of the document.
type MissingTagError struct {
	Kind   comments.Kind
	Member string
	Tag    string
	Line   int
}

func (e *MissingTagError) Error() string {
	return fmt.Sprintf("%s %q at line %d: missing %s tag", e.Kind, e.Member, e.Line, e.Tag)
}
