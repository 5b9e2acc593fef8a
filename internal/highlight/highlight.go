// Package highlight formats example code for inclusion in a page.
package highlight

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter turns source code into HTML that may be placed inside a
// <pre><code> element.
type Highlighter interface {
	Highlight(code string) (template.HTML, error)
}

// Plain escapes code without adding any markup.
type Plain struct{}

func (Plain) Highlight(code string) (template.HTML, error) {
	return template.HTML(template.HTMLEscapeString(code)), nil //nolint:gosec // escaped
}

// Chroma highlights code with CSS classes. The matching stylesheet is
// written by WriteCSS.
type Chroma struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter *html.Formatter
}

// NewChroma returns a highlighter for language using the named style.
// Unknown languages fall back to plain text and unknown styles to the
// chroma fallback style.
func NewChroma(language, style string) *Chroma {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	s := styles.Get(style)
	if s == nil {
		s = styles.Fallback
	}
	return &Chroma{
		lexer: chroma.Coalesce(lexer),
		style: s,
		formatter: html.New(
			html.WithClasses(true),
			html.PreventSurroundingPre(true),
		),
	}
}

func (c *Chroma) Highlight(code string) (template.HTML, error) {
	it, err := c.lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("failed to tokenise example: %w", err)
	}
	var buf bytes.Buffer
	if err := c.formatter.Format(&buf, c.style, it); err != nil {
		return "", fmt.Errorf("failed to format example: %w", err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // chroma escapes token text
}

// WriteCSS writes the stylesheet for the highlighter's classes.
func (c *Chroma) WriteCSS(w io.Writer) error {
	return c.formatter.WriteCSS(w, c.style)
}
