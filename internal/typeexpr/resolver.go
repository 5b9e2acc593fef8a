package typeexpr

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/example/docgen/internal/links"
)

// Link is a type name resolved against a link table.
type Link struct {
	Name     string
	URL      string
	External bool
}

// Resolver turns type names and expressions into linked HTML.
type Resolver struct {
	table *links.Table
}

// NewResolver returns a resolver backed by table.
func NewResolver(table *links.Table) *Resolver {
	return &Resolver{table: table}
}

// Resolve looks name up in the internal table first and then, ignoring case,
// in the external one.
func (r *Resolver) Resolve(name string) (Link, error) {
	if url, ok := r.table.Internal(name); ok {
		return Link{Name: name, URL: url}, nil
	}
	if url, ok := r.table.External(name); ok {
		return Link{Name: name, URL: url, External: true}, nil
	}
	return Link{}, &UnknownTypeError{Name: name}
}

// Render parses expr and renders it as HTML. The output keeps every
// delimiter of the input, with angle brackets escaped, and replaces each
// name with its link.
func (r *Resolver) Render(expr string) (template.HTML, error) {
	e, err := Parse(expr)
	if err != nil {
		return "", err
	}
	return r.RenderExpr(e)
}

// RenderExpr renders an already parsed expression.
func (r *Resolver) RenderExpr(e *Expr) (template.HTML, error) {
	var b strings.Builder
	if err := r.write(&b, e); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil //nolint:gosec // built from escaped parts
}

func (r *Resolver) write(b *strings.Builder, e *Expr) error {
	switch e.Kind {
	case KindName:
		l, err := r.Resolve(e.Name)
		if err != nil {
			return err
		}
		b.WriteString(linkHTML(l))
		if e.Args != nil {
			b.WriteString("&lt;")
			if err := r.write(b, e.Args); err != nil {
				return err
			}
			b.WriteString("&gt;")
		}
		return nil
	case KindUnion, KindTuple:
		sep := "|"
		if e.Kind == KindTuple {
			sep = ","
		}
		for i, it := range e.Items {
			if i > 0 {
				b.WriteString(sep)
			}
			if err := r.write(b, it); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported expression kind %d", e.Kind)
	}
}

const externalIcon = `<svg xmlns="http://www.w3.org/2000/svg" aria-hidden="true" focusable="false" x="0px" y="0px" viewBox="0 0 100 100" width="15" height="15" class="icon outbound"><path fill="currentColor" d="M18.8,85.1h56l0,0c2.2,0,4-1.8,4-4v-32h-8v28h-48v-48h28v-8h-32l0,0c-2.2,0-4,1.8-4,4v56C14.8,83.3,16.6,85.1,18.8,85.1z"></path><polygon fill="currentColor" points="45.7,48.7 51.3,54.3 77.2,28.5 77.2,37.2 85.2,37.2 85.2,14.9 62.8,14.9 62.8,22.9 71.5,22.9"></polygon></svg>`

func linkHTML(l Link) string {
	url := template.HTMLEscapeString(l.URL)
	name := template.HTMLEscapeString(l.Name)
	if l.External {
		return `<a target="_blank" rel="noopener" href="` + url + `">` + name + ` ` + externalIcon + `</a>`
	}
	return `<a href="` + url + `">` + name + `</a>`
}
