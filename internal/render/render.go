// Package render turns a document model into an HTML page.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/example/docgen/internal/docmodel"
	"github.com/example/docgen/internal/fields"
	"github.com/example/docgen/internal/highlight"
	"github.com/example/docgen/internal/typeexpr"
)

//go:embed templates/*.html
var templateFS embed.FS

// Badges is the markup shown next to member names.
type Badges struct {
	Static   template.HTML
	ReadOnly template.HTML
	Async    template.HTML
}

// DefaultBadges returns the built-in badge markup.
func DefaultBadges() Badges {
	return Badges{
		Static:   `<span class="static"><strong>STATIC</strong></span>`,
		ReadOnly: `<span class="read-only"><strong>READ-ONLY</strong></span>`,
		Async:    `<span class="async"><strong>ASYNC</strong></span>`,
	}
}

// Options configures a Renderer.
type Options struct {
	// Badges defaults to DefaultBadges when zero.
	Badges Badges
	// Highlighter formats examples. Defaults to highlight.Plain.
	Highlighter highlight.Highlighter
	// TitlePrefix is prepended to the unit name in the page title.
	TitlePrefix string
	// Stylesheet is an optional stylesheet URL linked from every page.
	Stylesheet string
}

// Error reports a member that could not be rendered.
type Error struct {
	Member string
	Err    error
}

func (e *Error) Error() string { return fmt.Sprintf("member %s: %v", e.Member, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Renderer renders documents. It holds no per-document state and may be
// shared between goroutines.
type Renderer struct {
	tmpl     *template.Template
	resolver *typeexpr.Resolver
	opts     Options
}

// New parses the embedded template set.
func New(resolver *typeexpr.Resolver, opts Options) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if opts.Badges == (Badges{}) {
		opts.Badges = DefaultBadges()
	}
	if opts.Highlighter == nil {
		opts.Highlighter = highlight.Plain{}
	}
	return &Renderer{tmpl: tmpl, resolver: resolver, opts: opts}, nil
}

type summaryItem struct {
	Link   template.HTMLAttr
	Label  string
	Badges []template.HTML
}

type propertyView struct {
	Link        template.HTMLAttr
	Name        string
	Type        template.HTML
	Description template.HTML
	HasWarning  bool
	Badges      []template.HTML
}

type methodView struct {
	Link        template.HTMLAttr
	Name        string
	ParamList   string
	Badges      []template.HTML
	Description template.HTML
	Params      template.HTML
	Returns     template.HTML
	Example     template.HTML
}

type constructorView struct {
	Unit        string
	ParamList   string
	Description template.HTML
	Params      template.HTML
}

type paramRow struct {
	Name        string
	Type        template.HTML
	Description template.HTML
	Optional    bool
	Default     string
}

type unitView struct {
	TitlePrefix   string
	Stylesheet    string
	Unit          string
	Extends       template.HTML
	Description   template.HTML
	Constructor   template.HTML
	PropertyItems []summaryItem
	MethodItems   []summaryItem
	Properties    []template.HTML
	Methods       []template.HTML
}

// Render produces the page for doc. The output depends only on doc and the
// renderer's options.
func (r *Renderer) Render(doc *docmodel.Document) (string, error) {
	view := unitView{
		TitlePrefix: r.opts.TitlePrefix,
		Stylesheet:  r.opts.Stylesheet,
		Unit:        doc.Unit,
		Extends:     r.extends(doc.Extends),
		Description: r.text(doc.Description),
	}

	if doc.Constructor != nil {
		html, err := r.constructor(doc.Unit, doc.Constructor)
		if err != nil {
			return "", &Error{Member: "constructor", Err: err}
		}
		view.Constructor = html
	}

	for _, p := range doc.Properties {
		html, err := r.property(p.Name, p.Type, p.Description, nil)
		if err != nil {
			return "", &Error{Member: p.Name, Err: err}
		}
		view.PropertyItems = append(view.PropertyItems, summaryItem{Link: href(propertyAnchor(p.Name)), Label: "." + p.Name})
		view.Properties = append(view.Properties, html)
	}
	for _, g := range doc.Getters {
		badges := r.getterBadges(g)
		html, err := r.property(g.Name, g.Type, g.Description, badges)
		if err != nil {
			return "", &Error{Member: g.Name, Err: err}
		}
		view.PropertyItems = append(view.PropertyItems, summaryItem{Link: href(propertyAnchor(g.Name)), Label: "." + g.Name, Badges: badges})
		view.Properties = append(view.Properties, html)
	}
	for _, m := range doc.Methods {
		html, err := r.method(m)
		if err != nil {
			return "", &Error{Member: m.Name, Err: err}
		}
		var badges []template.HTML
		if m.Static {
			badges = append(badges, r.opts.Badges.Static)
		}
		view.MethodItems = append(view.MethodItems, summaryItem{Link: href(methodAnchor(m.Name)), Label: "." + m.Name + "()", Badges: badges})
		view.Methods = append(view.Methods, html)
	}

	out, err := r.exec("unit", view)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func propertyAnchor(name string) string { return "." + name }

func methodAnchor(name string) string { return "." + name + "()" }

// href and anchor build attributes by hand because html/template would
// percent-encode the parentheses of method fragments.
func href(anchor string) template.HTMLAttr {
	return template.HTMLAttr(`href="./#` + template.HTMLEscapeString(anchor) + `"`) //nolint:gosec // escaped
}

func anchor(name string) template.HTMLAttr {
	a := template.HTMLEscapeString(name)
	return template.HTMLAttr(`name="` + a + `" href="./#` + a + `"`) //nolint:gosec // escaped
}

func (r *Renderer) getterBadges(g fields.Getter) []template.HTML {
	badges := []template.HTML{r.opts.Badges.ReadOnly}
	if g.Static {
		badges = append([]template.HTML{r.opts.Badges.Static}, badges...)
	}
	return badges
}

func (r *Renderer) property(name, typ string, desc fields.Description, badges []template.HTML) (template.HTML, error) {
	linked, err := r.resolver.Render(typ)
	if err != nil {
		return "", err
	}
	return r.exec("property", propertyView{
		Link:        anchor(propertyAnchor(name)),
		Name:        name,
		Type:        linked,
		Description: r.description(desc),
		HasWarning:  desc.HasWarning(),
		Badges:      badges,
	})
}

func (r *Renderer) method(m fields.Method) (template.HTML, error) {
	returns, err := r.resolver.Render(m.Returns)
	if err != nil {
		return "", err
	}
	params, err := r.paramTable(m.Params)
	if err != nil {
		return "", err
	}
	var example template.HTML
	if m.Example != "" {
		if example, err = r.opts.Highlighter.Highlight(m.Example); err != nil {
			return "", err
		}
	}
	var badges []template.HTML
	if m.Static {
		badges = append(badges, r.opts.Badges.Static)
	}
	if m.Async {
		badges = append(badges, r.opts.Badges.Async)
	}
	return r.exec("method", methodView{
		Link:        anchor(methodAnchor(m.Name)),
		Name:        m.Name,
		ParamList:   paramList(m.Params, true),
		Badges:      badges,
		Description: r.description(m.Description),
		Params:      params,
		Returns:     returns,
		Example:     example,
	})
}

func (r *Renderer) constructor(unit string, c *fields.Constructor) (template.HTML, error) {
	params, err := r.paramTable(c.Params)
	if err != nil {
		return "", err
	}
	return r.exec("constructor", constructorView{
		Unit:        unit,
		ParamList:   paramList(c.Params, false),
		Description: r.description(c.Description),
		Params:      params,
	})
}

// paramList joins parameter names for a heading, bracketing optional ones
// when marked is set.
func paramList(params []fields.Param, marked bool) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
		if marked && p.Optional {
			names[i] = "[" + p.Name + "]"
		}
	}
	return strings.Join(names, ", ")
}

// paramTable picks the five column layout when any parameter is optional.
func (r *Renderer) paramTable(params []fields.Param) (template.HTML, error) {
	if len(params) == 0 {
		return "", nil
	}
	rows := make([]paramRow, len(params))
	for i, p := range params {
		typ, err := r.resolver.Render(p.Type)
		if err != nil {
			return "", fmt.Errorf("param %s: %w", p.Name, err)
		}
		rows[i] = paramRow{
			Name:        p.Name,
			Type:        typ,
			Description: r.text(p.Description),
			Optional:    p.Optional,
		}
		if p.Default != nil {
			rows[i].Default = p.Default.String()
		}
	}
	name := "param-table"
	if fields.HasOptional(params) {
		name = "param-table-optional"
	}
	return r.exec(name, rows)
}

// extends links the base unit when its name resolves, and prints it as
// text otherwise.
func (r *Renderer) extends(name string) template.HTML {
	if name == "" {
		return ""
	}
	if html, err := r.resolver.Render(name); err == nil {
		return html
	}
	return template.HTML(template.HTMLEscapeString(name)) //nolint:gosec // escaped
}

func (r *Renderer) exec(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // produced by html/template
}

var codeSpan = regexp.MustCompile("`([^`\n]*)`")

// description escapes every line, wraps warning lines, then turns
// backtick spans into inline code.
func (r *Renderer) description(d fields.Description) template.HTML {
	parts := make([]string, len(d))
	for i, l := range d {
		text := template.HTMLEscapeString(l.Text)
		if l.Warning {
			w, err := r.exec("warn", template.HTML(text)) //nolint:gosec // escaped
			if err == nil {
				text = string(w)
			}
		}
		parts[i] = text
	}
	return codeSpans(strings.Join(parts, "\n"))
}

// text renders plain free text with inline code spans.
func (r *Renderer) text(s string) template.HTML {
	return codeSpans(template.HTMLEscapeString(s))
}

func codeSpans(escaped string) template.HTML {
	return template.HTML(codeSpan.ReplaceAllString(escaped, `<span class="mini-code-block">$1</span>`)) //nolint:gosec // input is escaped
}
