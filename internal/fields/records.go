// Package fields turns a classified comment into a typed member record.
package fields

import (
	"strings"

	"github.com/example/docgen/internal/comments"
)

// Record is a documented member. It is one of Property, Getter, Method or
// Constructor.
type Record interface {
	Kind() comments.Kind
	MemberName() string
}

// Line is one line of a member description.
type Line struct {
	Text string
	// Warning marks a line written with a leading "* " or "{!}".
	Warning bool
}

// Description is free text attached to a member.
type Description []Line

// HasWarning reports whether any line is a warning.
func (d Description) HasWarning() bool {
	for _, l := range d {
		if l.Warning {
			return true
		}
	}
	return false
}

// String joins the line texts with newlines.
func (d Description) String() string {
	parts := make([]string, len(d))
	for i, l := range d {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

// Param is a documented argument of a method or constructor.
type Param struct {
	Name        string
	Type        string
	Description string
	Optional    bool
	// Default is set when the argument has a default value.
	Default *Literal
}

type Property struct {
	Name        string
	Type        string
	Description Description
}

type Getter struct {
	Name        string
	Type        string
	Description Description
	Static      bool
}

type Method struct {
	Name        string
	Params      []Param
	Returns     string
	Description Description
	// Example is the verbatim example code, empty when there is none.
	Example string
	Static  bool
	Async   bool
}

type Constructor struct {
	Params      []Param
	Description Description
}

func (Property) Kind() comments.Kind    { return comments.KindProperty }
func (Getter) Kind() comments.Kind      { return comments.KindGetter }
func (Method) Kind() comments.Kind      { return comments.KindMethod }
func (Constructor) Kind() comments.Kind { return comments.KindConstructor }

func (p Property) MemberName() string  { return p.Name }
func (g Getter) MemberName() string    { return g.Name }
func (m Method) MemberName() string    { return m.Name }
func (Constructor) MemberName() string { return "constructor" }

// HasOptional reports whether any param is optional.
func HasOptional(params []Param) bool {
	for _, p := range params {
		if p.Optional {
			return true
		}
	}
	return false
}
