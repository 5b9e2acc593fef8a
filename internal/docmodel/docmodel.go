// Package docmodel assembles member records into the document of one unit.
package docmodel

import (
	"errors"
	"fmt"
	"sort"

	"github.com/example/docgen/internal/comments"
	"github.com/example/docgen/internal/fields"
)

// ErrBuilt is returned by Add once Build has been called.
var ErrBuilt = errors.New("document already built")

// DuplicateConstructorError reports a second constructor record for a unit.
// It fails the unit.
type DuplicateConstructorError struct {
	Unit string
}

func (e *DuplicateConstructorError) Error() string {
	return fmt.Sprintf("unit %s: more than one constructor documented", e.Unit)
}

// DuplicateMemberError reports a member documented twice. The first record
// is kept and the later one dropped.
type DuplicateMemberError struct {
	Unit   string
	Kind   comments.Kind
	Member string
}

func (e *DuplicateMemberError) Error() string {
	return fmt.Sprintf("unit %s: %s %q documented more than once, keeping the first", e.Unit, e.Kind, e.Member)
}

// Document is the complete reference model of one unit. Properties, Getters
// and Methods are sorted by name once the document is built.
type Document struct {
	Unit        string
	Extends     string
	Description string
	Constructor *fields.Constructor
	Properties  []fields.Property
	Getters     []fields.Getter
	Methods     []fields.Method
}

// Builder collects records for one unit.
type Builder struct {
	doc   Document
	seen  map[string]bool
	built bool
}

// NewBuilder starts a document for unit.
func NewBuilder(unit, extends, description string) *Builder {
	return &Builder{
		doc:  Document{Unit: unit, Extends: extends, Description: description},
		seen: make(map[string]bool),
	}
}

// Add places a record in its section. Members are told apart by kind and
// name, so a getter may share its name with a property.
func (b *Builder) Add(r fields.Record) error {
	if b.built {
		return ErrBuilt
	}
	if c, ok := r.(fields.Constructor); ok {
		if b.doc.Constructor != nil {
			return &DuplicateConstructorError{Unit: b.doc.Unit}
		}
		b.doc.Constructor = &c
		return nil
	}

	key := r.Kind().String() + ":" + r.MemberName()
	if b.seen[key] {
		return &DuplicateMemberError{Unit: b.doc.Unit, Kind: r.Kind(), Member: r.MemberName()}
	}
	b.seen[key] = true

	switch v := r.(type) {
	case fields.Property:
		b.doc.Properties = append(b.doc.Properties, v)
	case fields.Getter:
		b.doc.Getters = append(b.doc.Getters, v)
	case fields.Method:
		b.doc.Methods = append(b.doc.Methods, v)
	default:
		return fmt.Errorf("unsupported record type %T", r)
	}
	return nil
}

// Build sorts each section by name and returns the document. Further calls
// to Add fail.
func (b *Builder) Build() *Document {
	if !b.built {
		sort.SliceStable(b.doc.Properties, func(i, j int) bool { return b.doc.Properties[i].Name < b.doc.Properties[j].Name })
		sort.SliceStable(b.doc.Getters, func(i, j int) bool { return b.doc.Getters[i].Name < b.doc.Getters[j].Name })
		sort.SliceStable(b.doc.Methods, func(i, j int) bool { return b.doc.Methods[i].Name < b.doc.Methods[j].Name })
		b.built = true
	}
	return &b.doc
}
