// Package links holds the lookup tables that map type names to URLs.
//
// A Table has two halves. Internal entries point at pages of the same
// documentation set and are matched case-sensitively. External entries point
// at third-party reference pages and are matched on the lowercased name.
package links

import (
	"maps"
	"strings"
)

// Table maps type names to documentation URLs. A Table is safe for
// concurrent reads once built.
type Table struct {
	internal map[string]string
	external map[string]string
}

// New builds a table from the given internal and external maps. Both maps
// are copied; external keys are lowercased.
func New(internal, external map[string]string) *Table {
	t := &Table{
		internal: make(map[string]string, len(internal)),
		external: make(map[string]string, len(external)),
	}
	maps.Copy(t.internal, internal)
	for name, url := range external {
		t.external[strings.ToLower(name)] = url
	}
	return t
}

// Internal looks up a type among the documented units.
func (t *Table) Internal(name string) (string, bool) {
	url, ok := t.internal[name]
	return url, ok
}

// External looks up a type among the third-party references.
func (t *Table) External(name string) (string, bool) {
	url, ok := t.external[strings.ToLower(name)]
	return url, ok
}

// With returns a copy of t with the given entries layered over it. Entries
// in f replace entries of the same name in t.
func (t *Table) With(f *File) *Table {
	if f == nil {
		return t
	}
	internal := maps.Clone(t.internal)
	external := maps.Clone(t.external)
	maps.Copy(internal, f.Internal)
	for name, url := range f.External {
		external[strings.ToLower(name)] = url
	}
	return &Table{internal: internal, external: external}
}

// Len reports the number of internal and external entries.
func (t *Table) Len() (internal, external int) {
	return len(t.internal), len(t.external)
}

// UnitURL is the relative URL of a generated unit page.
func UnitURL(unit string) string {
	return "./" + unit + ".html"
}

// DefaultExternal returns the built-in third-party references. The returned
// map is a fresh copy and may be modified by the caller.
func DefaultExternal() map[string]string {
	const mdn = "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/"
	return map[string]string{
		"any":          mdn + "Data_structures",
		"array":        mdn + "Global_Objects/Array",
		"bigint":       mdn + "Global_Objects/BigInt",
		"boolean":      mdn + "Global_Objects/Boolean",
		"buffer":       "https://nodejs.org/api/buffer.html#class-buffer",
		"collection":   "https://discord.js.org/docs/packages/collection/main/Collection:Class",
		"date":         mdn + "Global_Objects/Date",
		"error":        mdn + "Global_Objects/Error",
		"eventemitter": "https://nodejs.org/api/events.html#class-eventemitter",
		"function":     mdn + "Global_Objects/Function",
		"map":          mdn + "Global_Objects/Map",
		"model":        "https://mongoosejs.com/docs/api/model.html",
		"null":         mdn + "Operators/null",
		"number":       mdn + "Global_Objects/Number",
		"object":       mdn + "Global_Objects/Object",
		"promise":      mdn + "Global_Objects/Promise",
		"regexp":       mdn + "Global_Objects/RegExp",
		"set":          mdn + "Global_Objects/Set",
		"string":       mdn + "Global_Objects/String",
		"symbol":       mdn + "Global_Objects/Symbol",
		"undefined":    mdn + "Global_Objects/undefined",
		"void":         mdn + "Operators/void",
	}
}
