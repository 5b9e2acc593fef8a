package generator

import (
	"fmt"
	"strings"
)

// Unit is one source file to document.
type Unit struct {
	// Name is the file base name without extension. It names the page when
	// the source declares no class.
	Name   string
	Path   string
	Source string
}

// Output is the rendered page of one unit.
type Output struct {
	// Unit is the documented class name.
	Unit     string
	Source   string
	FileName string
	HTML     string
	// Warnings lists members that were skipped.
	Warnings []error
}

// UnitError is a failure that stopped a unit from being documented.
type UnitError struct {
	Unit   string
	Member string
	Err    error
}

func (e *UnitError) Error() string {
	if e.Member != "" {
		return fmt.Sprintf("unit %s, member %s: %v", e.Unit, e.Member, e.Err)
	}
	return fmt.Sprintf("unit %s: %v", e.Unit, e.Err)
}

func (e *UnitError) Unwrap() error { return e.Err }

// Report is the outcome of a run. Both lists are ordered by unit name.
type Report struct {
	Outputs  []*Output
	Failures []*UnitError
}

// Failed reports whether any unit failed.
func (r *Report) Failed() bool { return len(r.Failures) > 0 }

// Summary is the one-line outcome of the run.
func (r *Report) Summary() string {
	return fmt.Sprintf("Summary: %d generated, %d failed", len(r.Outputs), len(r.Failures))
}

// Describe lists the failures of a report, one per line.
func (r *Report) Describe() string {
	lines := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		lines[i] = "  " + f.Error()
	}
	return strings.Join(lines, "\n")
}
