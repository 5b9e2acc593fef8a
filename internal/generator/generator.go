// Package generator runs the documentation pipeline over a set of units.
package generator

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/example/docgen/internal/comments"
	"github.com/example/docgen/internal/docmodel"
	"github.com/example/docgen/internal/fields"
	"github.com/example/docgen/internal/links"
	"github.com/example/docgen/internal/render"
	"github.com/example/docgen/internal/typeexpr"
)

// Options configures a Generator.
type Options struct {
	Links   *links.Table
	Render  render.Options
	Workers int
	Logger  logrus.FieldLogger
}

// Generator documents units. It is safe for concurrent use.
type Generator struct {
	classifier *comments.Classifier
	renderer   *render.Renderer
	workers    int
	log        logrus.FieldLogger
}

// New creates a new generator.
func New(opts Options) (*Generator, error) {
	table := opts.Links
	if table == nil {
		table = links.New(nil, links.DefaultExternal())
	}
	renderer, err := render.New(typeexpr.NewResolver(table), opts.Render)
	if err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Generator{
		classifier: comments.NewClassifier(),
		renderer:   renderer,
		workers:    workers,
		log:        log,
	}, nil
}

// UnitName returns the class name declared by src, or fallback.
func UnitName(src, fallback string) string {
	if h, ok := comments.ParseHeader(src); ok {
		return h.Name
	}
	return fallback
}

// InternalLinks maps the name of every unit to its page.
func InternalLinks(units []Unit) map[string]string {
	out := make(map[string]string, len(units))
	for _, u := range units {
		name := UnitName(u.Source, u.Name)
		out[name] = links.UnitURL(name)
	}
	return out
}

// ProcessUnit runs one unit through extraction, parsing, model building and
// rendering. Members with missing tags or duplicate names are skipped and
// returned as warnings; any other problem fails the unit.
func (g *Generator) ProcessUnit(u Unit) (*Output, error) {
	header, ok := comments.ParseHeader(u.Source)
	if !ok {
		header.Name = u.Name
	}
	log := g.log.WithField("unit", header.Name)

	classified := g.classifier.Extract(u.Source)
	builder := docmodel.NewBuilder(header.Name, header.Extends, comments.Description(classified))
	out := &Output{Unit: header.Name, Source: u.Path, FileName: header.Name + ".html"}

	for _, c := range classified {
		if c.Kind == comments.KindNone {
			log.WithField("line", c.StartLine).Debug("Comment documents no member")
			continue
		}
		rec, err := fields.Parse(c)
		var missing *fields.MissingTagError
		switch {
		case errors.As(err, &missing):
			log.WithFields(logrus.Fields{"member": c.Name, "kind": c.Kind.String()}).Warn(err.Error())
			out.Warnings = append(out.Warnings, err)
			continue
		case err != nil:
			return nil, &UnitError{Unit: header.Name, Member: c.Name, Err: err}
		}

		err = builder.Add(rec)
		var dup *docmodel.DuplicateMemberError
		switch {
		case errors.As(err, &dup):
			log.WithFields(logrus.Fields{"member": dup.Member, "kind": dup.Kind.String()}).Warn(err.Error())
			out.Warnings = append(out.Warnings, err)
		case err != nil:
			return nil, &UnitError{Unit: header.Name, Member: rec.MemberName(), Err: err}
		}
	}

	html, err := g.renderer.Render(builder.Build())
	if err != nil {
		ue := &UnitError{Unit: header.Name, Err: err}
		var re *render.Error
		if errors.As(err, &re) {
			ue.Member = re.Member
			ue.Err = re.Err
		}
		return nil, ue
	}
	out.HTML = html
	return out, nil
}

// Run processes units in parallel. A failing unit never stops the others;
// cancelling ctx fails the units that have not started yet.
func (g *Generator) Run(ctx context.Context, units []Unit) *Report {
	outputs := make([]*Output, len(units))
	failures := make([]*UnitError, len(units))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, u := range units {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				failures[i] = &UnitError{Unit: u.Name, Err: err}
				return nil
			}
			start := time.Now()
			out, err := g.ProcessUnit(u)
			if err != nil {
				var ue *UnitError
				if !errors.As(err, &ue) {
					ue = &UnitError{Unit: u.Name, Err: err}
				}
				g.log.WithFields(logrus.Fields{"unit": ue.Unit, "member": ue.Member, "file": u.Path}).Error(ue.Err.Error())
				failures[i] = ue
				return nil
			}
			outputs[i] = out
			g.log.WithFields(logrus.Fields{"unit": out.Unit, "duration": time.Since(start)}).
				Infof("Generated docs for %s in %dms", filepath.Base(u.Path), time.Since(start).Milliseconds())
			return nil
		})
	}
	_ = eg.Wait()

	report := &Report{}
	for i := range units {
		if outputs[i] != nil {
			report.Outputs = append(report.Outputs, outputs[i])
		}
		if failures[i] != nil {
			report.Failures = append(report.Failures, failures[i])
		}
	}
	sort.SliceStable(report.Outputs, func(i, j int) bool { return report.Outputs[i].Unit < report.Outputs[j].Unit })
	sort.SliceStable(report.Failures, func(i, j int) bool { return report.Failures[i].Unit < report.Failures[j].Unit })
	return report
}
