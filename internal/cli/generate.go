package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/example/docgen/internal/config"
	"github.com/example/docgen/internal/generator"
	"github.com/example/docgen/internal/highlight"
	"github.com/example/docgen/internal/links"
	"github.com/example/docgen/internal/render"
	"github.com/example/docgen/internal/watch"
)

// stylesheetName is written next to the pages when highlighting is on.
const stylesheetName = "highlight.css"

func newGenerateCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate HTML reference pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}
	addGenerateFlags(cmd.Flags())
	return cmd
}

// loadConfig applies the flags that have no config key.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}
	if off, _ := cmd.Flags().GetBool("no-highlight"); off {
		cfg.Highlight.Enabled = false
	}
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	report, err := GenerateDocs(ctx, cfg, defaultFileSystem, logger)
	if err != nil {
		return err
	}
	if cfg.Watch {
		return watchAndRegenerate(ctx, cfg, defaultFileSystem, logger)
	}
	return reportError(report)
}

func reportError(report *generator.Report) error {
	if !report.Failed() {
		return nil
	}
	return fmt.Errorf("%d of %d units failed:\n%s",
		len(report.Failures), len(report.Failures)+len(report.Outputs), report.Describe())
}

// GenerateDocs documents every unit in cfg.Input and writes the pages to
// cfg.Output. Unit failures are recorded in the report; the error is only
// set when the run itself could not proceed.
func GenerateDocs(ctx context.Context, cfg *config.Config, fsys FileSystem, log logrus.FieldLogger) (*generator.Report, error) {
	units, err := generator.ReadUnits(cfg.Input, cfg.Extension)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		log.WithField("file", cfg.Input).Warnf("No %s files found", cfg.Extension)
	}
	return generateUnits(ctx, cfg, fsys, log, units, units)
}

// generateUnits renders targets with a link table built from all units.
func generateUnits(ctx context.Context, cfg *config.Config, fsys FileSystem, log logrus.FieldLogger, all, targets []generator.Unit) (*generator.Report, error) {
	table := links.New(generator.InternalLinks(all), links.DefaultExternal())
	if cfg.Links != "" {
		f, err := links.LoadFile(cfg.Links)
		if err != nil {
			return nil, err
		}
		table = table.With(f)
	}

	renderOpts := render.Options{TitlePrefix: cfg.Title}
	var chroma *highlight.Chroma
	if cfg.Highlight.Enabled {
		chroma = highlight.NewChroma(cfg.Highlight.Language, cfg.Highlight.Style)
		renderOpts.Highlighter = chroma
		renderOpts.Stylesheet = "./" + stylesheetName
	}

	gen, err := generator.New(generator.Options{
		Links:   table,
		Render:  renderOpts,
		Workers: cfg.Workers,
		Logger:  log,
	})
	if err != nil {
		return nil, err
	}

	report := gen.Run(ctx, targets)
	if err := writeOutputs(cfg.Output, report, chroma, fsys); err != nil {
		return nil, err
	}
	log.Info(report.Summary())
	return report, nil
}

func writeOutputs(dir string, report *generator.Report, chroma *highlight.Chroma, fsys FileSystem) error {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, out := range report.Outputs {
		path := filepath.Join(dir, out.FileName)
		if err := fsys.WriteFile(path, []byte(out.HTML), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	if chroma == nil || len(report.Outputs) == 0 {
		return nil
	}
	var css bytes.Buffer
	if err := chroma.WriteCSS(&css); err != nil {
		return fmt.Errorf("failed to write stylesheet: %w", err)
	}
	return fsys.WriteFile(filepath.Join(dir, stylesheetName), css.Bytes(), 0o644)
}

func watchAndRegenerate(ctx context.Context, cfg *config.Config, fsys FileSystem, log logrus.FieldLogger) error {
	w := watch.New(cfg.Input, cfg.Extension, log, func(b watch.Batch) {
		if err := regenerate(ctx, cfg, fsys, log, b); err != nil {
			log.WithError(err).Error("Regeneration failed")
		}
	})
	return w.Run(ctx)
}

// regenerate rebuilds the pages of the changed units. A new unit can
// resolve links that failed before and adds links to other pages, so a
// batch with a created file rebuilds every unit.
func regenerate(ctx context.Context, cfg *config.Config, fsys FileSystem, log logrus.FieldLogger, b watch.Batch) error {
	all, err := generator.ReadUnits(cfg.Input, cfg.Extension)
	if err != nil {
		return err
	}
	if b.Created {
		_, err = generateUnits(ctx, cfg, fsys, log, all, all)
		return err
	}
	changed := make(map[string]bool, len(b.Paths))
	for _, p := range b.Paths {
		changed[filepath.Clean(p)] = true
	}
	var targets []generator.Unit
	for _, u := range all {
		if changed[filepath.Clean(u.Path)] {
			targets = append(targets, u)
		}
	}
	if len(targets) == 0 {
		return nil
	}
	_, err = generateUnits(ctx, cfg, fsys, log, all, targets)
	return err
}
