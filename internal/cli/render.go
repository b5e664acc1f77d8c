package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/featureviewer/pkg/io"
	"github.com/matzehuels/featureviewer/pkg/pipeline"
	"github.com/matzehuels/featureviewer/pkg/record"
)

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	formats      string
	output       string
	width        float64
	glyphWidth   float64
	inlineLabels bool
	title        string
	scale        float64
	noRuler      bool
	noCache      bool
	refresh      bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [record files...]",
		Short: "Render feature maps to SVG, PNG, PDF, HTML or layout JSON",
		Long: `Render feature maps from record files.

Record files are JSON, TOML or GFF3 (.json, .toml, .gff, .gff3). A GFF3 file
may hold several sequences; each becomes its own figure. Every record is laid
out once and that layout is shared by all requested formats, so the static
and interactive views always agree.

Outputs are written as <record name>.<format> next to the input file, or into
the --output directory.`,
		Example: `  featureviewer render plasmid.json
  featureviewer render -f svg,html --width 10 annotations.gff3
  featureviewer render -f png --scale 2 -o out/ a.json b.toml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.renderDefaults()
			if err := flags.apply(cmd, &opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args, opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), png, pdf, html, json (comma-separated)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output directory (default: next to each input)")
	cmd.Flags().Float64Var(&flags.width, "width", 0, "figure width in inches (default 5)")
	cmd.Flags().Float64Var(&flags.glyphWidth, "glyph-width", 0, "glyph thickness in level units (default 0.3)")
	cmd.Flags().BoolVar(&flags.inlineLabels, "inline-labels", false, "draw labels inside glyphs when they fit (static formats)")
	cmd.Flags().StringVar(&flags.title, "title", "", "figure title")
	cmd.Flags().Float64Var(&flags.scale, "scale", 0, "PNG scale factor (default 1)")
	cmd.Flags().BoolVar(&flags.noRuler, "no-ruler", false, "omit the sequence ruler")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute and overwrite cached results")

	return cmd
}

// apply copies explicitly set flags over the configuration defaults.
func (f renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	if formats := parseFormats(f.formats); formats != nil {
		opts.Formats = formats
	}
	if cmd.Flags().Changed("width") {
		opts.Width = f.width
	}
	if cmd.Flags().Changed("glyph-width") {
		opts.GlyphWidth = f.glyphWidth
	}
	if cmd.Flags().Changed("inline-labels") {
		opts.InlineLabels = f.inlineLabels
	}
	if cmd.Flags().Changed("scale") {
		opts.Scale = f.scale
	}
	opts.Title = f.title
	opts.NoRuler = f.noRuler
	opts.Refresh = f.refresh

	opts.SetDefaults()
	return opts.Validate()
}

// renderJob is one record and the file it came from.
type renderJob struct {
	input string
	rec   record.Record
}

// runRender loads every input, renders each record and writes the outputs.
func (c *CLI) runRender(ctx context.Context, inputs []string, opts pipeline.Options, flags renderFlags) error {
	logger := loggerFromContext(ctx)

	var jobs []renderJob
	for _, input := range inputs {
		recs, err := io.ImportRecords(input)
		if err != nil {
			return fmt.Errorf("load %s: %w", input, err)
		}
		logger.Debug("loaded records", "file", input, "records", len(recs))
		for _, rec := range recs {
			jobs = append(jobs, renderJob{input: input, rec: rec})
		}
	}

	if flags.output != "" {
		if err := os.MkdirAll(flags.output, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinner(ctx, "Rendering...")
	spinner.Start()

	type rendered struct {
		job    renderJob
		result *pipeline.Result
	}
	results := make([]rendered, 0, len(jobs))
	for i, job := range jobs {
		spinner.Update("Rendering %s (%d/%d)...", job.rec.Name, i+1, len(jobs))
		result, err := runner.Execute(ctx, job.rec, opts)
		if err != nil {
			spinner.StopWithError(fmt.Sprintf("Render failed: %s", job.rec.Name))
			return fmt.Errorf("render %s: %w", job.rec.Name, err)
		}
		results = append(results, rendered{job: job, result: result})
	}
	spinner.Stop()

	if err := ctx.Err(); err != nil {
		return err
	}

	for _, r := range results {
		printSuccess("%s", r.job.rec.Name)
		for _, format := range opts.Formats {
			path := outputPath(flags.output, r.job.input, r.job.rec.Name, format)
			if err := writeFile(path, r.result.Artifacts[format]); err != nil {
				return err
			}
			printFile(path)
		}
		s := r.result.Stats
		printStats(s.Features, s.Levels, s.Labels, r.result.CacheInfo.LayoutHit && r.result.CacheInfo.RenderHit)
	}
	prog.done(fmt.Sprintf("Rendered %d records", len(results)))

	if opts.Has(pipeline.FormatHTML) && len(results) > 0 {
		printNewline()
		printNextStep("Serve interactively", "featureviewer serve "+results[0].job.input)
	}
	return nil
}

// writeFile writes data to path, creating missing parent directories.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
