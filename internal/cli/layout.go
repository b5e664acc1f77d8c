package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/featureviewer/pkg/io"
	"github.com/matzehuels/featureviewer/pkg/layout"
	"github.com/matzehuels/featureviewer/pkg/pipeline"
	"github.com/matzehuels/featureviewer/pkg/record"
)

// layoutCommand creates the layout command for inspecting the static pass.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		width   float64
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout [record file]",
		Short: "Show the level and label assignment of a record",
		Long: `Run the static layout pass for the first record in a file and print, for
every feature, its level and the anchors of its external label.

With --output the layout is also written as JSON (the same document as
'render -f json').`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.renderDefaults()
			opts.Formats = []string{pipeline.FormatJSON}
			if cmd.Flags().Changed("width") {
				opts.Width = width
			}
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layout JSON to this file")
	cmd.Flags().Float64Var(&width, "width", 0, "figure width in inches (default 5)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute the cached layout")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	rec, err := io.ImportRecord(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, rec, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	prepared, err := pipeline.PrepareRecord(rec)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, StyleTitle.Render(prepared.Name))
	w, h := result.Layout.WidthInches, result.Layout.HeightInches
	printKeyValue("sequence", strconv.FormatFloat(prepared.SequenceLength, 'f', -1, 64))
	printKeyValue("figure", fmt.Sprintf("%.2f x %.2f in", w, h))
	printKeyValue("max y", strconv.FormatFloat(result.Layout.MaxY(), 'f', -1, 64))
	fmt.Fprintln(stdout, layoutTable(prepared, result.Layout))
	printStats(result.Stats.Features, result.Stats.Levels, result.Stats.Labels, result.CacheInfo.LayoutHit)

	if output != "" {
		data, err := json.MarshalIndent(result.Layout, "", "  ")
		if err != nil {
			return err
		}
		if err := writeFile(output, data); err != nil {
			return err
		}
		printFile(output)
		printNewline()
		printNextStep("Render", "featureviewer render -f svg,html "+input)
	}
	return nil
}

// layoutTable lists features in level order, then by start.
func layoutTable(rec record.Record, l layout.Layout) string {
	features := slices.Clone(rec.Features)
	slices.SortStableFunc(features, func(a, b record.Feature) int {
		if d := l.Levels[a.ID] - l.Levels[b.ID]; d != 0 {
			return d
		}
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		}
		return 0
	})

	rows := make([][]string, 0, len(features))
	for _, f := range features {
		label, anchor := f.Label, ""
		if pd, ok := l.PlotData[f.ID]; ok {
			anchor = strconv.FormatFloat(pd.AnnotationY, 'f', -1, 64)
		} else if l.Inline[f.ID] {
			anchor = "inline"
		}
		rows = append(rows, []string{
			f.ID,
			strconv.FormatFloat(f.Start, 'f', -1, 64),
			strconv.FormatFloat(f.End, 'f', -1, 64),
			f.Strand.String(),
			strconv.Itoa(l.Levels[f.ID]),
			label,
			anchor,
		})
	}
	return renderTable([]string{"ID", "Start", "End", "Strand", "Level", "Label", "Label Y"}, rows)
}
