package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luminexlabs/lumenviz/pkg/pipeline"
)

// defaultOutput is the base path used when --output is not given.
const defaultOutput = appName

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file (single type and format) or base path
	vizTypes   []string // network, heatmap, radar, gauge, flow, concepts, all
	formats    []string // svg, png, pdf, json, dot, graphviz
	seed       uint64   // overrides the config seed when non-zero
	scale      float64  // PNG pixel density
	gaugeValue float64  // overrides gauge.value when the flag is set
	grid       int      // overrides heatmap.grid when non-zero
	noAnimate  bool     // strip animations from SVG and PDF
	detailed   bool     // index labels in DOT output
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var vizTypesStr, formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render visualizations to files",
		Long: `Render lays out the requested visualizations and writes one file per
type and format. A single type is written as <output>.<format>; several types
as <output>_<type>.<format>. Graphviz output is written as .graphviz.svg.`,
		Example: `  lumenviz render
  lumenviz render -t network,gauge -f svg,png --seed 42
  lumenviz render -t heatmap --grid 20 -f json -o attention
  lumenviz render -t network -f dot,graphviz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.vizTypes = parseList(vizTypesStr)
			opts.formats = parseList(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), &opts, cmd.Flags().Changed("gauge-value"))
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single type/format) or base path (default \"lumenviz\")")
	cmd.Flags().StringVarP(&vizTypesStr, "type", "t", pipeline.VizAll, "visualization type(s): "+strings.Join(pipeline.VizTypes, ", ")+", all (comma-separated)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", pipeline.FormatSVG, "output format(s): "+strings.Join(pipeline.Formats, ", ")+" (comma-separated)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 uses the config seed, or the clock)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG pixel density")
	cmd.Flags().Float64Var(&opts.gaugeValue, "gauge-value", 0, "gauge value in [0,1]")
	cmd.Flags().IntVar(&opts.grid, "grid", 0, "heatmap grid size")
	cmd.Flags().BoolVar(&opts.noAnimate, "no-animate", false, "omit animations from SVG and PDF output")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label DOT nodes with their layer index")

	_ = cmd.RegisterFlagCompletionFunc("type", cobra.FixedCompletions(append(slices.Clone(pipeline.VizTypes), pipeline.VizAll), cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(pipeline.Formats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// pipelineOptions turns flags into pipeline options.
func (c *CLI) pipelineOptions(opts *renderOpts, gaugeSet bool) (pipeline.Options, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return pipeline.Options{}, err
	}
	p := pipeline.Options{
		Config:    &cfg,
		VizTypes:  opts.vizTypes,
		Formats:   opts.formats,
		Seed:      opts.seed,
		Scale:     opts.scale,
		Grid:      opts.grid,
		NoAnimate: opts.noAnimate,
		Detailed:  opts.detailed,
		Logger:    c.Logger,
	}
	if gaugeSet {
		v := opts.gaugeValue
		p.GaugeValue = &v
	}
	return p, nil
}

// runRender executes the pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, opts *renderOpts, gaugeSet bool) error {
	logger := loggerFromContext(ctx)

	popts, err := c.pipelineOptions(opts, gaugeSet)
	if err != nil {
		return err
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	logger.Infof("Rendering %s as %s", strings.Join(popts.VizTypes, ", "), strings.Join(popts.Formats, ", "))

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	res, err := c.newRunner().Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d visualizations", len(res.Artifacts)))

	for _, s := range res.Skipped {
		if s.Format == "" {
			printWarning("%s skipped: %s", s.VizType, s.Reason)
		} else {
			logger.Debugf("Skipped %s/%s (%s)", s.VizType, s.Format, s.Reason)
		}
	}

	files := res.Files(basePath(opts.output))
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	for _, p := range paths {
		if err := writeFile(p, files[p]); err != nil {
			return err
		}
		logger.Debugf("Wrote %s (%d bytes)", p, len(files[p]))
	}

	printSuccess("Wrote %d files", len(paths))
	for _, p := range paths {
		printFile(p)
	}
	printStats(res.Seed, totalElements(res), res.Stats.LayoutTime+res.Stats.RenderTime)
	return nil
}

// basePath strips a known format extension from output, or falls back to
// defaultOutput.
func basePath(output string) string {
	if output == "" {
		return defaultOutput
	}
	if strings.HasSuffix(output, ".graphviz.svg") {
		return strings.TrimSuffix(output, ".graphviz.svg")
	}
	if hasFormatExt(output) {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return output
}

func hasFormatExt(path string) bool {
	return pipeline.ValidFormats[strings.TrimPrefix(filepath.Ext(path), ".")]
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func totalElements(res *pipeline.Result) int {
	n := 0
	for _, v := range res.Stats.Elements {
		n += v
	}
	return n
}
