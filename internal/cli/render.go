package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/graph"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/layout"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/pipeline"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/render/styles"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/tracking"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output      string
	formats     string
	style       string
	engine      string
	title       string
	interactive bool
	tooltips    bool
	withData    bool
	scale       float64
	geom        layout.Config
	noCache     bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{geom: layout.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "render <records|layout.json>",
		Short: "Render tracking records or a saved layout to SVG, PNG, PDF, DOT or JSON",
		Long: `Render a tracking tree diagram.

The input is either a records file (JSON, YAML or TOML), which is laid out
first, or a *.layout.json file written by 'tracktree layout'. Geometry flags
only apply to records input.

Each format is written to <output>.<format>.`,
		Example: `  tracktree render tasks.json
  tracktree render tasks.layout.json -f svg,png --style plain
  tracktree render tasks.json -f dot --engine dot --data`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output base path (default: input name)")
	f.StringVarP(&opts.formats, "format", "f", "", "comma-separated formats: svg, png, pdf, dot, json")
	f.StringVar(&opts.style, "style", "", "visual style: "+strings.Join(styles.Names(), ", "))
	f.StringVar(&opts.engine, "engine", "", "renderer: native, neato or dot")
	f.StringVar(&opts.title, "title", "", "diagram title")
	f.BoolVar(&opts.interactive, "interactive", false, "add hover highlighting to SVG output")
	f.BoolVar(&opts.tooltips, "tooltips", false, "add full-label tooltips to native SVG output")
	f.BoolVar(&opts.withData, "data", false, "include record payloads in JSON and DOT output")
	f.Float64Var(&opts.scale, "scale", 0, "PNG scale factor")
	f.BoolVar(&opts.noCache, "no-cache", false, "bypass the cache")
	addLayoutFlags(cmd, &opts.geom)

	return cmd
}

// pipelineOptions overlays the command flags on the configured defaults.
func (c *CLI) pipelineOptions(cmd *cobra.Command, opts renderOpts) pipeline.Options {
	p := c.Config.PipelineOptions()
	p.Layout = applyChangedLayoutFlags(cmd, opts.geom, c.Config.Layout)
	if formats := parseFormats(opts.formats); formats != nil {
		p.Formats = formats
	}
	if opts.style != "" {
		p.Style = opts.style
	}
	if opts.engine != "" {
		p.Engine = opts.engine
	}
	if cmd.Flags().Changed("interactive") {
		p.Interactive = opts.interactive
	}
	if opts.scale != 0 {
		p.Scale = opts.scale
	}
	p.Title = opts.title
	p.Tooltips = opts.tooltips
	p.WithData = opts.withData
	return p
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := c.pipelineOptions(cmd, opts)
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spinner := newSpinner(ctx, "Rendering...")
	spinner.Start()
	l, artifacts, cached, err := renderInput(ctx, runner, input, popts)
	spinner.Stop()
	if err != nil {
		return err
	}

	base := opts.output
	if base == "" {
		base = stripExt(input)
	}
	paths, err := writeArtifacts(base, artifacts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %d file(s)", len(paths))
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(l.Nodes), len(l.Dropped), cached)
	printDropped(l.Dropped)
	return nil
}

// renderInput renders a layout file directly and lays records out first.
func renderInput(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options) (graph.Layout, map[string][]byte, bool, error) {
	if strings.HasSuffix(input, ".layout.json") {
		l, err := graph.ReadLayoutFile(input)
		if err != nil {
			return graph.Layout{}, nil, false, err
		}
		artifacts, cached, err := runner.Render(ctx, l, opts)
		if err != nil {
			return graph.Layout{}, nil, false, err
		}
		return l, artifacts, cached, nil
	}

	records, err := tracking.Import(input)
	if err != nil {
		return graph.Layout{}, nil, false, err
	}
	result, err := runner.Execute(ctx, records, opts)
	if err != nil {
		return graph.Layout{}, nil, false, err
	}
	return result.Layout, result.Artifacts, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit, nil
}

// writeArtifacts writes each artifact to base.<format> in format order.
func writeArtifacts(base string, artifacts map[string][]byte) ([]string, error) {
	formats := slices.Sorted(maps.Keys(artifacts))
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if format == pipeline.FormatJSON {
			path = base + ".layout.json"
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
