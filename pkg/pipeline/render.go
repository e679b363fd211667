package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/errors"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/graph"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/observability"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/render"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/render/nodelink"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/render/sink"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/render/styles"
)

// RenderAll generates every format in opts.Formats concurrently.
// It does not consult the cache; see [Runner.Render].
func RenderAll(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	out := make([][]byte, len(opts.Formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, format := range opts.Formats {
		g.Go(func() error {
			data, err := RenderFormat(gctx, l, format, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			out[i] = data
			return nil
		})
	}
	err := g.Wait()
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for i, format := range opts.Formats {
		artifacts[format] = out[i]
	}
	return artifacts, nil
}

// RenderFormat renders a single format. opts must have passed
// ValidateForRender.
func RenderFormat(ctx context.Context, l graph.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		if opts.UsesGraphviz() {
			return nodelink.RenderSVG(ctx, toDOT(l, opts), nodelink.Engine(opts.Engine))
		}
		return sink.RenderSVG(l, svgOptions(opts)...), nil
	case FormatPNG:
		// Graphviz renders PNG itself, so it also covers hosts without rsvg-convert.
		if opts.UsesGraphviz() || !render.ConverterAvailable() {
			return nodelink.RenderPNG(ctx, toDOT(l, opts), graphvizEngine(opts))
		}
		return sink.RenderPNG(ctx, l, sink.WithPNGSVGOptions(svgOptions(opts)...), sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(ctx, l, svgOptions(opts)...)
	case FormatDOT:
		return []byte(toDOT(l, opts)), nil
	case FormatJSON:
		var jsonOpts []sink.JSONOption
		if opts.WithData {
			jsonOpts = append(jsonOpts, sink.WithJSONData())
		}
		return sink.RenderJSON(l, jsonOpts...)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}
}

func svgOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if s, ok := styles.ByName(opts.Style); ok {
		svgOpts = append(svgOpts, sink.WithStyle(s))
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}
	if opts.Tooltips {
		svgOpts = append(svgOpts, sink.WithTooltips())
	}
	return svgOpts
}

func toDOT(l graph.Layout, opts Options) string {
	return nodelink.ToDOT(l, nodelink.Options{
		Detailed: opts.WithData,
		Free:     opts.Engine == EngineDot,
	})
}

// graphvizEngine keeps computed positions unless dot was asked for.
func graphvizEngine(opts Options) nodelink.Engine {
	if opts.Engine == EngineDot {
		return nodelink.EngineDot
	}
	return nodelink.EngineNeato
}
