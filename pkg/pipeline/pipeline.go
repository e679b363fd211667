// Package pipeline provides the build → layout → render pipeline for
// tracktree.
//
// The CLI and the HTTP server both go through this package so that record
// handling, caching and output formats behave the same everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: link tracking records into a tree (pkg/tree)
//  2. Layout: position the tree (pkg/layout) and flatten it (pkg/graph)
//  3. Render: produce SVG, PNG, PDF, DOT or JSON artifacts
//
// Layouts are cached by the hash of the input records plus the geometry;
// artifacts by the hash of the layout plus the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, records, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// Run individual stages:
//
//	l, hit, err := runner.ComputeLayout(ctx, records, opts)
//	artifacts, hit, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/cache"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/errors"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/graph"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/layout"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/render/nodelink"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/render/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// Renderer engines. EngineNative draws the SVG directly; the Graphviz
// engines go through DOT.
const (
	EngineNative = "native"
	EngineNeato  = string(nodelink.EngineNeato)
	EngineDot    = string(nodelink.EngineDot)
)

const (
	// DefaultStyle is the default visual style.
	DefaultStyle = styles.NameSimple

	// DefaultEngine is the default renderer.
	DefaultEngine = EngineNative

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 1.0

	// MaxScale bounds PNG output size.
	MaxScale = 4.0
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// ValidEngines is the set of supported renderers.
var ValidEngines = map[string]bool{
	EngineNative: true,
	EngineNeato:  true,
	EngineDot:    true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options. A zero Layout is replaced by layout.DefaultConfig.
	Layout layout.Config `json:"layout"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Style       string   `json:"style,omitempty"`
	Engine      string   `json:"engine,omitempty"`
	Title       string   `json:"title,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	Tooltips    bool     `json:"tooltips,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	WithData    bool     `json:"with_data,omitempty"` // keep record payload in JSON output

	// Refresh bypasses cache lookups; results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the positioned diagram.
	Layout graph.Layout

	// LayoutHash is the content hash of the serialized layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records    int
	Nodes      int
	Dropped    int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(sortedKeys(ValidFormats), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if _, ok := styles.ByName(style); !ok {
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid style: %q (must be one of: %s)", style, strings.Join(styles.Names(), ", "))
	}
	return nil
}

// ValidateEngine checks that a renderer engine is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid engine: %q (must be one of: %s)", engine, strings.Join(sortedKeys(ValidEngines), ", "))
	}
	return nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates every stage.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills in the default geometry when none was given.
func (o *Options) SetLayoutDefaults() {
	if o.Layout == (layout.Config{}) {
		o.Layout = layout.DefaultConfig()
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return o.Layout.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be between 0 and %v, got %v", MaxScale, o.Scale)
	}
	return nil
}

// UsesGraphviz reports whether SVG and PNG output go through Graphviz.
func (o *Options) UsesGraphviz() bool {
	return o.Engine == EngineNeato || o.Engine == EngineDot
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Config: o.Layout}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Options that do not affect a format are left out so equivalent requests
// share entries.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPNG, FormatPDF:
		k.Style = o.Style
		k.Engine = o.Engine
		k.Title = o.Title
		k.Interactive = o.Interactive
		k.Tooltips = o.Tooltips
		if format == FormatPNG {
			k.Scale = o.Scale
		}
		// Graphviz output embeds the payload in node labels. PNG may fall
		// back to Graphviz when rsvg-convert is missing.
		if o.UsesGraphviz() || format == FormatPNG {
			k.WithData = o.WithData
		}
	case FormatDOT:
		k.Engine = o.Engine
		k.WithData = o.WithData
	case FormatJSON:
		k.WithData = o.WithData
	}
	return k
}
