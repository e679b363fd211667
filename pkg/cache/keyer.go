package cache

import (
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/layout"
)

// Keyer builds cache keys. Implementations must be deterministic.
type Keyer interface {
	// LayoutKey identifies a layout computed from records with the given hash.
	LayoutKey(recordsHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists everything besides the records that changes a layout.
type LayoutKeyOpts struct {
	Config layout.Config `json:"config"`
}

// ArtifactKeyOpts lists everything besides the layout that changes a
// rendered artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Style       string  `json:"style,omitempty"`
	Engine      string  `json:"engine,omitempty"`
	Title       string  `json:"title,omitempty"`
	Interactive bool    `json:"interactive,omitempty"`
	Tooltips    bool    `json:"tooltips,omitempty"`
	WithData    bool    `json:"with_data,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(recordsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", recordsHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
