package layout

import (
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/errors"
)

// Config holds the geometry of a tracking diagram. All values are in the
// same abstract units as the resulting positions (pixels for SVG output).
//
// Config is passed by value to [Calculate]; there is no package-level state,
// so different diagrams can be laid out concurrently with different sizes.
type Config struct {
	NodeWidth      float64 `json:"nodeWidth" toml:"node_width" bson:"node_width"`
	NodeHeight     float64 `json:"nodeHeight" toml:"node_height" bson:"node_height"`
	SiblingSpacing float64 `json:"siblingSpacing" toml:"sibling_spacing" bson:"sibling_spacing"`
	SubtreeSpacing float64 `json:"subtreeSpacing" toml:"subtree_spacing" bson:"subtree_spacing"`
	LevelHeight    float64 `json:"levelHeight" toml:"level_height" bson:"level_height"`
	Padding        float64 `json:"padding" toml:"padding" bson:"padding"`
}

// Default geometry of the platform's sub-task diagram.
const (
	DefaultNodeWidth      = 600
	DefaultNodeHeight     = 120
	DefaultSiblingSpacing = 170
	DefaultSubtreeSpacing = 170
	DefaultLevelHeight    = 300
	DefaultPadding        = 50
)

// DefaultConfig returns the geometry used by the tracking diagram.
func DefaultConfig() Config {
	return Config{
		NodeWidth:      DefaultNodeWidth,
		NodeHeight:     DefaultNodeHeight,
		SiblingSpacing: DefaultSiblingSpacing,
		SubtreeSpacing: DefaultSubtreeSpacing,
		LevelHeight:    DefaultLevelHeight,
		Padding:        DefaultPadding,
	}
}

// Validate rejects geometry that cannot produce a readable diagram:
// node sizes and level height must be positive, spacings and padding
// must not be negative.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"nodeWidth", c.NodeWidth},
		{"nodeHeight", c.NodeHeight},
		{"levelHeight", c.LevelHeight},
	} {
		if err := errors.ValidatePositive(f.name, f.v); err != nil {
			return err
		}
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"siblingSpacing", c.SiblingSpacing},
		{"subtreeSpacing", c.SubtreeSpacing},
		{"padding", c.Padding},
	} {
		if err := errors.ValidateNonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}
