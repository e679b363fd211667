package layout

import (
	"fmt"
	"math"
	"testing"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/errors"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/tracking"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/tree"
)

const eps = 1e-9

// build constructs a tree from "key:parent" pairs.
func build(t *testing.T, pairs ...string) *tree.Node {
	t.Helper()
	records := make([]tracking.Record, len(pairs))
	for i, p := range pairs {
		var key, parent string
		for j := range p {
			if p[j] == ':' {
				key, parent = p[:j], p[j+1:]
				break
			}
		}
		records[i] = tracking.Record{Key: key, Parent: parent}
	}
	root, _, err := tree.Build(records)
	if err != nil {
		t.Fatalf("tree.Build: %v", err)
	}
	return root
}

func mustCalculate(t *testing.T, root *tree.Node, cfg Config) {
	t.Helper()
	if err := Calculate(root, cfg); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
}

func positions(root *tree.Node) map[string][2]float64 {
	out := make(map[string][2]float64)
	_ = tree.Walk(root, func(n, _ *tree.Node, _ int) error {
		out[n.ID] = [2]float64{n.X, n.Y}
		return nil
	})
	return out
}

func near(a, b float64) bool { return math.Abs(a-b) < eps }

// fixtures are shared by the property tests below.
var fixtures = []struct {
	name  string
	pairs []string
}{
	{"single", []string{"1:1"}},
	{"two leaves", []string{"1:1", "2:1", "3:1"}},
	{"chain", []string{"1:1", "2:1", "3:2", "4:3"}},
	{"balanced", []string{"r:r", "a:r", "b:r", "a1:a", "a2:a", "b1:b", "b2:b"}},
	{"leaf between subtrees", []string{"r:r", "a:r", "m:r", "b:r", "a1:a", "a2:a", "a3:a", "b1:b", "b2:b", "b3:b"}},
	{"deep left wide right", []string{
		"r:r", "a:r", "b:r",
		"a1:a", "a11:a1", "a111:a11",
		"b1:b", "b2:b", "b3:b", "b4:b",
		"b11:b1", "b12:b1", "b41:b4", "b411:b41", "b412:b41",
	}},
	{"lone leaf then wide", []string{"r:r", "x:r", "y:r", "y1:y", "y2:y", "y3:y", "y4:y", "y5:y"}},
	{"uneven grandchildren", []string{
		"r:r", "a:r", "b:r", "c:r",
		"a1:a", "a2:a",
		"b1:b",
		"c1:c", "c2:c", "c3:c", "c11:c1", "c12:c1", "c31:c3",
	}},
}

func TestThreeRecordExample(t *testing.T) {
	root := build(t, "1:1", "2:1", "3:1")
	mustCalculate(t, root, DefaultConfig())

	two, three := tree.Find(root, "2"), tree.Find(root, "3")
	if got := three.X - two.X; !near(got, 770) {
		t.Errorf("x3 - x2 = %v, want 770", got)
	}
	if !near(root.X, (two.X+three.X)/2) {
		t.Errorf("root.X = %v, want centered %v", root.X, (two.X+three.X)/2)
	}
	if !near(two.X, 50) || !near(root.X, 435) || !near(three.X, 820) {
		t.Errorf("x = (%v, %v, %v), want (435, 50, 820)", root.X, two.X, three.X)
	}
	if root.Y != 0 || two.Y != 300 || three.Y != 300 {
		t.Errorf("y = (%v, %v, %v), want (0, 300, 300)", root.Y, two.Y, three.Y)
	}
}

func TestChain(t *testing.T) {
	root := build(t, "1:1", "2:1", "3:2", "4:3")
	cfg := DefaultConfig()
	mustCalculate(t, root, cfg)

	_ = tree.Walk(root, func(n, _ *tree.Node, depth int) error {
		if !near(n.X, root.X) {
			t.Errorf("node %s: x = %v, want %v", n.ID, n.X, root.X)
		}
		if want := float64(depth) * cfg.LevelHeight; !near(n.Y, want) {
			t.Errorf("node %s: y = %v, want %v", n.ID, n.Y, want)
		}
		return nil
	})
	if !near(root.X, cfg.Padding) {
		t.Errorf("root.X = %v, want padding %v", root.X, cfg.Padding)
	}
}

func TestSubtreeSeparation(t *testing.T) {
	root := build(t, "r:r", "a:r", "b:r", "a1:a", "a2:a", "b1:b", "b2:b")
	mustCalculate(t, root, DefaultConfig())

	want := map[string]float64{
		"r":  1205,
		"a":  435,
		"b":  1975,
		"a1": 50,
		"a2": 820,
		"b1": 1590,
		"b2": 2360,
	}
	for id, x := range want {
		if got := tree.Find(root, id).X; !near(got, x) {
			t.Errorf("%s.X = %v, want %v", id, got, x)
		}
	}
}

func TestProperties(t *testing.T) {
	configs := []Config{
		DefaultConfig(),
		{NodeWidth: 100, NodeHeight: 40, SiblingSpacing: 20, SubtreeSpacing: 80, LevelHeight: 90, Padding: 10},
		{NodeWidth: 50, NodeHeight: 20, SiblingSpacing: 60, SubtreeSpacing: 0, LevelHeight: 40, Padding: 0},
	}

	for ci, cfg := range configs {
		for _, fx := range fixtures {
			t.Run(fmt.Sprintf("cfg%d/%s", ci, fx.name), func(t *testing.T) {
				root := build(t, fx.pairs...)
				mustCalculate(t, root, cfg)

				checkNoOverlap(t, root, cfg)
				checkDepthY(t, root, cfg)
				checkPadding(t, root, cfg)
				checkCentering(t, root)
				checkSizes(t, root, cfg)
			})
		}
	}
}

// checkNoOverlap verifies that nodes on the same level appear left to right
// in pre-order and never come closer than the smaller of the two spacings.
func checkNoOverlap(t *testing.T, root *tree.Node, cfg Config) {
	t.Helper()
	minGap := cfg.NodeWidth + math.Min(cfg.SiblingSpacing, cfg.SubtreeSpacing)
	last := map[int]*tree.Node{}
	_ = tree.Walk(root, func(n, _ *tree.Node, depth int) error {
		if prev, ok := last[depth]; ok {
			if gap := n.X - prev.X; gap < minGap-eps {
				t.Errorf("depth %d: %s at %v and %s at %v are %v apart, want >= %v",
					depth, prev.ID, prev.X, n.ID, n.X, gap, minGap)
			}
		}
		last[depth] = n
		return nil
	})
}

func checkDepthY(t *testing.T, root *tree.Node, cfg Config) {
	t.Helper()
	_ = tree.Walk(root, func(n, parent *tree.Node, depth int) error {
		if want := float64(depth) * cfg.LevelHeight; !near(n.Y, want) {
			t.Errorf("%s.Y = %v, want %v", n.ID, n.Y, want)
		}
		if parent != nil && n.Y <= parent.Y {
			t.Errorf("%s.Y = %v not below parent %s.Y = %v", n.ID, n.Y, parent.ID, parent.Y)
		}
		return nil
	})
}

func checkPadding(t *testing.T, root *tree.Node, cfg Config) {
	t.Helper()
	minX := math.Inf(1)
	_ = tree.Walk(root, func(n, _ *tree.Node, _ int) error {
		minX = math.Min(minX, n.X)
		return nil
	})
	if !near(minX, cfg.Padding) {
		t.Errorf("min x = %v, want %v", minX, cfg.Padding)
	}
}

func checkCentering(t *testing.T, root *tree.Node) {
	t.Helper()
	_ = tree.Walk(root, func(n, _ *tree.Node, _ int) error {
		if n.IsLeaf() {
			return nil
		}
		first, last := n.Children[0], n.Children[len(n.Children)-1]
		if want := (first.X + last.X) / 2; !near(n.X, want) {
			t.Errorf("%s.X = %v, want centered over children at %v", n.ID, n.X, want)
		}
		return nil
	})
}

func checkSizes(t *testing.T, root *tree.Node, cfg Config) {
	t.Helper()
	_ = tree.Walk(root, func(n, _ *tree.Node, _ int) error {
		if n.Width != cfg.NodeWidth || n.Height != cfg.NodeHeight {
			t.Errorf("%s size = %vx%v, want %vx%v", n.ID, n.Width, n.Height, cfg.NodeWidth, cfg.NodeHeight)
		}
		return nil
	})
}

func TestIdempotent(t *testing.T) {
	for _, fx := range fixtures {
		t.Run(fx.name, func(t *testing.T) {
			root := build(t, fx.pairs...)
			mustCalculate(t, root, DefaultConfig())
			first := positions(root)

			mustCalculate(t, root, DefaultConfig())
			second := positions(root)

			for id, p := range first {
				if second[id] != p {
					t.Errorf("%s moved from %v to %v on second run", id, p, second[id])
				}
			}
		})
	}
}

func TestDeterministic(t *testing.T) {
	for _, fx := range fixtures {
		t.Run(fx.name, func(t *testing.T) {
			a, b := build(t, fx.pairs...), build(t, fx.pairs...)
			mustCalculate(t, a, DefaultConfig())
			mustCalculate(t, b, DefaultConfig())

			pa, pb := positions(a), positions(b)
			for id, p := range pa {
				if pb[id] != p {
					t.Errorf("%s: %v vs %v", id, p, pb[id])
				}
			}
		})
	}
}

func TestCalculateNil(t *testing.T) {
	if err := Calculate(nil, DefaultConfig()); err != nil {
		t.Errorf("Calculate(nil) = %v, want nil", err)
	}
}

func TestCalculateErrors(t *testing.T) {
	shared := &tree.Node{ID: "shared"}
	selfLoop := &tree.Node{ID: "loop"}
	selfLoop.Children = []*tree.Node{selfLoop}

	bad := DefaultConfig()
	bad.NodeWidth = 0
	negative := DefaultConfig()
	negative.SubtreeSpacing = -1

	tests := []struct {
		name string
		root *tree.Node
		cfg  Config
		code errors.Code
	}{
		{"zero width", &tree.Node{ID: "r"}, bad, errors.ErrCodeInvalidConfig},
		{"negative spacing", &tree.Node{ID: "r"}, negative, errors.ErrCodeInvalidConfig},
		{"shared child", &tree.Node{ID: "r", Children: []*tree.Node{
			{ID: "a", Children: []*tree.Node{shared}},
			{ID: "b", Children: []*tree.Node{shared}},
		}}, DefaultConfig(), errors.ErrCodeCyclicInput},
		{"self loop", selfLoop, DefaultConfig(), errors.ErrCodeCyclicInput},
		{"nil child", &tree.Node{ID: "r", Children: []*tree.Node{nil}}, DefaultConfig(), errors.ErrCodeInvalidLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Calculate(tt.root, tt.cfg)
			if !errors.Is(err, tt.code) {
				t.Fatalf("Calculate() error = %v, want code %v", err, tt.code)
			}
			if tt.root.X != 0 || tt.root.Width != 0 {
				t.Errorf("root mutated on error: %+v", tt.root)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}

	zeroSpacing := DefaultConfig()
	zeroSpacing.SiblingSpacing = 0
	zeroSpacing.Padding = 0
	if err := zeroSpacing.Validate(); err != nil {
		t.Errorf("zero spacing rejected: %v", err)
	}

	noLevel := DefaultConfig()
	noLevel.LevelHeight = 0
	if err := noLevel.Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("zero level height: err = %v", err)
	}
}
