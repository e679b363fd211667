package tree

import (
	"slices"
	"testing"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/errors"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/tracking"
)

func rec(key, parent string) tracking.Record {
	return tracking.Record{Key: key, Parent: parent, Data: map[string]any{"name": "task " + key}}
}

func childIDs(n *Node) []string {
	ids := make([]string, len(n.Children))
	for i, c := range n.Children {
		ids[i] = c.ID
	}
	return ids
}

func TestBuild(t *testing.T) {
	records := []tracking.Record{
		rec("3", "1"),
		rec("1", "1"),
		rec("2", "1"),
		rec("4", "2"),
		rec("5", "2"),
	}

	root, report, err := Build(records)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if root == nil || root.ID != "1" {
		t.Fatalf("root = %+v, want 1", root)
	}
	if got := childIDs(root); !slices.Equal(got, []string{"3", "2"}) {
		t.Errorf("root children = %v, want input order [3 2]", got)
	}
	two := Find(root, "2")
	if got := childIDs(two); !slices.Equal(got, []string{"4", "5"}) {
		t.Errorf("children of 2 = %v, want [4 5]", got)
	}
	if report.Root != "1" || report.Nodes != 5 || len(report.Dropped) != 0 {
		t.Errorf("report = %+v", report)
	}
	if root.Data["name"] != "task 1" {
		t.Errorf("payload not carried: %v", root.Data)
	}
}

func TestBuildNoRoot(t *testing.T) {
	root, report, err := Build([]tracking.Record{rec("2", "1"), rec("3", "2")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if root != nil {
		t.Errorf("root = %+v, want nil", root)
	}
	if !slices.Equal(report.Dropped, []string{"2", "3"}) {
		t.Errorf("Dropped = %v", report.Dropped)
	}
}

func TestBuildEmpty(t *testing.T) {
	root, _, err := Build(nil)
	if err != nil || root != nil {
		t.Errorf("Build(nil) = %v, %v; want nil, nil", root, err)
	}
}

func TestBuildDropsOrphans(t *testing.T) {
	records := []tracking.Record{
		rec("1", "1"),
		rec("2", "1"),
		rec("9", "missing"),
		rec("10", "9"),
		rec("3", "2"),
	}

	root, report, err := Build(records)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if Count(root) != 3 {
		t.Errorf("Count = %d, want 3", Count(root))
	}
	if Find(root, "9") != nil || Find(root, "10") != nil {
		t.Error("orphan subtree attached to tree")
	}
	if !slices.Equal(report.Dropped, []string{"9", "10"}) {
		t.Errorf("Dropped = %v, want [9 10]", report.Dropped)
	}
	if report.Nodes != 3 {
		t.Errorf("Nodes = %d, want 3", report.Nodes)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		records []tracking.Record
		code    errors.Code
	}{
		{
			name:    "duplicate key",
			records: []tracking.Record{rec("1", "1"), rec("2", "1"), rec("2", "1")},
			code:    errors.ErrCodeDuplicateKey,
		},
		{
			name:    "two roots",
			records: []tracking.Record{rec("1", "1"), rec("2", "2")},
			code:    errors.ErrCodeMultipleRoots,
		},
		{
			name:    "cycle",
			records: []tracking.Record{rec("1", "1"), rec("a", "b"), rec("b", "a")},
			code:    errors.ErrCodeCyclicInput,
		},
		{
			name:    "long cycle",
			records: []tracking.Record{rec("a", "c"), rec("b", "a"), rec("c", "b")},
			code:    errors.ErrCodeCyclicInput,
		},
		{
			name:    "empty key",
			records: []tracking.Record{rec("", "1")},
			code:    errors.ErrCodeInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, _, err := Build(tt.records)
			if err == nil {
				t.Fatal("expected error")
			}
			if root != nil {
				t.Error("root returned alongside error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestWalk(t *testing.T) {
	root, _, err := Build([]tracking.Record{
		rec("1", "1"), rec("2", "1"), rec("3", "1"), rec("4", "2"),
	})
	if err != nil {
		t.Fatal(err)
	}

	var order []string
	var depths []int
	err = Walk(root, func(n, parent *Node, depth int) error {
		order = append(order, n.ID)
		depths = append(depths, depth)
		if (parent == nil) != (n == root) {
			t.Errorf("node %s: parent = %v", n.ID, parent)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(order, []string{"1", "2", "4", "3"}) {
		t.Errorf("pre-order = %v", order)
	}
	if !slices.Equal(depths, []int{0, 1, 2, 1}) {
		t.Errorf("depths = %v", depths)
	}
	if Depth(root) != 3 {
		t.Errorf("Depth = %d, want 3", Depth(root))
	}
	if Depth(nil) != 0 || Count(nil) != 0 {
		t.Error("nil tree should have zero depth and count")
	}
}

func TestNodeLabel(t *testing.T) {
	n := &Node{ID: "7", Data: map[string]any{"name": "Ký duyệt", "status": "done"}}
	if n.Label() != "Ký duyệt" || n.Status() != "done" {
		t.Errorf("Label/Status = %q/%q", n.Label(), n.Status())
	}
	bare := &Node{ID: "8"}
	if bare.Label() != "8" || bare.Status() != "" {
		t.Errorf("bare Label/Status = %q/%q", bare.Label(), bare.Status())
	}
}
