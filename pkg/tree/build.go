package tree

import (
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/errors"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/tracking"
)

// BuildReport describes what [Build] did with its input.
type BuildReport struct {
	Root    string   // Key of the root record, "" when none was found
	Nodes   int      // Nodes attached to the tree, root included
	Dropped []string // Keys not reachable from the root, in input order
}

// reachability states for the parent-chain walk.
const (
	unvisited = iota
	visiting
	reachesRoot
	orphaned
)

// Build assembles the tracking tree from flat records.
//
// The root is the record whose key equals its parent. Every other record is
// attached to its parent's children in input order, so siblings keep the
// order in which the records were supplied.
//
// When no record is a root, Build returns a nil tree and no error; callers
// render an empty diagram. Records whose parent chain never reaches the root
// are dropped together with their descendants and listed in the report.
//
// Build fails on empty or malformed keys, duplicate keys, more than one root,
// and parent chains that loop back on themselves.
func Build(records []tracking.Record) (*Node, BuildReport, error) {
	var report BuildReport

	index := make(map[string]int, len(records))
	rootIdx := -1
	for i, r := range records {
		if err := errors.ValidateRecordKey(r.Key); err != nil {
			return nil, report, err
		}
		if _, dup := index[r.Key]; dup {
			return nil, report, errors.New(errors.ErrCodeDuplicateKey, "duplicate record key %q", r.Key)
		}
		index[r.Key] = i
		if r.IsRoot() {
			if rootIdx >= 0 {
				return nil, report, errors.New(errors.ErrCodeMultipleRoots,
					"records %q and %q both reference themselves as parent", records[rootIdx].Key, r.Key)
			}
			rootIdx = i
		}
	}

	state := make([]int, len(records))
	for i := range records {
		if err := resolve(records, index, state, i); err != nil {
			return nil, report, err
		}
	}

	if rootIdx < 0 {
		for _, r := range records {
			report.Dropped = append(report.Dropped, r.Key)
		}
		return nil, report, nil
	}

	nodes := make([]*Node, len(records))
	for i, r := range records {
		if state[i] != reachesRoot {
			report.Dropped = append(report.Dropped, r.Key)
			continue
		}
		nodes[i] = &Node{ID: r.Key, Data: r.Data}
	}

	for i, r := range records {
		if nodes[i] == nil || i == rootIdx {
			continue
		}
		parent := nodes[index[r.Parent]]
		parent.Children = append(parent.Children, nodes[i])
	}

	root := nodes[rootIdx]
	report.Root = root.ID
	report.Nodes = len(records) - len(report.Dropped)
	return root, report, nil
}

// resolve follows the parent chain of records[i] iteratively and marks every
// record on it as reaching the root or orphaned. A chain that revisits a
// record still being resolved is a cycle.
func resolve(records []tracking.Record, index map[string]int, state []int, i int) error {
	var chain []int
	cur := i
	result := orphaned
	for {
		switch state[cur] {
		case reachesRoot, orphaned:
			result = state[cur]
		case visiting:
			return errors.New(errors.ErrCodeCyclicInput,
				"record %q is part of a parent cycle", records[cur].Key)
		default:
			state[cur] = visiting
			chain = append(chain, cur)
			if records[cur].IsRoot() {
				result = reachesRoot
			} else if next, ok := index[records[cur].Parent]; ok {
				cur = next
				continue
			} else {
				result = orphaned
			}
		}
		break
	}
	for _, c := range chain {
		state[c] = result
	}
	return nil
}
