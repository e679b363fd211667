// Package tree turns flat sub-task tracking records into an ordered tree.
//
// # Building
//
// Each [tracking.Record] names its parent by key; the single record that
// names itself is the root. [Build] creates one [Node] per record and links
// children in input order, so the left-to-right order of a rendered diagram
// is the order in which the platform returned the records:
//
//	root, report, err := tree.Build(records)
//	if err != nil {
//	    return err // duplicate key, second root, parent cycle
//	}
//	if root == nil {
//	    // no root record: render an empty diagram
//	}
//	for _, key := range report.Dropped {
//	    log.Warn("record not reachable from root", "key", key)
//	}
//
// # Positions
//
// Nodes carry the fields the layout engine writes (X, Y, Mod, Prelim,
// Width, Height). The tree package never assigns positions itself; see
// pkg/layout.
//
// # Traversal
//
// [Walk] visits nodes in pre-order with their parent and depth. [Count],
// [Depth] and [Find] are small helpers built on it.
package tree
