// Package layout positions a tracking tree for a top-down diagram.
//
// # Algorithm
//
// [Calculate] is a Reingold-Tilford style tidy-tree layout run as a
// sequence of whole-tree passes:
//
//  1. Parent map: every node must be reachable through exactly one parent.
//  2. Initialize: reset Prelim and Mod, assign Width and Height.
//  3. First walk (post-order): a leaf sits one NodeWidth+SiblingSpacing step
//     right of its left sibling, or at 0. An internal node is centered over
//     its first and last child; when it has a left sibling it instead takes
//     the leaf position and records the difference in Mod, which shifts its
//     whole subtree under it.
//  4. Conflict resolution: after an internal node with left siblings is
//     placed, its left contour is compared level by level with the right
//     contour of all subtrees to its left. The largest shortfall against
//     NodeWidth+SubtreeSpacing is added to both Prelim and Mod.
//  5. Second walk (pre-order): X is Prelim plus the sum of ancestor Mods,
//     Y is depth times LevelHeight.
//  6. Normalize: shift everything right so the left-most node starts at
//     Padding.
//
// Positions are top-left corners; the renderer draws each node as a box of
// Width by Height from there. Parents are centered over their children,
// siblings keep input order, and nodes on the same level never overlap.
//
// Intermediate siblings are not re-spread when a later subtree is pushed
// right, so a leaf between two wide subtrees stays next to its left
// neighbour.
//
// # Concurrency
//
// Calculate only touches the nodes it is given and a [Config] passed by
// value. Distinct trees can be laid out from multiple goroutines.
package layout
