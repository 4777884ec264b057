// Package connect validates and applies auxiliary feeds between nodes
// that are not in a direct ownership relationship, and resolves when a
// requested link is really a reparenting of a page-level root.
package connect

import (
	"sld/schematic"
)

// Result describes what Connect decided to do.
type Result int

const (
	// NoOp means nothing changed (same node twice, missing id, or the
	// link already existed).
	NoOp Result = iota
	// Reparented means the child subtree was moved off the root list and
	// under the resolved parent.
	Reparented
	// Linked means an auxiliary edge was added.
	Linked
	// Rejected means the link would violate the cycle guard.
	Rejected
)

// Guard configures cycle checking for auxiliary links.
//
// The shipped behavior checks only direct-child membership: a longer
// cycle (A links to B while B sits deep inside A's subtree) is not
// caught. Deep switches to a full reachability test instead. The default
// is the shallow check, matching the original behavior.
type Guard struct {
	Deep bool
}

// Connect establishes a relationship between two nodes. If the first
// node is a page-level root of a source type (supply or generator) and
// the second is not, the two are swapped: source roots stay on the
// parent side rather than being re-parented as children. When the
// resolved child is itself a page-level root the operation is a
// reparenting, unless the child is itself a source; otherwise an
// auxiliary link is added to the resolved parent, guarded against
// direct cycles.
func Connect(items []*schematic.Node, aID, bID string, guard Guard) ([]*schematic.Node, Result) {
	if aID == bID {
		return schematic.CloneForest(items), NoOp
	}
	result := schematic.CloneForest(items)

	parentID, childID := aID, bID
	if isSourceRoot(result, aID) && !isSourceRoot(result, bID) {
		parentID, childID = bID, aID
	}

	parent := schematic.Find(result, parentID)
	child := schematic.Find(result, childID)
	if parent == nil || child == nil {
		return result, NoOp
	}

	// A loose non-source root is absorbed into the tree. Source roots
	// stay page-level and feed through an auxiliary link instead.
	if idx := rootIndex(result, childID); idx >= 0 && !result[idx].Type.IsSource() {
		// The parent must not sit inside the subtree being re-rooted,
		// or the whole tree would orphan itself.
		if schematic.IsDescendant(result[idx], parentID) {
			return result, Rejected
		}
		return reparent(result, parent, childID), Reparented
	}

	if parent.HasChild(childID) {
		return result, Rejected
	}
	if guard.Deep && schematic.IsDescendant(parent, childID) {
		return result, Rejected
	}
	if parent.HasExtra(childID) {
		return result, NoOp
	}
	parent.Extra = append(parent.Extra, childID)
	return result, Linked
}

// Disconnect removes the auxiliary edge from fromID to toID. If no such
// edge exists but toID is an immediate child of fromID, the primary edge
// is undone structurally instead: the child is removed from its parent
// and re-added as a page-level root, keeping its data intact.
func Disconnect(items []*schematic.Node, fromID, toID string) []*schematic.Node {
	result := schematic.CloneForest(items)
	from := schematic.Find(result, fromID)
	if from == nil {
		return result
	}
	for i, id := range from.Extra {
		if id == toID {
			from.Extra = append(from.Extra[:i], from.Extra[i+1:]...)
			if len(from.Extra) == 0 {
				from.Extra = nil
			}
			return result
		}
	}
	for i, c := range from.Children {
		if c.ID == toID {
			from.Children = append(from.Children[:i], from.Children[i+1:]...)
			return append(result, c)
		}
	}
	return result
}

// reparent moves the root subtree with childID under parent, inheriting
// a sibling's stroke color when the parent already has children.
func reparent(items []*schematic.Node, parent *schematic.Node, childID string) []*schematic.Node {
	idx := rootIndex(items, childID)
	child := items[idx]
	items = append(items[:idx], items[idx+1:]...)
	if child.EdgeStyle.Color == "" {
		if len(parent.Children) > 0 {
			child.EdgeStyle.Color = parent.Children[0].EdgeStyle.Color
		} else {
			child.EdgeStyle.Color = schematic.RandomEdgeColor()
		}
	}
	parent.Children = append(parent.Children, child)
	return items
}

func rootIndex(items []*schematic.Node, id string) int {
	for i, n := range items {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func isSourceRoot(items []*schematic.Node, id string) bool {
	if rootIndex(items, id) < 0 {
		return false
	}
	n := schematic.Find(items, id)
	return n != nil && n.Type.IsSource()
}
