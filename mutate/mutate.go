// Package mutate implements the structural transformations of the
// ownership forest. Every operation takes the current root list and
// returns a new one; the input forest is never modified, so callers can
// snapshot it by reference before applying the result.
//
// Operations that cannot locate their target id return the (copied)
// forest unchanged: ids may have been invalidated by another edit in the
// same batch, so structural edits are defensive rather than hard
// failures.
package mutate

import (
	"sld/schematic"
)

// Patch holds the editable fields of a node. Nil fields are left
// untouched by Edit and BulkEdit.
type Patch struct {
	Name            *string
	Description     *string
	Model           *string
	Current         *float64
	Voltage         *float64
	Power           *float64
	HasMeter        *bool
	MeterNumber     *string
	HasGenerator    *bool
	GeneratorName   *string
	ExcludeMetering *bool
	AirConditioning *bool
	Reserved        *bool
	IconColor       *string
	Background      *string
	Shape           *schematic.Shape
	Icon            []byte
	Location        *string
	EdgeStyle       *schematic.EdgeStyle
}

// Insert appends node as the last child of the node with parentID.
// The new child inherits its edge stroke color from its first existing
// sibling, or gets a random palette color if it is the first child, so
// related branches stay color-consistent. No-op if parentID is missing.
func Insert(items []*schematic.Node, parentID string, node *schematic.Node) []*schematic.Node {
	result := schematic.CloneForest(items)
	parent := schematic.Find(result, parentID)
	if parent == nil {
		return result
	}
	child := node.Clone()
	if child.ID == "" {
		child.ID = schematic.NewID()
	}
	if child.EdgeStyle.Color == "" {
		if len(parent.Children) > 0 {
			child.EdgeStyle.Color = parent.Children[0].EdgeStyle.Color
		} else {
			child.EdgeStyle.Color = schematic.RandomEdgeColor()
		}
	}
	parent.Children = append(parent.Children, child)
	return result
}

// AddRoot appends node as a new page-level root.
func AddRoot(items []*schematic.Node, node *schematic.Node) []*schematic.Node {
	result := schematic.CloneForest(items)
	root := node.Clone()
	if root.ID == "" {
		root.ID = schematic.NewID()
	}
	return append(result, root)
}

// Edit merges patch into the node with nodeID, wherever it sits in the
// forest. Unset patch fields are preserved. No-op if the id is missing.
func Edit(items []*schematic.Node, nodeID string, patch Patch) []*schematic.Node {
	result := schematic.CloneForest(items)
	if node := schematic.Find(result, nodeID); node != nil {
		applyPatch(node, patch)
	}
	return result
}

// BulkEdit applies the same patch to every listed id. Missing ids are
// skipped. Used for multi-selection edits.
func BulkEdit(items []*schematic.Node, nodeIDs []string, patch Patch) []*schematic.Node {
	result := schematic.CloneForest(items)
	for _, id := range nodeIDs {
		if node := schematic.Find(result, id); node != nil {
			applyPatch(node, patch)
		}
	}
	return result
}

// Delete removes the node and its whole subtree, from the root list or
// from whichever parent owns it, then sweeps the remaining forest for
// auxiliary links that referenced any deleted id. Auxiliary edges never
// dangle.
func Delete(items []*schematic.Node, nodeID string) []*schematic.Node {
	result := schematic.CloneForest(items)
	var removed *schematic.Node
	for i, n := range result {
		if n.ID == nodeID {
			removed = n
			result = append(result[:i], result[i+1:]...)
			break
		}
	}
	if removed == nil {
		parent, ok := schematic.FindParent(result, nodeID)
		if !ok || parent == nil {
			return result
		}
		for i, c := range parent.Children {
			if c.ID == nodeID {
				removed = c
				parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
				break
			}
		}
	}
	if removed == nil {
		return result
	}
	gone := schematic.CollectIDs([]*schematic.Node{removed})
	schematic.Walk(result, func(n *schematic.Node) {
		if len(n.Extra) == 0 {
			return
		}
		kept := n.Extra[:0]
		for _, id := range n.Extra {
			if !gone[id] {
				kept = append(kept, id)
			}
		}
		if len(kept) == 0 {
			n.Extra = nil
		} else {
			n.Extra = kept
		}
	})
	return result
}

// Clone deep-copies the subtree rooted at nodeID with fresh ids
// throughout, appends "(Copy)" to the root's name, clears auxiliary
// links (old ids would be meaningless in the copy), and appends the copy
// to the original's own children. No-op if the id is missing.
func Clone(items []*schematic.Node, nodeID string) []*schematic.Node {
	result := schematic.CloneForest(items)
	original := schematic.Find(result, nodeID)
	if original == nil {
		return result
	}
	copySub := freshCopy(original)
	copySub.Name = original.Name + " (Copy)"
	original.Children = append(original.Children, copySub)
	return result
}

// Detach removes the node from its parent's children and appends it as a
// new page-level root, subtree intact. Detaching a node that is already
// a root is a no-op. Callers are expected to confirm first.
func Detach(items []*schematic.Node, nodeID string) []*schematic.Node {
	result := schematic.CloneForest(items)
	parent, ok := schematic.FindParent(result, nodeID)
	if !ok || parent == nil {
		return result
	}
	for i, c := range parent.Children {
		if c.ID == nodeID {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			result = append(result, c)
			break
		}
	}
	return result
}

// Group wraps the target node in a newly synthesized distribution board
// that takes the target's place in its former parent's children (or the
// root list) and owns the target as its sole child. The wrapper inherits
// the target's location and incoming edge style. Types whose
// configuration forbids grouping (supplies and generators) are
// rejected.
func Group(items []*schematic.Node, nodeID string) []*schematic.Node {
	result := schematic.CloneForest(items)
	target := schematic.Find(result, nodeID)
	if target == nil || !target.Type.Config().CanGroup {
		return result
	}
	wrapper := &schematic.Node{
		ID:        schematic.NewID(),
		Type:      schematic.TypePanel,
		Name:      schematic.TypePanel.Config().Label,
		Location:  target.Location,
		EdgeStyle: target.EdgeStyle,
		Children:  []*schematic.Node{target},
	}
	parent, _ := schematic.FindParent(result, nodeID)
	if parent == nil {
		for i, n := range result {
			if n.ID == nodeID {
				result[i] = wrapper
				break
			}
		}
		return result
	}
	for i, c := range parent.Children {
		if c.ID == nodeID {
			parent.Children[i] = wrapper
			break
		}
	}
	return result
}

// ToggleCollapse flips the collapse flag. Children stay in the data;
// only their layout and paint are suppressed.
func ToggleCollapse(items []*schematic.Node, nodeID string) []*schematic.Node {
	result := schematic.CloneForest(items)
	if node := schematic.Find(result, nodeID); node != nil {
		node.Collapsed = !node.Collapsed
	}
	return result
}

// ApplyOffsets writes the given manual offsets into the matching nodes
// as one batch. Used by the drag controller's commit step.
func ApplyOffsets(items []*schematic.Node, offsets map[string]schematic.Offset) []*schematic.Node {
	result := schematic.CloneForest(items)
	schematic.Walk(result, func(n *schematic.Node) {
		if off, ok := offsets[n.ID]; ok {
			n.Offset = off
		}
	})
	return result
}

func freshCopy(n *schematic.Node) *schematic.Node {
	copied := n.Clone()
	schematic.Walk([]*schematic.Node{copied}, func(c *schematic.Node) {
		c.ID = schematic.NewID()
		c.Extra = nil
	})
	return copied
}

func applyPatch(n *schematic.Node, p Patch) {
	if p.Name != nil {
		n.Name = *p.Name
	}
	if p.Description != nil {
		n.Description = *p.Description
	}
	if p.Model != nil {
		n.Model = *p.Model
	}
	if p.Current != nil {
		n.Current = *p.Current
	}
	if p.Voltage != nil {
		n.Voltage = *p.Voltage
	}
	if p.Power != nil {
		n.Power = *p.Power
	}
	if p.HasMeter != nil {
		n.HasMeter = *p.HasMeter
	}
	if p.MeterNumber != nil {
		n.MeterNumber = *p.MeterNumber
	}
	if p.HasGenerator != nil {
		n.HasGenerator = *p.HasGenerator
	}
	if p.GeneratorName != nil {
		n.GeneratorName = *p.GeneratorName
	}
	if p.ExcludeMetering != nil {
		n.ExcludeMetering = *p.ExcludeMetering
	}
	if p.AirConditioning != nil {
		n.AirConditioning = *p.AirConditioning
	}
	if p.Reserved != nil {
		n.Reserved = *p.Reserved
	}
	if p.IconColor != nil {
		n.IconColor = *p.IconColor
	}
	if p.Background != nil {
		n.Background = *p.Background
	}
	if p.Shape != nil {
		n.Shape = *p.Shape
	}
	if p.Icon != nil {
		n.Icon = append([]byte(nil), p.Icon...)
	}
	if p.Location != nil {
		n.Location = *p.Location
	}
	if p.EdgeStyle != nil {
		n.EdgeStyle = *p.EdgeStyle
	}
}
