// Package layout computes 2-D positions and link geometry for one page
// of a single-line diagram. The engine is deterministic: identical
// forests, offsets and orientation always produce identical positions.
package layout

import (
	"sld/geometry"
	"sld/schematic"
)

// Orientation selects the primary axis. Vertical runs depth downward
// with breadth across; Horizontal is the transpose.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// Point is a 2-D coordinate in character cells.
type Point struct {
	X, Y int
}

// PlacedNode is a node with its computed box. X,Y is the top-left
// corner and already includes the node's persisted manual offset.
type PlacedNode struct {
	Node   *schematic.Node
	X, Y   int
	Width  int
	Height int
	Depth  int
}

// Center returns the center point of the placed box.
func (p *PlacedNode) Center() Point {
	return Point{X: p.X + p.Width/2, Y: p.Y + p.Height/2}
}

// Contains checks if a point is inside the placed box.
func (p *PlacedNode) Contains(x, y int) bool {
	return x >= p.X && x < p.X+p.Width && y >= p.Y && y < p.Y+p.Height
}

// Edge is the geometry of one link.
type Edge struct {
	FromID    string
	ToID      string
	Points    []Point // polyline from parent anchor to child anchor
	Auxiliary bool    // cross-reference feed, drawn dashed with an arrowhead
	Style     schematic.EdgeStyle
}

// Result holds the positioned page.
type Result struct {
	Nodes  map[string]*PlacedNode
	Order  []string // pre-order paint order of visible nodes
	Edges  []Edge
	Width  int
	Height int
}

// Engine lays out a forest. Zero values are not useful; use NewEngine.
type Engine struct {
	DepthSpacing int // primary-axis distance between depths
	SiblingGap   int // breadth margin between sibling subtrees
	SubtreeGap   int // extra breadth margin between disjoint page trees
	MaxNodeWidth int
	FixedWidth   int // box size for circle/square shape overrides
	FixedHeight  int
	Orientation  Orientation
}

// NewEngine creates an engine with default spacing.
func NewEngine() *Engine {
	return &Engine{
		DepthSpacing: 8,
		SiblingGap:   4,
		SubtreeGap:   10,
		MaxNodeWidth: 40,
		FixedWidth:   7,
		FixedHeight:  3,
	}
}

// treeNode is the layout-internal view of a schematic node. Collapsed
// nodes keep their children in the data but not here, so hidden
// subtrees consume no layout space.
type treeNode struct {
	node     *schematic.Node
	width    int
	height   int
	depth    int
	children []*treeNode
	extent   int // breadth span of the subtree, set by the post-order pass
	breadth  int // center coordinate on the secondary axis, set pre-order
}

// Layout positions every visible node of the forest and computes link
// geometry. The input forest is never modified.
func (e *Engine) Layout(items []*schematic.Node) *Result {
	result := &Result{Nodes: make(map[string]*PlacedNode)}
	if len(items) == 0 {
		return result
	}

	// All page roots hang under one throwaway aggregate so a single
	// tree pass positions disjoint trees together. The aggregate is
	// never placed, rendered or persisted.
	aggregate := &treeNode{depth: -1}
	for _, root := range items {
		aggregate.children = append(aggregate.children, e.build(root, 0))
	}

	e.measureExtents(aggregate)
	e.assignBreadth(aggregate, 0)

	// One fixed step per depth: the deepest box anywhere plus the gap,
	// so every depth band has the same pitch.
	step := e.DepthSpacing + e.maxPrimarySize(aggregate)
	for _, t := range aggregate.children {
		e.place(t, step, result)
	}
	e.normalize(result)
	e.routeEdges(items, result)
	return result
}

// build converts the visible part of a subtree, pruning collapsed
// children and sizing every node.
func (e *Engine) build(n *schematic.Node, depth int) *treeNode {
	t := &treeNode{node: n, depth: depth}
	t.width, t.height = e.nodeSize(n)
	if !n.Collapsed {
		for _, c := range n.Children {
			t.children = append(t.children, e.build(c, depth+1))
		}
	}
	return t
}

// nodeSize computes a node's box from its content: name, ratings line,
// model, description and badge pills each contribute a line. Shape
// overrides get a fixed small box instead.
func (e *Engine) nodeSize(n *schematic.Node) (w, h int) {
	if s := n.DisplayShape(); s == schematic.ShapeCircle || s == schematic.ShapeSquare {
		return e.FixedWidth, e.FixedHeight
	}
	lines := 1
	maxLen := len(n.Name)
	if s := n.SpecLine(); s != "" {
		lines++
		maxLen = geometry.Max(maxLen, len(s))
	}
	if n.Model != "" {
		lines++
		maxLen = geometry.Max(maxLen, len(n.Model))
	}
	if n.Description != "" {
		lines++
		maxLen = geometry.Max(maxLen, len(n.Description))
	}
	if badges := n.Badges(); len(badges) > 0 {
		lines++
		badgeLen := 0
		for i, b := range badges {
			if i > 0 {
				badgeLen++
			}
			badgeLen += len(b) + 2
		}
		maxLen = geometry.Max(maxLen, badgeLen)
	}
	w = geometry.Min(maxLen+4, e.MaxNodeWidth) // 2 cells padding each side
	w = geometry.Max(w, 7)
	h = lines + 2 // borders
	return w, h
}

// breadthSize is the node's own span along the secondary axis.
func (e *Engine) breadthSize(t *treeNode) int {
	if e.Orientation == Horizontal {
		return t.height
	}
	return t.width
}

// measureExtents runs the post-order pass: a subtree's extent is the
// larger of the node's own breadth and the combined extents of its
// children plus separation. Separation between adjacent siblings is
// weighted by the larger of the two, so big boxes never crowd their
// neighbors; disjoint page trees get the wider gap.
func (e *Engine) measureExtents(t *treeNode) {
	for _, c := range t.children {
		e.measureExtents(c)
	}
	own := 0
	if t.node != nil {
		own = e.breadthSize(t)
	}
	if len(t.children) == 0 {
		t.extent = own
		return
	}
	t.extent = geometry.Max(own, e.childSpan(t))
}

func (e *Engine) childSpan(t *treeNode) int {
	span := 0
	for i, c := range t.children {
		if i > 0 {
			span += e.gapBetween(t, t.children[i-1], c)
		}
		span += c.extent
	}
	return span
}

func (e *Engine) gapBetween(parent, a, b *treeNode) int {
	gap := e.SiblingGap
	if parent.node == nil {
		// Between subtrees that do not share a real parent.
		gap = e.SubtreeGap
	}
	larger := geometry.Max(e.breadthSize(a), e.breadthSize(b))
	return gap + larger/4
}

// assignBreadth runs the pre-order pass: each subtree is handed a start
// coordinate and centers its node over its children's span.
func (e *Engine) assignBreadth(t *treeNode, start int) {
	if len(t.children) == 0 {
		t.breadth = start + t.extent/2
		return
	}
	span := e.childSpan(t)
	pos := start + (t.extent-span)/2
	first, last := 0, 0
	for i, c := range t.children {
		if i > 0 {
			pos += e.gapBetween(t, t.children[i-1], c)
		}
		e.assignBreadth(c, pos)
		if i == 0 {
			first = c.breadth
		}
		last = c.breadth
		pos += c.extent
	}
	t.breadth = (first + last) / 2
}

// maxPrimarySize finds the largest node span along the primary axis.
func (e *Engine) maxPrimarySize(t *treeNode) int {
	size := 0
	if t.node != nil {
		if e.Orientation == Horizontal {
			size = t.width
		} else {
			size = t.height
		}
	}
	for _, c := range t.children {
		size = geometry.Max(size, e.maxPrimarySize(c))
	}
	return size
}

// place converts depth/breadth into box positions, adds the node's own
// manual offset and records pre-order paint order.
func (e *Engine) place(t *treeNode, step int, result *Result) {
	p := &PlacedNode{Node: t.node, Width: t.width, Height: t.height, Depth: t.depth}
	if e.Orientation == Horizontal {
		p.X = t.depth * step
		p.Y = t.breadth - t.height/2
	} else {
		p.X = t.breadth - t.width/2
		p.Y = t.depth * step
	}
	p.X += t.node.Offset.DX
	p.Y += t.node.Offset.DY
	result.Nodes[t.node.ID] = p
	result.Order = append(result.Order, t.node.ID)
	for _, c := range t.children {
		e.place(c, step, result)
	}
}

// normalize shifts everything into non-negative coordinates and records
// the bounding box.
func (e *Engine) normalize(result *Result) {
	if len(result.Order) == 0 {
		return
	}
	minX, minY := 1<<30, 1<<30
	for _, id := range result.Order {
		p := result.Nodes[id]
		minX = geometry.Min(minX, p.X)
		minY = geometry.Min(minY, p.Y)
	}
	for _, id := range result.Order {
		p := result.Nodes[id]
		p.X -= minX
		p.Y -= minY
		result.Width = geometry.Max(result.Width, p.X+p.Width)
		result.Height = geometry.Max(result.Height, p.Y+p.Height)
	}
}
