package layout

import (
	"sld/schematic"
)

// routeEdges computes link geometry for every visible relationship:
// elbow polylines from each parent to its visible children, and dashed
// auxiliary edges for every cross-reference whose endpoints are both
// placed. Collapsed subtrees contribute nothing.
func (e *Engine) routeEdges(items []*schematic.Node, result *Result) {
	schematic.Walk(items, func(n *schematic.Node) {
		from, ok := result.Nodes[n.ID]
		if !ok {
			return
		}
		if !n.Collapsed {
			for _, c := range n.Children {
				to, ok := result.Nodes[c.ID]
				if !ok {
					continue
				}
				result.Edges = append(result.Edges, Edge{
					FromID: n.ID,
					ToID:   c.ID,
					Points: e.primaryPath(from, to, c.EdgeStyle),
					Style:  c.EdgeStyle,
				})
			}
		}
		for _, id := range n.Extra {
			to, ok := result.Nodes[id]
			if !ok {
				continue
			}
			result.Edges = append(result.Edges, Edge{
				FromID:    n.ID,
				ToID:      id,
				Points:    []Point{from.Center(), to.Center()},
				Auxiliary: true,
				Style:     n.EdgeStyle,
			})
		}
	})
}

// primaryPath routes a parent-to-child edge. The default is a three
// segment elbow: out of the parent along the primary axis, across at
// the halfway line, then into the child. Aligned anchors collapse to a
// straight segment, as does the explicit straight routing style.
func (e *Engine) primaryPath(from, to *PlacedNode, style schematic.EdgeStyle) []Point {
	var start, end Point
	if e.Orientation == Horizontal {
		start = Point{X: from.X + from.Width, Y: from.Y + from.Height/2}
		end = Point{X: to.X, Y: to.Y + to.Height/2}
	} else {
		start = Point{X: from.X + from.Width/2, Y: from.Y + from.Height}
		end = Point{X: to.X + to.Width/2, Y: to.Y}
	}
	if style.Routing == schematic.RoutingStraight {
		return []Point{start, end}
	}
	if e.Orientation == Horizontal {
		if start.Y == end.Y {
			return []Point{start, end}
		}
		midX := (start.X + end.X) / 2
		return []Point{start, {X: midX, Y: start.Y}, {X: midX, Y: end.Y}, end}
	}
	if start.X == end.X {
		return []Point{start, end}
	}
	midY := (start.Y + end.Y) / 2
	return []Point{start, {X: start.X, Y: midY}, {X: end.X, Y: midY}, end}
}
