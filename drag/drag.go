// Package drag tracks a pointer gesture against the diagram and turns
// it into either a click or a batch of manual offset updates. The
// controller never touches the forest itself; it produces preview
// offsets while the pointer moves and a commit batch when it releases.
package drag

import (
	"sld/geometry"
	"sld/schematic"
)

// State is the gesture phase.
type State int

const (
	// Idle means no button is down.
	Idle State = iota
	// Pending means the button is down but movement has not crossed the
	// threshold, so a release would still be a click.
	Pending
	// Dragging means the threshold was crossed and previews are live.
	Dragging
)

// Outcome is what a finished gesture amounts to.
type Outcome int

const (
	// Click means the pointer never moved far enough to drag.
	Click Outcome = iota
	// Moved means offsets should be committed.
	Moved
	// None means there was no gesture in progress.
	None
)

// Controller runs the press/move/release state machine for one pointer.
type Controller struct {
	// Threshold is the Manhattan distance the pointer must travel before
	// a press becomes a drag instead of a click.
	Threshold int
	// SnapGrid quantizes committed offsets. Zero or one disables
	// snapping.
	SnapGrid int

	state    State
	nodeID   string
	startX   int
	startY   int
	baseline map[string]schematic.Offset
	preview  map[string]schematic.Offset
}

// NewController creates a controller with the given tuning. Threshold
// below 1 becomes 1 so a press always starts out as a potential click.
func NewController(threshold, snapGrid int) *Controller {
	if threshold < 1 {
		threshold = 1
	}
	return &Controller{Threshold: threshold, SnapGrid: snapGrid}
}

// State returns the current gesture phase.
func (c *Controller) State() State {
	return c.state
}

// NodeID returns the id of the node under the press, if any.
func (c *Controller) NodeID() string {
	return c.nodeID
}

// Start begins a gesture on the node with nodeID at pointer position
// x,y. The whole subtree's current offsets are captured as the baseline
// so the subtree moves rigidly with its root.
func (c *Controller) Start(items []*schematic.Node, nodeID string, x, y int) {
	node := schematic.Find(items, nodeID)
	if node == nil {
		return
	}
	c.state = Pending
	c.nodeID = nodeID
	c.startX, c.startY = x, y
	c.baseline = make(map[string]schematic.Offset)
	schematic.Walk([]*schematic.Node{node}, func(n *schematic.Node) {
		c.baseline[n.ID] = n.Offset
	})
	c.preview = nil
}

// Move updates the gesture with the current pointer position and
// returns the live preview offsets, or nil while the movement is still
// below the threshold. Every node of the captured subtree gets the same
// displacement added to its baseline offset.
func (c *Controller) Move(x, y int) map[string]schematic.Offset {
	if c.state == Idle {
		return nil
	}
	dx, dy := x-c.startX, y-c.startY
	if c.state == Pending {
		if geometry.ManhattanDistance(c.startX, c.startY, x, y) < c.Threshold {
			return nil
		}
		c.state = Dragging
	}
	if c.SnapGrid > 1 {
		dx = geometry.Snap(dx, c.SnapGrid)
		dy = geometry.Snap(dy, c.SnapGrid)
	}
	c.preview = make(map[string]schematic.Offset, len(c.baseline))
	for id, off := range c.baseline {
		c.preview[id] = off.Add(dx, dy)
	}
	return c.preview
}

// End finishes the gesture. A drag returns Moved with the offsets to
// commit; a press that never crossed the threshold returns Click with
// nil. The controller resets to Idle either way.
func (c *Controller) End() (map[string]schematic.Offset, Outcome) {
	defer c.reset()
	switch c.state {
	case Dragging:
		return c.preview, Moved
	case Pending:
		return nil, Click
	default:
		return nil, None
	}
}

// Cancel abandons the gesture without committing anything.
func (c *Controller) Cancel() {
	c.reset()
}

func (c *Controller) reset() {
	c.state = Idle
	c.nodeID = ""
	c.baseline = nil
	c.preview = nil
}
