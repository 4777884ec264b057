// Package history manages undo/redo for the whole project collection.
// Before each structural mutation the collection is snapshotted as JSON
// into a bounded ring buffer; undo and redo move a cursor through the
// stored states. Drag previews are never snapshotted, only the final
// committed offsets of a completed gesture.
package history

import (
	"encoding/json"

	"lukechampine.com/blake3"

	"sld/schematic"
)

// Manager manages undo/redo state using a ring buffer of JSON snapshots.
type Manager struct {
	states   []string   // ring buffer of serialized collections
	hashes   [][32]byte // content hash per stored state
	head     int        // next insertion position
	tail     int        // oldest entry
	size     int        // number of states stored
	capacity int
	current  int // cursor for undo/redo
}

// NewManager creates a history manager. Capacity bounds how many
// snapshots are retained; older states are overwritten.
func NewManager(capacity int) *Manager {
	if capacity <= 0 {
		capacity = 50
	}
	return &Manager{
		states:   make([]string, capacity),
		hashes:   make([][32]byte, capacity),
		capacity: capacity,
		current:  -1,
	}
}

// Save snapshots the collection. Saving a state identical to the one at
// the cursor is a no-op, so callers can snapshot unconditionally before
// every mutation attempt without flooding history with duplicates.
func (h *Manager) Save(projects []*schematic.Project) error {
	data, err := json.Marshal(projects)
	if err != nil {
		return err
	}
	sum := blake3.Sum256(data)
	if h.size > 0 && h.current >= 0 && h.hashes[h.current] == sum {
		return nil
	}

	// After an undo, a new save truncates the forward (redo) history.
	if h.current >= 0 && h.size > 0 {
		next := (h.current + 1) % h.capacity
		if next != h.head {
			h.head = next
			if h.current >= h.tail {
				h.size = h.current - h.tail + 1
			} else {
				h.size = h.capacity - h.tail + h.current + 1
			}
		}
	}

	h.states[h.head] = string(data)
	h.hashes[h.head] = sum
	h.current = h.head
	h.head = (h.head + 1) % h.capacity

	if h.size < h.capacity {
		h.size++
	} else {
		// The write landed on the oldest slot.
		h.tail = (h.tail + 1) % h.capacity
	}
	return nil
}

// CanUndo returns true if a prior state is available.
func (h *Manager) CanUndo() bool {
	return h.size > 1 && h.current != h.tail
}

// CanRedo returns true if a forward state is available.
func (h *Manager) CanRedo() bool {
	if h.size == 0 {
		return false
	}
	return (h.current+1)%h.capacity != h.head
}

// Undo returns the previous collection state, or nil if none.
func (h *Manager) Undo() ([]*schematic.Project, error) {
	if !h.CanUndo() {
		return nil, nil
	}
	h.current--
	if h.current < 0 {
		h.current = h.capacity - 1
	}
	return h.loadCurrent()
}

// Redo returns the next collection state, or nil if none.
func (h *Manager) Redo() ([]*schematic.Project, error) {
	if !h.CanRedo() {
		return nil, nil
	}
	h.current = (h.current + 1) % h.capacity
	return h.loadCurrent()
}

func (h *Manager) loadCurrent() ([]*schematic.Project, error) {
	if h.current < 0 || h.size == 0 {
		return nil, nil
	}
	var projects []*schematic.Project
	if err := json.Unmarshal([]byte(h.states[h.current]), &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Clear drops all stored states.
func (h *Manager) Clear() {
	h.head = 0
	h.tail = 0
	h.size = 0
	h.current = -1
	for i := range h.states {
		h.states[i] = ""
		h.hashes[i] = [32]byte{}
	}
}

// Stats returns the cursor position and total states, for display.
func (h *Manager) Stats() (current, total int) {
	if h.size == 0 {
		return 0, 0
	}
	var pos int
	if h.current >= h.tail {
		pos = h.current - h.tail + 1
	} else {
		pos = h.capacity - h.tail + h.current + 1
	}
	return pos, h.size
}
