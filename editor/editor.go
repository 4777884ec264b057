// Package editor is the stateful core behind every front end: it owns
// the open project collection, the active project and page cursors, the
// current selection and the undo history, and funnels every structural
// intent through the mutation engine with a history snapshot after each
// settled change.
package editor

import (
	"fmt"

	"sld/connect"
	"sld/history"
	"sld/mutate"
	"sld/schematic"
)

// SaveStatus tracks where the collection stands relative to storage.
type SaveStatus int

const (
	// Saved means the collection matches what storage last accepted.
	Saved SaveStatus = iota
	// Dirty means there are settled changes storage has not seen.
	Dirty
	// Saving means a write is in flight.
	Saving
	// SaveFailed means the last write was rejected; editing continues
	// in-memory.
	SaveFailed
)

// LinkSelection identifies one auxiliary edge by its endpoints.
type LinkSelection struct {
	FromID string
	ToID   string
}

// Editor owns the live project collection and dispatches edits.
type Editor struct {
	projects []*schematic.Project
	project  int // active project index
	page     int // active page index

	selected     string // selected node id, "" for none
	selectedLink *LinkSelection

	history *history.Manager
	guard   connect.Guard
	status  SaveStatus
}

// New creates an editor over the given collection. An empty collection
// gets a single default project. The initial state is snapshotted so
// the first undo has somewhere to land.
func New(projects []*schematic.Project, historyCapacity int, guard connect.Guard) *Editor {
	if len(projects) == 0 {
		projects = []*schematic.Project{schematic.NewProject("Project 1")}
	}
	for _, p := range projects {
		p.Normalize()
	}
	e := &Editor{
		projects: projects,
		history:  history.NewManager(historyCapacity),
		guard:    guard,
	}
	e.history.Save(e.projects)
	return e
}

// Projects returns the live collection.
func (e *Editor) Projects() []*schematic.Project {
	return e.projects
}

// Project returns the active project.
func (e *Editor) Project() *schematic.Project {
	return e.projects[e.project]
}

// Page returns the active page.
func (e *Editor) Page() *schematic.Page {
	return e.Project().Pages[e.page]
}

// Items returns the active page's root forest.
func (e *Editor) Items() []*schematic.Node {
	return e.Page().Items
}

// ActiveIndexes returns the active project and page positions.
func (e *Editor) ActiveIndexes() (project, page int) {
	return e.project, e.page
}

// SetActiveProject switches projects, clamping the page cursor and
// clearing the selection.
func (e *Editor) SetActiveProject(i int) {
	if i < 0 || i >= len(e.projects) {
		return
	}
	e.project = i
	if e.page >= len(e.Project().Pages) {
		e.page = 0
	}
	e.ClearSelection()
}

// SetActivePage switches pages within the active project.
func (e *Editor) SetActivePage(i int) {
	if i < 0 || i >= len(e.Project().Pages) {
		return
	}
	e.page = i
	e.ClearSelection()
}

// Select marks the node with id as selected.
func (e *Editor) Select(id string) {
	e.selected = id
	e.selectedLink = nil
}

// SelectLink marks one auxiliary edge as selected.
func (e *Editor) SelectLink(fromID, toID string) {
	e.selected = ""
	e.selectedLink = &LinkSelection{FromID: fromID, ToID: toID}
}

// ClearSelection deselects everything.
func (e *Editor) ClearSelection() {
	e.selected = ""
	e.selectedLink = nil
}

// Selected returns the selected node id, or "".
func (e *Editor) Selected() string {
	return e.selected
}

// SelectedLink returns the selected auxiliary edge, or nil.
func (e *Editor) SelectedLink() *LinkSelection {
	return e.selectedLink
}

// Status returns the save status.
func (e *Editor) Status() SaveStatus {
	return e.status
}

// SetStatus records the outcome of a storage write.
func (e *Editor) SetStatus(s SaveStatus) {
	e.status = s
}

// settle installs the mutated forest on the active page and snapshots
// the collection. Every structural edit funnels through here.
func (e *Editor) settle(items []*schematic.Node) {
	e.Page().Items = items
	e.history.Save(e.projects)
	e.status = Dirty
}

// InsertNode adds a child of the given type under parentID.
func (e *Editor) InsertNode(parentID string, nodeType schematic.NodeType, name string) {
	if name == "" {
		name = nodeType.Config().Label
	}
	node := &schematic.Node{ID: schematic.NewID(), Type: nodeType, Name: name}
	e.settle(mutate.Insert(e.Items(), parentID, node))
}

// AddRootNode adds a new page-level root of the given type.
func (e *Editor) AddRootNode(nodeType schematic.NodeType, name string) string {
	if name == "" {
		name = nodeType.Config().Label
	}
	node := &schematic.Node{ID: schematic.NewID(), Type: nodeType, Name: name}
	e.settle(mutate.AddRoot(e.Items(), node))
	return node.ID
}

// EditNode merges the patch into one node.
func (e *Editor) EditNode(id string, patch mutate.Patch) {
	e.settle(mutate.Edit(e.Items(), id, patch))
}

// BulkEditNodes merges the patch into every listed node.
func (e *Editor) BulkEditNodes(ids []string, patch mutate.Patch) {
	e.settle(mutate.BulkEdit(e.Items(), ids, patch))
}

// DeleteNode removes a subtree and drops the selection if it pointed
// inside it.
func (e *Editor) DeleteNode(id string) {
	e.settle(mutate.Delete(e.Items(), id))
	if e.selected != "" && schematic.Find(e.Items(), e.selected) == nil {
		e.ClearSelection()
	}
}

// CloneNode duplicates a subtree with fresh ids.
func (e *Editor) CloneNode(id string) {
	e.settle(mutate.Clone(e.Items(), id))
}

// DetachNode promotes a subtree to a page-level root.
func (e *Editor) DetachNode(id string) {
	e.settle(mutate.Detach(e.Items(), id))
}

// GroupNode wraps a node in a synthesized distribution board.
func (e *Editor) GroupNode(id string) {
	e.settle(mutate.Group(e.Items(), id))
}

// ToggleCollapse flips a node's collapse flag.
func (e *Editor) ToggleCollapse(id string) {
	e.settle(mutate.ToggleCollapse(e.Items(), id))
}

// ConnectNodes resolves and applies a relationship between two nodes
// and reports what the connection engine decided.
func (e *Editor) ConnectNodes(aID, bID string) connect.Result {
	items, result := connect.Connect(e.Items(), aID, bID, e.guard)
	if result == connect.Reparented || result == connect.Linked {
		e.settle(items)
	}
	return result
}

// DisconnectNodes removes an auxiliary edge, or undoes a primary edge
// structurally when no auxiliary edge matches.
func (e *Editor) DisconnectNodes(fromID, toID string) {
	e.settle(connect.Disconnect(e.Items(), fromID, toID))
	e.selectedLink = nil
}

// CommitOffsets applies a finished drag gesture's offsets as one
// history step.
func (e *Editor) CommitOffsets(offsets map[string]schematic.Offset) {
	if len(offsets) == 0 {
		return
	}
	e.settle(mutate.ApplyOffsets(e.Items(), offsets))
}

// Undo restores the previous settled state.
func (e *Editor) Undo() bool {
	projects, err := e.history.Undo()
	if err != nil || projects == nil {
		return false
	}
	e.install(projects)
	return true
}

// Redo restores the next settled state.
func (e *Editor) Redo() bool {
	projects, err := e.history.Redo()
	if err != nil || projects == nil {
		return false
	}
	e.install(projects)
	return true
}

// CanUndo reports whether an undo step exists.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether a redo step exists.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// HistoryStats returns the cursor position and count for display.
func (e *Editor) HistoryStats() (current, total int) {
	return e.history.Stats()
}

func (e *Editor) install(projects []*schematic.Project) {
	e.projects = projects
	if e.project >= len(e.projects) {
		e.project = len(e.projects) - 1
	}
	if e.page >= len(e.Project().Pages) {
		e.page = 0
	}
	if e.selected != "" && schematic.Find(e.Items(), e.selected) == nil {
		e.ClearSelection()
	}
	e.status = Dirty
}

// AddPage appends a page to the active project and switches to it.
func (e *Editor) AddPage(name string) {
	p := e.Project()
	if name == "" {
		name = fmt.Sprintf("Page %d", len(p.Pages)+1)
	}
	p.Pages = append(p.Pages, &schematic.Page{ID: schematic.NewID(), Name: name})
	e.page = len(p.Pages) - 1
	e.ClearSelection()
	e.history.Save(e.projects)
	e.status = Dirty
}

// RenamePage renames the active page.
func (e *Editor) RenamePage(name string) {
	if name == "" {
		return
	}
	e.Page().Name = name
	e.history.Save(e.projects)
	e.status = Dirty
}

// DeletePage removes the active page. The last page of a project
// cannot be deleted.
func (e *Editor) DeletePage() error {
	p := e.Project()
	if len(p.Pages) <= 1 {
		return fmt.Errorf("project %q has only one page", p.Name)
	}
	p.Pages = append(p.Pages[:e.page], p.Pages[e.page+1:]...)
	if e.page >= len(p.Pages) {
		e.page = len(p.Pages) - 1
	}
	e.ClearSelection()
	e.history.Save(e.projects)
	e.status = Dirty
	return nil
}

// AddProject appends a new project and switches to it.
func (e *Editor) AddProject(name string) {
	if name == "" {
		name = fmt.Sprintf("Project %d", len(e.projects)+1)
	}
	e.projects = append(e.projects, schematic.NewProject(name))
	e.project = len(e.projects) - 1
	e.page = 0
	e.ClearSelection()
	e.history.Save(e.projects)
	e.status = Dirty
}

// RenameProject renames the active project.
func (e *Editor) RenameProject(name string) {
	if name == "" {
		return
	}
	e.Project().Name = name
	e.history.Save(e.projects)
	e.status = Dirty
}

// DeleteProject removes the active project. The last project cannot be
// deleted.
func (e *Editor) DeleteProject() error {
	if len(e.projects) <= 1 {
		return fmt.Errorf("cannot delete the only project")
	}
	e.projects = append(e.projects[:e.project], e.projects[e.project+1:]...)
	if e.project >= len(e.projects) {
		e.project = len(e.projects) - 1
	}
	e.page = 0
	e.ClearSelection()
	e.history.Save(e.projects)
	e.status = Dirty
	return nil
}
