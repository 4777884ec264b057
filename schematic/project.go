package schematic

// Page holds an ordered list of independent root nodes. A page has no
// single root: an installation may have several disconnected supply
// trees.
type Page struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Items []*Node `json:"items"`

	// RootNode is the pre-items snapshot shape: a single root per page.
	// Normalize lifts it into Items; it is never written back.
	RootNode *Node `json:"rootNode,omitempty"`
}

// ReportMeta carries print/report metadata for a project.
type ReportMeta struct {
	Company   string `json:"company,omitempty"`
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	PaperSize string `json:"paperSize,omitempty"`
}

// Project is a named collection of pages.
type Project struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Pages  []*Page    `json:"pages"`
	Report ReportMeta `json:"report,omitempty"`
}

// NewProject creates a project with one empty page.
func NewProject(name string) *Project {
	return &Project{
		ID:    NewID(),
		Name:  name,
		Pages: []*Page{{ID: NewID(), Name: "Page 1"}},
	}
}

// Normalize migrates a page loaded from an older snapshot: a lone
// rootNode is lifted into a one-element items list. Safe to call on
// current-shape pages.
func (p *Page) Normalize() {
	if p.RootNode != nil {
		if len(p.Items) == 0 {
			p.Items = []*Node{p.RootNode}
		}
		p.RootNode = nil
	}
}

// Normalize migrates every page of the project. See Page.Normalize.
func (p *Project) Normalize() {
	for _, page := range p.Pages {
		page.Normalize()
	}
}

// Clone creates a deep copy of the node, including its whole subtree.
// Ids are preserved; use a fresh-id copy for duplication semantics.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := *n
	if n.Icon != nil {
		clone.Icon = make([]byte, len(n.Icon))
		copy(clone.Icon, n.Icon)
	}
	if n.Extra != nil {
		clone.Extra = make([]string, len(n.Extra))
		copy(clone.Extra, n.Extra)
	}
	if n.Children != nil {
		clone.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			clone.Children[i] = c.Clone()
		}
	}
	return &clone
}

// CloneForest deep-copies a root list.
func CloneForest(items []*Node) []*Node {
	if items == nil {
		return nil
	}
	out := make([]*Node, len(items))
	for i, n := range items {
		out[i] = n.Clone()
	}
	return out
}

// Clone creates a deep copy of the page.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Items = CloneForest(p.Items)
	clone.RootNode = p.RootNode.Clone()
	return &clone
}

// Clone creates a deep copy of the project.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	clone := *p
	if p.Pages != nil {
		clone.Pages = make([]*Page, len(p.Pages))
		for i, pg := range p.Pages {
			clone.Pages[i] = pg.Clone()
		}
	}
	return &clone
}

// CloneProjects deep-copies the whole collection, for history snapshots.
func CloneProjects(projects []*Project) []*Project {
	if projects == nil {
		return nil
	}
	out := make([]*Project, len(projects))
	for i, p := range projects {
		out[i] = p.Clone()
	}
	return out
}
