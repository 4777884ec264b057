// Package validate checks a page forest for structural defects:
// duplicate ids, self-referencing auxiliary links, links that point at
// missing nodes, and mirrored link pairs that would draw twice.
package validate

import (
	"fmt"
	"strings"

	"sld/schematic"
)

// ValidationError describes one structural defect.
type ValidationError struct {
	NodeID  string
	Message string
}

func (e ValidationError) String() string {
	if e.NodeID == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.NodeID, e.Message)
}

// Validator checks forests for defects.
type Validator struct {
	errors []ValidationError
}

// NewValidator creates a validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks the forest and returns every defect found.
func (v *Validator) Validate(items []*schematic.Node) []ValidationError {
	v.errors = nil
	ids := schematic.CollectIDs(items)

	seen := make(map[string]bool)
	schematic.Walk(items, func(n *schematic.Node) {
		if n.ID == "" {
			v.add("", fmt.Sprintf("node %q has no id", n.Name))
			return
		}
		if seen[n.ID] {
			v.add(n.ID, "duplicate id")
		}
		seen[n.ID] = true
	})

	schematic.Walk(items, func(n *schematic.Node) {
		linked := make(map[string]bool)
		for _, target := range n.Extra {
			switch {
			case target == n.ID:
				v.add(n.ID, "auxiliary link to itself")
			case !ids[target]:
				v.add(n.ID, fmt.Sprintf("auxiliary link to missing node %s", target))
			case linked[target]:
				v.add(n.ID, fmt.Sprintf("duplicate auxiliary link to %s", target))
			}
			linked[target] = true
		}
		for _, c := range n.Children {
			if linked[c.ID] {
				v.add(n.ID, fmt.Sprintf("auxiliary link duplicates the primary edge to %s", c.ID))
			}
		}
	})

	// Mirrored pairs: A links B and B links A draw the same feed twice.
	schematic.Walk(items, func(n *schematic.Node) {
		for _, target := range n.Extra {
			other := schematic.Find(items, target)
			if other != nil && other.HasExtra(n.ID) && n.ID < target {
				v.add(n.ID, fmt.Sprintf("mirrored auxiliary link with %s", target))
			}
		}
	})

	return v.errors
}

// ValidateProject checks every page of a project.
func (v *Validator) ValidateProject(p *schematic.Project) []ValidationError {
	var all []ValidationError
	for _, page := range p.Pages {
		for _, e := range v.Validate(page.Items) {
			e.Message = fmt.Sprintf("page %q: %s", page.Name, e.Message)
			all = append(all, e)
		}
	}
	return all
}

func (v *Validator) add(nodeID, msg string) {
	v.errors = append(v.errors, ValidationError{NodeID: nodeID, Message: msg})
}

// Report formats errors for display, one per line.
func Report(errors []ValidationError) string {
	if len(errors) == 0 {
		return "ok"
	}
	var sb strings.Builder
	for _, e := range errors {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
