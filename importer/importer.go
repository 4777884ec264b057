// Package importer reads JSON project backups back into the editor,
// migrating legacy page formats and regenerating identifiers that
// collide with projects already open.
package importer

import (
	"encoding/json"
	"fmt"

	"sld/schematic"
)

// Project parses a JSON backup into a project. Legacy single-root pages
// are migrated to the forest format, and a missing project or page id
// is filled in.
func Project(data []byte) (*schematic.Project, error) {
	var p schematic.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project: %w", err)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("project has no name")
	}
	p.Normalize()
	if p.ID == "" {
		p.ID = schematic.NewID()
	}
	if len(p.Pages) == 0 {
		p.Pages = []*schematic.Page{{ID: schematic.NewID(), Name: "Page 1"}}
	}
	for _, page := range p.Pages {
		if page.ID == "" {
			page.ID = schematic.NewID()
		}
	}
	return &p, nil
}

// Merge adds an imported project to the collection. When the imported
// project id, or any of its node ids, collides with an open project,
// fresh ids are assigned throughout so the import never aliases
// existing data. Auxiliary links inside the imported project are
// remapped alongside.
func Merge(existing []*schematic.Project, imported *schematic.Project) []*schematic.Project {
	taken := make(map[string]bool)
	for _, p := range existing {
		taken[p.ID] = true
		for _, page := range p.Pages {
			taken[page.ID] = true
			for id := range schematic.CollectIDs(page.Items) {
				taken[id] = true
			}
		}
	}

	if taken[imported.ID] {
		imported.ID = schematic.NewID()
	}
	remap := make(map[string]string)
	for _, page := range imported.Pages {
		if taken[page.ID] {
			page.ID = schematic.NewID()
		}
		schematic.Walk(page.Items, func(n *schematic.Node) {
			if taken[n.ID] {
				fresh := schematic.NewID()
				remap[n.ID] = fresh
				n.ID = fresh
			}
		})
	}
	if len(remap) > 0 {
		for _, page := range imported.Pages {
			schematic.Walk(page.Items, func(n *schematic.Node) {
				for i, id := range n.Extra {
					if fresh, ok := remap[id]; ok {
						n.Extra[i] = fresh
					}
				}
			})
		}
	}
	return append(existing, imported)
}
