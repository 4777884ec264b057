package export

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"

	"sld/schematic"
)

// CopyProject places the project's JSON backup on the system clipboard.
func CopyProject(project *schematic.Project) error {
	if project == nil {
		return fmt.Errorf("project is nil")
	}
	data, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding project: %w", err)
	}
	return clipboard.WriteAll(string(data))
}

// CopySubtree places one node's subtree on the system clipboard as
// JSON, so it can be pasted into another tool or inspected.
func CopySubtree(node *schematic.Node) error {
	if node == nil {
		return fmt.Errorf("node is nil")
	}
	data, err := json.MarshalIndent(node, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding node: %w", err)
	}
	return clipboard.WriteAll(string(data))
}
