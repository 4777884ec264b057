package export

import (
	"encoding/json"
	"fmt"

	"sld/schematic"
)

// JSONExporter exports a whole project as an indented JSON backup that
// the importer can read back.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export serializes the project. The page argument is ignored; backups
// always carry every page.
func (e *JSONExporter) Export(project *schematic.Project, _ *schematic.Page) ([]byte, error) {
	if project == nil {
		return nil, fmt.Errorf("project is nil")
	}
	data, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding project: %w", err)
	}
	return data, nil
}

// FileExtension returns the recommended file extension.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// FormatName returns the format name.
func (e *JSONExporter) FormatName() string {
	return "JSON backup"
}
