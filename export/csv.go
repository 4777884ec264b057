package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"sld/schematic"
)

// CSVExporter flattens a page into an equipment schedule, one row per
// node in pre-order with the owning parent named on each row.
type CSVExporter struct{}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export writes the schedule for one page.
func (e *CSVExporter) Export(_ *schematic.Project, page *schematic.Page) ([]byte, error) {
	if page == nil {
		return nil, fmt.Errorf("page is nil")
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"Name", "Type", "Parent", "Location", "Model",
		"Current (A)", "Voltage (V)", "Power (kVA)",
		"Meter", "Generator", "Notes",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, root := range page.Items {
		if err := e.writeNode(w, root, ""); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("writing schedule: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *CSVExporter) writeNode(w *csv.Writer, n *schematic.Node, parent string) error {
	meter := ""
	if n.HasMeter {
		meter = n.MeterNumber
		if meter == "" {
			meter = "yes"
		}
	}
	generator := ""
	if n.HasGenerator {
		generator = n.GeneratorName
		if generator == "" {
			generator = "yes"
		}
	}
	row := []string{
		n.Name,
		n.Type.Config().Label,
		parent,
		n.Location,
		n.Model,
		numberField(n.Current),
		numberField(n.Voltage),
		numberField(n.Power),
		meter,
		generator,
		n.Description,
	}
	if err := w.Write(row); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := e.writeNode(w, c, n.Name); err != nil {
			return err
		}
	}
	return nil
}

func numberField(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FileExtension returns the recommended file extension.
func (e *CSVExporter) FileExtension() string {
	return ".csv"
}

// FormatName returns the format name.
func (e *CSVExporter) FormatName() string {
	return "CSV equipment schedule"
}
