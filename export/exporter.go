// Package export converts a project or a single page into external
// formats: a JSON backup, a CSV equipment schedule, ASCII art, SVG and
// PNG drawings.
package export

import (
	"fmt"

	"sld/schematic"
)

// Format identifies an export format.
type Format string

const (
	// FormatJSON exports the whole project as a JSON backup.
	FormatJSON Format = "json"
	// FormatCSV exports the page as a flat equipment schedule.
	FormatCSV Format = "csv"
	// FormatASCII exports the page as Unicode art.
	FormatASCII Format = "ascii"
	// FormatSVG exports the page as a vector drawing.
	FormatSVG Format = "svg"
	// FormatPNG exports the page as a raster drawing.
	FormatPNG Format = "png"
)

// Exporter converts one page (or its whole project, for backups) into
// a byte payload.
type Exporter interface {
	Export(project *schematic.Project, page *schematic.Page) ([]byte, error)
	FileExtension() string
	FormatName() string
}

// NewExporter creates an exporter for the given format.
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatCSV:
		return NewCSVExporter(), nil
	case FormatASCII:
		return NewASCIIExporter(), nil
	case FormatSVG:
		return NewSVGExporter(), nil
	case FormatPNG:
		return NewPNGExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "ascii", "text", "txt":
		return FormatASCII, nil
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// AvailableFormats lists every supported format.
func AvailableFormats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatASCII, FormatSVG, FormatPNG}
}
