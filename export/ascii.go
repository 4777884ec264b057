package export

import (
	"fmt"

	"sld/canvas"
	"sld/layout"
	"sld/schematic"
)

// ASCIIExporter renders one page as Unicode art using the same layout
// the editor shows.
type ASCIIExporter struct {
	engine *layout.Engine
}

// NewASCIIExporter creates an exporter with default layout spacing.
func NewASCIIExporter() *ASCIIExporter {
	return &ASCIIExporter{engine: layout.NewEngine()}
}

// Export renders the page.
func (e *ASCIIExporter) Export(_ *schematic.Project, page *schematic.Page) ([]byte, error) {
	if page == nil {
		return nil, fmt.Errorf("page is nil")
	}
	result := e.engine.Layout(page.Items)
	if len(result.Order) == 0 {
		return []byte("(empty page)\n"), nil
	}
	c := canvas.New(result.Width+1, result.Height+1)
	for _, edge := range result.Edges {
		c.DrawPath(edge.Points, edge.Auxiliary)
	}
	for _, id := range result.Order {
		drawNode(c, result.Nodes[id])
	}
	return []byte(c.String()), nil
}

// drawNode paints one placed box with its content lines centered.
func drawNode(c *canvas.Canvas, p *layout.PlacedNode) {
	// Clear the interior so edges never show through boxes.
	for y := p.Y; y < p.Y+p.Height; y++ {
		for x := p.X; x < p.X+p.Width; x++ {
			c.Set(x, y, ' ')
		}
	}
	c.DrawBox(p.X, p.Y, p.Width, p.Height)

	lines := contentLines(p.Node)
	inner := p.Width - 2
	for i, line := range lines {
		if i >= p.Height-2 {
			break
		}
		if len(line) > inner {
			line = line[:inner]
		}
		x := p.X + 1 + (inner-len(line))/2
		c.Text(x, p.Y+1+i, line)
	}
}

func contentLines(n *schematic.Node) []string {
	lines := []string{n.Name}
	if s := n.SpecLine(); s != "" {
		lines = append(lines, s)
	}
	if n.Model != "" {
		lines = append(lines, n.Model)
	}
	if n.Description != "" {
		lines = append(lines, n.Description)
	}
	if badges := n.Badges(); len(badges) > 0 {
		line := ""
		for i, b := range badges {
			if i > 0 {
				line += " "
			}
			line += "[" + b + "]"
		}
		lines = append(lines, line)
	}
	return lines
}

// FileExtension returns the recommended file extension.
func (e *ASCIIExporter) FileExtension() string {
	return ".txt"
}

// FormatName returns the format name.
func (e *ASCIIExporter) FormatName() string {
	return "Unicode art"
}
