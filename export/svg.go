package export

import (
	"fmt"
	"strings"

	"sld/layout"
	"sld/schematic"
)

// Cell-to-pixel scale shared by the SVG and PNG exporters.
const (
	cellW         = 9
	cellH         = 18
	margin        = 20
	defaultStroke = "#455a64"
)

// SVGExporter renders one page as a vector drawing.
type SVGExporter struct {
	engine *layout.Engine
}

// NewSVGExporter creates an exporter with default layout spacing.
func NewSVGExporter() *SVGExporter {
	return &SVGExporter{engine: layout.NewEngine()}
}

// Export renders the page.
func (e *SVGExporter) Export(_ *schematic.Project, page *schematic.Page) ([]byte, error) {
	if page == nil {
		return nil, fmt.Errorf("page is nil")
	}
	result := e.engine.Layout(page.Items)
	width := result.Width*cellW + 2*margin
	height := result.Height*cellH + 2*margin

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		width, height, width, height)
	sb.WriteString(`<rect width="100%" height="100%" fill="white"/>` + "\n")

	for _, edge := range result.Edges {
		e.writeEdge(&sb, edge)
	}
	for _, id := range result.Order {
		e.writeNode(&sb, result.Nodes[id])
	}
	sb.WriteString("</svg>\n")
	return []byte(sb.String()), nil
}

func (e *SVGExporter) writeEdge(sb *strings.Builder, edge layout.Edge) {
	stroke := edge.Style.Color
	if stroke == "" {
		stroke = defaultStroke
	}
	dash := ""
	if edge.Auxiliary || edge.Style.Dash != "" {
		dash = ` stroke-dasharray="6,4"`
	}
	points := make([]string, len(edge.Points))
	for i, p := range edge.Points {
		points[i] = fmt.Sprintf("%d,%d", px(p.X), py(p.Y))
	}
	fmt.Fprintf(sb, `<polyline points="%s" fill="none" stroke="%s" stroke-width="2"%s/>`+"\n",
		strings.Join(points, " "), stroke, dash)
	if edge.Auxiliary && len(edge.Points) > 1 {
		end := edge.Points[len(edge.Points)-1]
		fmt.Fprintf(sb, `<circle cx="%d" cy="%d" r="4" fill="%s"/>`+"\n", px(end.X), py(end.Y), stroke)
	}
}

func (e *SVGExporter) writeNode(sb *strings.Builder, p *layout.PlacedNode) {
	x, y := px(p.X), py(p.Y)
	w, h := p.Width*cellW, p.Height*cellH
	fill := p.Node.Background
	if fill == "" {
		fill = "#ffffff"
	}
	stroke := p.Node.DisplayColor()
	if stroke == "" {
		stroke = defaultStroke
	}
	switch p.Node.DisplayShape() {
	case schematic.ShapeCircle:
		fmt.Fprintf(sb, `<circle cx="%d" cy="%d" r="%d" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
			x+w/2, y+h/2, h/2, fill, stroke)
	default:
		fmt.Fprintf(sb, `<rect x="%d" y="%d" width="%d" height="%d" rx="6" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
			x, y, w, h, fill, stroke)
	}
	lines := contentLines(p.Node)
	for i, line := range lines {
		if i >= p.Height-2 {
			break
		}
		weight := ""
		if i == 0 {
			weight = ` font-weight="bold"`
		}
		fmt.Fprintf(sb, `<text x="%d" y="%d" text-anchor="middle" font-family="monospace" font-size="13"%s>%s</text>`+"\n",
			x+w/2, y+(i+1)*cellH+4, weight, escapeXML(line))
	}
}

func px(x int) int { return x*cellW + margin }
func py(y int) int { return y*cellH + margin }

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

// FileExtension returns the recommended file extension.
func (e *SVGExporter) FileExtension() string {
	return ".svg"
}

// FormatName returns the format name.
func (e *SVGExporter) FormatName() string {
	return "SVG drawing"
}
