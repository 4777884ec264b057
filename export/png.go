package export

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"sld/layout"
	"sld/schematic"
)

// PNGExporter renders one page as a raster drawing.
type PNGExporter struct {
	engine   *layout.Engine
	fontSize float64
}

// NewPNGExporter creates an exporter with default layout spacing.
func NewPNGExporter() *PNGExporter {
	return &PNGExporter{engine: layout.NewEngine(), fontSize: 13}
}

// Export renders the page.
func (e *PNGExporter) Export(_ *schematic.Project, page *schematic.Page) ([]byte, error) {
	if page == nil {
		return nil, fmt.Errorf("page is nil")
	}
	result := e.engine.Layout(page.Items)
	width := result.Width*cellW + 2*margin
	height := result.Height*cellH + 2*margin
	if width < 2*margin+cellW {
		width = 2*margin + cellW
	}
	if height < 2*margin+cellH {
		height = 2*margin + cellH
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    e.fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	// Edges behind boxes.
	for _, edge := range result.Edges {
		e.drawEdge(dc, edge)
	}
	for _, id := range result.Order {
		e.drawNode(dc, result.Nodes[id])
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PNGExporter) drawEdge(dc *gg.Context, edge layout.Edge) {
	setHexColor(dc, edge.Style.Color, defaultStroke)
	dc.SetLineWidth(2)
	if edge.Auxiliary || edge.Style.Dash != "" {
		dc.SetDash(6, 4)
	}
	for i := 1; i < len(edge.Points); i++ {
		a, b := edge.Points[i-1], edge.Points[i]
		dc.DrawLine(fx(a.X), fy(a.Y), fx(b.X), fy(b.Y))
		dc.Stroke()
	}
	dc.SetDash()
	if edge.Auxiliary && len(edge.Points) > 1 {
		a := edge.Points[len(edge.Points)-2]
		b := edge.Points[len(edge.Points)-1]
		e.drawArrow(dc, fx(a.X), fy(a.Y), fx(b.X), fy(b.Y))
	}
}

func (e *PNGExporter) drawArrow(dc *gg.Context, fromX, fromY, toX, toY float64) {
	dx, dy := toX-fromX, toY-fromY
	length := math.Sqrt(dx*dx + dy*dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length
	const size, angle = 8.0, 0.5
	sin, cos := math.Sin(angle), math.Cos(angle)
	lx := toX - size*(dx*cos-dy*sin)
	ly := toY - size*(dy*cos+dx*sin)
	rx := toX - size*(dx*cos+dy*sin)
	ry := toY - size*(dy*cos-dx*sin)
	dc.DrawLine(toX, toY, lx, ly)
	dc.Stroke()
	dc.DrawLine(toX, toY, rx, ry)
	dc.Stroke()
}

func (e *PNGExporter) drawNode(dc *gg.Context, p *layout.PlacedNode) {
	x, y := fx(p.X), fy(p.Y)
	w, h := float64(p.Width*cellW), float64(p.Height*cellH)

	if p.Node.DisplayShape() == schematic.ShapeCircle {
		cx, cy, r := x+w/2, y+h/2, h/2
		setHexColor(dc, p.Node.Background, "#ffffff")
		dc.DrawCircle(cx, cy, r)
		dc.Fill()
		setHexColor(dc, p.Node.DisplayColor(), defaultStroke)
		dc.SetLineWidth(2)
		dc.DrawCircle(cx, cy, r)
		dc.Stroke()
	} else {
		setHexColor(dc, p.Node.Background, "#ffffff")
		dc.DrawRoundedRectangle(x, y, w, h, 6)
		dc.Fill()
		setHexColor(dc, p.Node.DisplayColor(), defaultStroke)
		dc.SetLineWidth(2)
		dc.DrawRoundedRectangle(x, y, w, h, 6)
		dc.Stroke()
	}

	dc.SetRGB(0.1, 0.1, 0.1)
	for i, line := range contentLines(p.Node) {
		if i >= p.Height-2 {
			break
		}
		dc.DrawStringAnchored(line, x+w/2, y+float64(i+1)*cellH, 0.5, 0.35)
	}
}

func fx(x int) float64 { return float64(x*cellW + margin) }
func fy(y int) float64 { return float64(y*cellH + margin) }

// setHexColor applies a #rrggbb color, falling back when the value is
// empty or malformed.
func setHexColor(dc *gg.Context, hex, fallback string) {
	r, g, b, ok := parseHex(hex)
	if !ok {
		r, g, b, _ = parseHex(fallback)
	}
	dc.SetRGB(r, g, b)
}

func parseHex(hex string) (r, g, b float64, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	var ri, gi, bi int
	if _, err := fmt.Sscanf(hex[1:], "%02x%02x%02x", &ri, &gi, &bi); err != nil {
		return 0, 0, 0, false
	}
	return float64(ri) / 255, float64(gi) / 255, float64(bi) / 255, true
}

// FileExtension returns the recommended file extension.
func (e *PNGExporter) FileExtension() string {
	return ".png"
}

// FormatName returns the format name.
func (e *PNGExporter) FormatName() string {
	return "PNG drawing"
}
