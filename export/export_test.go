package export

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"sld/schematic"
)

func fixtureProject() *schematic.Project {
	return &schematic.Project{
		ID:   "proj",
		Name: "Plant",
		Pages: []*schematic.Page{{
			ID:   "page1",
			Name: "Main",
			Items: []*schematic.Node{
				{ID: "grid", Type: schematic.TypeSystemRoot, Name: "Grid", Children: []*schematic.Node{
					{ID: "t1", Type: schematic.TypeTransformer, Name: "T1", Current: 63, Voltage: 400, Children: []*schematic.Node{
						{ID: "b1", Type: schematic.TypeBreaker, Name: "B1", Current: 63, Voltage: 400, HasMeter: true, MeterNumber: "M-7"},
					}},
				}},
			},
		}},
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "csv", "ascii", "svg", "png", "txt"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("%s should parse: %v", s, err)
		}
	}
	if _, err := ParseFormat("docx"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestNewExporterCoversAllFormats(t *testing.T) {
	for _, f := range AvailableFormats() {
		if _, err := NewExporter(f); err != nil {
			t.Errorf("no exporter for %s: %v", f, err)
		}
	}
}

func TestJSONExportRoundTrips(t *testing.T) {
	p := fixtureProject()
	data, err := NewJSONExporter().Export(p, nil)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	var back schematic.Project
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("backup is not valid JSON: %v", err)
	}
	if back.Name != "Plant" || len(back.Pages) != 1 {
		t.Errorf("round trip lost data: %+v", back)
	}
	if back.Pages[0].Items[0].Children[0].Current != 63 {
		t.Error("ratings lost in round trip")
	}
}

func TestCSVExportFlattensWithParents(t *testing.T) {
	p := fixtureProject()
	data, err := NewCSVExporter().Export(p, p.Pages[0])
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 4 { // header + 3 nodes
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[1][0] != "Grid" || rows[1][2] != "" {
		t.Errorf("root row wrong: %v", rows[1])
	}
	if rows[2][0] != "T1" || rows[2][2] != "Grid" {
		t.Errorf("child row should name its parent: %v", rows[2])
	}
	if rows[3][8] != "M-7" {
		t.Errorf("meter column wrong: %v", rows[3])
	}
}

func TestASCIIExportContainsNodes(t *testing.T) {
	p := fixtureProject()
	data, err := NewASCIIExporter().Export(p, p.Pages[0])
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	out := string(data)
	for _, name := range []string{"Grid", "T1", "B1"} {
		if !strings.Contains(out, name) {
			t.Errorf("output missing node %q", name)
		}
	}
	if !strings.Contains(out, "┌") || !strings.Contains(out, "┘") {
		t.Error("output should contain box borders")
	}
	if !strings.Contains(out, "63A 400V") {
		t.Error("ratings line missing")
	}
}

func TestASCIIExportEmptyPage(t *testing.T) {
	data, err := NewASCIIExporter().Export(nil, &schematic.Page{Name: "Empty"})
	if err != nil {
		t.Fatalf("empty page should export: %v", err)
	}
	if !strings.Contains(string(data), "empty") {
		t.Errorf("unexpected empty-page output %q", data)
	}
}

func TestSVGExportStructure(t *testing.T) {
	p := fixtureProject()
	data, err := NewSVGExporter().Export(p, p.Pages[0])
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	out := string(data)
	if !strings.HasPrefix(out, "<svg") {
		t.Error("missing svg root element")
	}
	if strings.Count(out, "<rect") < 3 { // background + 2 rectangular nodes
		t.Error("expected node rectangles")
	}
	if !strings.Contains(out, "<polyline") {
		t.Error("expected edge polylines")
	}
	if !strings.Contains(out, ">Grid</text>") {
		t.Error("expected node labels")
	}
}

func TestSVGAppliesTypeDefaultsToBareNodes(t *testing.T) {
	p := &schematic.Project{
		ID:   "proj",
		Name: "Plant",
		Pages: []*schematic.Page{{
			ID:    "page1",
			Name:  "Main",
			Items: []*schematic.Node{{ID: "gen", Type: schematic.TypeGenerator, Name: "G1"}},
		}},
	}
	data, err := NewSVGExporter().Export(p, p.Pages[0])
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "<circle") {
		t.Error("a generator without overrides should render as a circle")
	}
	if !strings.Contains(out, schematic.TypeGenerator.Config().Color) {
		t.Error("a generator without overrides should use its type color")
	}
	if strings.Contains(out, defaultStroke) {
		t.Error("a typed node must not fall back to the generic stroke")
	}
}

func TestSVGNodeOverridesBeatTypeDefaults(t *testing.T) {
	p := fixtureProject()
	p.Pages[0].Items[0].IconColor = "#112233"
	data, err := NewSVGExporter().Export(p, p.Pages[0])
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(string(data), "#112233") {
		t.Error("a per-node color override should win over the type default")
	}
}

func TestSVGEscapesLabels(t *testing.T) {
	p := fixtureProject()
	p.Pages[0].Items[0].Name = `A <&> "B"`
	data, err := NewSVGExporter().Export(p, p.Pages[0])
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if strings.Contains(string(data), "<&>") {
		t.Error("labels must be XML escaped")
	}
	if !strings.Contains(string(data), "&lt;&amp;&gt;") {
		t.Error("expected escaped entities in output")
	}
}

func TestPNGExportProducesImage(t *testing.T) {
	p := fixtureProject()
	data, err := NewPNGExporter().Export(p, p.Pages[0])
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Error("output is not a PNG stream")
	}
}

func TestNilInputsRejected(t *testing.T) {
	if _, err := NewJSONExporter().Export(nil, nil); err == nil {
		t.Error("nil project should be rejected")
	}
	if _, err := NewCSVExporter().Export(fixtureProject(), nil); err == nil {
		t.Error("nil page should be rejected")
	}
}
