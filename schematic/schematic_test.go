package schematic

import (
	"testing"
)

func TestNormalizeLiftsLegacyRootNode(t *testing.T) {
	page := &Page{
		ID:       "p1",
		Name:     "Page 1",
		RootNode: &Node{ID: "root", Type: TypeSystemRoot, Name: "Grid"},
	}
	page.Normalize()

	if page.RootNode != nil {
		t.Error("rootNode should be cleared after migration")
	}
	if len(page.Items) != 1 || page.Items[0].ID != "root" {
		t.Fatalf("expected lifted root in items, got %v", page.Items)
	}

	// A second call must be a no-op.
	page.Normalize()
	if len(page.Items) != 1 {
		t.Errorf("expected 1 item after repeated normalize, got %d", len(page.Items))
	}
}

func TestNormalizeKeepsItemsWhenBothPresent(t *testing.T) {
	page := &Page{
		Items:    []*Node{{ID: "a"}},
		RootNode: &Node{ID: "legacy"},
	}
	page.Normalize()
	if len(page.Items) != 1 || page.Items[0].ID != "a" {
		t.Errorf("items should win over legacy rootNode, got %v", page.Items)
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := &Node{
		ID:    "a",
		Name:  "Panel",
		Extra: []string{"x"},
		Icon:  []byte{1, 2},
		Children: []*Node{
			{ID: "b", Name: "Breaker"},
		},
	}
	clone := original.Clone()

	clone.Name = "Changed"
	clone.Extra[0] = "y"
	clone.Icon[0] = 9
	clone.Children[0].Name = "Changed child"

	if original.Name != "Panel" || original.Extra[0] != "x" || original.Icon[0] != 1 {
		t.Error("clone shares storage with the original")
	}
	if original.Children[0].Name != "Breaker" {
		t.Error("child was not deep copied")
	}
	if clone.ID != "a" || clone.Children[0].ID != "b" {
		t.Error("clone should preserve ids")
	}
}

func TestSpecLine(t *testing.T) {
	n := &Node{Type: TypeBreaker, Current: 63, Voltage: 400, Power: 40}
	if got := n.SpecLine(); got != "63A 400V 40kVA" {
		t.Errorf("unexpected spec line %q", got)
	}

	n = &Node{Type: TypeBreaker, Voltage: 230.5}
	if got := n.SpecLine(); got != "230.5V" {
		t.Errorf("unexpected spec line %q", got)
	}

	// Meters carry no ratings even when values are set.
	n = &Node{Type: TypeMeter, Current: 63}
	if got := n.SpecLine(); got != "" {
		t.Errorf("meter should have no spec line, got %q", got)
	}
}

func TestBadges(t *testing.T) {
	n := &Node{
		HasMeter:        true,
		MeterNumber:     "M-104",
		HasGenerator:    true,
		AirConditioning: true,
	}
	got := n.Badges()
	want := []string{"M:M-104", "G", "AC"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("badge %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFindParent(t *testing.T) {
	items := []*Node{
		{ID: "root", Children: []*Node{
			{ID: "mid", Children: []*Node{{ID: "leaf"}}},
		}},
	}

	parent, ok := FindParent(items, "leaf")
	if !ok || parent == nil || parent.ID != "mid" {
		t.Errorf("expected parent mid, got %v ok=%v", parent, ok)
	}

	parent, ok = FindParent(items, "root")
	if !ok || parent != nil {
		t.Error("page-level root should report nil parent with ok=true")
	}

	_, ok = FindParent(items, "missing")
	if ok {
		t.Error("missing id should report ok=false")
	}
}

func TestDisplayDefaultsComeFromType(t *testing.T) {
	n := &Node{Type: TypeGenerator}
	if n.DisplayShape() != ShapeCircle {
		t.Errorf("expected the generator's circle default, got %q", n.DisplayShape())
	}
	if n.DisplayColor() != TypeGenerator.Config().Color {
		t.Errorf("expected the generator's color default, got %q", n.DisplayColor())
	}

	n.Shape = ShapeSquare
	n.IconColor = "#112233"
	if n.DisplayShape() != ShapeSquare || n.DisplayColor() != "#112233" {
		t.Error("per-node overrides must win over type defaults")
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
