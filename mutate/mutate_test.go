package mutate

import (
	"strings"
	"testing"

	"sld/schematic"
)

// fixture builds the standard test forest:
//
//	grid ── t1 ── b1
//	             └ b2 (links to lone)
//	lone
func fixture() []*schematic.Node {
	return []*schematic.Node{
		{ID: "grid", Type: schematic.TypeSystemRoot, Name: "Grid", Children: []*schematic.Node{
			{ID: "t1", Type: schematic.TypeTransformer, Name: "T1", Children: []*schematic.Node{
				{ID: "b1", Type: schematic.TypeBreaker, Name: "B1"},
				{ID: "b2", Type: schematic.TypeBreaker, Name: "B2", Extra: []string{"lone"}},
			}},
		}},
		{ID: "lone", Type: schematic.TypeLoad, Name: "Lone"},
	}
}

func TestInsertInheritsSiblingColor(t *testing.T) {
	items := []*schematic.Node{
		{ID: "p", Children: []*schematic.Node{
			{ID: "c1", EdgeStyle: schematic.EdgeStyle{Color: "#123456"}},
		}},
	}
	result := Insert(items, "p", &schematic.Node{Name: "New"})

	parent := schematic.Find(result, "p")
	if len(parent.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(parent.Children))
	}
	added := parent.Children[1]
	if added.EdgeStyle.Color != "#123456" {
		t.Errorf("expected inherited color #123456, got %q", added.EdgeStyle.Color)
	}
	if added.ID == "" {
		t.Error("inserted node should get an id")
	}
}

func TestInsertFirstChildGetsPaletteColor(t *testing.T) {
	items := []*schematic.Node{{ID: "p"}}
	result := Insert(items, "p", &schematic.Node{Name: "New"})
	added := schematic.Find(result, "p").Children[0]
	if added.EdgeStyle.Color == "" {
		t.Error("first child should get a palette color")
	}
}

func TestInsertMissingParentIsNoOp(t *testing.T) {
	items := fixture()
	result := Insert(items, "nope", &schematic.Node{Name: "New"})
	if schematic.CountNodes(result) != schematic.CountNodes(items) {
		t.Error("insert under missing parent should change nothing")
	}
}

func TestMutationsNeverTouchInput(t *testing.T) {
	items := fixture()
	before := schematic.CountNodes(items)

	Delete(items, "t1")
	Insert(items, "grid", &schematic.Node{Name: "X"})
	Clone(items, "t1")
	name := "Renamed"
	Edit(items, "b1", Patch{Name: &name})

	if schematic.CountNodes(items) != before {
		t.Error("input forest was modified")
	}
	if schematic.Find(items, "b1").Name != "B1" {
		t.Error("input node was edited in place")
	}
}

func TestEditPreservesUnsetFields(t *testing.T) {
	items := fixture()
	current := 32.0
	result := Edit(items, "b1", Patch{Current: &current})

	b1 := schematic.Find(result, "b1")
	if b1.Current != 32 {
		t.Errorf("expected current 32, got %v", b1.Current)
	}
	if b1.Name != "B1" {
		t.Errorf("unset fields must be preserved, name became %q", b1.Name)
	}
}

func TestBulkEditSkipsMissing(t *testing.T) {
	items := fixture()
	reserved := true
	result := BulkEdit(items, []string{"b1", "missing", "b2"}, Patch{Reserved: &reserved})

	if !schematic.Find(result, "b1").Reserved || !schematic.Find(result, "b2").Reserved {
		t.Error("listed nodes should all be patched")
	}
	if schematic.CountNodes(result) != schematic.CountNodes(items) {
		t.Error("missing ids must be skipped silently")
	}
}

func TestDeleteCascadesAndSweepsLinks(t *testing.T) {
	items := []*schematic.Node{
		{ID: "grid", Children: []*schematic.Node{
			{ID: "t1", Children: []*schematic.Node{{ID: "b1"}}},
			{ID: "other", Extra: []string{"b1", "keep"}},
			{ID: "keep"},
		}},
	}
	result := Delete(items, "t1")

	if schematic.Find(result, "t1") != nil || schematic.Find(result, "b1") != nil {
		t.Error("delete must cascade to descendants")
	}
	other := schematic.Find(result, "other")
	if len(other.Extra) != 1 || other.Extra[0] != "keep" {
		t.Errorf("links to deleted nodes must be swept, got %v", other.Extra)
	}
}

func TestDeleteRoot(t *testing.T) {
	result := Delete(fixture(), "lone")
	if len(result) != 1 {
		t.Fatalf("expected 1 root, got %d", len(result))
	}
	if schematic.Find(result, "lone") != nil {
		t.Error("root should be removed")
	}
}

func TestCloneMakesIndependentCopy(t *testing.T) {
	result := Clone(fixture(), "t1")

	original := schematic.Find(result, "t1")
	if len(original.Children) != 3 {
		t.Fatalf("copy should be appended to the original's children, got %d", len(original.Children))
	}
	copied := original.Children[2]
	if copied.Name != "T1 (Copy)" {
		t.Errorf("expected copy suffix, got %q", copied.Name)
	}
	if copied.ID == "t1" {
		t.Error("copy must get a fresh id")
	}
	ids := schematic.CollectIDs(result)
	if schematic.CountNodes(result) != len(ids) {
		t.Error("ids must be unique after cloning")
	}
	schematic.Walk([]*schematic.Node{copied}, func(n *schematic.Node) {
		if len(n.Extra) != 0 {
			t.Errorf("copy must not carry auxiliary links, %s has %v", n.Name, n.Extra)
		}
		if strings.HasPrefix(n.ID, "b") || n.ID == "t1" {
			t.Errorf("copy reused old id %s", n.ID)
		}
	})
}

func TestDetachPromotesSubtree(t *testing.T) {
	result := Detach(fixture(), "t1")

	if len(result) != 3 {
		t.Fatalf("expected 3 roots, got %d", len(result))
	}
	grid := schematic.Find(result, "grid")
	if len(grid.Children) != 0 {
		t.Error("detached subtree should leave its former parent")
	}
	t1 := result[2]
	if t1.ID != "t1" || len(t1.Children) != 2 {
		t.Error("detached subtree must stay intact")
	}
}

func TestDetachRootIsNoOp(t *testing.T) {
	result := Detach(fixture(), "lone")
	if len(result) != 2 {
		t.Errorf("detaching a root should change nothing, got %d roots", len(result))
	}
}

func TestGroupWrapsNode(t *testing.T) {
	items := fixture()
	schematic.Find(items, "b1").Location = "Basement"
	result := Group(items, "b1")

	t1 := schematic.Find(result, "t1")
	wrapper := t1.Children[0]
	if wrapper.Type != schematic.TypePanel {
		t.Fatalf("expected panel wrapper, got %s", wrapper.Type)
	}
	if wrapper.Location != "Basement" {
		t.Error("wrapper should inherit the target's location")
	}
	if len(wrapper.Children) != 1 || wrapper.Children[0].ID != "b1" {
		t.Error("wrapper should own the target as its sole child")
	}
}

func TestGroupRootReplacesInRootList(t *testing.T) {
	result := Group(fixture(), "lone")
	if result[1].Type != schematic.TypePanel {
		t.Error("wrapper should take the root's slot")
	}
	if result[1].Children[0].ID != "lone" {
		t.Error("root should sit under the wrapper")
	}
}

func TestGroupRejectsSupplyRoot(t *testing.T) {
	result := Group(fixture(), "grid")
	if result[0].ID != "grid" {
		t.Error("supply roots must not be grouped")
	}
}

func TestGroupRejectsGenerator(t *testing.T) {
	items := append(fixture(), &schematic.Node{ID: "gen", Type: schematic.TypeGenerator, Name: "G1"})
	result := Group(items, "gen")
	if result[len(result)-1].ID != "gen" {
		t.Error("generators must not be grouped")
	}
	if schematic.Find(result, "gen").Type != schematic.TypeGenerator {
		t.Error("the rejected target must be left untouched")
	}
}

func TestToggleCollapse(t *testing.T) {
	result := ToggleCollapse(fixture(), "t1")
	if !schematic.Find(result, "t1").Collapsed {
		t.Error("expected collapsed")
	}
	result = ToggleCollapse(result, "t1")
	if schematic.Find(result, "t1").Collapsed {
		t.Error("expected expanded again")
	}
	if schematic.Find(result, "b1") == nil {
		t.Error("collapse must keep children in the data")
	}
}

func TestApplyOffsets(t *testing.T) {
	result := ApplyOffsets(fixture(), map[string]schematic.Offset{
		"t1": {DX: 5, DY: -2},
		"b1": {DX: 5, DY: -2},
	})
	if off := schematic.Find(result, "t1").Offset; off.DX != 5 || off.DY != -2 {
		t.Errorf("unexpected offset %+v", off)
	}
	if !schematic.Find(result, "grid").Offset.IsZero() {
		t.Error("unlisted nodes must keep their offsets")
	}
}
