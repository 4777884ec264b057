package drag

import (
	"testing"

	"sld/schematic"
)

func fixture() []*schematic.Node {
	return []*schematic.Node{
		{ID: "root", Offset: schematic.Offset{DX: 1, DY: 1}, Children: []*schematic.Node{
			{ID: "child", Children: []*schematic.Node{
				{ID: "leaf", Offset: schematic.Offset{DX: -2, DY: 0}},
			}},
		}},
		{ID: "other"},
	}
}

func TestPressWithoutMovementIsClick(t *testing.T) {
	c := NewController(3, 0)
	c.Start(fixture(), "child", 10, 10)

	if c.State() != Pending {
		t.Fatalf("expected Pending, got %v", c.State())
	}
	if preview := c.Move(11, 10); preview != nil {
		t.Error("movement below the threshold must not preview")
	}
	offsets, outcome := c.End()
	if outcome != Click {
		t.Errorf("expected Click, got %v", outcome)
	}
	if offsets != nil {
		t.Error("a click carries no offsets")
	}
	if c.State() != Idle {
		t.Error("controller should reset after End")
	}
}

func TestDragMovesWholeSubtreeRigidly(t *testing.T) {
	c := NewController(2, 0)
	c.Start(fixture(), "root", 10, 10)

	preview := c.Move(15, 13) // displacement (5,3)
	if preview == nil {
		t.Fatal("threshold crossed, expected a preview")
	}
	if len(preview) != 3 {
		t.Fatalf("expected the whole subtree captured, got %d nodes", len(preview))
	}
	if got := preview["root"]; got != (schematic.Offset{DX: 6, DY: 4}) {
		t.Errorf("root offset %+v, want baseline plus displacement", got)
	}
	if got := preview["leaf"]; got != (schematic.Offset{DX: 3, DY: 3}) {
		t.Errorf("leaf offset %+v, want its own baseline plus the same displacement", got)
	}
	if _, ok := preview["other"]; ok {
		t.Error("nodes outside the subtree must not move")
	}

	offsets, outcome := c.End()
	if outcome != Moved {
		t.Fatalf("expected Moved, got %v", outcome)
	}
	if offsets["root"] != (schematic.Offset{DX: 6, DY: 4}) {
		t.Error("commit batch should match the last preview")
	}
}

func TestDisplacementIsNotCumulative(t *testing.T) {
	c := NewController(1, 0)
	c.Start(fixture(), "child", 0, 0)

	c.Move(4, 0)
	preview := c.Move(2, 0)
	if got := preview["child"]; got != (schematic.Offset{DX: 2, DY: 0}) {
		t.Errorf("displacement must track the pointer, not accumulate, got %+v", got)
	}
}

func TestSnapQuantizesDisplacement(t *testing.T) {
	c := NewController(1, 4)
	c.Start(fixture(), "child", 0, 0)

	preview := c.Move(5, 7)
	if got := preview["child"]; got != (schematic.Offset{DX: 4, DY: 8}) {
		t.Errorf("expected snapped offset (4,8), got %+v", got)
	}
}

func TestStartOnMissingNodeIsIgnored(t *testing.T) {
	c := NewController(2, 0)
	c.Start(fixture(), "ghost", 0, 0)
	if c.State() != Idle {
		t.Error("starting on a missing node should not arm the controller")
	}
	if _, outcome := c.End(); outcome != None {
		t.Errorf("expected None, got %v", outcome)
	}
}

func TestCancelDiscardsGesture(t *testing.T) {
	c := NewController(1, 0)
	c.Start(fixture(), "root", 0, 0)
	c.Move(10, 10)
	c.Cancel()

	if c.State() != Idle {
		t.Error("cancel should reset the controller")
	}
	if _, outcome := c.End(); outcome != None {
		t.Errorf("expected None after cancel, got %v", outcome)
	}
}
