package canvas

import (
	"strings"
	"testing"

	"sld/layout"
)

func TestDrawBox(t *testing.T) {
	c := New(10, 4)
	c.DrawBox(0, 0, 5, 3)
	out := c.String()
	lines := strings.Split(out, "\n")
	if lines[0] != "┌───┐" {
		t.Errorf("top border wrong: %q", lines[0])
	}
	if lines[2] != "└───┘" {
		t.Errorf("bottom border wrong: %q", lines[2])
	}
	if !strings.HasPrefix(lines[1], "│") || !strings.Contains(lines[1], "│") {
		t.Errorf("side borders wrong: %q", lines[1])
	}
}

func TestTextClipped(t *testing.T) {
	c := New(5, 1)
	c.Text(2, 0, "abcdef")
	if got := c.String(); got != "  abc\n" {
		t.Errorf("expected clipped text, got %q", got)
	}
}

func TestOutOfBoundsWritesIgnored(t *testing.T) {
	c := New(3, 3)
	c.Set(-1, 0, 'x')
	c.Set(0, -1, 'x')
	c.Set(3, 0, 'x')
	c.Set(0, 3, 'x')
	if strings.ContainsRune(c.String(), 'x') {
		t.Error("out-of-bounds writes must be dropped")
	}
	if c.Get(99, 99) != ' ' {
		t.Error("out-of-bounds reads return space")
	}
}

func TestDrawPathOrthogonal(t *testing.T) {
	c := New(6, 4)
	c.DrawPath([]layout.Point{{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 4, Y: 2}}, false)
	if c.Get(0, 1) != '│' {
		t.Errorf("vertical segment missing, got %q", c.Get(0, 1))
	}
	if c.Get(2, 2) != '─' {
		t.Errorf("horizontal segment missing, got %q", c.Get(2, 2))
	}
	if c.Get(4, 2) != '─' {
		t.Errorf("path should end with a plain stroke, got %q", c.Get(4, 2))
	}
	if strings.ContainsRune(c.String(), '▼') {
		t.Error("solid paths must not carry an endpoint marker")
	}
}

func TestDashedPathSkipsCells(t *testing.T) {
	c := New(10, 1)
	c.DrawPath([]layout.Point{{X: 0, Y: 0}, {X: 8, Y: 0}}, true)
	solid, gaps := 0, 0
	for x := 0; x < 8; x++ {
		if c.Get(x, 0) == '─' {
			solid++
		} else {
			gaps++
		}
	}
	if solid == 0 || gaps == 0 {
		t.Errorf("dashed line should mix strokes and gaps, got %d/%d", solid, gaps)
	}
	if c.Get(8, 0) != '▼' {
		t.Errorf("dashed path should end with an arrowhead, got %q", c.Get(8, 0))
	}
}
