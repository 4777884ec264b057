package schematic

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"
)

// idEpoch makes ids from separate process runs distinct; idCounter makes
// ids within a run distinct. An id, once allocated, is never reused.
var (
	idEpoch   = uint32(time.Now().Unix())
	idCounter uint64
)

// NewID allocates a fresh globally unique node or project id.
func NewID() string {
	return fmt.Sprintf("n%08x%06x", idEpoch, atomic.AddUint64(&idCounter, 1))
}

// edgePalette is used when a new child has no sibling to inherit an edge
// color from.
var edgePalette = []string{
	"#1f6feb", "#2da44e", "#cf222e", "#8250df",
	"#bf8700", "#0969da", "#57606a", "#9e6a03",
}

// RandomEdgeColor picks a stroke color for a first child. Randomness
// happens only at creation time, never during layout.
func RandomEdgeColor() string {
	return edgePalette[rand.Intn(len(edgePalette))]
}
