// Package geometry provides small integer math helpers shared by the
// layout engine and the drag controller.
package geometry

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Snap quantizes v to the nearest multiple of grid. A grid of 0 or 1
// leaves v unchanged.
func Snap(v, grid int) int {
	if grid <= 1 {
		return v
	}
	half := grid / 2
	if v >= 0 {
		return ((v + half) / grid) * grid
	}
	return -(((-v + half) / grid) * grid)
}

// ManhattanDistance calculates the Manhattan distance between two points.
func ManhattanDistance(x1, y1, x2, y2 int) int {
	return Abs(x2-x1) + Abs(y2-y1)
}
