// Package draw provides the raster canvas game objects are drawn on and the
// lockable surface the game loop presents frames through.
package draw

import "gonum.org/v1/gonum/spatial/r2"

// Point is a position in logical canvas coordinates. It is the same vector
// type the physics package works with, so colliders and outlines share points.
type Point = r2.Vec

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// cellGlyphs is indexed by upper<<1 | lower.
var cellGlyphs = [4]rune{BlockEmpty, BlockLowerHalf, BlockUpperHalf, BlockFull}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
