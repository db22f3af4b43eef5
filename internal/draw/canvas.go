package draw

import (
	"math"
	"sort"
	"strings"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Game objects draw in logical coordinates which are scaled to terminal cells.
type Canvas struct {
	termWidth      int    // Terminal columns
	termHeight     int    // Terminal rows
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat slice: [y * termWidth + x] - true if pixel is set

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewCanvas creates a canvas for the given terminal dimensions with a 1:1
// mapping (logical height is twice the row count).
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 0 {
		termWidth = 0
	}
	if termHeight < 0 {
		termHeight = 0
	}
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]bool, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX, c.scaleY = 0, 0
	if c.logicalWidth > 0 {
		c.scaleX = float64(termWidth) / c.logicalWidth
	}
	if c.logicalHeight > 0 {
		c.scaleY = float64(subPixelHeight) / c.logicalHeight
	}
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel lights a pixel in pixel space; out-of-range pixels are ignored.
func (c *Canvas) setPixel(px, py int) {
	if c.inside(px, py) {
		c.pixels[py*c.termWidth+px] = true
	}
}

// toPixel scales a logical point to the nearest pixel.
func (c *Canvas) toPixel(p Point) (int, int) {
	return int(math.Round(p.X * c.scaleX)), int(math.Round(p.Y * c.scaleY))
}

func (c *Canvas) inside(px, py int) bool {
	return px >= 0 && px < c.termWidth && py >= 0 && py < c.subPixelHeight
}

// SetFloat lights the pixel nearest to the logical point (x, y).
func (c *Canvas) SetFloat(x, y float64) {
	c.setPixel(c.toPixel(Point{X: x, Y: y}))
}

// IsSet reports whether the pixel nearest to the logical point is lit.
func (c *Canvas) IsSet(x, y float64) bool {
	px, py := c.toPixel(Point{X: x, Y: y})
	return c.inside(px, py) && c.pixels[py*c.termWidth+px]
}

// LitCount returns the number of lit pixels.
func (c *Canvas) LitCount() int {
	n := 0
	for _, p := range c.pixels {
		if p {
			n++
		}
	}
	return n
}

// DrawLine lights every pixel between two logical points (Bresenham).
func (c *Canvas) DrawLine(from, to Point) {
	x, y := c.toPixel(from)
	endX, endY := c.toPixel(to)

	dx, dy := abs(endX-x), -abs(endY-y)
	stepX, stepY := 1, 1
	if x > endX {
		stepX = -1
	}
	if y > endY {
		stepY = -1
	}

	diff := dx + dy
	for {
		c.setPixel(x, y)
		if x == endX && y == endY {
			return
		}
		d2 := 2 * diff
		if d2 >= dy {
			diff += dy
			x += stepX
		}
		if d2 <= dx {
			diff += dx
			y += stepY
		}
	}
}

// DrawCircle draws a filled circle of the given logical radius.
// A circle smaller than one pixel still lights its centre.
func (c *Canvas) DrawCircle(center Point, radius float64) {
	cx, cy := center.X*c.scaleX, center.Y*c.scaleY
	rx, ry := radius*c.scaleX, radius*c.scaleY

	c.setPixel(c.toPixel(center))
	if rx <= 0 || ry <= 0 {
		return
	}

	for y := int(math.Floor(cy - ry)); y <= int(math.Ceil(cy+ry)); y++ {
		ny := (float64(y) - cy) / ry
		if ny < -1 || ny > 1 {
			continue
		}
		half := rx * math.Sqrt(1-ny*ny)
		for x := int(math.Ceil(cx - half)); x <= int(math.Floor(cx+half)); x++ {
			c.setPixel(x, y)
		}
	}
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// fillPolygon fills the interior with an even-odd scanline sweep in pixel
// space, sampling each row at its centre.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	top, bottom := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
		top = min(top, scaled[i].Y)
		bottom = max(bottom, scaled[i].Y)
	}

	for row := int(math.Floor(top)); row <= int(math.Ceil(bottom)); row++ {
		c.fillRow(scaled, row)
	}
}

func (c *Canvas) fillRow(scaled []Point, row int) {
	scanY := float64(row) + 0.5

	xs := c.intersectionBuf[:0]
	prev := scaled[len(scaled)-1]
	for _, cur := range scaled {
		if (prev.Y <= scanY) != (cur.Y <= scanY) {
			t := (scanY - prev.Y) / (cur.Y - prev.Y)
			xs = append(xs, prev.X+t*(cur.X-prev.X))
		}
		prev = cur
	}
	c.intersectionBuf = xs

	sort.Float64s(xs)
	for i := 0; i+1 < len(xs); i += 2 {
		for px := int(math.Ceil(xs[i])); px <= int(math.Floor(xs[i+1])); px++ {
			c.setPixel(px, row)
		}
	}
}

// String renders the canvas as termHeight lines, one half-block glyph per
// cell covering two stacked pixels.
func (c *Canvas) String() string {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termHeight * (c.termWidth*3 + 1))

	w := c.termWidth
	for row := 0; row < c.termHeight; row++ {
		if row > 0 {
			c.renderBuf.WriteByte('\n')
		}
		upper := c.pixels[2*row*w : (2*row+1)*w]
		lower := c.pixels[(2*row+1)*w : (2*row+2)*w]
		for col := range w {
			idx := 0
			if upper[col] {
				idx |= 2
			}
			if lower[col] {
				idx |= 1
			}
			c.renderBuf.WriteRune(cellGlyphs[idx])
		}
	}

	return c.renderBuf.String()
}

// TerminalWidth returns the terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// CellToLogical converts a 0-based terminal cell (col, row) to the logical
// coordinates at the cell centre. Used to map pointer input onto the canvas.
func (c *Canvas) CellToLogical(col, row int) (x, y float64) {
	if c.scaleX > 0 {
		x = (float64(col) + 0.5) / c.scaleX
	}
	if c.scaleY > 0 {
		y = (float64(row)*2 + 1) / c.scaleY
	}
	return x, y
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
