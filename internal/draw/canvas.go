// Package draw renders the play area to an ANSI terminal using half-block
// characters, which give each terminal cell two vertically stacked pixels.
package draw

import (
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Point represents a 2D coordinate in logical space.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a pixel color. The zero value is an unset pixel.
type Color uint8

const (
	ColorNone Color = iota
	ColorWhite
	ColorCyan
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
)

// ColorReset restores the terminal's default attributes.
const ColorReset = "\033[0m"

var colorCodes = [...]string{
	ColorNone:   ColorReset,
	ColorWhite:  "\033[97m",
	ColorCyan:   "\033[96m",
	ColorRed:    "\033[91m",
	ColorGreen:  "\033[92m",
	ColorBlue:   "\033[94m",
	ColorYellow: "\033[93m",
}

// Code returns the ANSI escape sequence selecting c as foreground color.
func (c Color) Code() string {
	if int(c) < len(colorCodes) {
		return colorCodes[c]
	}
	return ColorReset
}

// cell is what a terminal cell currently shows.
type cell struct {
	top, bottom Color
	valid       bool // False forces the cell to be rewritten
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Drawing uses logical coordinates that are scaled to terminal pixels. Render
// only writes cells that changed since the previous frame.
type Canvas struct {
	termWidth      int     // Terminal columns covered by the canvas
	termHeight     int     // Terminal rows covered by the canvas
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]
	shown          []cell  // Last rendered state per terminal cell

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // subPixelHeight / logicalHeight

	// 0-based terminal offsets of the render area.
	offsetCol int
	offsetRow int

	pen Color

	renderBuf       []byte
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		pen:           ColorWhite,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// A size change invalidates every cell.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 0)
	termHeight = max(termHeight, 0)
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Color, c.subPixelHeight*termWidth)
		c.shown = make([]cell, termHeight*termWidth)
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the terminal offset of the render area. The canvas starts
// at (col+1, row+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render write every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	clear(c.shown)
}

// MarkTextDirty marks cells overwritten by a text overlay so the next Render
// repaints them. col and row are 1-based canvas coordinates.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	y := row - 1
	if y < 0 || y >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < col-1+n && x < c.termWidth; x++ {
		c.shown[y*c.termWidth+x].valid = false
	}
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// SetColor selects the color used by subsequent drawing calls.
func (c *Canvas) SetColor(color Color) {
	c.pen = color
}

// setPixel sets a pixel at terminal pixel coordinates.
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = c.pen
	}
}

// Pixel returns the color of a terminal pixel.
func (c *Canvas) Pixel(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return ColorNone
	}
	return c.pixels[y*c.termWidth+x]
}

// SetFloat sets a pixel using logical coordinates.
func (c *Canvas) SetFloat(x, y float64) {
	c.setPixel(int(math.Round(x*c.scaleX)), int(math.Round(y*c.scaleY)))
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillRect fills the logical rectangle centered on (cx, cy).
// Every rectangle covers at least one pixel.
func (c *Canvas) FillRect(cx, cy, width, height float64) {
	x0 := int(math.Round((cx - width/2) * c.scaleX))
	x1 := int(math.Round((cx + width/2) * c.scaleX))
	y0 := int(math.Round((cy - height/2) * c.scaleY))
	y1 := int(math.Round((cy + height/2) * c.scaleY))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for y := max(y0, 0); y < y1 && y < c.subPixelHeight; y++ {
		for x := max(x0, 0); x < x1 && x < c.termWidth; x++ {
			c.pixels[y*c.termWidth+x] = c.pen
		}
	}
}

// DrawRect draws the outline of the logical rectangle centered on (cx, cy).
func (c *Canvas) DrawRect(cx, cy, width, height float64) {
	hw, hh := width/2, height/2
	pts := c.BorrowPoints(4)
	pts[0] = Point{X: cx - hw, Y: cy - hh}
	pts[1] = Point{X: cx + hw, Y: cy - hh}
	pts[2] = Point{X: cx + hw, Y: cy + hh}
	pts[3] = Point{X: cx - hw, Y: cy + hh}
	c.DrawPolygon(pts, false)
}

// DrawShip draws a filled triangle of the given size centered on (cx, cy),
// pointing along heading (radians, 0 = right, y grows downwards).
func (c *Canvas) DrawShip(cx, cy, size, heading float64) {
	r := size / 2
	pts := c.BorrowPoints(3)
	pts[0] = Point{X: cx + r*math.Cos(heading), Y: cy + r*math.Sin(heading)}
	pts[1] = Point{X: cx + r*math.Cos(heading+2.5), Y: cy + r*math.Sin(heading+2.5)}
	pts[2] = Point{X: cx + r*math.Cos(heading-2.5), Y: cy + r*math.Sin(heading-2.5)}
	c.DrawPolygon(pts, true)
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using a scanline algorithm.
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

// fillPolygon fills a polygon in pixel space.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		slices.Sort(intersections)
		for i := 0; i+1 < len(intersections); i += 2 {
			for x := int(math.Ceil(intersections[i])); x <= int(math.Floor(intersections[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// Render writes the cells that changed since the previous Render.
func (c *Canvas) Render(w io.Writer) error {
	buf := c.renderBuf[:0]
	cur := ColorNone

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			next := cell{
				top:    c.pixels[topOffset+col],
				bottom: c.pixels[bottomOffset+col],
				valid:  true,
			}
			idx := row*c.termWidth + col
			if c.shown[idx] == next {
				continue
			}
			c.shown[idx] = next

			color := next.top
			if color == ColorNone {
				color = next.bottom
			}
			if color != cur && color != ColorNone {
				buf = append(buf, color.Code()...)
				cur = color
			}

			buf = appendMove(buf, col+1+c.offsetCol, row+1+c.offsetRow)
			switch {
			case next.top != ColorNone && next.bottom != ColorNone:
				buf = append(buf, string(BlockFull)...)
			case next.top != ColorNone:
				buf = append(buf, string(BlockUpperHalf)...)
			case next.bottom != ColorNone:
				buf = append(buf, string(BlockLowerHalf)...)
			default:
				buf = append(buf, ' ')
			}
		}
	}
	if cur != ColorNone {
		buf = append(buf, ColorReset...)
	}
	c.renderBuf = buf

	if len(buf) == 0 {
		return nil
	}
	_, err := w.Write(buf)
	return err
}

// RenderBorder draws a box border around the canvas area when there is room
// for it around the offset render area.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars
	if !hasH && !hasV {
		return nil
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	line := strings.Repeat("─", c.termWidth)

	var buf []byte
	if hasV {
		if hasH {
			buf = appendMove(buf, left, top)
			buf = append(buf, "┌"+line+"┐"...)
			buf = appendMove(buf, left, bottom)
			buf = append(buf, "└"+line+"┘"...)
		} else {
			buf = appendMove(buf, c.offsetCol+1, top)
			buf = append(buf, line...)
			buf = appendMove(buf, c.offsetCol+1, bottom)
			buf = append(buf, line...)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			buf = appendMove(buf, left, row)
			buf = append(buf, "│"...)
			buf = appendMove(buf, right, row)
			buf = append(buf, "│"...)
		}
	}
	_, err := w.Write(buf)
	return err
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the number of terminal columns the canvas covers.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the number of terminal rows the canvas covers.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas position (col, row).
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

func appendMove(buf []byte, col, row int) []byte {
	buf = append(buf, "\033["...)
	buf = strconv.AppendInt(buf, int64(row), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(col), 10)
	return append(buf, 'H')
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
