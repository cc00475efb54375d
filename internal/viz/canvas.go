// Package viz renders simulation output in the terminal: a braille-dot
// scatter of projected positions, an ASCII heatmap of the inner-product
// matrix, and a live bubbletea view of a running engine.
package viz

import "strings"

// Braille patterns pack 2x4 sub-pixels per character cell, offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set marks a sub-pixel; the canvas is (Width*2) x (Height*4) sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) String() string {
	var sb strings.Builder
	for _, row := range c.Grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Scatter plots 2D points (first two columns of each row) onto a fresh
// canvas, fitting the bounding box with 10% padding.
func Scatter(points [][]float64, width, height int) *Canvas {
	c := NewCanvas(width, height)
	if len(points) == 0 {
		return c
	}

	minX, maxX := points[0][0], points[0][0]
	minY, maxY := points[0][1], points[0][1]
	for _, p := range points {
		if p[0] < minX {
			minX = p[0]
		}
		if p[0] > maxX {
			maxX = p[0]
		}
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	rangeX *= 1.2
	minY -= rangeY * 0.1
	rangeY *= 1.2

	subW := float64(width*2 - 1)
	subH := float64(height*4 - 1)
	for _, p := range points {
		x := int((p[0] - minX) / rangeX * subW)
		y := int(subH - (p[1]-minY)/rangeY*subH)
		c.Set(x, y)
	}

	return c
}
