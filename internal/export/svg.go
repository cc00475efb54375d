package export

import (
	"fmt"
	"math"
	"strings"
)

// HeatmapSVG renders an inner-product matrix as an SVG grid. Values in
// [-1, 1] map onto a blue-white-red ramp: -1 deep blue, 0 white, +1 deep
// red, matching the usual correlation-heatmap convention.
func HeatmapSVG(m [][]float64, cell int) string {
	n := len(m)
	if n == 0 || cell < 1 {
		return ""
	}

	size := n * cell
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, size, size, size, size))

	for i := 0; i < n; i++ {
		for j := 0; j < len(m[i]); j++ {
			r, g, b := divergingColor(m[i][j])
			sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="#%02x%02x%02x"/>
`, j*cell, i*cell, cell, cell, r, g, b))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ScatterSVG renders projected particle positions (first two columns of each
// point) as a scatter plot, with marker hue cycling by particle index so the
// topology ordering stays readable.
func ScatterSVG(points [][]float64, width, height int) string {
	if len(points) == 0 || width < 1 || height < 1 {
		return ""
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
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	n := len(points)
	for i, p := range points {
		x := (p[0] - minX) / rangeX * float64(width)
		y := float64(height) - (p[1]-minY)/rangeY*float64(height)
		r, g, b := hueColor(float64(i) / float64(n))
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="#%02x%02x%02x" stroke="#000" stroke-width="0.5"/>
`, x, y, r, g, b))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func divergingColor(v float64) (r, g, b int) {
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	if v >= 0 {
		// white → red
		return 255, int(255 * (1 - v)), int(255 * (1 - v))
	}
	// white → blue
	return int(255 * (1 + v)), int(255 * (1 + v)), 255
}

func hueColor(t float64) (r, g, b int) {
	h := math.Mod(t, 1) * 6
	f := h - math.Floor(h)
	q := int(255 * (1 - f))
	u := int(255 * f)

	switch int(h) % 6 {
	case 0:
		return 255, u, 0
	case 1:
		return q, 255, 0
	case 2:
		return 0, 255, u
	case 3:
		return 0, q, 255
	case 4:
		return u, 0, 255
	default:
		return 255, 0, q
	}
}
