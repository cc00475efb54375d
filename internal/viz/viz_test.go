package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetAndRender(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(7, 7)

	out := c.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 4 {
			t.Errorf("expected 4 columns, got %d", len([]rune(line)))
		}
	}

	if c.Grid[0][0] == 0x2800 {
		t.Error("Set(0,0) did not mark the first cell")
	}
	if c.Grid[1][3] == 0x2800 {
		t.Error("Set(7,7) did not mark the last cell")
	}
}

func TestCanvasIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(100, 100)

	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("out-of-bounds Set mutated the grid")
			}
		}
	}
}

func TestScatterMarksPoints(t *testing.T) {
	points := [][]float64{
		{0, 0},
		{1, 1},
		{-1, -1},
	}

	c := Scatter(points, 20, 10)

	marked := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				marked++
			}
		}
	}
	if marked == 0 {
		t.Error("scatter produced an empty canvas")
	}
}

func TestHeatmapGlyphs(t *testing.T) {
	m := [][]float64{
		{1.0, -1.0},
		{0.0, 1.0},
	}

	out := Heatmap(m)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}

	rows := [][]rune{[]rune(lines[0]), []rune(lines[1])}
	if rows[0][0] != '@' {
		t.Errorf("+1 should render densest glyph, got %q", rows[0][0])
	}
	if rows[0][1] != ' ' {
		t.Errorf("-1 should render blank, got %q", rows[0][1])
	}
}

func TestHeatmapEmpty(t *testing.T) {
	if Heatmap(nil) != "" {
		t.Error("expected empty output for nil matrix")
	}
}
