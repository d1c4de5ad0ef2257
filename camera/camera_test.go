package camera

import (
	"math"
	"testing"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name          string
		viewW, viewH  float32
		layoutW       int
		layoutH       int
		wantCell      float32
		wantW, wantH  int
		wantSpawnRows int
	}{
		{"width bound", 660, 400, 66, 20, 10, 66, 40, 10},
		{"height bound", 1000, 200, 20, 20, 10, 20, 20, 0},
		{"minimum cell", 100, 100, 200, 20, 2, 200, 50, 15},
		{"odd padding", 90, 125, 9, 9, 10, 9, 12, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Fit(0, 0, tt.viewW, tt.viewH, tt.layoutW, tt.layoutH)
			if math.Abs(float64(c.Cell-tt.wantCell)) > 1e-4 {
				t.Errorf("Cell = %v, want %v", c.Cell, tt.wantCell)
			}
			if c.GridW != tt.wantW || c.GridH != tt.wantH {
				t.Errorf("grid = %dx%d, want %dx%d", c.GridW, c.GridH, tt.wantW, tt.wantH)
			}
			if c.SpawnOffsetRows != tt.wantSpawnRows {
				t.Errorf("SpawnOffsetRows = %d, want %d", c.SpawnOffsetRows, tt.wantSpawnRows)
			}
		})
	}
}

func TestCellToScreenCentred(t *testing.T) {
	c := Fit(20, 30, 100, 100, 10, 10)
	sx, sy := c.CellToScreen(2, 3)
	if sx != 20+25 || sy != 30+35 {
		t.Errorf("CellToScreen(2,3) = (%v,%v), want (45,65)", sx, sy)
	}
}

func TestScreenToCellRoundtrip(t *testing.T) {
	c := Fit(20, 30, 400, 300, 40, 30)

	testCases := []struct{ cx, cy int }{
		{0, 0},
		{39, 29},
		{17, 4},
	}

	for _, tc := range testCases {
		sx, sy := c.CellToScreen(float32(tc.cx), float32(tc.cy))
		cx, cy, ok := c.ScreenToCell(sx, sy)
		if !ok || cx != tc.cx || cy != tc.cy {
			t.Errorf("roundtrip failed: (%d,%d) -> (%v,%v) -> (%d,%d,%v)", tc.cx, tc.cy, sx, sy, cx, cy, ok)
		}
	}
}

func TestScreenToCellOffCanvas(t *testing.T) {
	c := Fit(20, 30, 400, 300, 40, 30)
	w, h := c.CanvasSize()

	offCanvas := []struct{ sx, sy float32 }{
		{19, 40},
		{40, 29},
		{20 + w, 40},
		{40, 30 + h},
	}
	for _, p := range offCanvas {
		if _, _, ok := c.ScreenToCell(p.sx, p.sy); ok {
			t.Errorf("ScreenToCell(%v,%v) should be off canvas", p.sx, p.sy)
		}
	}
}

func TestResizeReportsGridChange(t *testing.T) {
	c := Fit(0, 0, 400, 300, 40, 30)
	if c.Resize(400, 300, 40, 30) {
		t.Error("same viewport should not change the grid")
	}
	if !c.Resize(400, 600, 40, 30) {
		t.Error("taller viewport should add rows")
	}
	if c.GridH != 60 {
		t.Errorf("GridH = %d, want 60", c.GridH)
	}
}

func TestMod(t *testing.T) {
	tests := []struct{ x, m, want int }{
		{5, 3, 2},
		{-1, 3, 2},
		{-6, 3, 0},
	}
	for _, tt := range tests {
		if got := mod(tt.x, tt.m); got != tt.want {
			t.Errorf("mod(%d,%d) = %d, want %d", tt.x, tt.m, got, tt.want)
		}
	}
}
