package glyph

import "testing"

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		word       string
		resolution int
		wantW      int
		wantH      int
		margin     int
		spacing    int
	}{
		{"A", 5, 9, 9, 2, 1},
		{"BIRDS", 10, 5*10 + 4*2 + 10, 20, 5, 2},
		{"HI", 3, 2*3 + 1 + 2, 5, 1, 1},
		{"", 5, 9, 9, 2, 1},
		{"x", 0, 9, 9, 2, 1},
	}

	for _, tt := range tests {
		l := ComputeLayout(tt.word, tt.resolution)
		if l.Width != tt.wantW || l.Height != tt.wantH {
			t.Errorf("ComputeLayout(%q, %d) = %dx%d, want %dx%d", tt.word, tt.resolution, l.Width, l.Height, tt.wantW, tt.wantH)
		}
		if l.Margin != tt.margin || l.Spacing != tt.spacing {
			t.Errorf("ComputeLayout(%q, %d) margin/spacing = %d/%d, want %d/%d", tt.word, tt.resolution, l.Margin, l.Spacing, tt.margin, tt.spacing)
		}
	}
}

func TestLayoutUppercases(t *testing.T) {
	l := ComputeLayout("hi", 5)
	if string(l.Word) != "HI" {
		t.Errorf("Word = %q, want HI", string(l.Word))
	}
}

func TestPixelAtBaseResolution(t *testing.T) {
	l := ComputeLayout("T", 5)
	// Top bar of T is fully on; margin cells are off.
	for col := 2; col < 7; col++ {
		if !l.Pixel(2, col) {
			t.Errorf("Pixel(2,%d) = false, want top bar on", col)
		}
	}
	if l.Pixel(0, 0) || l.Pixel(2, 1) || l.Pixel(2, 7) {
		t.Error("margin cells should be off")
	}
	// Stem runs down the middle column.
	for row := 3; row < 7; row++ {
		if !l.Pixel(row, 4) || l.Pixel(row, 3) {
			t.Errorf("row %d: stem mismatch", row)
		}
	}
}

func TestPixelSpacingIsOff(t *testing.T) {
	l := ComputeLayout("II", 5)
	gap := l.Margin + l.Resolution
	for row := 0; row < l.Height; row++ {
		if l.Pixel(row, gap) {
			t.Errorf("Pixel(%d,%d) in the letter gap is on", row, gap)
		}
	}
}

func TestPixelResampling(t *testing.T) {
	// At resolution 10 every source bit maps onto whole runs, and the
	// corners of the glyph match the corners of the bitmap.
	l := ComputeLayout("L", 10)
	m := l.Margin
	if !l.Pixel(m, m) {
		t.Error("top-left of L should be on")
	}
	if l.Pixel(m, m+9) {
		t.Error("top-right of L should be off")
	}
	if !l.Pixel(m+9, m+9) {
		t.Error("bottom-right of L should be on")
	}
}

func TestUnknownRuneIsBlank(t *testing.T) {
	l := ComputeLayout("~", 5)
	if n := len(l.Cells()); n != 0 {
		t.Errorf("unknown rune produced %d cells", n)
	}
	if Has('~') || !Has('A') {
		t.Error("Has reports the wrong coverage")
	}
}

func TestCellsRowMajor(t *testing.T) {
	l := ComputeLayout("I", 5)
	cells := l.Cells()
	if len(cells) != 13 {
		t.Fatalf("len(Cells) = %d, want 13", len(cells))
	}
	for i := 1; i < len(cells); i++ {
		a, b := cells[i-1], cells[i]
		if a[1] > b[1] || (a[1] == b[1] && a[0] >= b[0]) {
			t.Fatalf("cells out of order at %d: %v then %v", i, a, b)
		}
	}
}

func TestGridSizeForWord(t *testing.T) {
	if got := GridSizeForWord("A"); got != 9 {
		t.Errorf("GridSizeForWord(A) = %d, want 9", got)
	}
	if got := GridSizeForWord("BIRDS"); got != 5*5+4+4 {
		t.Errorf("GridSizeForWord(BIRDS) = %d, want 33", got)
	}
}
