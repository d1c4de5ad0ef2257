// Package glyph lays out a word on the formation grid and answers which
// cells belong to the rendered text.
package glyph

import (
	"math"
	"strings"
)

// DefaultWord is used when the word is empty.
const DefaultWord = "A"

// Layout is the placement of a word on the grid at a given resolution.
// Letters are monospaced: each occupies Resolution columns followed by
// Spacing empty columns, and the whole word is surrounded by Margin cells.
type Layout struct {
	Word       []rune
	Resolution int // cells per letter side
	Margin     int // empty cells on every side
	Spacing    int // empty columns between letters
	Width      int
	Height     int
}

// ComputeLayout places word at resolution. The word is upper-cased and an
// empty word becomes DefaultWord; a non-positive resolution becomes BaseSize.
func ComputeLayout(word string, resolution int) Layout {
	word = strings.ToUpper(word)
	if word == "" {
		word = DefaultWord
	}
	if resolution <= 0 {
		resolution = BaseSize
	}
	runes := []rune(word)
	n := len(runes)

	margin := resolution / 2
	spacing := int(math.Round(float64(resolution) * 0.2))
	content := n*resolution + (n-1)*spacing

	return Layout{
		Word:       runes,
		Resolution: resolution,
		Margin:     margin,
		Spacing:    spacing,
		Width:      content + 2*margin,
		Height:     resolution + 2*margin,
	}
}

// GridSizeForWord returns the larger layout dimension at the base resolution.
func GridSizeForWord(word string) int {
	l := ComputeLayout(word, BaseSize)
	return max(l.Width, l.Height)
}

// Pixel reports whether (row, col) of the layout grid is part of the text.
// Margins and inter-letter gaps are never on. The letter bitmap is resampled
// to Resolution with nearest-neighbour sampling.
func (l Layout) Pixel(row, col int) bool {
	if row < l.Margin || row >= l.Height-l.Margin || col < l.Margin || col >= l.Width-l.Margin {
		return false
	}
	localRow := row - l.Margin
	localCol := col - l.Margin

	pitch := l.Resolution + l.Spacing
	letter := localCol / pitch
	inLetter := localCol - letter*pitch
	if inLetter >= l.Resolution || letter >= len(l.Word) || localRow >= l.Resolution {
		return false
	}

	return bit(l.Word[letter], l.sample(localRow), l.sample(inLetter))
}

// sample maps a local coordinate in [0,Resolution) onto the base bitmap.
func (l Layout) sample(local int) int {
	scale := float64(BaseSize-1) / float64(max(1, l.Resolution-1))
	src := int(math.Round(float64(local) * scale))
	return min(max(src, 0), BaseSize-1)
}

// Cells returns every on cell as (col, row) pairs in row-major order.
func (l Layout) Cells() [][2]int {
	var out [][2]int
	for row := 0; row < l.Height; row++ {
		for col := 0; col < l.Width; col++ {
			if l.Pixel(row, col) {
				out = append(out, [2]int{col, row})
			}
		}
	}
	return out
}
