package glyph

// BaseSize is the native resolution of the built-in bitmap font.
const BaseSize = 5

// font maps characters to 5x5 bitmaps, one string per row, '#' for on.
var font = map[rune][BaseSize]string{
	'A': {".###.", "#...#", "#####", "#...#", "#...#"},
	'B': {"####.", "#...#", "####.", "#...#", "####."},
	'C': {".####", "#....", "#....", "#....", ".####"},
	'D': {"####.", "#...#", "#...#", "#...#", "####."},
	'E': {"#####", "#....", "####.", "#....", "#####"},
	'F': {"#####", "#....", "####.", "#....", "#...."},
	'G': {".####", "#....", "#..##", "#...#", ".###."},
	'H': {"#...#", "#...#", "#####", "#...#", "#...#"},
	'I': {"#####", "..#..", "..#..", "..#..", "#####"},
	'J': {"..###", "...#.", "...#.", "#..#.", ".##.."},
	'K': {"#...#", "#..#.", "###..", "#..#.", "#...#"},
	'L': {"#....", "#....", "#....", "#....", "#####"},
	'M': {"#...#", "##.##", "#.#.#", "#...#", "#...#"},
	'N': {"#...#", "##..#", "#.#.#", "#..##", "#...#"},
	'O': {".###.", "#...#", "#...#", "#...#", ".###."},
	'P': {"####.", "#...#", "####.", "#....", "#...."},
	'Q': {".###.", "#...#", "#.#.#", "#..#.", ".##.#"},
	'R': {"####.", "#...#", "####.", "#..#.", "#...#"},
	'S': {".####", "#....", ".###.", "....#", "####."},
	'T': {"#####", "..#..", "..#..", "..#..", "..#.."},
	'U': {"#...#", "#...#", "#...#", "#...#", ".###."},
	'V': {"#...#", "#...#", "#...#", ".#.#.", "..#.."},
	'W': {"#...#", "#...#", "#.#.#", "##.##", "#...#"},
	'X': {"#...#", ".#.#.", "..#..", ".#.#.", "#...#"},
	'Y': {"#...#", ".#.#.", "..#..", "..#..", "..#.."},
	'Z': {"#####", "...#.", "..#..", ".#...", "#####"},
	'0': {".###.", "#..##", "#.#.#", "##..#", ".###."},
	'1': {"..#..", ".##..", "..#..", "..#..", ".###."},
	'2': {".###.", "#...#", "..##.", ".#...", "#####"},
	'3': {"####.", "....#", ".###.", "....#", "####."},
	'4': {"#..#.", "#..#.", "#####", "...#.", "...#."},
	'5': {"#####", "#....", "####.", "....#", "####."},
	'6': {".###.", "#....", "####.", "#...#", ".###."},
	'7': {"#####", "...#.", "..#..", ".#...", ".#..."},
	'8': {".###.", "#...#", ".###.", "#...#", ".###."},
	'9': {".###.", "#...#", ".####", "....#", ".###."},
	'!': {"..#..", "..#..", "..#..", ".....", "..#.."},
	'?': {".###.", "#...#", "..##.", ".....", "..#.."},
	'.': {".....", ".....", ".....", ".....", "..#.."},
	'-': {".....", ".....", "#####", ".....", "....."},
	'+': {".....", "..#..", "#####", "..#..", "....."},
	'#': {".#.#.", "#####", ".#.#.", "#####", ".#.#."},
	'*': {"#.#.#", ".###.", "#####", ".###.", "#.#.#"},
	' ': {".....", ".....", ".....", ".....", "....."},
}

// Has reports whether the font can draw r.
func Has(r rune) bool {
	_, ok := font[r]
	return ok
}

// bit reports whether the glyph for r is on at (row, col). Unknown runes are blank.
func bit(r rune, row, col int) bool {
	g, ok := font[r]
	if !ok {
		return false
	}
	return g[row][col] == '#'
}
