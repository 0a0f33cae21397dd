package game

import "strings"

// glyphs are 3x5 bitmaps, one string per row, '#' is lit.
var glyphs = map[rune][GlyphH]string{
	'0': {"###", "#.#", "#.#", "#.#", "###"},
	'1': {".#.", "##.", ".#.", ".#.", "###"},
	'2': {"###", "..#", "###", "#..", "###"},
	'3': {"###", "..#", "###", "..#", "###"},
	'4': {"#.#", "#.#", "###", "..#", "..#"},
	'5': {"###", "#..", "###", "..#", "###"},
	'6': {"###", "#..", "###", "#.#", "###"},
	'7': {"###", "..#", ".#.", ".#.", ".#."},
	'8': {"###", "#.#", "###", "#.#", "###"},
	'9': {"###", "#.#", "###", "..#", "###"},
	'A': {".#.", "#.#", "###", "#.#", "#.#"},
	'B': {"##.", "#.#", "##.", "#.#", "##."},
	'C': {"###", "#..", "#..", "#..", "###"},
	'D': {"##.", "#.#", "#.#", "#.#", "##."},
	'E': {"###", "#..", "##.", "#..", "###"},
	'G': {"###", "#..", "#.#", "#.#", "###"},
	'I': {"###", ".#.", ".#.", ".#.", "###"},
	'K': {"#.#", "#.#", "##.", "#.#", "#.#"},
	'M': {"#.#", "###", "###", "#.#", "#.#"},
	'N': {"##.", "#.#", "#.#", "#.#", "#.#"},
	'O': {"###", "#.#", "#.#", "#.#", "###"},
	'P': {"###", "#.#", "###", "#..", "#.."},
	'Q': {"###", "#.#", "#.#", "###", "..#"},
	'R': {"##.", "#.#", "##.", "#.#", "#.#"},
	'S': {"###", "#..", "###", "..#", "###"},
	'T': {"###", ".#.", ".#.", ".#.", ".#."},
	'U': {"#.#", "#.#", "#.#", "#.#", "###"},
	'V': {"#.#", "#.#", "#.#", "#.#", ".#."},
	'W': {"#.#", "#.#", "###", "###", "#.#"},
	':': {"...", ".#.", "...", ".#.", "..."},
	'-': {"...", "...", "###", "...", "..."},
}

// TextWidth returns the width of s in world units at the given scale,
// including one cell of spacing between characters.
func TextWidth(s string, scale float64) float64 {
	n := len([]rune(s))
	if n == 0 {
		return 0
	}
	return float64(n*(GlyphW+1)-1) * GlyphPixel * scale
}

// TextHeight is the height of one line at the given scale.
func TextHeight(scale float64) float64 {
	return GlyphH * GlyphPixel * scale
}

// appendText lays s out left to right from (x, y). Unknown runes render as
// blanks. A one-cell drop shadow keeps the text readable over the road.
func appendText(buf []float32, s string, x, y, scale float64, col RGB) []float32 {
	cell := GlyphPixel * scale
	for pass := range 2 {
		c, dx := Palette.HUDShadow, cell*0.5
		if pass == 1 {
			c, dx = col, 0
		}
		cx := x
		for _, ch := range strings.ToUpper(s) {
			g, ok := glyphs[ch]
			if ok {
				for row, bits := range g {
					for colIdx, bit := range bits {
						if bit != '#' {
							continue
						}
						buf = appendRect(buf, cx+float64(colIdx)*cell+dx, y+float64(row)*cell+dx, cell, cell, c, 1)
					}
				}
			}
			cx += (GlyphW + 1) * cell
		}
	}
	return buf
}
