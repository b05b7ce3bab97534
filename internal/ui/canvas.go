package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colorBlank = lipgloss.Color("236")

// canvas is a character grid with one foreground color per cell.
type canvas struct {
	w, h  int
	cells [][]rune
	fg    [][]lipgloss.Color
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]rune, h), fg: make([][]lipgloss.Color, h)}
	for y := 0; y < h; y++ {
		c.cells[y] = []rune(strings.Repeat(" ", w))
		c.fg[y] = make([]lipgloss.Color, w)
		for x := range c.fg[y] {
			c.fg[y][x] = colorBlank
		}
	}
	return c
}

func (c *canvas) inside(x, y int) bool {
	return x >= 0 && x < c.w && y >= 0 && y < c.h
}

// set draws r at (x, y). Cells outside the grid are ignored.
func (c *canvas) set(x, y int, r rune, fg lipgloss.Color) {
	if c.inside(x, y) {
		c.cells[y][x] = r
		c.fg[y][x] = fg
	}
}

// blank reports whether (x, y) is inside the grid and still empty.
func (c *canvas) blank(x, y int) bool {
	return c.inside(x, y) && c.cells[y][x] == ' '
}

// text writes s from (x, y) rightwards, clipped at the edge.
func (c *canvas) text(x, y int, s string, fg lipgloss.Color) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, fg)
	}
}

// String renders the grid, styling runs of equal color together.
func (c *canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= c.w; x++ {
			if x < c.w && c.fg[y][x] == c.fg[y][start] {
				continue
			}
			run := string(c.cells[y][start:x])
			b.WriteString(lipgloss.NewStyle().Foreground(c.fg[y][start]).Render(run))
			start = x
		}
	}
	return b.String()
}
