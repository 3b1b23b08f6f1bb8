package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// canvas is a fixed-size grid of terminal lines that blocks are stamped onto.
type canvas struct {
	lines []string
	width int
}

func newCanvas(width, height int) *canvas {
	c := &canvas{lines: make([]string, max(1, height)), width: max(1, width)}
	blank := strings.Repeat(" ", c.width)
	for i := range c.lines {
		c.lines[i] = blank
	}
	return c
}

// stamp composites block on top of the canvas with its top-left cell at (x, y).
// Cells falling outside the canvas are clipped.
func (c *canvas) stamp(block string, x, y int) {
	for i, line := range splitLines(block) {
		row := y + i
		if row < 0 || row >= len(c.lines) {
			continue
		}
		if x < 0 {
			line = ansi.TruncateLeft(line, -x, "")
		}
		col := max(0, x)
		if col >= c.width {
			continue
		}
		line = ansi.Truncate(line, c.width-col, "")
		target := c.lines[row]
		left := ansi.Truncate(target, col, "")
		if w := ansi.StringWidth(left); w < col {
			left += strings.Repeat(" ", col-w)
		}
		right := ansi.TruncateLeft(target, col+ansi.StringWidth(line), "")
		c.lines[row] = padRight(left+line+right, c.width)
	}
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// splitLines splits a string on newlines, returning at least one element.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// padRight pads s with spaces so its visual width equals width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return padRight(ansi.Truncate(s, width, "…"), width)
}
