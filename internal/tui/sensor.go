package tui

import (
	"github.com/jask/multicol/internal/board"
	"github.com/jask/multicol/internal/collision"
)

type sensor int

const (
	sensorNone sensor = iota
	sensorPointer
	sensorKeyboard
)

// dragState is the sensor side of a gesture: where it started and where the
// pointer is now. The board side lives in the controller session.
type dragState struct {
	sensor  sensor
	origin  collision.Rect
	press   collision.Point
	pointer collision.Point
}

func (d dragState) active() bool { return d.sensor != sensorNone }

// rect is the dragged rectangle: the origin rect carried along by the pointer.
func (d dragState) rect() collision.Rect {
	if d.sensor == sensorKeyboard {
		return collision.Rect{
			X: d.pointer.X - d.origin.W/2,
			Y: d.pointer.Y - d.origin.H/2,
			W: d.origin.W,
			H: d.origin.H,
		}
	}
	return d.origin.Translate(d.pointer.X-d.press.X, d.pointer.Y-d.press.Y)
}

type direction int

const (
	dirUp direction = iota
	dirDown
	dirLeft
	dirRight
)

// anchor is a point the keyboard can land on.
type anchor struct {
	id board.ID
	at collision.Point
}

// nearest picks the anchor closest to from in direction dir. Offsets across the
// direction of travel count double so the cursor prefers straight lines.
func nearest(from collision.Point, dir direction, anchors []anchor) (anchor, bool) {
	var (
		best      anchor
		bestScore int
		found     bool
	)
	for _, a := range anchors {
		dx, dy := a.at.X-from.X, a.at.Y-from.Y
		var primary, cross int
		switch dir {
		case dirUp:
			primary, cross = -dy, dx
		case dirDown:
			primary, cross = dy, dx
		case dirLeft:
			primary, cross = -dx, dy
		case dirRight:
			primary, cross = dx, dy
		}
		if primary <= 0 {
			continue
		}
		score := primary + 2*abs(cross)
		if !found || score < bestScore {
			best, bestScore, found = a, score, true
		}
	}
	return best, found
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// focusAnchors are the stops of the idle cursor: container headers, items and
// the add-column control.
func (g geometry) focusAnchors() []anchor {
	var out []anchor
	for _, c := range g.order {
		if g.headerRows > 0 || len(g.members[c]) == 0 {
			out = append(out, anchor{id: c, at: g.headerAnchor(c)})
		}
		for _, id := range g.members[c] {
			out = append(out, anchor{id: id, at: center(g.items[id])})
		}
	}
	if !g.placeholder.Empty() {
		out = append(out, anchor{id: board.Placeholder, at: center(g.placeholder)})
	}
	return out
}

// headerAnchor is where the cursor sits when a container itself is focused.
func (g geometry) headerAnchor(c board.ID) collision.Point {
	box := g.boxes[c]
	return collision.Point{X: box.X + box.W/2, Y: box.Y + 1}
}

// dragAnchors are the stops of a keyboard drag. Items land on items, empty
// containers and the extra zones; containers land on containers.
func (g geometry) dragAnchors(containerDrag bool) []anchor {
	var out []anchor
	for _, d := range g.droppables(containerDrag) {
		if !containerDrag && len(g.members[d.ID]) > 0 {
			continue
		}
		out = append(out, anchor{id: d.ID, at: center(d.Rect)})
	}
	return out
}

// anchorOf returns where the cursor for id sits.
func (g geometry) anchorOf(id board.ID) (collision.Point, bool) {
	if _, ok := g.boxes[id]; ok {
		return g.headerAnchor(id), true
	}
	r, ok := g.rect(id)
	if !ok {
		return collision.Point{}, false
	}
	return center(r), true
}
