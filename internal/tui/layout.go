package tui

import (
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/multicol/internal/board"
	"github.com/jask/multicol/internal/collision"
)

const (
	boardLeft   = 1
	boardTop    = 1
	boxGap      = 1
	minCellW    = 8
	minHeaderW  = 12
	trashWidth  = 30
	trashHeight = 3
	trashLabel  = "Drop here to delete"
	addLabel    = "+ Add column"
	handleGlyph = "⠿"
)

// geometry is the laid-out board: every drop region and where it is drawn.
type geometry struct {
	order       []board.ID
	members     map[board.ID][]board.ID
	boxes       map[board.ID]collision.Rect
	items       map[board.ID]collision.Rect
	remove      map[board.ID]collision.Point
	placeholder collision.Rect
	trash       collision.Rect
	cellW       int
	headerRows  int
	perRow      int
}

// layout positions containers along the arrangement axis and items inside
// them according to the sort strategy.
func (a *App) layout() geometry {
	b := a.ctrl.Board()
	g := geometry{
		order:   b.Containers(),
		members: make(map[board.ID][]board.ID),
		boxes:   make(map[board.ID]collision.Rect),
		items:   make(map[board.ID]collision.Rect),
		remove:  make(map[board.ID]collision.Point),
	}
	if !a.opts.Minimal {
		g.headerRows = 1
	}

	maxItems, labelW := 0, 0
	for _, c := range g.order {
		items := b.Items(c)
		g.members[c] = items
		maxItems = max(maxItems, len(items))
		for _, it := range items {
			labelW = max(labelW, ansi.StringWidth(string(it)))
		}
	}
	g.cellW = max(minCellW, labelW+2)
	g.perRow = a.opts.perRow(maxItems)
	rows := max(1, (maxItems+g.perRow-1)/g.perRow)
	innerW := max(g.perRow*g.cellW, minHeaderW)
	w, h := innerW+2, rows+g.headerRows+2

	x, y := boardLeft, boardTop
	advance := func() {
		if a.opts.Vertical {
			y += h + boxGap
		} else {
			x += w + boxGap
		}
	}
	for _, c := range g.order {
		box := collision.Rect{X: x, Y: y, W: w, H: h}
		g.boxes[c] = box
		if !a.opts.Minimal {
			g.remove[c] = collision.Point{X: box.Right() - 3, Y: box.Y + 1}
		}
		for i, it := range g.members[c] {
			g.items[it] = collision.Rect{
				X: box.X + 1 + (i%g.perRow)*g.cellW,
				Y: box.Y + 1 + g.headerRows + i/g.perRow,
				W: g.cellW,
				H: 1,
			}
		}
		advance()
	}
	if !a.opts.Minimal {
		ph := h
		if a.opts.Vertical {
			ph = 3
		}
		g.placeholder = collision.Rect{X: x, Y: y, W: w, H: ph}
	}

	if a.showTrash() {
		tw := trashWidth
		if a.width > 0 {
			tw = min(tw, a.width-2)
		}
		ty := a.boardBottom(g) + 1
		if a.height > 0 {
			ty = max(ty, a.height-2-trashHeight)
		}
		tx := boardLeft
		if a.width > 0 {
			tx = max(0, (a.width-tw)/2)
		}
		g.trash = collision.Rect{X: tx, Y: ty, W: tw, H: trashHeight}
	}
	return g
}

func (a *App) boardBottom(g geometry) int {
	bottom := boardTop
	for _, r := range g.boxes {
		bottom = max(bottom, r.Bottom())
	}
	return max(bottom, g.placeholder.Bottom())
}

// showTrash reports whether the discard zone is on screen: only while an item is dragged.
func (a *App) showTrash() bool {
	return a.opts.Trashable && a.ctrl.Active() != board.None && !a.ctrl.DraggingContainer()
}

// droppables lists drop regions in registration order. While a container is
// dragged only containers accept drops.
func (g geometry) droppables(containerDrag bool) []collision.Droppable {
	var out []collision.Droppable
	for _, c := range g.order {
		out = append(out, collision.Droppable{ID: c, Rect: g.boxes[c]})
		if containerDrag {
			continue
		}
		for _, id := range g.members[c] {
			out = append(out, collision.Droppable{ID: id, Rect: g.items[id]})
		}
	}
	if containerDrag {
		return out
	}
	if !g.placeholder.Empty() {
		out = append(out, collision.Droppable{ID: board.Placeholder, Rect: g.placeholder})
	}
	if !g.trash.Empty() {
		out = append(out, collision.Droppable{ID: board.Trash, Rect: g.trash})
	}
	return out
}

// rect returns the drawn region of id.
func (g geometry) rect(id board.ID) (collision.Rect, bool) {
	switch id {
	case board.Placeholder:
		return g.placeholder, !g.placeholder.Empty()
	case board.Trash:
		return g.trash, !g.trash.Empty()
	}
	if r, ok := g.boxes[id]; ok {
		return r, true
	}
	r, ok := g.items[id]
	return r, ok
}

// itemAt returns the item drawn at p.
func (g geometry) itemAt(p collision.Point) (board.ID, bool) {
	for id, r := range g.items {
		if r.Contains(p) {
			return id, true
		}
	}
	return board.None, false
}

// handleAt returns the container whose header row or top border is at p.
func (g geometry) handleAt(p collision.Point) (board.ID, bool) {
	for _, c := range g.order {
		r := g.boxes[c]
		if p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y <= r.Y+g.headerRows {
			return c, true
		}
	}
	return board.None, false
}

// removeAt returns the container whose remove glyph is at p.
func (g geometry) removeAt(p collision.Point) (board.ID, bool) {
	for c, at := range g.remove {
		if at == p {
			return c, true
		}
	}
	return board.None, false
}

func center(r collision.Rect) collision.Point {
	return collision.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}
