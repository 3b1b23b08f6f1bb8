package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/multicol/internal/board"
)

var errorStyle = lipgloss.NewStyle().Foreground(colorError)

func (a *App) View() string {
	g := a.layout()
	w, h := a.width, a.height
	if w <= 0 {
		w = a.extentW(g)
	}
	if h <= 0 {
		h = max(a.boardBottom(g), g.trash.Bottom()) + 3
	}
	cv := newCanvas(w, h)

	cv.stamp(a.renderTitle(), boardLeft, 0)
	for _, c := range g.order {
		r := g.boxes[c]
		cv.stamp(a.renderContainer(g, c, false), r.X, r.Y)
	}
	if !g.placeholder.Empty() {
		style := placeStyle
		if a.focus == board.Placeholder && !a.drag.active() {
			style = style.BorderForeground(colorFocus).Foreground(colorFocus)
		}
		cv.stamp(style.Width(g.placeholder.W-2).Height(g.placeholder.H-2).
			Align(lipgloss.Center, lipgloss.Center).Render(addLabel), g.placeholder.X, g.placeholder.Y)
	}
	if !g.trash.Empty() {
		style := trashStyle
		if a.over() == board.Trash {
			style = trashOverStyle
		}
		cv.stamp(style.Width(g.trash.W-2).Height(g.trash.H-2).Align(lipgloss.Center).Render(trashLabel), g.trash.X, g.trash.Y)
	}
	if a.drag.active() {
		r := a.drag.rect()
		cv.stamp(a.renderOverlay(g), r.X, r.Y)
	}

	footer := a.renderFooter()
	n := len(splitLines(footer))
	cv.stamp(a.renderStatus(), boardLeft, h-n-1)
	cv.stamp(footer, boardLeft, h-n)
	return cv.String()
}

func (a *App) extentW(g geometry) int {
	right := boardLeft + ansi.StringWidth(a.renderTitle())
	for _, r := range g.boxes {
		right = max(right, r.Right())
	}
	right = max(right, g.placeholder.Right(), g.trash.Right())
	return right + 1
}

func (a *App) renderTitle() string {
	title := titleStyle.Render("multicol")
	if a.boardName != "" {
		title += statusStyle.Render(" · " + a.boardName)
	}
	return title
}

// over returns the drop target of the active drag.
func (a *App) over() board.ID {
	if s := a.ctrl.Session(); s != nil {
		return s.Over
	}
	return board.None
}

// hovered reports whether container c should be highlighted as the drop target.
func (a *App) hovered(c board.ID) bool {
	over := a.over()
	if over == board.None || over == a.ctrl.Active() {
		return false
	}
	if over == c {
		return true
	}
	if a.ctrl.DraggingContainer() {
		return false
	}
	owner, ok := a.ctrl.Board().FindContainer(over)
	return ok && owner == c
}

// overIndex is the index of the drop target inside c, or -1.
func (a *App) overIndex(c board.ID) int {
	over := a.over()
	if over == board.None || over == c {
		return -1
	}
	return slices.Index(a.ctrl.Board().Items(c), over)
}

// renderContainer draws container c as a bordered box. lifted renders the copy
// that follows the pointer during a container drag.
func (a *App) renderContainer(g geometry, c board.ID, lifted bool) string {
	box := g.boxes[c]
	innerW := box.W - 2
	active := a.ctrl.Active()
	dragging := active != board.None

	var lines []string
	if g.headerRows > 0 {
		title := fit(" "+string(c), innerW-2)
		hs := headerStyle
		if a.focus == c && !dragging {
			hs = cursorStyle.Inherit(hs)
		}
		lines = append(lines, hs.Render(title)+removeStyle.Render("×")+" ")
	}

	items := g.members[c]
	rows := box.H - 2 - g.headerRows
	for row := range rows {
		var b strings.Builder
		for col := range g.perRow {
			i := row*g.perRow + col
			if i >= len(items) {
				break
			}
			b.WriteString(a.renderItem(ItemState{
				Value:     items[i],
				Container: c,
				Index:     i,
				OverIndex: a.overIndex(c),
				Dragging:  items[i] == active,
				Sorting:   dragging,
			}, g.cellW))
		}
		lines = append(lines, padRight(b.String(), innerW))
	}

	style := containerStyle
	if a.opts.ContainerStyle != nil {
		style = a.opts.ContainerStyle(c).Inherit(style)
	}
	switch {
	case lifted:
		style = liftedStyle
	case c == active:
		style = style.Faint(true)
	case a.hovered(c):
		style = hoverStyle
	}
	return style.Width(innerW).Render(strings.Join(lines, "\n"))
}

func (a *App) renderItem(st ItemState, width int) string {
	label := string(st.Value)
	if a.opts.RenderItem != nil {
		label = a.opts.RenderItem(st)
	}

	style := itemStyle
	if color, ok := itemColor(st.Value); ok {
		style = style.Foreground(color)
	}
	if a.opts.ItemStyle != nil {
		style = a.opts.ItemStyle(st).Inherit(style)
	}
	switch {
	case st.DragOverlay:
		style = overlayStyle
	case st.Dragging:
		style = style.Faint(true)
	case a.focus == st.Value && !st.Sorting:
		style = cursorStyle.Inherit(style)
	}

	lead := " "
	if a.opts.Handle && !st.DragOverlay {
		lead = handleGlyph
	}
	cell := style.Render(fit(lead+label, width))
	if a.opts.WrapperStyle != nil {
		cell = fit(a.opts.WrapperStyle(st.Index).Render(cell), width)
	}
	return cell
}

func (a *App) renderOverlay(g geometry) string {
	active := a.ctrl.Active()
	if a.ctrl.DraggingContainer() {
		return a.renderContainer(g, active, true)
	}
	c, _ := a.ctrl.Board().FindContainer(active)
	return a.renderItem(ItemState{
		Value:       active,
		Container:   c,
		Index:       a.ctrl.Board().Index(active),
		OverIndex:   -1,
		Dragging:    true,
		Sorting:     true,
		DragOverlay: true,
	}, a.drag.origin.W)
}

func (a *App) renderStatus() string {
	if a.finder.open {
		return a.finder.input.View()
	}
	if a.statusErr {
		return errorStyle.Render(a.status)
	}
	return statusStyle.Render(a.status)
}

func (a *App) renderFooter() string {
	var km help.KeyMap = a.keys
	switch {
	case a.finder.open:
		km = findKeyMap{a.keys}
	case a.drag.active():
		km = dragKeyMap{a.keys}
	}
	return a.help.View(km)
}
