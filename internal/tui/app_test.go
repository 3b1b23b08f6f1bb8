package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/jask/multicol/internal/board"
	"github.com/jask/multicol/internal/collision"
	"github.com/jask/multicol/internal/config"
	"github.com/jask/multicol/internal/database"
	"github.com/jask/multicol/internal/database/repository"
)

func flowKey(k string) tea.KeyMsg {
	switch k {
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func flowApplyMsg(t *testing.T, a *App, msg tea.Msg) *App {
	t.Helper()
	next, cmd := a.Update(msg)
	got, ok := next.(*App)
	if !ok {
		t.Fatalf("Update returned %T, want *App", next)
	}
	return flowDrainCmd(t, got, cmd)
}

func flowPress(t *testing.T, a *App, keys ...string) *App {
	t.Helper()
	for _, k := range keys {
		a = flowApplyMsg(t, a, flowKey(k))
	}
	return a
}

func flowType(t *testing.T, a *App, input string) *App {
	t.Helper()
	for _, r := range input {
		a = flowApplyMsg(t, a, flowKey(string(r)))
	}
	return a
}

func flowDrainCmd(t *testing.T, a *App, cmd tea.Cmd) *App {
	t.Helper()
	for i := 0; cmd != nil && i < 32; i++ {
		msg := cmd()
		if msg == nil {
			return a
		}
		if _, quit := msg.(tea.QuitMsg); quit {
			return a
		}
		next, nextCmd := a.Update(msg)
		a = next.(*App)
		cmd = nextCmd
	}
	if cmd != nil {
		t.Fatal("command chain exceeded max depth")
	}
	return a
}

func flowMouse(t *testing.T, a *App, action tea.MouseAction, p collision.Point) *App {
	t.Helper()
	btn := tea.MouseButtonLeft
	if action == tea.MouseActionRelease {
		btn = tea.MouseButtonNone
	}
	return flowApplyMsg(t, a, tea.MouseMsg{X: p.X, Y: p.Y, Action: action, Button: btn})
}

// flowDrag presses on from, moves to each waypoint and releases on the last one.
func flowDrag(t *testing.T, a *App, from collision.Point, path ...collision.Point) *App {
	t.Helper()
	a = flowMouse(t, a, tea.MouseActionPress, from)
	last := from
	for _, p := range path {
		a = flowMouse(t, a, tea.MouseActionMotion, p)
		last = p
	}
	return flowMouse(t, a, tea.MouseActionRelease, last)
}

func newFlowApp(t *testing.T, opts Options) *App {
	t.Helper()
	if opts.Strategy == "" {
		opts.Strategy = config.StrategyVertical
	}
	if opts.Columns == 0 {
		opts.Columns = 1
	}
	a := New(context.Background(), board.Generate(3), opts, nil, "", nil)
	return flowApplyMsg(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func itemCenter(t *testing.T, a *App, id board.ID) collision.Point {
	t.Helper()
	r, ok := a.layout().rect(id)
	require.True(t, ok, "no rect for %s", id)
	return center(r)
}

func TestMouseDragAcrossContainers(t *testing.T) {
	a := newFlowApp(t, Options{Trashable: true})

	a = flowDrag(t, a, itemCenter(t, a, "A1"), itemCenter(t, a, "B2"))

	require.Nil(t, a.ctrl.Session())
	require.Equal(t, []board.ID{"A2", "A3"}, a.Board().Items("A"))
	require.Equal(t, []board.ID{"B1", "A1", "B2", "B3"}, a.Board().Items("B"))
	require.Equal(t, board.ID("A1"), a.focus)
	require.NoError(t, a.Board().Check())
}

func TestMouseDropOnTrash(t *testing.T) {
	a := newFlowApp(t, Options{Trashable: true})

	a = flowMouse(t, a, tea.MouseActionPress, itemCenter(t, a, "A1"))
	trash := a.layout().trash
	require.False(t, trash.Empty(), "trash shows while an item is dragged")
	require.Contains(t, a.View(), trashLabel)

	a = flowMouse(t, a, tea.MouseActionMotion, center(trash))
	require.Equal(t, board.Trash, a.over())
	a = flowMouse(t, a, tea.MouseActionRelease, center(trash))

	_, ok := a.Board().FindContainer("A1")
	require.False(t, ok)
	require.Equal(t, []board.ID{"A2", "A3"}, a.Board().Items("A"))
	require.True(t, a.layout().trash.Empty(), "trash hides after the drop")
	require.NotContains(t, a.View(), trashLabel)
}

func TestTrashHiddenWhenNotTrashable(t *testing.T) {
	a := newFlowApp(t, Options{})
	a = flowMouse(t, a, tea.MouseActionPress, itemCenter(t, a, "A1"))
	require.Equal(t, board.ID("A1"), a.ctrl.Active())
	require.True(t, a.layout().trash.Empty())
}

func TestMouseDropOnPlaceholderCreatesColumn(t *testing.T) {
	a := newFlowApp(t, Options{Trashable: true})
	placeholder := center(a.layout().placeholder)

	a = flowDrag(t, a, itemCenter(t, a, "A1"), placeholder)

	require.Equal(t, []board.ID{"A", "B", "C", "D", "E"}, a.Board().Containers())
	require.Equal(t, []board.ID{"A1"}, a.Board().Items("E"))
	require.Equal(t, []board.ID{"A2", "A3"}, a.Board().Items("A"))
}

func TestClickPlaceholderAddsColumn(t *testing.T) {
	a := newFlowApp(t, Options{})
	a = flowMouse(t, a, tea.MouseActionPress, center(a.layout().placeholder))
	a = flowMouse(t, a, tea.MouseActionRelease, center(a.layout().placeholder))

	require.Equal(t, []board.ID{"A", "B", "C", "D", "E"}, a.Board().Containers())
	require.Equal(t, 0, a.Board().Len("E"))
	require.Nil(t, a.ctrl.Session())
}

func TestClickRemoveGlyphRemovesColumn(t *testing.T) {
	a := newFlowApp(t, Options{})
	glyph := a.layout().remove["B"]

	a = flowMouse(t, a, tea.MouseActionPress, glyph)

	require.Equal(t, []board.ID{"A", "C", "D"}, a.Board().Containers())
	require.Contains(t, a.status, "3 items")
}

func TestMouseEscCancelsDrag(t *testing.T) {
	a := newFlowApp(t, Options{Trashable: true})

	a = flowMouse(t, a, tea.MouseActionPress, itemCenter(t, a, "A1"))
	a = flowMouse(t, a, tea.MouseActionMotion, itemCenter(t, a, "C1"))
	require.Equal(t, []board.ID{"A1", "C1", "C2", "C3"}, a.Board().Items("C"))

	a = flowPress(t, a, "esc")
	require.Nil(t, a.ctrl.Session())
	require.True(t, a.Board().Equal(board.Generate(3)))

	// a release after cancelling is ignored
	a = flowMouse(t, a, tea.MouseActionRelease, itemCenter(t, a, "C1"))
	require.True(t, a.Board().Equal(board.Generate(3)))
}

func TestCancelDropRestoresBoard(t *testing.T) {
	var asked []board.ID
	a := newFlowApp(t, Options{
		Trashable: true,
		CancelDrop: func(active, over board.ID) bool {
			if over != board.Trash {
				return false
			}
			asked = append(asked, active)
			return active == "A1"
		},
	})

	a = flowMouse(t, a, tea.MouseActionPress, itemCenter(t, a, "A1"))
	a = flowMouse(t, a, tea.MouseActionMotion, itemCenter(t, a, "C1"))
	require.Equal(t, []board.ID{"A1", "C1", "C2", "C3"}, a.Board().Items("C"))
	trash := center(a.layout().trash)
	a = flowMouse(t, a, tea.MouseActionMotion, trash)
	a = flowMouse(t, a, tea.MouseActionRelease, trash)

	require.Nil(t, a.ctrl.Session())
	require.True(t, a.Board().Equal(board.Generate(3)))
	require.Contains(t, a.status, "refused")
	require.Equal(t, board.ID("A1"), a.focus)

	a = flowMouse(t, a, tea.MouseActionPress, itemCenter(t, a, "A2"))
	trash = center(a.layout().trash)
	a = flowMouse(t, a, tea.MouseActionMotion, trash)
	a = flowMouse(t, a, tea.MouseActionRelease, trash)

	require.Equal(t, []board.ID{"A1", "A3"}, a.Board().Items("A"))
	require.Equal(t, []board.ID{"A1", "A2"}, asked)
}

func TestHandleOnlyDragStartsFromGlyph(t *testing.T) {
	a := newFlowApp(t, Options{Handle: true})
	require.Contains(t, a.View(), handleGlyph)
	r := a.layout().items["A2"]

	a = flowMouse(t, a, tea.MouseActionPress, center(r))
	require.Nil(t, a.ctrl.Session())
	require.Equal(t, board.ID("A2"), a.focus)
	a = flowMouse(t, a, tea.MouseActionRelease, center(r))
	require.True(t, a.Board().Equal(board.Generate(3)))

	a = flowMouse(t, a, tea.MouseActionPress, collision.Point{X: r.X, Y: r.Y})
	require.Equal(t, board.ID("A2"), a.ctrl.Active())
	a = flowPress(t, a, "esc")

	// the keyboard sensor ignores the handle
	a = flowPress(t, a, "space")
	require.Equal(t, board.ID("A2"), a.ctrl.Active())
	a = flowPress(t, a, "esc")
	require.True(t, a.Board().Equal(board.Generate(3)))
}

func TestContainerStyleHook(t *testing.T) {
	var seen []board.ID
	a := newFlowApp(t, Options{
		ContainerStyle: func(c board.ID) lipgloss.Style {
			seen = append(seen, c)
			return lipgloss.NewStyle()
		},
	})
	_ = a.View()
	require.Equal(t, []board.ID{"A", "B", "C", "D"}, seen)
}

func TestStaleSettleKeepsRecentlyMoved(t *testing.T) {
	a := newFlowApp(t, Options{})
	a = flowMouse(t, a, tea.MouseActionPress, itemCenter(t, a, "A1"))

	b2 := itemCenter(t, a, "B2")
	_, first := a.Update(tea.MouseMsg{X: b2.X, Y: b2.Y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	require.NotNil(t, first)
	c2 := itemCenter(t, a, "C2")
	_, second := a.Update(tea.MouseMsg{X: c2.X, Y: c2.Y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	require.NotNil(t, second)
	require.Equal(t, []board.ID{"C1", "A1", "C2", "C3"}, a.Board().Items("C"))

	a = flowApplyMsg(t, a, first())
	require.True(t, a.ctrl.RecentlyMoved(), "an earlier tick must not settle a later preview")
	a = flowApplyMsg(t, a, second())
	require.False(t, a.ctrl.RecentlyMoved())
}

func TestMouseDragContainerByHeader(t *testing.T) {
	a := newFlowApp(t, Options{})
	g := a.layout()
	from := g.headerAnchor("A")
	to := from
	to.X += g.boxes["C"].X - g.boxes["A"].X

	a = flowDrag(t, a, from, to)

	require.Equal(t, []board.ID{"B", "C", "A", "D"}, a.Board().Containers())
	require.Equal(t, []board.ID{"A1", "A2", "A3"}, a.Board().Items("A"))
}

func TestKeyboardDragReorder(t *testing.T) {
	a := newFlowApp(t, Options{})
	require.Equal(t, board.ID("A1"), a.focus)

	a = flowPress(t, a, "space")
	require.Equal(t, board.ID("A1"), a.ctrl.Active())
	require.Contains(t, a.View(), "drop")

	a = flowPress(t, a, "down", "down")
	require.Equal(t, board.ID("A3"), a.over())
	a = flowPress(t, a, "space")

	require.Nil(t, a.ctrl.Session())
	require.Equal(t, []board.ID{"A2", "A3", "A1"}, a.Board().Items("A"))
	require.Equal(t, board.ID("A1"), a.focus)
}

func TestKeyboardDragAcrossAndCancel(t *testing.T) {
	a := newFlowApp(t, Options{})

	a = flowPress(t, a, "space", "right")
	require.Equal(t, []board.ID{"A1", "B1", "B2", "B3"}, a.Board().Items("B"))
	require.Equal(t, []board.ID{"A2", "A3"}, a.Board().Items("A"))

	a = flowPress(t, a, "esc")
	require.Nil(t, a.ctrl.Session())
	require.True(t, a.Board().Equal(board.Generate(3)))
	require.Equal(t, board.ID("A1"), a.focus)
}

func TestKeyboardDragAcrossAndDrop(t *testing.T) {
	a := newFlowApp(t, Options{})

	a = flowPress(t, a, "space", "right", "enter")
	require.Nil(t, a.ctrl.Session())
	require.Equal(t, []board.ID{"A1", "B1", "B2", "B3"}, a.Board().Items("B"))
	require.NoError(t, a.Board().Check())
}

func TestKeyboardContainerDrag(t *testing.T) {
	a := newFlowApp(t, Options{})

	a = flowPress(t, a, "up")
	require.Equal(t, board.ID("A"), a.focus)

	a = flowPress(t, a, "space")
	require.True(t, a.ctrl.DraggingContainer())
	require.True(t, a.layout().trash.Empty(), "no trash for container drags")

	a = flowPress(t, a, "right", "space")
	require.Equal(t, []board.ID{"B", "A", "C", "D"}, a.Board().Containers())
}

func TestKeyboardFocusMoves(t *testing.T) {
	a := newFlowApp(t, Options{})

	a = flowPress(t, a, "down")
	require.Equal(t, board.ID("A2"), a.focus)
	a = flowPress(t, a, "right")
	require.Equal(t, board.ID("B2"), a.focus)
	a = flowPress(t, a, "l", "l", "l")
	require.Equal(t, board.Placeholder, a.focus)

	a = flowPress(t, a, "enter")
	require.Equal(t, 5, len(a.Board().Containers()))
	require.Equal(t, board.ID("E"), a.focus)
}

func TestAddAndRemoveColumnKeys(t *testing.T) {
	a := newFlowApp(t, Options{})

	a = flowPress(t, a, "a")
	require.Equal(t, []board.ID{"A", "B", "C", "D", "E"}, a.Board().Containers())
	require.Equal(t, board.ID("E"), a.focus)

	a = flowPress(t, a, "x")
	require.Equal(t, []board.ID{"A", "B", "C", "D"}, a.Board().Containers())

	// removing via a focused item removes its container
	a.focus = "C2"
	a = flowPress(t, a, "x")
	require.Equal(t, []board.ID{"A", "B", "D"}, a.Board().Containers())
}

func TestMinimalHidesControls(t *testing.T) {
	a := newFlowApp(t, Options{Minimal: true})

	view := a.View()
	require.NotContains(t, view, addLabel)
	require.NotContains(t, view, "×")
	require.True(t, a.layout().placeholder.Empty())

	a = flowPress(t, a, "a")
	require.Len(t, a.Board().Containers(), 4)
}

func TestFinderJumps(t *testing.T) {
	a := newFlowApp(t, Options{})

	a = flowPress(t, a, "/")
	require.True(t, a.finder.open)
	a = flowType(t, a, "c2")
	a = flowPress(t, a, "enter")

	require.False(t, a.finder.open)
	require.Equal(t, board.ID("C2"), a.focus)

	a = flowPress(t, a, "/")
	a = flowType(t, a, "zzzzzz")
	a = flowPress(t, a, "enter")
	require.Equal(t, board.ID("C2"), a.focus)
	require.Contains(t, a.status, "No match")
}

func TestSaveWithoutStore(t *testing.T) {
	a := newFlowApp(t, Options{})
	a = flowPress(t, a, "ctrl+s")
	require.Equal(t, "No board store configured", a.status)
}

func TestSaveWithStore(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "boards.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := repository.NewBoardRepo(db)

	a := New(ctx, board.Generate(2), Options{}, repo, "work", nil)
	a = flowApplyMsg(t, a, tea.WindowSizeMsg{Width: 100, Height: 30})
	a = flowPress(t, a, "space", "right", "space")
	a = flowPress(t, a, "ctrl+s")
	require.False(t, a.statusErr, a.status)
	require.True(t, strings.HasPrefix(a.status, `Saved "work"`), a.status)

	got, err := repo.Get(ctx, "work")
	require.NoError(t, err)
	require.Equal(t, a.Board().Columns(), got.Columns)
}

func TestCustomItemRendering(t *testing.T) {
	var seen []ItemState
	a := newFlowApp(t, Options{
		RenderItem: func(st ItemState) string {
			seen = append(seen, st)
			return strings.ToLower(string(st.Value))
		},
	})

	view := a.View()
	require.Contains(t, view, "b3")
	require.NotContains(t, view, "B3")
	require.Len(t, seen, 12)
	for _, st := range seen {
		require.False(t, st.Sorting)
		require.Equal(t, -1, st.OverIndex)
	}
}

func TestGridStrategyLaysOutRows(t *testing.T) {
	a := newFlowApp(t, Options{Strategy: config.StrategyGrid, Columns: 2})
	g := a.layout()

	a1, a2, a3 := g.items["A1"], g.items["A2"], g.items["A3"]
	require.Equal(t, a1.Y, a2.Y)
	require.Equal(t, a1.X+g.cellW, a2.X)
	require.Equal(t, a1.Y+1, a3.Y)
	require.Equal(t, a1.X, a3.X)
}

func TestVerticalStacksContainers(t *testing.T) {
	a := newFlowApp(t, Options{Vertical: true})
	g := a.layout()

	require.Equal(t, g.boxes["A"].X, g.boxes["B"].X)
	require.Greater(t, g.boxes["B"].Y, g.boxes["A"].Bottom()-1)
	require.Equal(t, 3, g.placeholder.H)
}
