package collision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/multicol/internal/board"
)

type memo struct {
	last  board.ID
	moved bool
}

func (m *memo) LastOver() board.ID      { return m.last }
func (m *memo) SetLastOver(id board.ID) { m.last = id }
func (m *memo) RecentlyMoved() bool     { return m.moved }

// Two columns side by side, ten cells wide, one-row items under a header row.
func layout(t *testing.T) (*board.Board, []Droppable) {
	t.Helper()
	b, err := board.New([]board.Column{
		{ID: "A", Items: []board.ID{"A1", "A2"}},
		{ID: "B"},
	})
	require.NoError(t, err)
	ds := []Droppable{
		{ID: "A", Rect: Rect{X: 0, Y: 0, W: 10, H: 10}},
		{ID: "A1", Rect: Rect{X: 1, Y: 1, W: 8, H: 1}},
		{ID: "A2", Rect: Rect{X: 1, Y: 2, W: 8, H: 1}},
		{ID: "B", Rect: Rect{X: 12, Y: 0, W: 10, H: 10}},
		{ID: board.Trash, Rect: Rect{X: 0, Y: 12, W: 22, H: 2}},
	}
	return b, ds
}

func TestResolvePointerOnItem(t *testing.T) {
	b, ds := layout(t)
	m := &memo{}
	p := Point{X: 3, Y: 2}
	got := NewResolver().Resolve(Input{Active: "A1", ActiveRect: Rect{X: 1, Y: 2, W: 8, H: 1}, Pointer: &p, Droppables: ds}, b, m)
	require.Equal(t, board.ID("A2"), got)
	require.Equal(t, board.ID("A2"), m.last)
}

func TestResolveEmptyContainerKeepsContainer(t *testing.T) {
	b, ds := layout(t)
	m := &memo{}
	p := Point{X: 15, Y: 5}
	got := NewResolver().Resolve(Input{Active: "A1", ActiveRect: Rect{X: 13, Y: 5, W: 8, H: 1}, Pointer: &p, Droppables: ds}, b, m)
	require.Equal(t, board.ID("B"), got)
}

func TestResolveRefinesNonEmptyContainer(t *testing.T) {
	b, ds := layout(t)
	m := &memo{}
	p := Point{X: 5, Y: 8}
	got := NewResolver().Resolve(Input{Active: "B1", ActiveRect: Rect{X: 1, Y: 8, W: 8, H: 1}, Pointer: &p, Droppables: ds}, b, m)
	require.Equal(t, board.ID("A2"), got)
}

func TestResolveTrashShortCircuits(t *testing.T) {
	b, ds := layout(t)
	m := &memo{last: "A1"}
	p := Point{X: 5, Y: 12}
	got := NewResolver().Resolve(Input{Active: "A1", ActiveRect: Rect{X: 1, Y: 12, W: 8, H: 1}, Pointer: &p, Droppables: ds}, b, m)
	require.Equal(t, board.Trash, got)
	require.Equal(t, board.ID("A1"), m.last)
}

func TestResolveFallsBackToRectIntersection(t *testing.T) {
	b, ds := layout(t)
	m := &memo{}
	got := NewResolver().Resolve(Input{Active: "A1", ActiveRect: Rect{X: 10, Y: 3, W: 8, H: 1}, Droppables: ds}, b, m)
	require.Equal(t, board.ID("B"), got)
}

func TestResolveReusesLastTarget(t *testing.T) {
	b, ds := layout(t)
	p := Point{X: 40, Y: 40}
	in := Input{Active: "A1", ActiveRect: Rect{X: 40, Y: 40, W: 8, H: 1}, Pointer: &p, Droppables: ds}

	m := &memo{last: "B"}
	require.Equal(t, board.ID("B"), NewResolver().Resolve(in, b, m))

	m = &memo{last: "B", moved: true}
	require.Equal(t, board.ID("A1"), NewResolver().Resolve(in, b, m))
	require.Equal(t, board.ID("A1"), m.last)

	m = &memo{}
	require.Equal(t, board.None, NewResolver().Resolve(in, b, m))
}

func TestResolveContainerDragIgnoresItems(t *testing.T) {
	b, ds := layout(t)
	m := &memo{}
	p := Point{X: 3, Y: 1}
	got := NewResolver().Resolve(Input{Active: "B", ActiveRect: Rect{X: 1, Y: 0, W: 10, H: 10}, Pointer: &p, Droppables: ds}, b, m)
	require.Equal(t, board.ID("A"), got)
	require.Equal(t, board.None, m.last)
}
