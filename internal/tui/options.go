package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/multicol/internal/board"
	"github.com/jask/multicol/internal/config"
)

// ItemState describes one item at render time.
type ItemState struct {
	Value     board.ID
	Container board.ID
	Index     int
	// OverIndex is the index of the current drop target inside its container, or -1.
	OverIndex   int
	Dragging    bool
	Sorting     bool
	DragOverlay bool
}

// Options controls board presentation.
type Options struct {
	Strategy  string // config.StrategyVertical, StrategyHorizontal or StrategyGrid
	Columns   int    // items per row for the grid strategy
	Trashable bool
	Minimal   bool // no labels, no add-column control
	Vertical  bool // stack containers top to bottom
	Handle    bool // items drag only from the handle glyph in their first cell

	// ItemStyle is layered over the default item style.
	ItemStyle func(ItemState) lipgloss.Style
	// WrapperStyle is applied around the item at index.
	WrapperStyle func(index int) lipgloss.Style
	// RenderItem replaces the item label.
	RenderItem func(ItemState) string
	// ContainerStyle is layered over the default style of container c.
	ContainerStyle func(c board.ID) lipgloss.Style
	// CancelDrop vetoes a drop; the gesture is then cancelled and the board restored.
	CancelDrop func(active, over board.ID) bool
}

// OptionsFromConfig maps board settings onto Options.
func OptionsFromConfig(c config.BoardConfig) Options {
	return Options{
		Strategy:  c.Strategy,
		Columns:   max(1, c.Columns),
		Trashable: c.Trashable,
		Minimal:   c.Minimal,
		Vertical:  c.Vertical,
		Handle:    c.Handle,
	}
}

func (o Options) perRow(maxItems int) int {
	switch o.Strategy {
	case config.StrategyHorizontal:
		return max(1, maxItems)
	case config.StrategyGrid:
		return max(1, o.Columns)
	}
	return 1
}
