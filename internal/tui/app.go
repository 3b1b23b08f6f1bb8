package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/multicol/internal/board"
	"github.com/jask/multicol/internal/collision"
	"github.com/jask/multicol/internal/config"
	"github.com/jask/multicol/internal/database/repository"
)

// settleDelay is how long a cross-container preview stays unsettled; one frame.
const settleDelay = 16 * time.Millisecond

// Saver persists the board under a name.
type Saver interface {
	Save(ctx context.Context, name string, columns []board.Column) (repository.SavedBoard, error)
}

// App is the board screen.
type App struct {
	ctx      context.Context
	ctrl     *board.Controller
	resolver *collision.Resolver
	opts     Options
	keys     keyMap
	help     help.Model
	log      *slog.Logger

	saver     Saver
	boardName string

	width  int
	height int

	focus     board.ID
	drag      dragState
	settles   int // previews scheduled; only the latest settle tick counts
	finder    finder
	status    string
	statusErr bool
}

type (
	errMsg    struct{ err error }
	savedMsg  struct{ saved repository.SavedBoard }
	settleMsg struct{ seq int }
)

// New builds the board screen around b. saver may be nil, in which case saving is disabled.
func New(ctx context.Context, b *board.Board, opts Options, saver Saver, boardName string, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if opts.Strategy == "" {
		opts.Strategy = config.StrategyVertical
	}
	a := &App{
		ctx:       ctx,
		ctrl:      board.NewController(b, log),
		resolver:  collision.NewResolver(),
		opts:      opts,
		keys:      newKeyMap(),
		help:      help.New(),
		log:       log,
		saver:     saver,
		boardName: boardName,
		finder:    newFinder(),
	}
	if opts.Minimal {
		a.keys.Add.SetEnabled(false)
		a.keys.Remove.SetEnabled(false)
	}
	a.focus = a.firstFocus()
	return a
}

// Board returns the current board.
func (a *App) Board() *board.Board { return a.ctrl.Board() }

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		return a, nil
	case errMsg:
		a.setError(m.err)
		return a, nil
	case savedMsg:
		a.setStatus(fmt.Sprintf("Saved %q (%d columns, %d items)", m.saved.Name, m.saved.Containers, m.saved.Items))
		return a, nil
	case settleMsg:
		if m.seq == a.settles {
			a.ctrl.Settle()
		}
		return a, nil
	case tea.MouseMsg:
		return a, a.handleMouse(m)
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.finder.open {
			return a, a.handleFinderKey(m)
		}
		if a.drag.active() {
			return a, a.handleDragKey(m)
		}
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := a.layout()
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Up):
		a.moveFocus(g, dirUp)
	case key.Matches(m, a.keys.Down):
		a.moveFocus(g, dirDown)
	case key.Matches(m, a.keys.Left):
		a.moveFocus(g, dirLeft)
	case key.Matches(m, a.keys.Right):
		a.moveFocus(g, dirRight)
	case key.Matches(m, a.keys.Pick):
		a.pickFocused(g)
	case key.Matches(m, a.keys.Add):
		a.addContainer()
	case key.Matches(m, a.keys.Remove):
		a.removeFocusedContainer()
	case key.Matches(m, a.keys.Find):
		a.finder.show()
	case key.Matches(m, a.keys.Save):
		return a, a.saveCmd()
	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return a, nil
}

func (a *App) handleDragKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Cancel):
		a.cancelDrag()
		return nil
	case a.drag.sensor != sensorKeyboard:
		return nil
	case key.Matches(m, a.keys.Pick):
		// the layout may have shifted under the last preview
		cmd := a.dragOver()
		a.endDrag()
		return cmd
	case key.Matches(m, a.keys.Up):
		return a.stepDrag(dirUp)
	case key.Matches(m, a.keys.Down):
		return a.stepDrag(dirDown)
	case key.Matches(m, a.keys.Left):
		return a.stepDrag(dirLeft)
	case key.Matches(m, a.keys.Right):
		return a.stepDrag(dirRight)
	}
	return nil
}

func (a *App) handleFinderKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Cancel):
		a.finder.hide()
		return nil
	case key.Matches(m, a.keys.Confirm):
		query := a.finder.input.Value()
		a.finder.hide()
		hits := rankMatches(query, searchable(a.ctrl.Board()))
		if len(hits) == 0 {
			a.setStatus(fmt.Sprintf("No match for %q", query))
			return nil
		}
		a.focus = hits[0]
		a.setStatus(fmt.Sprintf("Jumped to %s", hits[0]))
		return nil
	}
	var cmd tea.Cmd
	a.finder.input, cmd = a.finder.input.Update(m)
	return cmd
}

func (a *App) handleMouse(m tea.MouseMsg) tea.Cmd {
	p := collision.Point{X: m.X, Y: m.Y}
	switch m.Action {
	case tea.MouseActionPress:
		if m.Button != tea.MouseButtonLeft || a.drag.active() || a.finder.open {
			return nil
		}
		a.press(p)
	case tea.MouseActionMotion:
		if a.drag.sensor != sensorPointer {
			return nil
		}
		a.drag.pointer = p
		return a.dragOver()
	case tea.MouseActionRelease:
		if a.drag.sensor != sensorPointer {
			return nil
		}
		a.drag.pointer = p
		cmd := a.dragOver()
		a.endDrag()
		return cmd
	}
	return nil
}

// press routes a left click to the control under it.
func (a *App) press(p collision.Point) {
	g := a.layout()
	if c, ok := g.removeAt(p); ok {
		a.focus = c
		a.removeFocusedContainer()
		return
	}
	if !g.placeholder.Empty() && g.placeholder.Contains(p) {
		a.addContainer()
		return
	}
	if id, ok := g.itemAt(p); ok {
		a.focus = id
		if a.opts.Handle && p.X != g.items[id].X {
			return
		}
		a.startDrag(id, sensorPointer, g.items[id], p)
		return
	}
	if c, ok := g.handleAt(p); ok {
		a.focus = c
		a.startDrag(c, sensorPointer, g.boxes[c], p)
	}
}

func (a *App) pickFocused(g geometry) {
	switch id := a.focus; {
	case id == board.Placeholder:
		a.addContainer()
	case a.ctrl.Board().IsContainer(id):
		a.startDrag(id, sensorKeyboard, g.boxes[id], center(g.boxes[id]))
	default:
		if r, ok := g.items[id]; ok {
			a.startDrag(id, sensorKeyboard, r, center(r))
		}
	}
}

func (a *App) startDrag(id board.ID, s sensor, origin collision.Rect, at collision.Point) {
	if res := a.ctrl.Start(id); res.Outcome != board.OutcomeStarted {
		return
	}
	a.drag = dragState{sensor: s, origin: origin, press: at, pointer: at}
	a.setStatus(fmt.Sprintf("Picked up %s", id))
}

// stepDrag moves the keyboard pointer to the next drop zone in dir.
func (a *App) stepDrag(dir direction) tea.Cmd {
	g := a.layout()
	next, ok := nearest(a.drag.pointer, dir, g.dragAnchors(a.ctrl.DraggingContainer()))
	if !ok {
		return nil
	}
	a.drag.pointer = next.at
	return a.dragOver()
}

// dragOver resolves the drop target for the current drag geometry and previews it.
func (a *App) dragOver() tea.Cmd {
	active := a.ctrl.Active()
	if active == board.None {
		return nil
	}
	g := a.layout()
	rect := a.drag.rect()
	in := collision.Input{
		Active:     active,
		ActiveRect: rect,
		Droppables: g.droppables(a.ctrl.DraggingContainer()),
	}
	if a.drag.sensor == sensorPointer {
		p := a.drag.pointer
		in.Pointer = &p
	}
	over := a.resolver.Resolve(in, a.ctrl.Board(), a.ctrl)

	below := false
	if r, ok := g.rect(over); ok && !a.ctrl.Board().IsContainer(over) {
		below = rect.Y >= r.Bottom()
	}
	res := a.ctrl.Over(active, over, below)
	if res.Outcome != board.OutcomePreview {
		return nil
	}
	a.settles++
	seq := a.settles
	return tea.Tick(settleDelay, func(time.Time) tea.Msg { return settleMsg{seq: seq} })
}

func (a *App) endDrag() {
	active := a.ctrl.Active()
	over := board.None
	if s := a.ctrl.Session(); s != nil {
		over = s.Over
	}
	if a.opts.CancelDrop != nil && a.opts.CancelDrop(active, over) {
		a.cancelDrag()
		a.setStatus(fmt.Sprintf("Drop on %s refused, %s returned", over, active))
		return
	}
	res := a.ctrl.End(active, over)
	a.drag = dragState{}
	a.ctrl.Settle()
	a.log.Debug("drop", "active", active, "over", over, "outcome", res.Outcome.String())

	switch res.Outcome {
	case board.OutcomeDiscarded:
		a.focus = res.Container
		a.setStatus(fmt.Sprintf("Deleted %s", active))
	case board.OutcomeCreated:
		a.focus = active
		a.setStatus(fmt.Sprintf("Moved %s to new column %s", active, res.Container))
	case board.OutcomeMoved:
		a.focus = active
		a.setStatus(fmt.Sprintf("Moved %s to %s", active, res.Container))
	case board.OutcomeReordered, board.OutcomeContainerMoved:
		a.focus = active
		a.setStatus(fmt.Sprintf("Placed %s", active))
	default:
		a.focus = active
		if c, ok := a.ctrl.Board().FindContainer(active); ok && c != active {
			a.setStatus(fmt.Sprintf("Dropped %s in %s", active, c))
		} else {
			a.setStatus(fmt.Sprintf("Dropped %s", active))
		}
	}
}

func (a *App) cancelDrag() {
	active := a.ctrl.Active()
	a.ctrl.Cancel()
	a.ctrl.Settle()
	a.drag = dragState{}
	a.focus = active
	a.setStatus(fmt.Sprintf("Cancelled, %s returned", active))
}

func (a *App) addContainer() {
	res := a.ctrl.AddContainer()
	a.focus = res.Container
	a.setStatus(fmt.Sprintf("Added column %s", res.Container))
}

func (a *App) removeFocusedContainer() {
	b := a.ctrl.Board()
	c, ok := b.FindContainer(a.focus)
	if !ok {
		return
	}
	res := a.ctrl.RemoveContainer(c)
	if res.Outcome != board.OutcomeContainerRemoved {
		return
	}
	a.focus = a.firstFocus()
	a.setStatus(fmt.Sprintf("Removed column %s and %d items", c, len(res.Removed)))
}

func (a *App) moveFocus(g geometry, dir direction) {
	from, ok := g.anchorOf(a.focus)
	if !ok {
		a.focus = a.firstFocus()
		return
	}
	if next, ok := nearest(from, dir, g.focusAnchors()); ok {
		a.focus = next.id
	}
}

func (a *App) firstFocus() board.ID {
	b := a.ctrl.Board()
	if cs := b.Containers(); len(cs) > 0 {
		if items := b.Items(cs[0]); len(items) > 0 {
			return items[0]
		}
		return cs[0]
	}
	if !a.opts.Minimal {
		return board.Placeholder
	}
	return board.None
}

func (a *App) saveCmd() tea.Cmd {
	if a.saver == nil {
		a.setStatus("No board store configured")
		return nil
	}
	columns := a.ctrl.Board().Columns()
	name := a.boardName
	return func() tea.Msg {
		saved, err := a.saver.Save(a.ctx, name, columns)
		if err != nil {
			return errMsg{fmt.Errorf("save board %q: %w", name, err)}
		}
		return savedMsg{saved}
	}
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) setError(err error) {
	a.log.Error("board", "err", err)
	a.status = err.Error()
	a.statusErr = true
}
