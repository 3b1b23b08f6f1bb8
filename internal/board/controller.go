package board

import (
	"log/slog"
	"slices"
	"time"
)

// Outcome describes what a transition did to the board.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeStarted
	OutcomePreview
	OutcomeReordered
	OutcomeMoved
	OutcomeContainerMoved
	OutcomeDiscarded
	OutcomeCreated
	OutcomeDropped
	OutcomeCancelled
	OutcomeContainerAdded
	OutcomeContainerRemoved
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStarted:
		return "started"
	case OutcomePreview:
		return "preview"
	case OutcomeReordered:
		return "reordered"
	case OutcomeMoved:
		return "moved"
	case OutcomeContainerMoved:
		return "container moved"
	case OutcomeDiscarded:
		return "discarded"
	case OutcomeCreated:
		return "created"
	case OutcomeDropped:
		return "dropped"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeContainerAdded:
		return "container added"
	case OutcomeContainerRemoved:
		return "container removed"
	default:
		return "ignored"
	}
}

// Mutated reports whether the outcome changed the board.
func (o Outcome) Mutated() bool {
	switch o {
	case OutcomeIgnored, OutcomeStarted, OutcomeDropped:
		return false
	}
	return true
}

// Result is returned by every transition.
type Result struct {
	Outcome Outcome
	// Container is the container created, added, removed or moved, when there is one.
	Container ID
	// Removed lists the items deleted by the transition.
	Removed []ID
}

// Event is a message consumed by Controller.Apply.
type Event interface{ event() }

type (
	DragStart struct{ Active ID }
	// DragOver reports the resolver's target for one tick. Below is set when the
	// dragged rectangle sits past the bottom edge of the target.
	DragOver struct {
		Active ID
		Over   ID
		Below  bool
	}
	DragEnd         struct{ Active, Over ID }
	DragCancel      struct{}
	AddContainer    struct{}
	RemoveContainer struct{ Container ID }
)

func (DragStart) event()       {}
func (DragOver) event()        {}
func (DragEnd) event()         {}
func (DragCancel) event()      {}
func (AddContainer) event()    {}
func (RemoveContainer) event() {}

// Controller owns a board and the drag session. It is not safe for concurrent use;
// a single event loop is expected to own it.
type Controller struct {
	board         *Board
	session       *Session
	recentlyMoved bool
	log           *slog.Logger
	now           func() time.Time
}

// NewController wraps b. A nil logger discards.
func NewController(b *Board, log *slog.Logger) *Controller {
	if b == nil {
		b = &Board{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Controller{board: b, log: log, now: time.Now}
}

// Board returns the current board. Callers must treat it as read-only.
func (c *Controller) Board() *Board { return c.board }

// Session returns the active drag session, or nil.
func (c *Controller) Session() *Session { return c.session }

// Active returns the dragged id, or None.
func (c *Controller) Active() ID {
	if c.session == nil {
		return None
	}
	return c.session.Active
}

// DraggingContainer reports whether the active drag moves a whole container.
func (c *Controller) DraggingContainer() bool {
	return c.session != nil && c.board.IsContainer(c.session.Active)
}

// LastOver returns the last target the resolver settled on during this gesture.
func (c *Controller) LastOver() ID {
	if c.session == nil {
		return None
	}
	return c.session.lastOver
}

// SetLastOver records the resolver's target.
func (c *Controller) SetLastOver(id ID) {
	if c.session != nil {
		c.session.lastOver = id
	}
}

// RecentlyMoved reports whether a cross-container preview happened since the last Settle.
func (c *Controller) RecentlyMoved() bool { return c.recentlyMoved }

// Settle clears the cross-container flag once the new layout has been drawn.
func (c *Controller) Settle() { c.recentlyMoved = false }

// Apply dispatches ev to the matching transition.
func (c *Controller) Apply(ev Event) Result {
	switch e := ev.(type) {
	case DragStart:
		return c.Start(e.Active)
	case DragOver:
		return c.Over(e.Active, e.Over, e.Below)
	case DragEnd:
		return c.End(e.Active, e.Over)
	case DragCancel:
		return c.Cancel()
	case AddContainer:
		return c.AddContainer()
	case RemoveContainer:
		return c.RemoveContainer(e.Container)
	}
	return Result{}
}

// owns reports whether active is the id dragged by the current session.
func (c *Controller) owns(active ID) bool {
	return c.session != nil && c.session.Active == active
}

// Start begins a gesture on active and snapshots the board for Cancel.
func (c *Controller) Start(active ID) Result {
	if c.session != nil {
		return Result{}
	}
	if _, ok := c.board.FindContainer(active); !ok {
		return Result{}
	}
	c.session = newSession(active, c.board.Clone(), c.now())
	c.log.Debug("drag start", "session", c.session.ID, "active", active)
	return Result{Outcome: OutcomeStarted}
}

// Over previews a cross-container move of active next to over.
// Ordering inside one container and container reordering wait for End.
func (c *Controller) Over(active, over ID, below bool) Result {
	if !c.owns(active) {
		return Result{}
	}
	c.session.Over = over
	if over == None || over == Trash || c.board.IsContainer(active) {
		return Result{}
	}
	dst, ok := c.board.FindContainer(over)
	if !ok {
		return Result{}
	}
	src, ok := c.board.FindContainer(active)
	if !ok || src == dst {
		return Result{}
	}
	c.transfer(active, src, dst, over, below)
	c.recentlyMoved = true
	c.logf("drag over", active, over, OutcomePreview)
	return Result{Outcome: OutcomePreview, Container: dst}
}

// transfer removes active from src and inserts it into dst: at the end when over is dst
// itself, otherwise at over's index, one slot later when below is set.
func (c *Controller) transfer(active, src, dst, over ID, below bool) {
	index := c.board.Len(dst)
	if over != dst {
		if i := slices.Index(c.board.items[dst], over); i >= 0 {
			index = i
			if below {
				index++
			}
		}
	}
	c.board.removeItem(src, active)
	c.board.insertItem(dst, index, active)
}

// End commits the gesture and clears the session. Events for an id other than
// the session's are ignored and leave the session in place.
func (c *Controller) End(active, over ID) Result {
	if !c.owns(active) {
		return Result{}
	}
	res := c.end(active, over)
	c.logf("drag end", active, over, res.Outcome)
	c.session = nil
	return res
}

func (c *Controller) end(active, over ID) Result {
	b := c.board
	if b.IsContainer(active) {
		if over == None || !b.IsContainer(over) {
			return Result{Outcome: OutcomeDropped}
		}
		from, to := slices.Index(b.order, active), slices.Index(b.order, over)
		if from == to {
			return Result{Outcome: OutcomeDropped}
		}
		b.order = arrayMove(b.order, from, to)
		return Result{Outcome: OutcomeContainerMoved, Container: active}
	}

	src, ok := b.FindContainer(active)
	if !ok {
		return Result{}
	}
	switch over {
	case None:
		return Result{Outcome: OutcomeDropped}
	case Trash:
		b.removeItem(src, active)
		return Result{Outcome: OutcomeDiscarded, Container: src, Removed: []ID{active}}
	case Placeholder:
		id := b.nextContainerID()
		b.removeItem(src, active)
		b.appendContainer(id, active)
		return Result{Outcome: OutcomeCreated, Container: id}
	}

	dst, ok := b.FindContainer(over)
	if !ok {
		return Result{Outcome: OutcomeDropped}
	}
	if dst != src {
		c.transfer(active, src, dst, over, false)
		return Result{Outcome: OutcomeMoved, Container: dst}
	}
	from := slices.Index(b.items[src], active)
	to := slices.Index(b.items[src], over)
	if over == src {
		to = len(b.items[src]) - 1
	}
	if from == to || to < 0 {
		return Result{Outcome: OutcomeDropped}
	}
	b.items[src] = arrayMove(b.items[src], from, to)
	return Result{Outcome: OutcomeReordered, Container: src}
}

// Cancel restores the board captured at Start and clears the session.
func (c *Controller) Cancel() Result {
	s := c.session
	c.session = nil
	if s == nil {
		return Result{}
	}
	*c.board = *s.origin
	c.log.Debug("drag cancel", "session", s.ID, "active", s.Active)
	return Result{Outcome: OutcomeCancelled}
}

// AddContainer appends an empty container with the next free id.
func (c *Controller) AddContainer() Result {
	id := c.board.nextContainerID()
	c.board.appendContainer(id)
	c.log.Debug("container added", "container", id)
	return Result{Outcome: OutcomeContainerAdded, Container: id}
}

// RemoveContainer deletes container id together with its items.
// The container involved in an active drag cannot be removed.
func (c *Controller) RemoveContainer(id ID) Result {
	b := c.board
	if !b.IsContainer(id) {
		return Result{}
	}
	if active := c.Active(); active != None {
		if src, _ := b.FindContainer(active); src == id {
			return Result{}
		}
	}
	removed := b.items[id]
	b.order = slices.DeleteFunc(slices.Clone(b.order), func(v ID) bool { return v == id })
	delete(b.items, id)
	c.log.Debug("container removed", "container", id, "items", len(removed))
	return Result{Outcome: OutcomeContainerRemoved, Container: id, Removed: removed}
}

func (c *Controller) logf(msg string, active, over ID, out Outcome) {
	attrs := []any{"active", active, "over", over, "outcome", out.String()}
	if c.session != nil {
		attrs = append(attrs, "session", c.session.ID)
	}
	c.log.Debug(msg, attrs...)
}
