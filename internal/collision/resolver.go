package collision

import (
	"slices"

	"github.com/jask/multicol/internal/board"
)

// Board is the membership view the resolver reads.
type Board interface {
	IsContainer(id board.ID) bool
	Items(c board.ID) []board.ID
}

// Tracker holds the per-gesture memory of the resolver.
type Tracker interface {
	LastOver() board.ID
	SetLastOver(id board.ID)
	RecentlyMoved() bool
}

// Input is the geometry of one drag tick.
type Input struct {
	Active     board.ID
	ActiveRect Rect
	// Pointer is nil when the sensor has no pointer position.
	Pointer    *Point
	Droppables []Droppable
}

type pass struct {
	in        Input
	board     Board
	tracker   Tracker
	candidate board.ID
}

// rule returns done=true to stop the chain with target.
type rule func(p *pass) (target board.ID, done bool)

// Resolver evaluates its rules in order until one decides.
type Resolver struct {
	rules []rule
}

// NewResolver returns the multiple-containers strategy.
func NewResolver() *Resolver {
	return &Resolver{rules: []rule{
		containerDrag,
		hitTest,
		discard,
		refine,
		reuseLast,
	}}
}

// Resolve returns the drop target for this tick, or board.None.
func (r *Resolver) Resolve(in Input, b Board, t Tracker) board.ID {
	p := &pass{in: in, board: b, tracker: t}
	for _, fn := range r.rules {
		if target, done := fn(p); done {
			return target
		}
	}
	return board.None
}

func (p *pass) filter(keep func(board.ID) bool) []Droppable {
	return slices.DeleteFunc(slices.Clone(p.in.Droppables), func(d Droppable) bool { return !keep(d.ID) })
}

// containerDrag: a dragged container only ever lands on another container.
func containerDrag(p *pass) (board.ID, bool) {
	if !p.board.IsContainer(p.in.Active) {
		return board.None, false
	}
	return First(ClosestCenter(p.in.ActiveRect, p.filter(p.board.IsContainer))), true
}

// hitTest prefers regions under the pointer, then regions overlapping the dragged rect.
func hitTest(p *pass) (board.ID, bool) {
	var cs []Collision
	if p.in.Pointer != nil {
		cs = PointerWithin(*p.in.Pointer, p.in.Droppables)
	}
	if len(cs) == 0 {
		cs = RectIntersection(p.in.ActiveRect, p.in.Droppables)
	}
	p.candidate = First(cs)
	return board.None, false
}

func discard(p *pass) (board.ID, bool) {
	if p.candidate == board.Trash {
		return board.Trash, true
	}
	return board.None, false
}

// refine narrows a non-empty container to its closest item.
func refine(p *pass) (board.ID, bool) {
	if p.candidate == board.None {
		return board.None, false
	}
	target := p.candidate
	if p.board.IsContainer(target) {
		if items := p.board.Items(target); len(items) > 0 {
			inside := p.filter(func(id board.ID) bool { return id != target && slices.Contains(items, id) })
			if id := First(ClosestCenter(p.in.ActiveRect, inside)); id != board.None {
				target = id
			}
		}
	}
	p.tracker.SetLastOver(target)
	return target, true
}

// reuseLast keeps the previous target when nothing is hit, which happens for one
// tick after an item changes container and the layout shifts under the pointer.
func reuseLast(p *pass) (board.ID, bool) {
	if p.tracker.RecentlyMoved() {
		p.tracker.SetLastOver(p.in.Active)
	}
	return p.tracker.LastOver(), true
}
