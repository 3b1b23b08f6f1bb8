// Package collision picks the drop target of a drag from laid-out droppable regions.
//
// Geometry is in terminal cells. A Rect covers [X, X+W) x [Y, Y+H).
package collision

import (
	"cmp"
	"math"
	"slices"

	"github.com/jask/multicol/internal/board"
)

// Point is a cell position.
type Point struct{ X, Y int }

// Rect is a cell-aligned rectangle.
type Rect struct{ X, Y, W, H int }

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Center returns the center of r in fractional cells.
func (r Rect) Center() (float64, float64) {
	return float64(r.X) + float64(r.W)/2, float64(r.Y) + float64(r.H)/2
}

// Translate moves r by dx, dy.
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Intersect returns the overlapping area of r and o.
func (r Rect) Intersect(o Rect) int {
	w := min(r.Right(), o.Right()) - max(r.X, o.X)
	h := min(r.Bottom(), o.Bottom()) - max(r.Y, o.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Droppable is a laid-out drop region.
type Droppable struct {
	ID   board.ID
	Rect Rect
}

// Collision is a candidate target with its sort key.
type Collision struct {
	ID    board.ID
	Value float64
}

func distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x1-x2, y1-y2)
}

func sortAsc(cs []Collision) {
	slices.SortStableFunc(cs, func(a, b Collision) int { return cmp.Compare(a.Value, b.Value) })
}

// PointerWithin returns the droppables containing p, nearest first by the mean
// distance from p to their corners.
func PointerWithin(p Point, ds []Droppable) []Collision {
	var out []Collision
	px, py := float64(p.X), float64(p.Y)
	for _, d := range ds {
		if d.Rect.Empty() || !d.Rect.Contains(p) {
			continue
		}
		r := d.Rect
		l, t, rt, b := float64(r.X), float64(r.Y), float64(r.Right()), float64(r.Bottom())
		sum := distance(px, py, l, t) + distance(px, py, rt, t) + distance(px, py, l, b) + distance(px, py, rt, b)
		out = append(out, Collision{ID: d.ID, Value: sum / 4})
	}
	sortAsc(out)
	return out
}

// RectIntersection returns the droppables overlapping active, largest
// intersection ratio first.
func RectIntersection(active Rect, ds []Droppable) []Collision {
	var out []Collision
	for _, d := range ds {
		inter := active.Intersect(d.Rect)
		if inter == 0 {
			continue
		}
		union := active.W*active.H + d.Rect.W*d.Rect.H - inter
		out = append(out, Collision{ID: d.ID, Value: float64(inter) / float64(union)})
	}
	slices.SortStableFunc(out, func(a, b Collision) int { return cmp.Compare(b.Value, a.Value) })
	return out
}

// ClosestCenter returns every droppable ordered by the distance between its
// center and the center of active.
func ClosestCenter(active Rect, ds []Droppable) []Collision {
	ax, ay := active.Center()
	out := make([]Collision, 0, len(ds))
	for _, d := range ds {
		if d.Rect.Empty() {
			continue
		}
		cx, cy := d.Rect.Center()
		out = append(out, Collision{ID: d.ID, Value: distance(ax, ay, cx, cy)})
	}
	sortAsc(out)
	return out
}

// First returns the id of the first collision, or None.
func First(cs []Collision) board.ID {
	if len(cs) == 0 {
		return board.None
	}
	return cs[0].ID
}
