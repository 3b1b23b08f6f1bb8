// Package board holds the container registry, the item assignment map and the
// drag session state machine that mutates them.
package board

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

var (
	ErrEmptyID     = errors.New("empty id")
	ErrReservedID  = errors.New("reserved id")
	ErrDuplicateID = errors.New("duplicate id")
)

// DefaultContainers is the number of columns the generator creates.
const DefaultContainers = 4

// Column is one container with its items in display order.
type Column struct {
	ID    ID   `json:"id" yaml:"id" toml:"id"`
	Items []ID `json:"items" yaml:"items" toml:"items"`
}

// Board is the container registry plus the item assignment map.
// The zero value is an empty board.
type Board struct {
	order []ID
	items map[ID][]ID
}

// New builds a board from columns, validating id uniqueness across containers and items.
func New(columns []Column) (*Board, error) {
	b := &Board{items: make(map[ID][]ID, len(columns))}
	seen := make(map[ID]bool)
	claim := func(id ID) error {
		switch {
		case id == None:
			return ErrEmptyID
		case Reserved(id):
			return fmt.Errorf("%w: %q", ErrReservedID, id)
		case seen[id]:
			return fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
		seen[id] = true
		return nil
	}
	for _, col := range columns {
		if err := claim(col.ID); err != nil {
			return nil, fmt.Errorf("container: %w", err)
		}
		for _, it := range col.Items {
			if err := claim(it); err != nil {
				return nil, fmt.Errorf("container %s item: %w", col.ID, err)
			}
		}
		b.order = append(b.order, col.ID)
		b.items[col.ID] = slices.Clone(col.Items)
		if b.items[col.ID] == nil {
			b.items[col.ID] = []ID{}
		}
	}
	return b, nil
}

// Generate builds the default board: containers A-D, each with itemCount items
// labeled by the container id and a 1-based index.
func Generate(itemCount int) *Board {
	itemCount = max(0, itemCount)
	b := &Board{items: make(map[ID][]ID, DefaultContainers)}
	id := ID("A")
	for range DefaultContainers {
		items := make([]ID, itemCount)
		for i := range items {
			items[i] = id + ID(strconv.Itoa(i+1))
		}
		b.order = append(b.order, id)
		b.items[id] = items
		id = successor(id)
	}
	return b
}

// Containers returns the registry in display order.
func (b *Board) Containers() []ID {
	return slices.Clone(b.order)
}

// Items returns the items of container c in display order.
func (b *Board) Items(c ID) []ID {
	return slices.Clone(b.items[c])
}

// Len returns the number of items in container c.
func (b *Board) Len(c ID) int {
	return len(b.items[c])
}

// IsContainer reports whether id is a registered container.
func (b *Board) IsContainer(id ID) bool {
	_, ok := b.items[id]
	return ok
}

// FindContainer returns the container that is id or holds id.
func (b *Board) FindContainer(id ID) (ID, bool) {
	if id == None {
		return None, false
	}
	if b.IsContainer(id) {
		return id, true
	}
	for _, c := range b.order {
		if slices.Contains(b.items[c], id) {
			return c, true
		}
	}
	return None, false
}

// Index returns the position of id inside its container, or -1.
func (b *Board) Index(id ID) int {
	c, ok := b.FindContainer(id)
	if !ok {
		return -1
	}
	return slices.Index(b.items[c], id)
}

// Columns exports the board as an ordered list of columns.
func (b *Board) Columns() []Column {
	out := make([]Column, 0, len(b.order))
	for _, c := range b.order {
		out = append(out, Column{ID: c, Items: slices.Clone(b.items[c])})
	}
	return out
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	cp := &Board{order: slices.Clone(b.order), items: make(map[ID][]ID, len(b.items))}
	for k, v := range b.items {
		cp.items[k] = slices.Clone(v)
	}
	return cp
}

// Equal reports whether both boards have the same container order and item order.
func (b *Board) Equal(o *Board) bool {
	if !slices.Equal(b.order, o.order) || len(b.items) != len(o.items) {
		return false
	}
	for k, v := range b.items {
		w, ok := o.items[k]
		if !ok || !slices.Equal(v, w) {
			return false
		}
	}
	return true
}

// Check verifies the board invariants: every item in exactly one container once,
// registry and map keys identical, no reserved ids.
func (b *Board) Check() error {
	if len(b.order) != len(b.items) {
		return fmt.Errorf("registry has %d containers, map has %d", len(b.order), len(b.items))
	}
	for _, c := range b.order {
		if !b.IsContainer(c) {
			return fmt.Errorf("container %q missing from map", c)
		}
	}
	_, err := New(b.Columns())
	return err
}

func (b *Board) taken(id ID) bool {
	_, ok := b.FindContainer(id)
	return ok
}

func (b *Board) nextContainerID() ID {
	var last ID
	if n := len(b.order); n > 0 {
		last = b.order[n-1]
	}
	return NextContainerID(last, b.taken)
}

func (b *Board) appendContainer(id ID, items ...ID) {
	if b.items == nil {
		b.items = make(map[ID][]ID)
	}
	b.order = append(b.order, id)
	b.items[id] = append([]ID{}, items...)
}

func (b *Board) removeItem(c, id ID) {
	b.items[c] = slices.DeleteFunc(slices.Clone(b.items[c]), func(v ID) bool { return v == id })
}

func (b *Board) insertItem(c ID, index int, id ID) {
	cur := b.items[c]
	index = min(max(index, 0), len(cur))
	b.items[c] = slices.Insert(slices.Clone(cur), index, id)
}

// arrayMove removes the element at from and reinserts it at to.
// A negative to counts from the end.
func arrayMove[T any](s []T, from, to int) []T {
	out := slices.Clone(s)
	if from < 0 || from >= len(out) {
		return out
	}
	if to < 0 {
		to += len(out)
	}
	to = min(max(to, 0), len(out)-1)
	v := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, v)
}
