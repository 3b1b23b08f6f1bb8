package repository

import (
	"time"

	"github.com/jask/multicol/internal/board"
)

// SavedBoard represents a boards row.
type SavedBoard struct {
	ID         string
	Name       string
	Containers int
	Items      int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Layout is a saved board with its columns in display order.
type Layout struct {
	SavedBoard
	Columns []board.Column
}
