package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/multicol/internal/board"
	"github.com/jask/multicol/internal/database"
)

// ErrNotFound is returned when no board has the requested name.
var ErrNotFound = errors.New("board not found")

// BoardRepo handles saved boards.
type BoardRepo struct {
	db *sql.DB
}

func NewBoardRepo(db *sql.DB) *BoardRepo { return &BoardRepo{db: db} }

// Save stores columns under name, replacing any layout already saved there.
func (r *BoardRepo) Save(ctx context.Context, name string, columns []board.Column) (SavedBoard, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SavedBoard{}, fmt.Errorf("board name required")
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return SavedBoard{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var id string
	err = tx.QueryRowContext(ctx, `SELECT id FROM boards WHERE name = ?`, name).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		id = uuid.NewString()
		if _, err := tx.ExecContext(ctx, `INSERT INTO boards(id, name) VALUES (?, ?)`, id, name); err != nil {
			return SavedBoard{}, fmt.Errorf("insert board: %w", err)
		}
	case err != nil:
		return SavedBoard{}, err
	default:
		if _, err := tx.ExecContext(ctx, `UPDATE boards SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id); err != nil {
			return SavedBoard{}, err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM board_items WHERE board_id = ?`, id); err != nil {
		return SavedBoard{}, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM board_containers WHERE board_id = ?`, id); err != nil {
		return SavedBoard{}, err
	}
	for ci, col := range columns {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO board_containers(board_id, container_id, position) VALUES (?, ?, ?)
		`, id, string(col.ID), ci); err != nil {
			return SavedBoard{}, fmt.Errorf("insert container %s: %w", col.ID, err)
		}
		for ii, item := range col.Items {
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO board_items(board_id, container_id, item_id, position) VALUES (?, ?, ?, ?)
			`, id, string(col.ID), string(item), ii); err != nil {
				return SavedBoard{}, fmt.Errorf("insert item %s: %w", item, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return SavedBoard{}, err
	}
	return r.byName(ctx, name)
}

// Get loads the layout saved under name.
func (r *BoardRepo) Get(ctx context.Context, name string) (*Layout, error) {
	sb, err := r.byName(ctx, name)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT c.container_id, i.item_id
	FROM board_containers c
	LEFT JOIN board_items i ON i.board_id = c.board_id AND i.container_id = c.container_id
	WHERE c.board_id = ?
	ORDER BY c.position, i.position
	`, sb.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := &Layout{SavedBoard: sb}
	for rows.Next() {
		var container string
		var item sql.NullString
		if err := rows.Scan(&container, &item); err != nil {
			return nil, err
		}
		n := len(out.Columns)
		if n == 0 || out.Columns[n-1].ID != board.ID(container) {
			out.Columns = append(out.Columns, board.Column{ID: board.ID(container), Items: []board.ID{}})
			n++
		}
		if item.Valid {
			out.Columns[n-1].Items = append(out.Columns[n-1].Items, board.ID(item.String))
		}
	}
	return out, rows.Err()
}

// List returns every saved board ordered by name.
func (r *BoardRepo) List(ctx context.Context) ([]SavedBoard, error) {
	rows, err := r.db.QueryContext(ctx, boardSelect+` ORDER BY b.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SavedBoard
	for rows.Next() {
		sb, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sb)
	}
	return out, rows.Err()
}

// Delete removes the board saved under name.
func (r *BoardRepo) Delete(ctx context.Context, name string) error {
	sb, err := r.byName(ctx, name)
	if err != nil {
		return err
	}
	return database.WithTx(r.db, func(tx *sql.Tx) error {
		for _, q := range []string{
			`DELETE FROM board_items WHERE board_id = ?`,
			`DELETE FROM board_containers WHERE board_id = ?`,
			`DELETE FROM boards WHERE id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, q, sb.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

const boardSelect = `
	SELECT b.id, b.name,
	 (SELECT COUNT(*) FROM board_containers c WHERE c.board_id = b.id),
	 (SELECT COUNT(*) FROM board_items i WHERE i.board_id = b.id),
	 b.created_at, b.updated_at
	FROM boards b`

type scanner interface {
	Scan(dest ...any) error
}

func scanBoard(s scanner) (SavedBoard, error) {
	var sb SavedBoard
	err := s.Scan(&sb.ID, &sb.Name, &sb.Containers, &sb.Items, &sb.CreatedAt, &sb.UpdatedAt)
	return sb, err
}

func (r *BoardRepo) byName(ctx context.Context, name string) (SavedBoard, error) {
	row := r.db.QueryRowContext(ctx, boardSelect+` WHERE b.name = ?`, strings.TrimSpace(name))
	sb, err := scanBoard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedBoard{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return sb, err
}
