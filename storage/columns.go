package storage

import (
	"context"
	"database/sql"
	"fmt"

	"taskboard-api/domain"
)

// ListColumns returns every column on the caller's boards in insertion order.
func (s *Storage) ListColumns(ctx context.Context, ownerID string) ([]domain.ColumnDetail, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, board_id, name FROM columns WHERE `+scoped("columns")+` ORDER BY rowid`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing columns: %w", err)
	}
	defer rows.Close()

	cols := []domain.ColumnDetail{}
	for rows.Next() {
		var col domain.ColumnDetail
		if err := rows.Scan(&col.ID, &col.BoardID, &col.Name); err != nil {
			return nil, fmt.Errorf("scanning column: %w", err)
		}
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns: %w", err)
	}

	for i := range cols {
		tasks, err := listTaskDetailsByColumn(ctx, s.db, cols[i].ID)
		if err != nil {
			return nil, err
		}
		cols[i].Tasks = tasks
	}
	return cols, nil
}

// CreateColumn adds a column to a board in the caller's scope.
func (s *Storage) CreateColumn(ctx context.Context, ownerID, boardID, name string) (domain.Column, error) {
	if err := requireText("name", name); err != nil {
		return domain.Column{}, err
	}
	if err := requireText("board", boardID); err != nil {
		return domain.Column{}, err
	}

	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM boards WHERE id = ? AND `+scoped("boards"), boardID, ownerID,
	).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Column{}, ErrNotFound
		}
		return domain.Column{}, fmt.Errorf("querying board: %w", err)
	}

	return insertColumn(ctx, s.db, boardID, domain.ColumnSpec{Name: name})
}

// GetColumn returns a column with its tasks (and their subtasks) expanded.
func (s *Storage) GetColumn(ctx context.Context, ownerID, id string) (domain.ColumnDetail, error) {
	var col domain.ColumnDetail
	err := s.db.QueryRowContext(ctx,
		`SELECT id, board_id, name FROM columns WHERE id = ? AND `+scoped("columns"), id, ownerID,
	).Scan(&col.ID, &col.BoardID, &col.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.ColumnDetail{}, ErrNotFound
		}
		return domain.ColumnDetail{}, fmt.Errorf("querying column: %w", err)
	}

	tasks, err := listTaskDetailsByColumn(ctx, s.db, col.ID)
	if err != nil {
		return domain.ColumnDetail{}, err
	}
	col.Tasks = tasks
	return col, nil
}

// UpdateColumn applies a partial update to a column. The board reference is
// immutable.
func (s *Storage) UpdateColumn(ctx context.Context, ownerID, id string, upd domain.ColumnUpdate) (domain.Column, error) {
	if upd.Name != nil {
		if err := requireText("name", *upd.Name); err != nil {
			return domain.Column{}, err
		}
	}

	var col domain.Column
	err := s.db.QueryRowContext(ctx,
		`SELECT id, board_id, name FROM columns WHERE id = ? AND `+scoped("columns"), id, ownerID,
	).Scan(&col.ID, &col.BoardID, &col.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Column{}, ErrNotFound
		}
		return domain.Column{}, fmt.Errorf("querying column: %w", err)
	}

	if upd.Name != nil {
		if _, err := s.db.ExecContext(ctx, `UPDATE columns SET name = ? WHERE id = ?`, *upd.Name, id); err != nil {
			return domain.Column{}, fmt.Errorf("updating column: %w", err)
		}
		col.Name = *upd.Name
	}
	return col, nil
}

// DeleteColumn removes a column and cascades to its tasks and subtasks.
func (s *Storage) DeleteColumn(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM columns WHERE id = ? AND `+scoped("columns"), id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting column: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting column: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
