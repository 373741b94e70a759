package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"taskboard-api/domain"
)

// ListBoards returns the caller's boards with their column headers, in
// insertion order.
func (s *Storage) ListBoards(ctx context.Context, ownerID string) ([]domain.BoardSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name FROM boards WHERE `+scoped("boards")+` ORDER BY rowid`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}
	defer rows.Close()

	boards := []domain.BoardSummary{}
	for rows.Next() {
		var b domain.BoardSummary
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, fmt.Errorf("scanning board: %w", err)
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating boards: %w", err)
	}

	for i := range boards {
		cols, err := listColumnsByBoard(ctx, s.db, boards[i].ID)
		if err != nil {
			return nil, err
		}
		boards[i].Columns = cols
	}
	return boards, nil
}

// CreateBoard creates a board owned by ownerID together with its embedded
// column specs as one atomic unit: either all rows exist afterward or none do.
func (s *Storage) CreateBoard(ctx context.Context, ownerID, name string, columns []domain.ColumnSpec) (domain.BoardSummary, error) {
	if err := requireText("name", name); err != nil {
		return domain.BoardSummary{}, err
	}
	if err := validateColumnSpecs(columns); err != nil {
		return domain.BoardSummary{}, err
	}

	board := domain.BoardSummary{ID: uuid.NewString(), Name: name, Columns: []domain.Column{}}
	err := s.withinTx(ctx, func(tx dbtx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO boards (id, owner_id, name, created_at) VALUES (?, ?, ?, ?)`,
			board.ID, ownerID, name, nowUTC())
		if err != nil {
			return fmt.Errorf("inserting board: %w", err)
		}
		for _, spec := range columns {
			col, err := insertColumn(ctx, tx, board.ID, spec)
			if err != nil {
				return err
			}
			board.Columns = append(board.Columns, col)
		}
		return nil
	})
	if err != nil {
		return domain.BoardSummary{}, err
	}
	return board, nil
}

// GetBoard returns the full Board -> Columns -> Tasks -> Subtasks tree for a
// board in the caller's scope.
func (s *Storage) GetBoard(ctx context.Context, ownerID, id string) (domain.BoardDetail, error) {
	var detail domain.BoardDetail
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM boards WHERE id = ? AND `+scoped("boards"), id, ownerID,
	).Scan(&detail.ID, &detail.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.BoardDetail{}, ErrNotFound
		}
		return domain.BoardDetail{}, fmt.Errorf("querying board: %w", err)
	}

	cols, err := listColumnsByBoard(ctx, s.db, detail.ID)
	if err != nil {
		return domain.BoardDetail{}, err
	}
	detail.Columns = make([]domain.ColumnDetail, 0, len(cols))
	for _, col := range cols {
		tasks, err := listTaskDetailsByColumn(ctx, s.db, col.ID)
		if err != nil {
			return domain.BoardDetail{}, err
		}
		detail.Columns = append(detail.Columns, domain.ColumnDetail{
			ID:      col.ID,
			Name:    col.Name,
			BoardID: col.BoardID,
			Tasks:   tasks,
		})
	}
	return detail, nil
}

// UpdateBoard applies a partial update. When upd.Columns is non-nil the
// existing column set (and everything beneath it) is deleted and recreated
// from the specs with fresh identifiers, all inside one transaction; a nil
// Columns pointer leaves existing columns untouched.
func (s *Storage) UpdateBoard(ctx context.Context, ownerID, id string, upd domain.BoardUpdate) (domain.BoardSummary, error) {
	if upd.Name != nil {
		if err := requireText("name", *upd.Name); err != nil {
			return domain.BoardSummary{}, err
		}
	}
	if upd.Columns != nil {
		if err := validateColumnSpecs(*upd.Columns); err != nil {
			return domain.BoardSummary{}, err
		}
	}

	board := domain.BoardSummary{ID: id}
	err := s.withinTx(ctx, func(tx dbtx) error {
		err := tx.QueryRowContext(ctx,
			`SELECT name FROM boards WHERE id = ? AND `+scoped("boards"), id, ownerID,
		).Scan(&board.Name)
		if err != nil {
			if err == sql.ErrNoRows {
				return ErrNotFound
			}
			return fmt.Errorf("querying board: %w", err)
		}

		if upd.Name != nil {
			if _, err := tx.ExecContext(ctx, `UPDATE boards SET name = ? WHERE id = ?`, *upd.Name, id); err != nil {
				return fmt.Errorf("updating board: %w", err)
			}
			board.Name = *upd.Name
		}

		if upd.Columns != nil {
			cols, err := replaceBoardColumns(ctx, tx, id, *upd.Columns)
			if err != nil {
				return err
			}
			board.Columns = cols
			return nil
		}

		cols, err := listColumnsByBoard(ctx, tx, id)
		if err != nil {
			return err
		}
		board.Columns = cols
		return nil
	})
	if err != nil {
		return domain.BoardSummary{}, err
	}
	return board, nil
}

// ReplaceColumns is the destructive replace behind the set_columns action:
// every existing column (with its tasks and subtasks) is deleted and the
// specs are created fresh.
func (s *Storage) ReplaceColumns(ctx context.Context, ownerID, boardID string, columns []domain.ColumnSpec) ([]domain.Column, error) {
	if err := validateColumnSpecs(columns); err != nil {
		return nil, err
	}

	var cols []domain.Column
	err := s.withinTx(ctx, func(tx dbtx) error {
		var name string
		err := tx.QueryRowContext(ctx,
			`SELECT name FROM boards WHERE id = ? AND `+scoped("boards"), boardID, ownerID,
		).Scan(&name)
		if err != nil {
			if err == sql.ErrNoRows {
				return ErrNotFound
			}
			return fmt.Errorf("querying board: %w", err)
		}
		cols, err = replaceBoardColumns(ctx, tx, boardID, columns)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cols, nil
}

// DeleteBoard removes a board and, via foreign-key cascade, every column,
// task and subtask beneath it.
func (s *Storage) DeleteBoard(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM boards WHERE id = ? AND `+scoped("boards"), id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting board: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting board: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func validateColumnSpecs(columns []domain.ColumnSpec) error {
	for _, spec := range columns {
		if err := requireText("name", spec.Name); err != nil {
			return err
		}
	}
	return nil
}

// replaceBoardColumns deletes all columns of a board and recreates them from
// the specs. Callers must run it inside a transaction.
func replaceBoardColumns(ctx context.Context, tx dbtx, boardID string, specs []domain.ColumnSpec) ([]domain.Column, error) {
	if _, err := tx.ExecContext(ctx, `DELETE FROM columns WHERE board_id = ?`, boardID); err != nil {
		return nil, fmt.Errorf("clearing columns: %w", err)
	}
	cols := []domain.Column{}
	for _, spec := range specs {
		col, err := insertColumn(ctx, tx, boardID, spec)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func insertColumn(ctx context.Context, q dbtx, boardID string, spec domain.ColumnSpec) (domain.Column, error) {
	col := domain.Column{ID: uuid.NewString(), Name: spec.Name, BoardID: boardID}
	_, err := q.ExecContext(ctx,
		`INSERT INTO columns (id, board_id, name, created_at) VALUES (?, ?, ?, ?)`,
		col.ID, col.BoardID, col.Name, nowUTC())
	if err != nil {
		return domain.Column{}, fmt.Errorf("inserting column: %w", err)
	}
	return col, nil
}

func listColumnsByBoard(ctx context.Context, q dbtx, boardID string) ([]domain.Column, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, board_id, name FROM columns WHERE board_id = ? ORDER BY rowid`, boardID)
	if err != nil {
		return nil, fmt.Errorf("listing columns: %w", err)
	}
	defer rows.Close()

	cols := []domain.Column{}
	for rows.Next() {
		var col domain.Column
		if err := rows.Scan(&col.ID, &col.BoardID, &col.Name); err != nil {
			return nil, fmt.Errorf("scanning column: %w", err)
		}
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns: %w", err)
	}
	return cols, nil
}
