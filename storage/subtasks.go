package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"taskboard-api/domain"
)

// ListSubtasks returns every subtask on the caller's boards in insertion
// order.
func (s *Storage) ListSubtasks(ctx context.Context, ownerID string) ([]domain.Subtask, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, task_id, title, is_completed FROM subtasks WHERE `+scoped("subtasks")+` ORDER BY rowid`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing subtasks: %w", err)
	}
	defer rows.Close()
	return scanSubtasks(rows)
}

// CreateSubtask adds a subtask to a task in the caller's scope. The
// completion flag defaults to false unless supplied.
func (s *Storage) CreateSubtask(ctx context.Context, ownerID, taskID, title string, isCompleted bool) (domain.Subtask, error) {
	if err := requireText("title", title); err != nil {
		return domain.Subtask{}, err
	}
	if err := requireText("task", taskID); err != nil {
		return domain.Subtask{}, err
	}

	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM tasks WHERE id = ? AND `+scoped("tasks"), taskID, ownerID,
	).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Subtask{}, ErrNotFound
		}
		return domain.Subtask{}, fmt.Errorf("querying task: %w", err)
	}

	return insertSubtask(ctx, s.db, taskID, domain.SubtaskSpec{Title: title, IsCompleted: isCompleted})
}

// GetSubtask returns a single subtask in the caller's scope.
func (s *Storage) GetSubtask(ctx context.Context, ownerID, id string) (domain.Subtask, error) {
	var sub domain.Subtask
	var completed int
	err := s.db.QueryRowContext(ctx,
		`SELECT id, task_id, title, is_completed FROM subtasks WHERE id = ? AND `+scoped("subtasks"), id, ownerID,
	).Scan(&sub.ID, &sub.TaskID, &sub.Title, &completed)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Subtask{}, ErrNotFound
		}
		return domain.Subtask{}, fmt.Errorf("querying subtask: %w", err)
	}
	sub.IsCompleted = intToBool(completed)
	return sub, nil
}

// UpdateSubtask applies a partial update. The task reference is immutable.
func (s *Storage) UpdateSubtask(ctx context.Context, ownerID, id string, upd domain.SubtaskUpdate) (domain.Subtask, error) {
	if upd.Title != nil {
		if err := requireText("title", *upd.Title); err != nil {
			return domain.Subtask{}, err
		}
	}

	sub, err := s.GetSubtask(ctx, ownerID, id)
	if err != nil {
		return domain.Subtask{}, err
	}

	if upd.Title != nil {
		sub.Title = *upd.Title
	}
	if upd.IsCompleted != nil {
		sub.IsCompleted = *upd.IsCompleted
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE subtasks SET title = ?, is_completed = ? WHERE id = ?`,
		sub.Title, boolToInt(sub.IsCompleted), id)
	if err != nil {
		return domain.Subtask{}, fmt.Errorf("updating subtask: %w", err)
	}
	return sub, nil
}

// DeleteSubtask removes a single subtask.
func (s *Storage) DeleteSubtask(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM subtasks WHERE id = ? AND `+scoped("subtasks"), id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting subtask: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting subtask: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func insertSubtask(ctx context.Context, q dbtx, taskID string, spec domain.SubtaskSpec) (domain.Subtask, error) {
	sub := domain.Subtask{
		ID:          uuid.NewString(),
		Title:       spec.Title,
		IsCompleted: spec.IsCompleted,
		TaskID:      taskID,
	}
	_, err := q.ExecContext(ctx,
		`INSERT INTO subtasks (id, task_id, title, is_completed, created_at) VALUES (?, ?, ?, ?, ?)`,
		sub.ID, sub.TaskID, sub.Title, boolToInt(sub.IsCompleted), nowUTC())
	if err != nil {
		return domain.Subtask{}, fmt.Errorf("inserting subtask: %w", err)
	}
	return sub, nil
}

func listSubtasksByTask(ctx context.Context, q dbtx, taskID string) ([]domain.Subtask, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, task_id, title, is_completed FROM subtasks WHERE task_id = ? ORDER BY rowid`, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing subtasks: %w", err)
	}
	defer rows.Close()
	return scanSubtasks(rows)
}

func scanSubtasks(rows *sql.Rows) ([]domain.Subtask, error) {
	subs := []domain.Subtask{}
	for rows.Next() {
		var sub domain.Subtask
		var completed int
		if err := rows.Scan(&sub.ID, &sub.TaskID, &sub.Title, &completed); err != nil {
			return nil, fmt.Errorf("scanning subtask: %w", err)
		}
		sub.IsCompleted = intToBool(completed)
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subtasks: %w", err)
	}
	return subs, nil
}
