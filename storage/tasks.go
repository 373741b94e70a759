package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"taskboard-api/domain"
)

// ListTasks returns every task on the caller's boards, each with its
// subtasks, in insertion order.
func (s *Storage) ListTasks(ctx context.Context, ownerID string) ([]domain.TaskDetail, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, column_id, title, description FROM tasks WHERE `+scoped("tasks")+` ORDER BY rowid`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks, err := scanTaskDetails(rows)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		subs, err := listSubtasksByTask(ctx, s.db, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].Subtasks = subs
	}
	return tasks, nil
}

// CreateTask creates a task in a column of the caller's scope together with
// its embedded subtask specs, atomically.
func (s *Storage) CreateTask(ctx context.Context, ownerID, columnID, title, description string, subtasks []domain.SubtaskSpec) (domain.TaskDetail, error) {
	if err := requireText("title", title); err != nil {
		return domain.TaskDetail{}, err
	}
	if err := requireText("column", columnID); err != nil {
		return domain.TaskDetail{}, err
	}
	if err := validateSubtaskSpecs(subtasks); err != nil {
		return domain.TaskDetail{}, err
	}

	task := domain.TaskDetail{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		ColumnID:    columnID,
		Subtasks:    []domain.Subtask{},
	}
	err := s.withinTx(ctx, func(tx dbtx) error {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM columns WHERE id = ? AND `+scoped("columns"), columnID, ownerID,
		).Scan(&exists)
		if err != nil {
			if err == sql.ErrNoRows {
				return ErrNotFound
			}
			return fmt.Errorf("querying column: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO tasks (id, column_id, title, description, created_at) VALUES (?, ?, ?, ?, ?)`,
			task.ID, task.ColumnID, task.Title, task.Description, nowUTC())
		if err != nil {
			return fmt.Errorf("inserting task: %w", err)
		}
		for _, spec := range subtasks {
			sub, err := insertSubtask(ctx, tx, task.ID, spec)
			if err != nil {
				return err
			}
			task.Subtasks = append(task.Subtasks, sub)
		}
		return nil
	})
	if err != nil {
		return domain.TaskDetail{}, err
	}
	return task, nil
}

// GetTask returns a task with its subtasks.
func (s *Storage) GetTask(ctx context.Context, ownerID, id string) (domain.TaskDetail, error) {
	var task domain.TaskDetail
	err := s.db.QueryRowContext(ctx,
		`SELECT id, column_id, title, description FROM tasks WHERE id = ? AND `+scoped("tasks"), id, ownerID,
	).Scan(&task.ID, &task.ColumnID, &task.Title, &task.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.TaskDetail{}, ErrNotFound
		}
		return domain.TaskDetail{}, fmt.Errorf("querying task: %w", err)
	}

	subs, err := listSubtasksByTask(ctx, s.db, task.ID)
	if err != nil {
		return domain.TaskDetail{}, err
	}
	task.Subtasks = subs
	return task, nil
}

// UpdateTask applies a partial update. Supplying a column moves the task, but
// only to a column within the caller's scope. When upd.Subtasks is non-nil
// the existing subtask set is deleted and recreated from the specs with fresh
// identifiers inside one transaction; nil leaves it untouched. A failure
// partway leaves the task's scalar fields and subtasks exactly as they were.
func (s *Storage) UpdateTask(ctx context.Context, ownerID, id string, upd domain.TaskUpdate) (domain.TaskDetail, error) {
	if upd.Title != nil {
		if err := requireText("title", *upd.Title); err != nil {
			return domain.TaskDetail{}, err
		}
	}
	if upd.ColumnID != nil {
		if err := requireText("column", *upd.ColumnID); err != nil {
			return domain.TaskDetail{}, err
		}
	}
	if upd.Subtasks != nil {
		if err := validateSubtaskSpecs(*upd.Subtasks); err != nil {
			return domain.TaskDetail{}, err
		}
	}

	task := domain.TaskDetail{ID: id}
	err := s.withinTx(ctx, func(tx dbtx) error {
		err := tx.QueryRowContext(ctx,
			`SELECT column_id, title, description FROM tasks WHERE id = ? AND `+scoped("tasks"), id, ownerID,
		).Scan(&task.ColumnID, &task.Title, &task.Description)
		if err != nil {
			if err == sql.ErrNoRows {
				return ErrNotFound
			}
			return fmt.Errorf("querying task: %w", err)
		}

		if upd.ColumnID != nil && *upd.ColumnID != task.ColumnID {
			var exists int
			err := tx.QueryRowContext(ctx,
				`SELECT 1 FROM columns WHERE id = ? AND `+scoped("columns"), *upd.ColumnID, ownerID,
			).Scan(&exists)
			if err != nil {
				if err == sql.ErrNoRows {
					return ErrNotFound
				}
				return fmt.Errorf("querying column: %w", err)
			}
			task.ColumnID = *upd.ColumnID
		}
		if upd.Title != nil {
			task.Title = *upd.Title
		}
		if upd.Description != nil {
			task.Description = *upd.Description
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE tasks SET column_id = ?, title = ?, description = ? WHERE id = ?`,
			task.ColumnID, task.Title, task.Description, id)
		if err != nil {
			return fmt.Errorf("updating task: %w", err)
		}

		if upd.Subtasks != nil {
			if _, err := tx.ExecContext(ctx, `DELETE FROM subtasks WHERE task_id = ?`, id); err != nil {
				return fmt.Errorf("clearing subtasks: %w", err)
			}
			task.Subtasks = []domain.Subtask{}
			for _, spec := range *upd.Subtasks {
				sub, err := insertSubtask(ctx, tx, id, spec)
				if err != nil {
					return err
				}
				task.Subtasks = append(task.Subtasks, sub)
			}
			return nil
		}

		subs, err := listSubtasksByTask(ctx, tx, id)
		if err != nil {
			return err
		}
		task.Subtasks = subs
		return nil
	})
	if err != nil {
		return domain.TaskDetail{}, err
	}
	return task, nil
}

// DeleteTask removes a task and cascades to its subtasks.
func (s *Storage) DeleteTask(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ? AND `+scoped("tasks"), id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func validateSubtaskSpecs(subtasks []domain.SubtaskSpec) error {
	for _, spec := range subtasks {
		if err := requireText("title", spec.Title); err != nil {
			return err
		}
	}
	return nil
}

func scanTaskDetails(rows *sql.Rows) ([]domain.TaskDetail, error) {
	tasks := []domain.TaskDetail{}
	for rows.Next() {
		var t domain.TaskDetail
		if err := rows.Scan(&t.ID, &t.ColumnID, &t.Title, &t.Description); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func listTaskDetailsByColumn(ctx context.Context, q dbtx, columnID string) ([]domain.TaskDetail, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, column_id, title, description FROM tasks WHERE column_id = ? ORDER BY rowid`, columnID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks, err := scanTaskDetails(rows)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		subs, err := listSubtasksByTask(ctx, q, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].Subtasks = subs
	}
	return tasks, nil
}
