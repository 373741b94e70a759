package api

import (
	"context"

	"taskboard-api/domain"
	"taskboard-api/suggest"
)

// Storage abstracts persistence for handlers. Every read and write is scoped
// to the owner of the entity's ancestor board; implementations report
// out-of-scope entities with storage.ErrNotFound, indistinguishable from
// truly absent ones.
type Storage interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (domain.User, error)
	UserByUsername(ctx context.Context, username string) (domain.User, error)

	ListBoards(ctx context.Context, ownerID string) ([]domain.BoardSummary, error)
	CreateBoard(ctx context.Context, ownerID, name string, columns []domain.ColumnSpec) (domain.BoardSummary, error)
	GetBoard(ctx context.Context, ownerID, id string) (domain.BoardDetail, error)
	UpdateBoard(ctx context.Context, ownerID, id string, upd domain.BoardUpdate) (domain.BoardSummary, error)
	ReplaceColumns(ctx context.Context, ownerID, boardID string, columns []domain.ColumnSpec) ([]domain.Column, error)
	DeleteBoard(ctx context.Context, ownerID, id string) error

	ListColumns(ctx context.Context, ownerID string) ([]domain.ColumnDetail, error)
	CreateColumn(ctx context.Context, ownerID, boardID, name string) (domain.Column, error)
	GetColumn(ctx context.Context, ownerID, id string) (domain.ColumnDetail, error)
	UpdateColumn(ctx context.Context, ownerID, id string, upd domain.ColumnUpdate) (domain.Column, error)
	DeleteColumn(ctx context.Context, ownerID, id string) error

	ListTasks(ctx context.Context, ownerID string) ([]domain.TaskDetail, error)
	CreateTask(ctx context.Context, ownerID, columnID, title, description string, subtasks []domain.SubtaskSpec) (domain.TaskDetail, error)
	GetTask(ctx context.Context, ownerID, id string) (domain.TaskDetail, error)
	UpdateTask(ctx context.Context, ownerID, id string, upd domain.TaskUpdate) (domain.TaskDetail, error)
	DeleteTask(ctx context.Context, ownerID, id string) error

	ListSubtasks(ctx context.Context, ownerID string) ([]domain.Subtask, error)
	CreateSubtask(ctx context.Context, ownerID, taskID, title string, isCompleted bool) (domain.Subtask, error)
	GetSubtask(ctx context.Context, ownerID, id string) (domain.Subtask, error)
	UpdateSubtask(ctx context.Context, ownerID, id string, upd domain.SubtaskUpdate) (domain.Subtask, error)
	DeleteSubtask(ctx context.Context, ownerID, id string) error
}

// Authenticator is implemented by types able to issue bearer tokens and
// extract user IDs from Authorization headers.
type Authenticator interface {
	UserIDFromAuthHeader(string) (string, error)
	IssueToken(userID string) (string, error)
}

// Suggester produces subtask title suggestions for a task description.
type Suggester interface {
	Suggest(ctx context.Context, description string) ([]suggest.Title, error)
}
