package domain

// Task is a unit of work within a column. ColumnID is mutable: updating it
// moves the task to another column on the same owner's boards.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ColumnID    string `json:"column"`
}

// Subtask is a leaf checklist item under a task.
type Subtask struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"is_completed"`
	TaskID      string `json:"task"`
}

// SubtaskSpec describes a subtask to create under a task as part of an
// embedded create or a replace-all update.
type SubtaskSpec struct {
	Title       string `json:"title"`
	IsCompleted bool   `json:"is_completed"`
}

// TaskUpdate carries a partial task update. Nil fields are untouched. A
// non-nil Subtasks slice replaces the task's entire subtask set, even when
// empty; nil leaves existing subtasks alone.
type TaskUpdate struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	ColumnID    *string        `json:"column"`
	Subtasks    *[]SubtaskSpec `json:"subtasks"`
}

// SubtaskUpdate carries a partial subtask update.
type SubtaskUpdate struct {
	Title       *string `json:"title"`
	IsCompleted *bool   `json:"is_completed"`
}

// TaskDetail is a task with its subtasks expanded.
type TaskDetail struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ColumnID    string    `json:"column"`
	Subtasks    []Subtask `json:"subtasks"`
}
