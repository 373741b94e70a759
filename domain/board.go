package domain

// Board is the top-level owned container of columns. OwnerID is stamped from
// the authenticated caller at creation and is never client-supplied.
type Board struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	OwnerID string `json:"-"`
}

// Column is a named bucket of tasks within a board.
type Column struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	BoardID string `json:"board"`
}

// ColumnSpec describes a column to create under a board, either embedded in a
// board create/update or via the set_columns action.
type ColumnSpec struct {
	Name string `json:"name"`
}

// BoardUpdate carries a partial board update. Nil fields are left untouched.
// A non-nil empty Columns slice deletes every existing column; a nil Columns
// pointer means the column set is not being replaced.
type BoardUpdate struct {
	Name    *string       `json:"name"`
	Columns *[]ColumnSpec `json:"columns"`
}

// ColumnUpdate carries a partial column update. The board reference is
// immutable and deliberately absent.
type ColumnUpdate struct {
	Name *string `json:"name"`
}

// BoardSummary is a board with its column headers, as returned by the list
// and create endpoints.
type BoardSummary struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// BoardDetail is the fully nested Board -> Columns -> Tasks -> Subtasks tree
// returned by the board retrieve endpoint.
type BoardDetail struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Columns []ColumnDetail `json:"columns"`
}

// ColumnDetail is a column with its tasks expanded.
type ColumnDetail struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	BoardID string       `json:"board"`
	Tasks   []TaskDetail `json:"tasks"`
}
