package storage

// Visibility of every entity derives from its ancestor board's owner; there
// is no per-entity ACL. ownedExpr holds one predicate per table restricting
// rows to those reachable from boards owned by the user bound as the
// predicate's single parameter. Queries append these fragments instead of
// re-deriving the ancestor walk per call site.
var ownedExpr = map[string]string{
	"boards": "boards.owner_id = ?",
	"columns": `columns.board_id IN (
		SELECT b.id FROM boards b WHERE b.owner_id = ?)`,
	"tasks": `tasks.column_id IN (
		SELECT c.id FROM columns c
		JOIN boards b ON b.id = c.board_id
		WHERE b.owner_id = ?)`,
	"subtasks": `subtasks.task_id IN (
		SELECT t.id FROM tasks t
		JOIN columns c ON c.id = t.column_id
		JOIN boards b ON b.id = c.board_id
		WHERE b.owner_id = ?)`,
}

// scoped returns the ownership predicate for the given table.
func scoped(table string) string {
	expr, ok := ownedExpr[table]
	if !ok {
		panic("storage: no ownership predicate for table " + table)
	}
	return expr
}
