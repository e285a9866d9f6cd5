package db

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
)

// createTableSQL is idempotent; it is safe to run on every start.
//
//go:embed base.sql
var createTableSQL string

const taskColumns = `id, status, tag, content, priority, details`

const (
	selectAllSQL = `SELECT ` + taskColumns + `
				FROM tasks_table
				ORDER BY id`

	selectByIDSQL = `SELECT ` + taskColumns + `
				FROM tasks_table
				WHERE id = ?`

	insertSQL = `INSERT INTO tasks_table (status, tag, content, priority, details)
				VALUES (?, ?, ?, ?, ?)`

	deleteSQL = `DELETE FROM tasks_table WHERE id = ?`

	// toggleStatusSQL advances the status one step inside the engine:
	// pending -> in_progress -> completed -> pending.
	toggleStatusSQL = `UPDATE tasks_table
				SET status = CASE
					WHEN status = 'pending' THEN 'in_progress'
					WHEN status = 'in_progress' THEN 'completed'
					WHEN status = 'completed' THEN 'pending'
					ELSE status
				END
				WHERE id = ?`
)

const (
	filterByStatusSQL = `SELECT ` + taskColumns + `
				FROM tasks_table
				WHERE status = ?
				ORDER BY id`

	filterByTagSQL = `SELECT ` + taskColumns + `
				FROM tasks_table
				WHERE tag = ?
				ORDER BY id`

	filterByPrioritySQL = `SELECT ` + taskColumns + `
				FROM tasks_table
				WHERE priority = ?
				ORDER BY id`

	filterByStatusAndTagSQL = `SELECT ` + taskColumns + `
				FROM tasks_table
				WHERE status = ? AND tag = ?
				ORDER BY id`

	filterByStatusAndPrioritySQL = `SELECT ` + taskColumns + `
				FROM tasks_table
				WHERE status = ? AND priority = ?
				ORDER BY id`

	filterByTagAndPrioritySQL = `SELECT ` + taskColumns + `
				FROM tasks_table
				WHERE tag = ? AND priority = ?
				ORDER BY id`

	filterByAllSQL = `SELECT ` + taskColumns + `
				FROM tasks_table
				WHERE status = ? AND tag = ? AND priority = ?
				ORDER BY id`
)

// Field names a column that UpdateTask may rewrite.
type Field string

// These constants are the updatable columns, in the order they appear in a SET clause.
const (
	FieldStatus   Field = "status"
	FieldTag      Field = "tag"
	FieldContent  Field = "content"
	FieldPriority Field = "priority"
	FieldDetails  Field = "details"
)

var ErrUnknownField = errors.New("unknown field")

// updatableFields is the whitelist for dynamic updates.
func updatableFields() []Field {
	return []Field{FieldStatus, FieldTag, FieldContent, FieldPriority, FieldDetails}
}

// Changes maps a column to its new value for a partial update.
type Changes map[Field]string

// Filter holds optional equality criteria. A zero value leaves that column unconstrained.
type Filter struct {
	Status   Status
	Tag      Tag
	Priority Priority
}

// IsEmpty reports whether no criteria were supplied.
func (f Filter) IsEmpty() bool {
	return f.Status == "" && f.Tag == "" && f.Priority == ""
}

func (f Filter) validate() error {
	if f.Status != "" && !f.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, f.Status)
	}

	if f.Tag != "" && !f.Tag.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTag, f.Tag)
	}

	if f.Priority != "" && !f.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, f.Priority)
	}

	return nil
}

// filterKey records which criteria were supplied.
type filterKey struct {
	status, tag, priority bool
}

// filterStrategy pairs a statement with the order its placeholders expect.
type filterStrategy struct {
	query  string
	params []Field
}

var filterStrategies = map[filterKey]filterStrategy{
	{true, false, false}: {filterByStatusSQL, []Field{FieldStatus}},
	{false, true, false}: {filterByTagSQL, []Field{FieldTag}},
	{false, false, true}: {filterByPrioritySQL, []Field{FieldPriority}},
	{true, true, false}:  {filterByStatusAndTagSQL, []Field{FieldStatus, FieldTag}},
	{true, false, true}:  {filterByStatusAndPrioritySQL, []Field{FieldStatus, FieldPriority}},
	{false, true, true}:  {filterByTagAndPrioritySQL, []Field{FieldTag, FieldPriority}},
	{true, true, true}:   {filterByAllSQL, []Field{FieldStatus, FieldTag, FieldPriority}},
}

// filterQuery selects the statement for f and returns it with its arguments.
func filterQuery(f Filter) (string, []any) {
	key := filterKey{status: f.Status != "", tag: f.Tag != "", priority: f.Priority != ""}

	strategy, ok := filterStrategies[key]
	if !ok {
		return selectAllSQL, nil
	}

	values := map[Field]string{
		FieldStatus:   string(f.Status),
		FieldTag:      string(f.Tag),
		FieldPriority: string(f.Priority),
	}

	args := make([]any, 0, len(strategy.params))
	for _, field := range strategy.params {
		args = append(args, values[field])
	}

	return strategy.query, args
}

// buildUpdate assembles an UPDATE whose SET clause holds exactly the fields in
// changes, in whitelist order, followed by the id predicate.
func buildUpdate(id int64, changes Changes) (string, []any, error) {
	if err := changes.validate(); err != nil {
		return "", nil, err
	}

	sets := make([]string, 0, len(changes))
	args := make([]any, 0, len(changes)+1)

	for _, field := range updatableFields() {
		value, ok := changes[field]
		if !ok {
			continue
		}

		sets = append(sets, string(field)+" = ?")

		if field == FieldDetails {
			args = append(args, nullable(value))
		} else {
			args = append(args, value)
		}
	}

	args = append(args, id)

	query := "UPDATE tasks_table SET " + strings.Join(sets, ", ") + " WHERE id = ?"

	return query, args, nil
}

func (c Changes) validate() error {
	allowed := map[Field]bool{}
	for _, field := range updatableFields() {
		allowed[field] = true
	}

	for field, value := range c {
		if !allowed[field] {
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}

		var err error

		switch field {
		case FieldStatus:
			if !Status(value).IsValid() {
				err = fmt.Errorf("%w: %q", ErrInvalidStatus, value)
			}
		case FieldTag:
			if !Tag(value).IsValid() {
				err = fmt.Errorf("%w: %q", ErrInvalidTag, value)
			}
		case FieldPriority:
			if !Priority(value).IsValid() {
				err = fmt.Errorf("%w: %q", ErrInvalidPriority, value)
			}
		case FieldContent:
			if strings.TrimSpace(value) == "" {
				err = ErrEmptyContent
			}
		case FieldDetails:
		}

		if err != nil {
			return err
		}
	}

	return nil
}
