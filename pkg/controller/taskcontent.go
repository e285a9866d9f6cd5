package controller

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/tasks-cli/pkg/service"
	"github.com/rivo/tview"
)

const (
	contentRatio = 4
	tagRatio     = 2
)

// TaskContent implements tview.TableContent, which tview.Table uses to update data.
// Row 0 holds the headers; row i holds rows[i-1].
type TaskContent struct {
	tview.TableContentReadOnly
	rows   []service.DisplayRow
	styles Styles
}

// NewTaskContent creates an empty TaskContent.
func NewTaskContent(styles Styles) *TaskContent {
	return &TaskContent{styles: styles}
}

// SetRows replaces the displayed rows.
func (t *TaskContent) SetRows(rows []service.DisplayRow) {
	t.rows = rows
}

// RowForID returns the table row showing the task with the given id, or -1.
func (t *TaskContent) RowForID(id int64) int {
	for i, row := range t.rows {
		if row.ID == id {
			return i + 1
		}
	}

	return -1
}

// IDAt returns the task id shown at the given table row.
func (t *TaskContent) IDAt(row int) (int64, bool) {
	// adjust for the header row
	if idx := row - 1; idx >= 0 && idx < len(t.rows) {
		return t.rows[idx].ID, true
	}

	return 0, false
}

// GetCell returns the cell at the given position or nil if no cell.
func (t *TaskContent) GetCell(row, col int) *tview.TableCell {
	headers := service.DisplayHeaders()

	if col < 0 || col >= len(headers) {
		return nil
	}

	if row == 0 {
		return tview.NewTableCell(headers[col]).SetExpansion(expansion(col)).
			SetTextColor(tcell.ColorYellow).SetSelectable(false)
	}

	if row < 0 || row > len(t.rows) {
		return nil
	}

	task := t.rows[row-1]

	switch col {
	case 0:
		return tview.NewTableCell(strconv.FormatInt(task.ID, 10)).SetReference(task.ID).SetAlign(tview.AlignRight)
	case 1:
		return tview.NewTableCell(t.styles.Status(task.Status)).SetExpansion(expansion(col))
	case 2:
		return tview.NewTableCell(string(task.Tag)).SetExpansion(expansion(col))
	case 3:
		return tview.NewTableCell(tview.Escape(task.Content)).SetExpansion(expansion(col))
	case 4:
		return tview.NewTableCell(t.styles.Priority(task.Priority)).SetExpansion(expansion(col))
	case 5:
		return tview.NewTableCell(task.Notes).SetAlign(tview.AlignCenter)
	}

	return nil
}

// GetRowCount returns the number of rows in the table.
func (t *TaskContent) GetRowCount() int {
	return len(t.rows) + 1
}

// GetColumnCount returns the number of columns in the table.
func (t *TaskContent) GetColumnCount() int {
	return len(service.DisplayHeaders())
}

func expansion(col int) int {
	switch col {
	case 0, 5:
		return 0
	case 2:
		return tagRatio
	case 3:
		return contentRatio
	default:
		return 1
	}
}
