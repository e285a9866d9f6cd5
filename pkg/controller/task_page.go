package controller

import (
	"fmt"
	"sort"

	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const (
	headerColumns = 3
	headerRows    = 4
)

func (c *Controller) getTaskGrid() *tview.Grid {
	c.header = tview.NewTable().SetBorders(false).SetSelectable(false, false)
	c.table = c.getTable()
	c.statusBar = tview.NewTextView().SetDynamicColors(true)

	legend := tview.NewTextView().SetDynamicColors(true).SetText(c.styles.Legend())

	grid := tview.NewGrid().SetBorders(true).SetRows(headerRows, 2, 0, 1)

	grid.AddItem(c.header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(legend, 1, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.table, 2, 0, 1, 1, 0, 0, true)
	grid.AddItem(c.statusBar, 3, 0, 1, 1, 0, 0, false)

	return grid
}

// updateHeader shows the title, the active filter and the keyboard shortcuts,
// sorted alphabetically and spread over a few columns.
func (c *Controller) updateHeader() {
	c.header.Clear()

	row := 0
	c.header.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("[yellow]Tasks[white] (%d)", len(c.content.rows))))
	c.header.SetCell(row, 1, tview.NewTableCell(fmt.Sprintf("[yellow]filter:[white] %s", c.filter)))
	row++

	shortcuts := []string{}
	for key, event := range c.events {
		shortcuts = append(shortcuts, fmt.Sprintf("[orange]<%s>[white] %s", key, event.Description))
	}

	sort.Strings(shortcuts)

	for i, text := range shortcuts {
		c.header.SetCell(row+i/headerColumns, i%headerColumns, tview.NewTableCell(text).SetExpansion(1))
	}
}

func (c *Controller) getTable() *tview.Table {
	c.content = NewTaskContent(c.styles)

	table := tview.NewTable().SetBorders(false)
	table.SetContent(c.content)
	table.SetSelectable(true, false)
	table.SetFixed(1, 0)
	table.SetSelectionChangedFunc(c.setCurrentRow)

	return table
}

// when the row selection changes, update the selected task.
func (c *Controller) setCurrentRow(row, col int) {
	id, ok := c.content.IDAt(row)
	if !ok {
		id = 0
	}

	c.selectedID = id

	log.Debug().Int("row", row).Int64("id", id).Msg("selected task")
}
