package controller

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/matt-steen/tasks-cli/pkg/db"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const noDetails = "[::d]no details[::-]"

func (c *Controller) getDetailsGrid() *tview.Grid {
	title := tview.NewTextView().SetDynamicColors(true).
		SetText(fmt.Sprintf("[yellow]Task Details[white]\n[orange]<%s>[white] %s",
			KeyEsc, c.formEvents[KeyEsc].Description))

	c.details = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWordWrap(true)

	grid := tview.NewGrid().SetBorders(true).SetRows(2, 0)

	grid.AddItem(title, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.details, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) showDetails(id int64) {
	task, err := c.svc.GetTaskByID(c.ctx, id)
	if err != nil {
		c.notify(fmt.Sprintf("couldn't load task %d", id), err)
		c.reload()

		return
	}

	c.details.SetText(c.renderDetails(task)).ScrollToBeginning()

	c.switchTo(pageDetails, c.handleFormKeys)
	c.app.SetFocus(c.details)
}

// renderDetails formats a task for the details page. The free-form details are
// treated as markdown.
func (c *Controller) renderDetails(task *db.Task) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[yellow]#%d[white] %s\n\n", task.ID, tview.Escape(task.Content))
	fmt.Fprintf(&b, "Status:   %s\n", c.styles.Status(task.Status))
	fmt.Fprintf(&b, "Tag:      %s\n", task.Tag)
	fmt.Fprintf(&b, "Priority: %s\n\n", c.styles.Priority(task.Priority))

	if !task.HasDetails() {
		b.WriteString(noDetails)

		return b.String()
	}

	b.WriteString(renderMarkdown(task.Details))

	return b.String()
}

// renderMarkdown converts markdown to tview color tags, falling back to the
// escaped source when rendering fails.
func renderMarkdown(md string) string {
	out, err := glamour.Render(md, "dark")
	if err != nil {
		log.Warn().Err(err).Msg("error rendering details")

		return tview.Escape(md)
	}

	return strings.TrimSpace(tview.TranslateANSI(out))
}
