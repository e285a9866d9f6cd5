package controller

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/tasks-cli/pkg/config"
	"github.com/matt-steen/tasks-cli/pkg/service"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const (
	pageTasks   = "tasks"
	pageForm    = "form"
	pageFilter  = "filter"
	pageDetails = "details"
	pageConfirm = "confirm"
)

// Controller mediates between the task service and the view.
type Controller struct {
	ctx       context.Context
	svc       *service.TaskService
	styles    Styles
	app       *tview.Application
	pages     *tview.Pages
	header    *tview.Table
	table     *tview.Table
	content   *TaskContent
	statusBar *tview.TextView
	details   *tview.TextView
	confirm   *tview.Modal

	taskForm       *tview.Form
	formTitle      *tview.TextView
	formMessage    *tview.TextView
	contentField   *tview.InputField
	statusDrop     *tview.DropDown
	tagDrop        *tview.DropDown
	priorityDrop   *tview.DropDown
	detailsArea    *tview.TextArea
	filterForm     *tview.Form
	filterStatus   *tview.DropDown
	filterTag      *tview.DropDown
	filterPriority *tview.DropDown

	// selectedID is the id of the highlighted task, zero when the list is empty.
	selectedID int64
	// editingID is the task being edited in the form, zero when creating.
	editingID int64
	// deletingID is the task awaiting confirmation in the delete dialog.
	deletingID int64
	filter     filterValues

	events     map[Key]KeyEvent
	formEvents map[Key]KeyEvent
}

// KeyEvent defines an event associated with a keypress.
type KeyEvent struct {
	Description string
	Action      func(*tcell.EventKey) *tcell.EventKey
}

// filterValues holds the raw filter criteria; blank means any.
type filterValues struct {
	status, tag, priority string
}

func (f filterValues) isEmpty() bool {
	return f.status == "" && f.tag == "" && f.priority == ""
}

func (f filterValues) String() string {
	if f.isEmpty() {
		return "none"
	}

	return fmt.Sprintf("status=%s tag=%s priority=%s", orAny(f.status), orAny(f.tag), orAny(f.priority))
}

// NewController creates a new Controller to run the app.
func NewController(ctx context.Context, svc *service.TaskService, settings config.Settings) (*Controller, error) {
	c := Controller{
		ctx:    ctx,
		svc:    svc,
		styles: NewStyles(settings.UI),
		app:    tview.NewApplication(),
		pages:  tview.NewPages(),
	}

	c.initEvents()

	c.pages.AddPage(pageTasks, c.getTaskGrid(), true, true)
	c.pages.AddPage(pageForm, c.getFormGrid(), true, false)
	c.pages.AddPage(pageFilter, c.getFilterGrid(), true, false)
	c.pages.AddPage(pageDetails, c.getDetailsGrid(), true, false)
	c.pages.AddPage(pageConfirm, c.getConfirmModal(), true, false)

	if err := c.refresh(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Go starts the app and blocks until it exits.
func (c *Controller) Go() error {
	c.showTasks()

	if err := c.app.SetRoot(c.pages, true).Run(); err != nil {
		return fmt.Errorf("error running the app: %w", err)
	}

	return nil
}

// refresh reloads the task list, applying the current filter.
func (c *Controller) refresh() error {
	var (
		rows []service.DisplayRow
		err  error
	)

	if c.filter.isEmpty() {
		rows, err = c.svc.GetTasksForUI(c.ctx)
	} else {
		rows, err = c.svc.FilterTasksForUI(c.ctx, c.filter.status, c.filter.tag, c.filter.priority)
	}

	if err != nil {
		return fmt.Errorf("error loading tasks: %w", err)
	}

	c.content.SetRows(rows)
	c.updateHeader()
	c.restoreSelection()

	return nil
}

// restoreSelection keeps the highlighted task selected after a reload, or falls
// back to the first row.
func (c *Controller) restoreSelection() {
	row := c.content.RowForID(c.selectedID)
	if row < 0 {
		row = 1
	}

	if id, ok := c.content.IDAt(row); ok {
		c.selectedID = id
		c.table.Select(row, 0)
	} else {
		c.selectedID = 0
	}
}

// notify writes a message to the status bar; errors are shown in red and logged.
func (c *Controller) notify(msg string, err error) {
	if err != nil {
		log.Warn().Err(err).Msg(msg)
		c.statusBar.SetText(fmt.Sprintf("[red]%s: %s", msg, tview.Escape(err.Error())))

		return
	}

	log.Debug().Msg(msg)
	c.statusBar.SetText(fmt.Sprintf("[green]%s", tview.Escape(msg)))
}

func (c *Controller) switchTo(page string, capture func(*tcell.EventKey) *tcell.EventKey) {
	c.pages.SwitchToPage(page)
	c.app.SetInputCapture(capture)
}

func (c *Controller) showTasks() {
	c.switchTo(pageTasks, c.handleKeys)
	c.app.SetFocus(c.table)
}

func (c *Controller) handleKeys(evt *tcell.EventKey) *tcell.EventKey {
	if k, ok := c.events[AsKey(evt)]; ok {
		return k.Action(evt)
	}

	return evt
}

func (c *Controller) handleFormKeys(evt *tcell.EventKey) *tcell.EventKey {
	if k, ok := c.formEvents[AsKey(evt)]; ok {
		return k.Action(evt)
	}

	return evt
}

func orAny(value string) string {
	if value == "" {
		return anyOption
	}

	return value
}
