package controller

import (
	"fmt"

	"github.com/matt-steen/tasks-cli/pkg/db"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const (
	anyOption = "any"

	contentMax    = 200
	detailsHeight = 8
)

func (c *Controller) getFormGrid() *tview.Grid {
	c.formTitle = tview.NewTextView().SetDynamicColors(true)
	c.formMessage = tview.NewTextView().SetDynamicColors(true)

	c.initForm()

	grid := tview.NewGrid().SetBorders(true).SetRows(2, 0, 1)

	grid.AddItem(c.formTitle, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.taskForm, 1, 0, 1, 1, 0, 0, true)
	grid.AddItem(c.formMessage, 2, 0, 1, 1, 0, 0, false)

	return grid
}

func (c *Controller) initForm() {
	c.taskForm = tview.NewForm().
		AddInputField("Content", "", 0, tview.InputFieldMaxLength(contentMax), nil).
		AddDropDown("Status", statusOptions(), 0, nil).
		AddDropDown("Tag", tagOptions(), 0, nil).
		AddDropDown("Priority", priorityOptions(), 0, nil).
		AddTextArea("Details", "", 0, detailsHeight, 0, nil)

	c.contentField, _ = c.taskForm.GetFormItemByLabel("Content").(*tview.InputField)
	c.statusDrop, _ = c.taskForm.GetFormItemByLabel("Status").(*tview.DropDown)
	c.tagDrop, _ = c.taskForm.GetFormItemByLabel("Tag").(*tview.DropDown)
	c.priorityDrop, _ = c.taskForm.GetFormItemByLabel("Priority").(*tview.DropDown)
	c.detailsArea, _ = c.taskForm.GetFormItemByLabel("Details").(*tview.TextArea)

	c.taskForm.AddButton("Save", c.saveTask)
	c.taskForm.AddButton("Cancel", c.showTasks)
}

// resetForm fills the form with the given task, or with the defaults when task is nil.
// New tasks always start out pending, so the status is only editable for existing ones.
func (c *Controller) resetForm(task *db.Task) {
	if task == nil {
		task = &db.Task{Status: db.StatusPending, Tag: db.TagPersonal, Priority: db.PriorityLow}
	}

	c.contentField.SetText(task.Content)
	c.statusDrop.SetCurrentOption(optionIndex(statusOptions(), string(task.Status)))
	c.tagDrop.SetCurrentOption(optionIndex(tagOptions(), string(task.Tag)))
	c.priorityDrop.SetCurrentOption(optionIndex(priorityOptions(), string(task.Priority)))
	c.detailsArea.SetText(task.Details, false)
	c.statusDrop.SetDisabled(c.editingID == 0)

	c.formMessage.SetText("")
}

func (c *Controller) switchToForm(title string) {
	c.formTitle.SetText(fmt.Sprintf("[yellow]%s[white]\n[orange]<%s>[white] %s",
		title, KeyEsc, c.formEvents[KeyEsc].Description))

	c.switchTo(pageForm, c.handleFormKeys)

	c.taskForm.SetFocus(0)
	c.app.SetFocus(c.taskForm)
}

func (c *Controller) saveTask() {
	var (
		task *db.Task
		err  error
	)

	_, status := c.statusDrop.GetCurrentOption()
	_, tag := c.tagDrop.GetCurrentOption()
	_, priority := c.priorityDrop.GetCurrentOption()
	content := c.contentField.GetText()
	details := c.detailsArea.GetText()

	log.Debug().Int64("id", c.editingID).Str("content", content).Msg("saving task")

	if c.editingID == 0 {
		task, err = c.svc.CreateTask(c.ctx, content, tag, priority, details)
	} else {
		task, err = c.svc.EditTask(c.ctx, c.editingID, status, content, tag, priority, details)
	}

	if err != nil {
		log.Warn().Err(err).Msg("error saving the task")
		c.formMessage.SetText(fmt.Sprintf("[red]%s", tview.Escape(err.Error())))

		return
	}

	verb := "updated"
	if c.editingID == 0 {
		verb = "created"
	}

	c.editingID = 0
	c.selectedID = task.ID

	c.reload()
	c.showTasks()
	c.notify(fmt.Sprintf("task %d %s", task.ID, verb), nil)
}

func (c *Controller) getFilterGrid() *tview.Grid {
	title := tview.NewTextView().SetDynamicColors(true).
		SetText(fmt.Sprintf("[yellow]Filter Tasks[white]\n[orange]<%s>[white] %s",
			KeyEsc, c.formEvents[KeyEsc].Description))

	c.initFilterForm()

	grid := tview.NewGrid().SetBorders(true).SetRows(2, 0)

	grid.AddItem(title, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.filterForm, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) initFilterForm() {
	c.filterForm = tview.NewForm().
		AddDropDown("Status", withAny(statusOptions()), 0, nil).
		AddDropDown("Tag", withAny(tagOptions()), 0, nil).
		AddDropDown("Priority", withAny(priorityOptions()), 0, nil)

	c.filterStatus, _ = c.filterForm.GetFormItemByLabel("Status").(*tview.DropDown)
	c.filterTag, _ = c.filterForm.GetFormItemByLabel("Tag").(*tview.DropDown)
	c.filterPriority, _ = c.filterForm.GetFormItemByLabel("Priority").(*tview.DropDown)

	c.filterForm.AddButton("Apply", func() {
		_, status := c.filterStatus.GetCurrentOption()
		_, tag := c.filterTag.GetCurrentOption()
		_, priority := c.filterPriority.GetCurrentOption()

		c.showTasks()
		c.applyFilter(filterValues{
			status:   fromOption(status),
			tag:      fromOption(tag),
			priority: fromOption(priority),
		})
	})
	c.filterForm.AddButton("Cancel", c.showTasks)
}

// switchToFilter opens the filter form preset to the active criteria.
func (c *Controller) switchToFilter() {
	c.filterStatus.SetCurrentOption(optionIndex(withAny(statusOptions()), orAny(c.filter.status)))
	c.filterTag.SetCurrentOption(optionIndex(withAny(tagOptions()), orAny(c.filter.tag)))
	c.filterPriority.SetCurrentOption(optionIndex(withAny(priorityOptions()), orAny(c.filter.priority)))

	c.switchTo(pageFilter, c.handleFormKeys)

	c.filterForm.SetFocus(0)
	c.app.SetFocus(c.filterForm)
}

func (c *Controller) getConfirmModal() *tview.Modal {
	c.confirm = tview.NewModal().
		AddButtons([]string{"Delete", "Cancel"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			c.closeConfirm(buttonLabel == "Delete")
		})

	return c.confirm
}

// closeConfirm leaves the delete dialog, removing the pending task if confirmed.
func (c *Controller) closeConfirm(confirmed bool) {
	id := c.deletingID
	c.deletingID = 0

	c.showTasks()

	if confirmed && id != 0 {
		c.deleteTask(id)
	}
}

func (c *Controller) confirmDelete(id int64) {
	task, err := c.svc.GetTaskByID(c.ctx, id)
	if err != nil {
		c.notify(fmt.Sprintf("couldn't load task %d", id), err)
		c.reload()

		return
	}

	c.deletingID = id
	c.confirm.SetText(fmt.Sprintf("Delete task %d (%s)?", id, taskLabel(task)))
	c.confirm.SetFocus(1)

	c.switchTo(pageConfirm, c.handleFormKeys)
	c.app.SetFocus(c.confirm)
}

func statusOptions() []string {
	options := []string{}
	for _, status := range db.Statuses() {
		options = append(options, string(status))
	}

	return options
}

func tagOptions() []string {
	options := []string{}
	for _, tag := range db.Tags() {
		options = append(options, string(tag))
	}

	return options
}

func priorityOptions() []string {
	options := []string{}
	for _, priority := range db.Priorities() {
		options = append(options, string(priority))
	}

	return options
}

func withAny(options []string) []string {
	return append([]string{anyOption}, options...)
}

// optionIndex returns the position of value in options, or 0 when absent.
func optionIndex(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}

	return 0
}

func fromOption(option string) string {
	if option == anyOption {
		return ""
	}

	return option
}
