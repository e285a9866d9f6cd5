package controller

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/tasks-cli/pkg/db"
	"github.com/rs/zerolog/log"
)

var errNoSelection = errors.New("no task selected")

func (c *Controller) initEvents() {
	c.events = map[Key]KeyEvent{}
	c.formEvents = map[Key]KeyEvent{}

	c.events[KeyN] = KeyEvent{Description: "New Task", Action: c.getNewAction()}
	c.events[KeyE] = KeyEvent{Description: "Edit Task", Action: c.getSelectedAction(c.editTask)}
	c.events[KeyD] = KeyEvent{Description: "Delete Task", Action: c.getSelectedAction(c.confirmDelete)}
	c.events[KeyM] = KeyEvent{Description: "Mark (cycle status)", Action: c.getSelectedAction(c.markTask)}
	c.events[KeyEnter] = KeyEvent{Description: "Show Details", Action: c.getSelectedAction(c.showDetails)}
	c.events[KeyF] = KeyEvent{Description: "Filter", Action: c.getFilterAction()}
	c.events[KeyC] = KeyEvent{Description: "Clear Filter", Action: c.getClearFilterAction()}

	c.initExitEvent(c.events)

	c.formEvents[KeyEsc] = KeyEvent{Description: "Back", Action: c.getBackAction()}
}

func (c *Controller) getExitAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		log.Info().Msg("terminating application")

		c.app.Stop()

		return nil
	}
}

func (c *Controller) initExitEvent(events map[Key]KeyEvent) {
	events[KeyQ] = KeyEvent{
		Description: "Exit",
		Action:      c.getExitAction(),
	}
}

func (c *Controller) getBackAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.showTasks()

		return nil
	}
}

func (c *Controller) getNewAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.editingID = 0
		c.resetForm(nil)
		c.switchToForm("New Task")

		return nil
	}
}

// getSelectedAction wraps an action that needs the highlighted task.
func (c *Controller) getSelectedAction(action func(id int64)) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		if c.selectedID == 0 {
			c.notify("nothing to do", errNoSelection)

			return nil
		}

		action(c.selectedID)

		return nil
	}
}

func (c *Controller) getFilterAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.switchToFilter()

		return nil
	}
}

func (c *Controller) getClearFilterAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.applyFilter(filterValues{})

		return nil
	}
}

func (c *Controller) editTask(id int64) {
	task, err := c.svc.GetTaskByID(c.ctx, id)
	if err != nil {
		c.notify(fmt.Sprintf("couldn't load task %d", id), err)

		return
	}

	c.editingID = id
	c.resetForm(task)
	c.switchToForm(fmt.Sprintf("Edit Task %d", id))
}

func (c *Controller) markTask(id int64) {
	task, err := c.svc.CheckOrUncheckTask(c.ctx, id)
	if err != nil {
		c.notify(fmt.Sprintf("couldn't change the status of task %d", id), err)
		c.reload()

		return
	}

	c.reload()
	c.notify(fmt.Sprintf("task %d is now %s", id, task.Status), nil)
}

func (c *Controller) deleteTask(id int64) {
	if err := c.svc.DeleteTask(c.ctx, id); err != nil {
		c.notify(fmt.Sprintf("couldn't delete task %d", id), err)

		return
	}

	c.reload()
	c.notify(fmt.Sprintf("task %d deleted", id), nil)
}

func (c *Controller) applyFilter(filter filterValues) {
	previous := c.filter
	c.filter = filter

	if err := c.refresh(); err != nil {
		c.filter = previous
		c.notify("couldn't apply the filter", err)
		c.reload()

		return
	}

	c.notify(fmt.Sprintf("filter: %s", filter), nil)
}

// reload refreshes the list and reports failures in the status bar.
func (c *Controller) reload() {
	if err := c.refresh(); err != nil {
		c.notify("couldn't load tasks", err)
	}
}

// taskLabel is a short description used in prompts.
func taskLabel(task *db.Task) string {
	const maxLen = 40

	content := []rune(task.Content)
	if len(content) > maxLen {
		return string(content[:maxLen]) + "…"
	}

	return task.Content
}
