package controller

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/tasks-cli/pkg/config"
	"github.com/matt-steen/tasks-cli/pkg/db"
	"github.com/matt-steen/tasks-cli/pkg/service"
	"github.com/stretchr/testify/assert"
)

func TestAsKey(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal(KeyN, AsKey(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone)))
	assert.Equal(KeyEnter, AsKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))
	assert.Equal(KeyEsc, AsKey(tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone)))

	assert.Equal("n", KeyN.String())
	assert.Equal("Enter", KeyEnter.String())
	assert.Equal("Esc", KeyEsc.String())
}

func TestTaskContent(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	content := NewTaskContent(NewStyles(config.DefaultSettings().UI))

	assert.Equal(1, content.GetRowCount())
	assert.Equal(6, content.GetColumnCount())

	content.SetRows([]service.DisplayRow{
		{ID: 4, Status: db.StatusPending, Tag: db.TagWork, Content: "ship [it]", Priority: db.PriorityHigh, Notes: "✎"},
		{ID: 9, Status: db.StatusCompleted, Tag: db.TagCalendar, Content: "dentist", Priority: db.PriorityLow},
	})

	assert.Equal(3, content.GetRowCount())

	header := content.GetCell(0, 3)
	assert.Equal("Content", header.Text)
	assert.True(header.NotSelectable)

	assert.Equal("4", content.GetCell(1, 0).Text)
	assert.Equal(int64(4), content.GetCell(1, 0).GetReference())
	assert.Contains(content.GetCell(1, 1).Text, "pending")
	assert.Equal("work", content.GetCell(1, 2).Text)
	assert.Equal("ship [it[]", content.GetCell(1, 3).Text)
	assert.Contains(content.GetCell(1, 4).Text, "high")
	assert.Equal("✎", content.GetCell(1, 5).Text)
	assert.Equal("", content.GetCell(2, 5).Text)

	assert.Nil(content.GetCell(3, 0))
	assert.Nil(content.GetCell(1, 6))

	id, ok := content.IDAt(2)
	assert.True(ok)
	assert.Equal(int64(9), id)

	_, ok = content.IDAt(0)
	assert.False(ok)

	assert.Equal(2, content.RowForID(9))
	assert.Equal(-1, content.RowForID(5))
}

func TestStyles(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ui := config.DefaultSettings().UI
	styles := NewStyles(ui)

	assert.Equal("["+ui.Colors.Red+"]"+ui.Icons.Pending+" pending[-]", styles.Status(db.StatusPending))
	assert.Equal("["+ui.Colors.Green+"]"+ui.Icons.Low+" low[-]", styles.Priority(db.PriorityLow))
	assert.Equal("bogus", styles.Status(db.Status("bogus")))

	plain := NewStyles(config.UI{})
	assert.Equal("in_progress", plain.Status(db.StatusInProgress))

	legend := styles.Legend()
	for _, status := range db.Statuses() {
		assert.Contains(legend, string(status))
	}

	for _, priority := range db.Priorities() {
		assert.Contains(legend, string(priority))
	}
}

func TestFormOptions(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal([]string{"pending", "in_progress", "completed"}, statusOptions())
	assert.Equal([]string{anyOption, "low", "medium", "high"}, withAny(priorityOptions()))
	assert.Equal(2, optionIndex(tagOptions(), "work"))
	assert.Equal(0, optionIndex(tagOptions(), "missing"))
	assert.Equal("", fromOption(anyOption))
	assert.Equal("work", fromOption("work"))
}

func TestTaskLabel(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal("short", taskLabel(&db.Task{Content: "short"}))

	long := taskLabel(&db.Task{Content: "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyz"})
	assert.Equal("abcdefghijklmnopqrstuvwxyzabcdefghijklmn…", long)
}
