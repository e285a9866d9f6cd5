package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/matt-steen/tasks-cli/pkg/db"
	"github.com/matt-steen/tasks-cli/pkg/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getService(t *testing.T, opts ...service.Option) (*service.TaskService, *db.Database) {
	t.Helper()

	database, err := db.NewDatabase(context.Background(), filepath.Join(t.TempDir(), "tasks.sqlite"))
	require.NoError(t, err)

	return service.NewTaskService(database, opts...), database
}

func addTask(t *testing.T, svc *service.TaskService, content string, opts ...db.TaskOption) *db.Task {
	t.Helper()

	task, err := db.NewTask(content, opts...)
	require.NoError(t, err)

	_, err = svc.NewTask(context.Background(), task)
	require.NoError(t, err)

	return task
}

func TestGetTasksForUI(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	svc, _ := getService(t)

	plain := addTask(t, svc, "plain", db.WithTag(db.TagWork))
	noted := addTask(t, svc, "noted", db.WithPriority(db.PriorityHigh), db.WithDetails("see _wiki_"))

	rows, err := svc.GetTasksForUI(context.Background())
	assert.NoError(err)
	assert.Equal([]service.DisplayRow{
		{ID: plain.ID, Status: db.StatusPending, Tag: db.TagWork, Content: "plain", Priority: db.PriorityLow},
		{
			ID: noted.ID, Status: db.StatusPending, Tag: db.TagPersonal, Content: "noted",
			Priority: db.PriorityHigh, Notes: service.DefaultNotesIndicator,
		},
	}, rows)
}

func TestGetTasksForUICustomIndicator(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	svc, _ := getService(t, service.WithNotesIndicator("*"))

	addTask(t, svc, "noted", db.WithDetails("x"))

	rows, err := svc.GetTasksForUI(context.Background())
	assert.NoError(err)
	assert.Len(rows, 1)
	assert.Equal("*", rows[0].Notes)
}

func TestDisplayRowCells(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	row := service.DisplayRow{
		ID: 12, Status: db.StatusCompleted, Tag: db.TagCalendar, Content: "birthday", Priority: db.PriorityMedium,
	}

	assert.Equal([]string{"12", "completed", "calendar", "birthday", "medium", ""}, row.Cells())
	assert.Len(service.DisplayHeaders(), len(row.Cells()))
}

func TestFilterTasksBlankCriteria(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()
	svc, _ := getService(t)

	addTask(t, svc, "A")
	b := addTask(t, svc, "B", db.WithStatus(db.StatusCompleted), db.WithTag(db.TagWork))
	addTask(t, svc, "C", db.WithTag(db.TagWork))

	all, err := svc.GetAllTasks(ctx)
	assert.NoError(err)

	tasks, err := svc.FilterTasks(ctx, "", "  ", "")
	assert.NoError(err)
	assert.Equal(all, tasks)

	tasks, err = svc.FilterTasks(ctx, "completed", "", " ")
	assert.NoError(err)
	assert.Equal([]*db.Task{b}, tasks)

	rows, err := svc.FilterTasksForUI(ctx, "", "work", "")
	assert.NoError(err)
	assert.Len(rows, 2)
}

func TestFilterTasksInvalidCriteria(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	svc, _ := getService(t)

	tasks, err := svc.FilterTasks(context.Background(), "", "", "urgent")
	assert.Nil(tasks)
	assert.ErrorIs(err, db.ErrInvalidPriority)
}

func TestParseFilter(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	filter, err := service.ParseFilter(" ", "", "")
	assert.NoError(err)
	assert.True(filter.IsEmpty())

	filter, err = service.ParseFilter("Pending", "project", "HIGH")
	assert.NoError(err)
	assert.Equal(db.Filter{Status: db.StatusPending, Tag: db.TagProject, Priority: db.PriorityHigh}, filter)
}

func TestCreateTask(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()
	svc, _ := getService(t)

	task, err := svc.CreateTask(ctx, "plan trip", "calendar", "medium", "flights")
	assert.NoError(err)
	assert.NotZero(task.ID)

	got, err := svc.GetTaskByID(ctx, task.ID)
	assert.NoError(err)
	assert.Equal(task, got)

	task, err = svc.CreateTask(ctx, "defaults", "", "", "")
	assert.NoError(err)
	assert.Equal(db.TagPersonal, task.Tag)
	assert.Equal(db.PriorityLow, task.Priority)
}

func TestCreateTaskInvalid(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()
	svc, _ := getService(t)

	_, err := svc.CreateTask(ctx, "", "work", "low", "")
	assert.ErrorIs(err, db.ErrEmptyContent)

	_, err = svc.CreateTask(ctx, "x", "trabajo", "low", "")
	assert.ErrorIs(err, db.ErrInvalidTag)

	tasks, err := svc.GetAllTasks(ctx)
	assert.NoError(err)
	assert.Empty(tasks)
}

func TestEditTask(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()
	svc, _ := getService(t)

	task := addTask(t, svc, "draft", db.WithDetails("old"))

	got, err := svc.EditTask(ctx, task.ID, "in_progress", "final", "project", "low", "")
	assert.NoError(err)
	assert.Equal(&db.Task{
		ID: task.ID, Status: db.StatusInProgress, Tag: db.TagProject, Content: "final", Priority: db.PriorityLow,
	}, got)
}

func TestEditTaskNotFound(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	svc, _ := getService(t)

	_, err := svc.EditTask(context.Background(), 3, "", "x", "", "", "")
	assert.ErrorIs(err, db.ErrNotFound)
}

func TestCheckOrUncheckAndDelete(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()
	svc, _ := getService(t)

	task := addTask(t, svc, "toggle")

	got, err := svc.CheckOrUncheckTask(ctx, task.ID)
	assert.NoError(err)
	assert.Equal(db.StatusInProgress, got.Status)

	assert.NoError(svc.DeleteTask(ctx, task.ID))
	assert.NoError(svc.DeleteTask(ctx, task.ID))

	_, err = svc.CheckOrUncheckTask(ctx, task.ID)
	assert.ErrorIs(err, db.ErrNotFound)
}

func TestUpdateTaskForwards(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()
	svc, _ := getService(t)

	task := addTask(t, svc, "forward")

	updated, err := svc.UpdateTask(ctx, task.ID, db.Changes{db.FieldTag: "work"})
	assert.NoError(err)
	assert.True(updated)

	updated, err = svc.UpdateTask(ctx, task.ID, nil)
	assert.NoError(err)
	assert.False(updated)
}

type failingRepo struct {
	service.Repository
	err error
}

func (f failingRepo) GetAllTasks(context.Context) ([]*db.Task, error) {
	return nil, f.err
}

func TestGetTasksForUIStoreFault(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	fault := errors.New("disk I/O error")

	rows, err := service.NewTaskService(failingRepo{err: fault}).GetTasksForUI(context.Background())
	assert.Nil(rows)
	assert.ErrorIs(err, fault)
}
