// Package service sits between the terminal UI and the task repository. It
// forwards requests to the repository and shapes results for display.
package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/matt-steen/tasks-cli/pkg/db"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultNotesIndicator marks tasks that carry details.
const DefaultNotesIndicator = "✎"

// Repository is the subset of *db.Database the service needs.
type Repository interface {
	GetAllTasks(ctx context.Context) ([]*db.Task, error)
	GetTaskByID(ctx context.Context, id int64) (*db.Task, error)
	NewTask(ctx context.Context, task *db.Task) (int64, error)
	FilterTasks(ctx context.Context, filter db.Filter) ([]*db.Task, error)
	UpdateTask(ctx context.Context, id int64, changes db.Changes) (bool, error)
	CheckOrUncheckTask(ctx context.Context, id int64) (*db.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// DisplayHeaders are the column titles matching the fields of DisplayRow.
func DisplayHeaders() []string {
	return []string{"ID", "Status", "Tag", "Content", "Priority", "Notes"}
}

// DisplayRow is a task flattened for a table view.
type DisplayRow struct {
	ID       int64
	Status   db.Status
	Tag      db.Tag
	Content  string
	Priority db.Priority
	// Notes holds the notes indicator when the task has details, otherwise "".
	Notes string
}

// Cells returns the row as text, in DisplayHeaders order.
func (r DisplayRow) Cells() []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		string(r.Status),
		string(r.Tag),
		r.Content,
		string(r.Priority),
		r.Notes,
	}
}

// TaskService coordinates the repository for the UI.
type TaskService struct {
	repo           Repository
	notesIndicator string
	log            zerolog.Logger
}

// Option configures a TaskService.
type Option func(*TaskService)

// WithNotesIndicator replaces the glyph shown for tasks that have details.
func WithNotesIndicator(indicator string) Option {
	return func(s *TaskService) { s.notesIndicator = indicator }
}

// NewTaskService creates a TaskService backed by repo.
func NewTaskService(repo Repository, opts ...Option) *TaskService {
	s := &TaskService{
		repo:           repo,
		notesIndicator: DefaultNotesIndicator,
		log:            log.Logger.With().Str("component", "service").Logger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// GetAllTasks returns every task.
func (s *TaskService) GetAllTasks(ctx context.Context) ([]*db.Task, error) {
	return s.repo.GetAllTasks(ctx)
}

// GetTasksForUI returns every task as a display row.
func (s *TaskService) GetTasksForUI(ctx context.Context) ([]DisplayRow, error) {
	tasks, err := s.repo.GetAllTasks(ctx)
	if err != nil {
		return nil, err
	}

	return s.toRows(tasks), nil
}

// GetTaskByID returns the task or db.ErrNotFound.
func (s *TaskService) GetTaskByID(ctx context.Context, id int64) (*db.Task, error) {
	return s.repo.GetTaskByID(ctx, id)
}

// NewTask persists task and returns its id.
func (s *TaskService) NewTask(ctx context.Context, task *db.Task) (int64, error) {
	return s.repo.NewTask(ctx, task)
}

// CreateTask builds a task from raw form input and persists it. Blank tag and
// priority fall back to the defaults.
func (s *TaskService) CreateTask(ctx context.Context, content, tag, priority, details string) (*db.Task, error) {
	opts := []db.TaskOption{db.WithDetails(details)}

	if strings.TrimSpace(tag) != "" {
		parsed, err := db.ParseTag(tag)
		if err != nil {
			return nil, err
		}

		opts = append(opts, db.WithTag(parsed))
	}

	if strings.TrimSpace(priority) != "" {
		parsed, err := db.ParsePriority(priority)
		if err != nil {
			return nil, err
		}

		opts = append(opts, db.WithPriority(parsed))
	}

	task, err := db.NewTask(content, opts...)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.NewTask(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateTask rewrites the named fields of a task.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, changes db.Changes) (bool, error) {
	return s.repo.UpdateTask(ctx, id, changes)
}

// EditTask applies raw form input to an existing task. Only values that differ
// from the stored task are written.
func (s *TaskService) EditTask(ctx context.Context, id int64, status, content, tag, priority, details string) (*db.Task, error) {
	current, err := s.repo.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := db.Changes{}

	if strings.TrimSpace(status) != "" {
		parsed, err := db.ParseStatus(status)
		if err != nil {
			return nil, err
		}

		if parsed != current.Status {
			changes[db.FieldStatus] = string(parsed)
		}
	}

	if strings.TrimSpace(tag) != "" {
		parsed, err := db.ParseTag(tag)
		if err != nil {
			return nil, err
		}

		if parsed != current.Tag {
			changes[db.FieldTag] = string(parsed)
		}
	}

	if strings.TrimSpace(priority) != "" {
		parsed, err := db.ParsePriority(priority)
		if err != nil {
			return nil, err
		}

		if parsed != current.Priority {
			changes[db.FieldPriority] = string(parsed)
		}
	}

	if content != current.Content {
		changes[db.FieldContent] = content
	}

	if details != current.Details {
		changes[db.FieldDetails] = details
	}

	if len(changes) == 0 {
		return current, nil
	}

	if _, err := s.repo.UpdateTask(ctx, id, changes); err != nil {
		return nil, err
	}

	return s.repo.GetTaskByID(ctx, id)
}

// DeleteTask removes a task; a missing id is not an error.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	return s.repo.DeleteTask(ctx, id)
}

// CheckOrUncheckTask advances a task's status and returns the updated task.
func (s *TaskService) CheckOrUncheckTask(ctx context.Context, id int64) (*db.Task, error) {
	return s.repo.CheckOrUncheckTask(ctx, id)
}

// FilterTasks narrows the task list. Blank criteria count as not supplied.
func (s *TaskService) FilterTasks(ctx context.Context, status, tag, priority string) ([]*db.Task, error) {
	filter, err := ParseFilter(status, tag, priority)
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("status", string(filter.Status)).
		Str("tag", string(filter.Tag)).
		Str("priority", string(filter.Priority)).
		Msg("filtering tasks")

	return s.repo.FilterTasks(ctx, filter)
}

// FilterTasksForUI is FilterTasks shaped as display rows.
func (s *TaskService) FilterTasksForUI(ctx context.Context, status, tag, priority string) ([]DisplayRow, error) {
	tasks, err := s.FilterTasks(ctx, status, tag, priority)
	if err != nil {
		return nil, err
	}

	return s.toRows(tasks), nil
}

// ParseFilter turns raw criteria into a db.Filter, treating blank input as no filter.
func ParseFilter(status, tag, priority string) (db.Filter, error) {
	var filter db.Filter

	var err error

	if strings.TrimSpace(status) != "" {
		if filter.Status, err = db.ParseStatus(status); err != nil {
			return db.Filter{}, err
		}
	}

	if strings.TrimSpace(tag) != "" {
		if filter.Tag, err = db.ParseTag(tag); err != nil {
			return db.Filter{}, err
		}
	}

	if strings.TrimSpace(priority) != "" {
		if filter.Priority, err = db.ParsePriority(priority); err != nil {
			return db.Filter{}, err
		}
	}

	return filter, nil
}

func (s *TaskService) toRows(tasks []*db.Task) []DisplayRow {
	rows := make([]DisplayRow, 0, len(tasks))

	for _, task := range tasks {
		notes := ""
		if task.HasDetails() {
			notes = s.notesIndicator
		}

		rows = append(rows, DisplayRow{
			ID:       task.ID,
			Status:   task.Status,
			Tag:      task.Tag,
			Content:  task.Content,
			Priority: task.Priority,
			Notes:    notes,
		})
	}

	return rows
}
