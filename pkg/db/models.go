package db

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the progress state of a Task.
type Status string

// These constants refer to the statuses supported by the app, in cycle order.
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Tag is the category of a Task.
type Tag string

// These constants refer to the tags supported by the app.
const (
	TagPersonal Tag = "personal"
	TagProject  Tag = "project"
	TagWork     Tag = "work"
	TagCalendar Tag = "calendar"
)

// Priority is the urgency of a Task.
type Priority string

// These constants refer to the priorities supported by the app.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var (
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidTag      = errors.New("invalid tag")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrEmptyContent    = errors.New("content is required")
)

// Statuses returns every status in cycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted}
}

// Tags returns every tag.
func Tags() []Tag {
	return []Tag{TagPersonal, TagProject, TagWork, TagCalendar}
}

// Priorities returns every priority from lowest to highest.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid reports whether s is one of the supported statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Next returns the status that follows s in the cycle; completed wraps to pending.
// Unknown statuses are returned unchanged.
func (s Status) Next() Status {
	switch s {
	case StatusPending:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	case StatusCompleted:
		return StatusPending
	default:
		return s
	}
}

// IsValid reports whether t is one of the supported tags.
func (t Tag) IsValid() bool {
	switch t {
	case TagPersonal, TagProject, TagWork, TagCalendar:
		return true
	default:
		return false
	}
}

// IsValid reports whether p is one of the supported priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// ParseStatus converts user input into a Status.
func ParseStatus(raw string) (Status, error) {
	status := Status(normalize(raw))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}

	return status, nil
}

// ParseTag converts user input into a Tag.
func ParseTag(raw string) (Tag, error) {
	tag := Tag(normalize(raw))
	if !tag.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTag, raw)
	}

	return tag, nil
}

// ParsePriority converts user input into a Priority.
func ParsePriority(raw string) (Priority, error) {
	priority := Priority(normalize(raw))
	if !priority.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}

	return priority, nil
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Task is a single to-do item stored in tasks_table.
type Task struct {
	// ID is assigned by the store on insert; zero means the task has not been persisted.
	ID       int64
	Status   Status
	Tag      Tag
	Content  string
	Priority Priority
	// Details holds optional notes, possibly markdown. Empty means none.
	Details string
}

// TaskOption overrides one of the defaults applied by NewTask.
type TaskOption func(*Task)

// WithStatus sets the initial status.
func WithStatus(status Status) TaskOption {
	return func(t *Task) { t.Status = status }
}

// WithTag sets the tag.
func WithTag(tag Tag) TaskOption {
	return func(t *Task) { t.Tag = tag }
}

// WithPriority sets the priority.
func WithPriority(priority Priority) TaskOption {
	return func(t *Task) { t.Priority = priority }
}

// WithDetails sets the notes.
func WithDetails(details string) TaskOption {
	return func(t *Task) { t.Details = details }
}

// NewTask builds an unsaved, validated task. Status, tag and priority default to
// pending, personal and low.
func NewTask(content string, opts ...TaskOption) (*Task, error) {
	task := &Task{
		Status:   StatusPending,
		Tag:      TagPersonal,
		Content:  content,
		Priority: PriorityLow,
	}

	for _, opt := range opts {
		opt(task)
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks that every enumerated field holds a supported value and that
// content is present.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Content) == "" {
		return ErrEmptyContent
	}

	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}

	if !t.Tag.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTag, t.Tag)
	}

	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}

	return nil
}

// HasDetails reports whether the task carries any notes.
func (t *Task) HasDetails() bool {
	return strings.TrimSpace(t.Details) != ""
}

func (t *Task) String() string {
	return fmt.Sprintf("%s - %s | %s | %s", t.Status, t.Tag, t.Content, t.Priority)
}
