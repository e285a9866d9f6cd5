package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	// use the sqlite db driver.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// ErrNotFound is returned when no task has the requested id.
	ErrNotFound = errors.New("task not found")
	// ErrAlreadyPersisted is returned by NewTask for a task that already has an id.
	ErrAlreadyPersisted = errors.New("task already has an id")
)

// Database is the task repository. It holds no open connection: every operation
// opens its own connection to the sqlite file and closes it before returning.
type Database struct {
	filename string
	log      zerolog.Logger
}

// Option configures a Database.
type Option func(*Database)

// WithLogger replaces the logger used to report store faults.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Database) { d.log = logger }
}

// NewDatabase prepares a repository for the sqlite database at the given filename
// and creates the task table if it is not present.
func NewDatabase(ctx context.Context, filename string, opts ...Option) (*Database, error) {
	database := Database{
		filename: filename,
		log:      log.Logger.With().Str("component", "db").Logger(),
	}

	for _, opt := range opts {
		opt(&database)
	}

	if err := database.CreateTable(ctx); err != nil {
		return nil, err
	}

	return &database, nil
}

// Close exists so callers can treat the repository like any other resource;
// there is never a connection left open between calls.
func (d *Database) Close() error {
	return nil
}

// withConn opens a connection scoped to a single call, runs fn with it and
// closes it on every exit path.
func (d *Database) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	pool, err := sql.Open("sqlite3", d.filename)
	if err != nil {
		return fmt.Errorf("error connecting to sqlite db at %s: %w", d.filename, err)
	}

	defer pool.Close()

	conn, err := pool.Conn(ctx)
	if err != nil {
		return fmt.Errorf("error connecting to sqlite db at %s: %w", d.filename, err)
	}

	defer conn.Close()

	return fn(conn)
}

// fault logs a store-level failure and returns it wrapped with msg.
func (d *Database) fault(err error, msg string) error {
	wrapped := fmt.Errorf("%s: %w", msg, err)

	d.log.Err(err).Str("file", d.filename).Msg(msg)

	return wrapped
}

// CreateTable runs the idempotent table setup.
func (d *Database) CreateTable(ctx context.Context) error {
	err := d.withConn(ctx, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, createTableSQL)

		return err
	})
	if err != nil {
		return d.fault(err, "error running base sql")
	}

	return nil
}

// GetAllTasks returns every task in insertion order.
func (d *Database) GetAllTasks(ctx context.Context) ([]*Task, error) {
	tasks, err := d.queryTasks(ctx, selectAllSQL)
	if err != nil {
		return nil, d.fault(err, "error loading tasks")
	}

	return tasks, nil
}

// FilterTasks returns the tasks matching every supplied criterion, in insertion
// order. An empty filter returns the same rows as GetAllTasks.
func (d *Database) FilterTasks(ctx context.Context, filter Filter) ([]*Task, error) {
	if err := filter.validate(); err != nil {
		return nil, err
	}

	query, args := filterQuery(filter)

	tasks, err := d.queryTasks(ctx, query, args...)
	if err != nil {
		return nil, d.fault(err, "error filtering tasks")
	}

	return tasks, nil
}

func (d *Database) queryTasks(ctx context.Context, query string, args ...any) ([]*Task, error) {
	tasks := []*Task{}

	err := d.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			task, err := scanTask(rows)
			if err != nil {
				return err
			}

			tasks = append(tasks, task)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// GetTaskByID returns the task with the given id or ErrNotFound.
func (d *Database) GetTaskByID(ctx context.Context, id int64) (*Task, error) {
	var task *Task

	err := d.withConn(ctx, func(conn *sql.Conn) error {
		var err error

		task, err = getTask(ctx, conn, id)

		return err
	})

	switch {
	case errors.Is(err, ErrNotFound):
		return nil, err
	case err != nil:
		return nil, d.fault(err, fmt.Sprintf("error loading task %d", id))
	}

	return task, nil
}

// NewTask inserts a task that has not been saved yet and sets its id.
func (d *Database) NewTask(ctx context.Context, task *Task) (int64, error) {
	if task.ID != 0 {
		return 0, fmt.Errorf("%w: %d", ErrAlreadyPersisted, task.ID)
	}

	if err := task.Validate(); err != nil {
		return 0, err
	}

	var id int64

	err := d.withConn(ctx, func(conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx, insertSQL,
			task.Status, task.Tag, task.Content, task.Priority, nullable(task.Details),
		)
		if err != nil {
			return err
		}

		id, err = result.LastInsertId()

		return err
	})
	if err != nil {
		return 0, d.fault(err, fmt.Sprintf("error adding task '%s'", task.Content))
	}

	task.ID = id

	d.log.Debug().Int64("id", id).Msgf("added task '%s'", task.Content)

	return id, nil
}

// UpdateTask rewrites exactly the columns named in changes for the task with the
// given id. It reports false without touching the store when changes is empty.
// A missing id is not an error: the statement simply affects no rows.
func (d *Database) UpdateTask(ctx context.Context, id int64, changes Changes) (bool, error) {
	if len(changes) == 0 {
		d.log.Warn().Int64("id", id).Msg("no fields to update")

		return false, nil
	}

	query, args, err := buildUpdate(id, changes)
	if err != nil {
		return false, err
	}

	var affected int64

	err = d.withConn(ctx, func(conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}

		affected, err = result.RowsAffected()

		return err
	})
	if err != nil {
		return false, d.fault(err, fmt.Sprintf("error updating task %d", id))
	}

	d.log.Debug().Int64("id", id).Int64("rows", affected).Msg("updated task")

	return true, nil
}

// CheckOrUncheckTask advances the task's status one step along the cycle and
// returns the task as stored afterwards. A missing id returns ErrNotFound and
// leaves the store unchanged.
func (d *Database) CheckOrUncheckTask(ctx context.Context, id int64) (*Task, error) {
	var task *Task

	err := d.withConn(ctx, func(conn *sql.Conn) error {
		if _, err := getTask(ctx, conn, id); err != nil {
			return err
		}

		if _, err := conn.ExecContext(ctx, toggleStatusSQL, id); err != nil {
			return err
		}

		var err error

		task, err = getTask(ctx, conn, id)

		return err
	})

	switch {
	case errors.Is(err, ErrNotFound):
		d.log.Info().Int64("id", id).Msg("no task to check or uncheck")

		return nil, err
	case err != nil:
		return nil, d.fault(err, fmt.Sprintf("error changing status of task %d", id))
	}

	return task, nil
}

// DeleteTask removes the task with the given id. Deleting a missing id is a no-op.
func (d *Database) DeleteTask(ctx context.Context, id int64) error {
	err := d.withConn(ctx, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, deleteSQL, id)

		return err
	})
	if err != nil {
		return d.fault(err, fmt.Sprintf("error deleting task %d", id))
	}

	return nil
}

func getTask(ctx context.Context, conn *sql.Conn, id int64) (*Task, error) {
	task, err := scanTask(conn.QueryRowContext(ctx, selectByIDSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	return task, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*Task, error) {
	var task Task

	var details sql.NullString

	if err := s.Scan(&task.ID, &task.Status, &task.Tag, &task.Content, &task.Priority, &details); err != nil {
		return nil, err
	}

	task.Details = details.String

	return &task, nil
}

// nullable stores blank details as NULL.
func nullable(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	return value
}
