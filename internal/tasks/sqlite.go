package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    title       TEXT NOT NULL,
    "desc"      TEXT,
    status      TEXT DEFAULT 'pending',
    created_at  TEXT,
    updated_at  TEXT,
    due_at      TEXT
)`

const selectColumns = `id, title, "desc", status, created_at, updated_at, due_at`

// SQLiteStore persists tasks in a single SQLite table.
type SQLiteStore struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Option customizes a SQLiteStore.
type Option func(*SQLiteStore)

// WithClock overrides the time source used to stamp created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) { s.now = now }
}

// Open opens (or creates) the task database at path and ensures the schema.
// The caller owns the returned store and must Close it.
func Open(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, storageErr("create data dir", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storageErr("open", err)
	}
	// One writer, one connection.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	slog.Debug("task store opened", "path", path)
	return s, nil
}

func (s *SQLiteStore) init(ctx context.Context) error {
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := s.db.ExecContext(ctx, pragma); err != nil {
			return storageErr("pragma", err)
		}
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return storageErr("create schema", err)
	}
	return s.ensureUpdatedAt(ctx)
}

// ensureUpdatedAt adds the updated_at column to databases created before it
// existed, seeding it from created_at.
func (s *SQLiteStore) ensureUpdatedAt(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, "PRAGMA table_info(tasks)")
	if err != nil {
		return storageErr("inspect schema", err)
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dfltValue, &pk); err != nil {
			return storageErr("inspect schema", err)
		}
		if name == "updated_at" {
			found = true
		}
	}
	if err := rows.Err(); err != nil {
		return storageErr("inspect schema", err)
	}
	rows.Close()
	if found {
		return nil
	}

	slog.Debug("adding updated_at column", "path", s.path)
	if _, err := s.db.ExecContext(ctx, "ALTER TABLE tasks ADD COLUMN updated_at TEXT"); err != nil {
		return storageErr("add updated_at", err)
	}
	if _, err := s.db.ExecContext(ctx, "UPDATE tasks SET updated_at = created_at WHERE updated_at IS NULL"); err != nil {
		return storageErr("seed updated_at", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Create inserts a new task and returns its id.
func (s *SQLiteStore) Create(ctx context.Context, t NewTask) (int64, error) {
	status := t.Status
	if status == "" {
		status = StatusPending
	}
	now := FormatTimestamp(s.now())

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (title, "desc", status, created_at, updated_at, due_at) VALUES (?, ?, ?, ?, ?, ?)`,
		t.Title, t.Description, string(status), now, now, dueValue(t.DueAt),
	)
	if err != nil {
		return 0, storageErr("insert task", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("insert task", err)
	}
	slog.Debug("task created", "id", id, "title", t.Title)
	return id, nil
}

// Get reads a task by id.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (*Task, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+selectColumns+" FROM tasks WHERE id = ?", id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns every task in storage order.
func (s *SQLiteStore) List(ctx context.Context) ([]*Task, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+selectColumns+" FROM tasks")
	if err != nil {
		return nil, storageErr("list tasks", err)
	}
	defer rows.Close()

	var list []*Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list tasks", err)
	}
	return list, nil
}

// Update applies the supplied fields of p and refreshes updated_at.
// An empty patch changes nothing.
func (s *SQLiteStore) Update(ctx context.Context, id int64, p Patch) error {
	if p.Empty() {
		_, err := s.Get(ctx, id)
		return err
	}

	var (
		sets []string
		args []any
	)
	if p.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Description != nil {
		sets = append(sets, `"desc" = ?`)
		args = append(args, *p.Description)
	}
	if p.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*p.Status))
	}
	switch {
	case p.ClearDue:
		sets = append(sets, "due_at = NULL")
	case p.DueAt != nil:
		sets = append(sets, "due_at = ?")
		args = append(args, FormatTimestamp(*p.DueAt))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, FormatTimestamp(s.now()), id)

	res, err := s.db.ExecContext(ctx, "UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return storageErr("update task", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("update task", err)
	}
	if n == 0 {
		return notFound(id)
	}
	slog.Debug("task updated", "id", id, "fields", len(sets)-1)
	return nil
}

// Delete removes a task. Deleting an absent id returns ErrNotFound.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return storageErr("delete task", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("delete task", err)
	}
	if n == 0 {
		return notFound(id)
	}
	slog.Debug("task deleted", "id", id)
	return nil
}

// PurgeInactive deletes done and cancelled tasks last updated strictly
// before cutoff and returns their titles.
func (s *SQLiteStore) PurgeInactive(ctx context.Context, cutoff time.Time) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageErr("purge", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		"SELECT "+selectColumns+" FROM tasks WHERE status IN (?, ?) ORDER BY id",
		string(StatusDone), string(StatusCancelled),
	)
	if err != nil {
		return nil, storageErr("purge", err)
	}
	var victims []*Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		if t.UpdatedAt.Before(cutoff) {
			victims = append(victims, t)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, storageErr("purge", err)
	}
	rows.Close()

	titles := make([]string, 0, len(victims))
	for _, t := range victims {
		if _, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", t.ID); err != nil {
			return nil, storageErr("purge", err)
		}
		titles = append(titles, t.Title)
	}
	if err := tx.Commit(); err != nil {
		return nil, storageErr("purge", err)
	}
	if len(titles) > 0 {
		slog.Debug("purged inactive tasks", "count", len(titles), "cutoff", FormatTimestamp(cutoff))
	}
	return titles, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*Task, error) {
	var (
		t                 Task
		desc, status, due sql.NullString
		created, updated  sql.NullString
	)
	if err := row.Scan(&t.ID, &t.Title, &desc, &status, &created, &updated, &due); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, storageErr("scan task", err)
	}
	t.Description = desc.String

	st := status.String
	if !status.Valid {
		st = string(StatusPending)
	}
	parsed, err := ParseStatus(st)
	if err != nil {
		return nil, storageErr("decode task", fmt.Errorf("id %d: %w", t.ID, err))
	}
	t.Status = parsed

	if t.CreatedAt, err = parseStored(created.String); err != nil {
		return nil, storageErr("decode task", fmt.Errorf("id %d created_at: %w", t.ID, err))
	}
	if t.UpdatedAt, err = parseStored(updated.String); err != nil {
		return nil, storageErr("decode task", fmt.Errorf("id %d updated_at: %w", t.ID, err))
	}
	if due.Valid && due.String != "" {
		d, err := parseStored(due.String)
		if err != nil {
			return nil, storageErr("decode task", fmt.Errorf("id %d due_at: %w", t.ID, err))
		}
		t.DueAt = &d
	}
	return &t, nil
}

func parseStored(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, s, time.Local)
}

func dueValue(due *time.Time) any {
	if due == nil {
		return nil
	}
	return FormatTimestamp(*due)
}
