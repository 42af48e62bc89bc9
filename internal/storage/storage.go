// Package storage mirrors the task list to a sqlite file. Rows are
// positional: Save rewrites every row, Load returns them in row order, and
// task ids are never stored.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"taskpad/internal/task"
)

var (
	ErrNotConfigured = errors.New("no database configured")
	ErrOpen          = errors.New("cannot open database")
	ErrSchema        = errors.New("cannot prepare schema")
	ErrQuery         = errors.New("database query failed")
)

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, ErrNotConfigured
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	position INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'open',
	priority TEXT NOT NULL DEFAULT 'normal',
	due TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT ''
);`
	_, err := s.db.Exec(ddl)
	return err
}

// Load reads all rows in position order. Unknown status or priority values
// in the file fall back to the defaults rather than failing the load.
func (s *Store) Load() ([]task.Task, error) {
	rows, err := s.db.Query(`SELECT title, status, priority, due, tags FROM tasks ORDER BY position;`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var t task.Task
		var status, priority, tags string
		if err := rows.Scan(&t.Title, &status, &priority, &t.Due, &tags); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQuery, err)
		}
		t.Status = task.StatusOpen
		if task.Status(status) == task.StatusDone {
			t.Status = task.StatusDone
		}
		t.Priority = task.PriorityNormal
		if p, ok := task.ParsePriority(priority); ok {
			t.Priority = p
		}
		t.Tags = task.SplitTags(tags)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return tasks, nil
}

// Save replaces every row with the given list, in order, in one transaction.
func (s *Store) Save(tasks []task.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrQuery, err)
	}
	if _, err := tx.Exec(`DELETE FROM tasks;`); err != nil {
		tx.Rollback()
		return fmt.Errorf("%w: %v", ErrQuery, err)
	}
	for i, t := range tasks {
		_, err := tx.Exec(`INSERT INTO tasks (position, title, status, priority, due, tags) VALUES (?, ?, ?, ?, ?, ?);`,
			i+1, t.Title, string(t.Status), string(t.Priority), t.Due, task.JoinTags(t.Tags))
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: %v", ErrQuery, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return nil
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
