package task

import (
	"errors"
	"strings"
)

type Status string

const (
	StatusOpen Status = "open"
	StatusDone Status = "done"
)

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityLow    Priority = "low"
)

// ParsePriority accepts the three priority names case-insensitively.
func ParsePriority(v string) (Priority, bool) {
	switch Priority(strings.ToLower(strings.TrimSpace(v))) {
	case PriorityNormal:
		return PriorityNormal, true
	case PriorityHigh:
		return PriorityHigh, true
	case PriorityLow:
		return PriorityLow, true
	default:
		return "", false
	}
}

// Task is one todo item. ID is the 1-based list position and is recomputed
// on every structural mutation; it is not a stable identifier.
type Task struct {
	ID       int
	Title    string
	Status   Status
	Priority Priority
	Due      string // canonical YYYY-MM-DD, empty when unset
	Tags     []string
}

var (
	ErrEmptyTitle = errors.New("title is empty")
	ErrOutOfRange = errors.New("index out of range")
)

// Store owns the ordered task list and all mutating operations.
type Store struct {
	tasks []Task
}

// NewStore takes ownership of tasks and renumbers them positionally.
func NewStore(tasks []Task) *Store {
	s := &Store{tasks: tasks}
	s.reindex()
	return s
}

func (s *Store) Tasks() []Task { return s.tasks }

func (s *Store) Len() int { return len(s.tasks) }

// Replace swaps in a freshly loaded list, renumbering it.
func (s *Store) Replace(tasks []Task) {
	s.tasks = tasks
	s.reindex()
}

func (s *Store) Add(title string, prio Priority, due string, tags []string) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}
	t := Task{
		ID:       len(s.tasks) + 1,
		Title:    title,
		Status:   StatusOpen,
		Priority: prio,
		Due:      due,
		Tags:     tags,
	}
	s.tasks = append(s.tasks, t)
	return t, nil
}

// Update carries partial edits; nil fields are left untouched. The
// empty-entry-means-unchanged rule lives in the dialog layer, not here:
// whatever is present is applied unconditionally.
type Update struct {
	Title    *string
	Priority *Priority
	Due      *string
	Tags     *[]string
}

func (s *Store) Edit(i int, u Update) error {
	if i < 0 || i >= len(s.tasks) {
		return ErrOutOfRange
	}
	t := &s.tasks[i]
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Due != nil {
		t.Due = *u.Due
	}
	if u.Tags != nil {
		t.Tags = *u.Tags
	}
	return nil
}

func (s *Store) Delete(i int) error {
	if i < 0 || i >= len(s.tasks) {
		return ErrOutOfRange
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.reindex()
	return nil
}

func (s *Store) Toggle(i int) error {
	if i < 0 || i >= len(s.tasks) {
		return ErrOutOfRange
	}
	if s.tasks[i].Status == StatusDone {
		s.tasks[i].Status = StatusOpen
	} else {
		s.tasks[i].Status = StatusDone
	}
	return nil
}

func (s *Store) reindex() {
	for i := range s.tasks {
		s.tasks[i].ID = i + 1
	}
}

// Filter returns the tasks whose title contains term case-insensitively.
// An empty term returns the input slice unchanged.
func Filter(tasks []Task, term string) []Task {
	if term == "" {
		return tasks
	}
	needle := strings.ToLower(term)
	var out []Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			out = append(out, t)
		}
	}
	return out
}

// Clamp keeps a cursor inside [0, n-1], collapsing to 0 for empty lists.
func Clamp(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

// SplitTags splits a comma list, trimming segments and dropping empty ones.
func SplitTags(v string) []string {
	var tags []string
	for _, seg := range strings.Split(v, ",") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		tags = append(tags, seg)
	}
	return tags
}

func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}
