package ui

import (
	"fmt"
	"strings"

	"taskpad/internal/dates"
	"taskpad/internal/task"
)

type dialogKind int

const (
	dialogAdd dialogKind = iota
	dialogEdit
	dialogSearch
)

type dialogField int

const (
	fieldTitle dialogField = iota
	fieldPriority
	fieldDue
	fieldTags
	fieldSearchTerm
)

// clear tokens accepted during edit for due date and tags.
func isClearToken(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "keine", "none":
		return true
	}
	return false
}

// dialog walks the add/edit field sequence one prompt at a time, or the
// single search-term prompt. Each Enter answers the current field.
type dialog struct {
	kind  dialogKind
	field dialogField
	index int // store index, edit only

	title    string
	priority task.Priority
	due      string
	tags     []string

	upd task.Update // accumulated partial edit
}

func newAddDialog() *dialog {
	return &dialog{kind: dialogAdd, field: fieldTitle, priority: task.PriorityNormal}
}

func newEditDialog(storeIndex int) *dialog {
	return &dialog{kind: dialogEdit, field: fieldTitle, index: storeIndex}
}

func newSearchDialog() *dialog {
	return &dialog{kind: dialogSearch, field: fieldSearchTerm}
}

// prompt labels the field currently being collected.
func (m Model) prompt() string {
	d := m.dialog
	if d == nil {
		return "> "
	}
	if d.kind == dialogSearch {
		return "Search term: "
	}
	cur := ""
	if d.kind == dialogEdit && d.index >= 0 && d.index < m.store.Len() {
		t := m.store.Tasks()[d.index]
		switch d.field {
		case fieldTitle:
			cur = t.Title
		case fieldPriority:
			cur = string(t.Priority)
		case fieldDue:
			cur = t.Due
		case fieldTags:
			cur = task.JoinTags(t.Tags)
		}
	}
	label := ""
	switch d.field {
	case fieldTitle:
		label = "Title"
	case fieldPriority:
		label = "Priority (normal/high/low)"
	case fieldDue:
		label = "Due date (YYYY-MM-DD, D.M.YYYY or D.M)"
	case fieldTags:
		label = "Tags (comma separated)"
	}
	if d.kind == dialogEdit {
		if cur == "" {
			cur = "(empty)"
		}
		return fmt.Sprintf("%s [%s, empty keeps, keine clears]: ", label, cur)
	}
	return label + ": "
}

func (m Model) advanceDialog(line string) Model {
	d := m.dialog
	switch d.kind {
	case dialogSearch:
		m.dialog = nil
		m.setSearch(strings.TrimSpace(line))
		if m.search == "" {
			m.status = "Filter cleared"
		}
		return m
	case dialogAdd:
		return m.advanceAdd(line)
	case dialogEdit:
		return m.advanceEdit(line)
	}
	return m
}

func (m Model) advanceAdd(line string) Model {
	d := m.dialog
	entry := strings.TrimSpace(line)
	switch d.field {
	case fieldTitle:
		if entry == "" {
			m.dialog = nil
			m.status = "Add aborted: no title"
			return m
		}
		d.title = entry
		d.field = fieldPriority
	case fieldPriority:
		d.field = fieldDue
		if entry == "" {
			break
		}
		p, ok := task.ParsePriority(entry)
		if !ok {
			m.status = fmt.Sprintf("Invalid priority %q, using normal", entry)
			break
		}
		d.priority = p
	case fieldDue:
		d.field = fieldTags
		if entry == "" {
			break
		}
		due, err := dates.Parse(entry)
		if err != nil {
			m.status = fmt.Sprintf("Invalid date %q, leaving due date empty", entry)
			break
		}
		d.due = due
	case fieldTags:
		d.tags = task.SplitTags(entry)
		m.dialog = nil
		t, err := m.store.Add(d.title, d.priority, d.due, d.tags)
		if err != nil {
			m.status = commandFailed(err)
			return m
		}
		m.clampCursor()
		m.status = fmt.Sprintf("Added task %d: %s", t.ID, t.Title)
	}
	return m
}

func (m Model) advanceEdit(line string) Model {
	d := m.dialog
	entry := strings.TrimSpace(line)
	switch d.field {
	case fieldTitle:
		if entry != "" {
			d.upd.Title = &entry
		}
		d.field = fieldPriority
	case fieldPriority:
		d.field = fieldDue
		if entry == "" {
			break
		}
		p, ok := task.ParsePriority(entry)
		if !ok {
			m.status = fmt.Sprintf("Invalid priority %q, keeping current", entry)
			break
		}
		d.upd.Priority = &p
	case fieldDue:
		d.field = fieldTags
		if entry == "" {
			break
		}
		if isClearToken(entry) {
			cleared := ""
			d.upd.Due = &cleared
			break
		}
		due, err := dates.Parse(entry)
		if err != nil {
			m.status = fmt.Sprintf("Invalid date %q, keeping current", entry)
			break
		}
		d.upd.Due = &due
	case fieldTags:
		if entry != "" {
			var tags []string
			if !isClearToken(entry) {
				tags = task.SplitTags(entry)
			}
			d.upd.Tags = &tags
		}
		m.dialog = nil
		if err := m.store.Edit(d.index, d.upd); err != nil {
			m.status = commandFailed(err)
			return m
		}
		m.status = fmt.Sprintf("Updated task %d", d.index+1)
	}
	return m
}
