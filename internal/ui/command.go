package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"taskpad/internal/task"
)

type command int

const (
	cmdAdd command = iota
	cmdDelete
	cmdEdit
	cmdToggle
	cmdSave
	cmdReload
	cmdSearch
	cmdClear
	cmdDetails
	cmdHelp
	cmdUp
	cmdDown
	cmdHome
	cmdEnd
	cmdQuit
)

type commandSpec struct {
	cmd     command
	name    string
	aliases []string
	usage   string
}

// commandTable is the single source of truth for resolution and help.
var commandTable = []commandSpec{
	{cmdAdd, "add", []string{"a"}, "add a task (prompts for fields)"},
	{cmdDelete, "delete", []string{"d"}, "delete the selected task"},
	{cmdEdit, "edit", []string{"e"}, "edit the selected task (empty entry keeps a field)"},
	{cmdToggle, "toggle", []string{"t"}, "toggle open/done on the selected task"},
	{cmdSave, "save", []string{"s"}, "write the list to the database"},
	{cmdReload, "reload", []string{"r"}, "replace the list with the database contents"},
	{cmdSearch, "search", []string{"/"}, "filter by title (search <term>, or bare for a prompt)"},
	{cmdClear, "clear", nil, "clear the search filter"},
	{cmdDetails, "details", []string{"i"}, "show every field of the selected task"},
	{cmdHelp, "help", []string{"h"}, "show this reference"},
	{cmdUp, "up", []string{"k"}, "move the selection up"},
	{cmdDown, "down", []string{"j"}, "move the selection down"},
	{cmdHome, "home", nil, "select the first task"},
	{cmdEnd, "end", nil, "select the last task"},
	{cmdQuit, "quit", []string{"q", "exit"}, "leave without saving"},
}

func resolveCommand(word string) (command, bool) {
	word = strings.ToLower(word)
	for _, spec := range commandTable {
		if spec.name == word {
			return spec.cmd, true
		}
		for _, a := range spec.aliases {
			if a == word {
				return spec.cmd, true
			}
		}
	}
	return 0, false
}

func (m Model) execCommand(line string) (Model, tea.Cmd) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return m, nil
	}

	if n, err := strconv.Atoi(trimmed); err == nil {
		m.jumpTo(n)
		return m, nil
	}

	word, arg := trimmed, ""
	if i := strings.IndexAny(trimmed, " \t"); i >= 0 {
		word, arg = trimmed[:i], strings.TrimSpace(trimmed[i+1:])
	}
	cmd, ok := resolveCommand(word)
	if !ok || (arg != "" && cmd != cmdSearch) {
		m.status = fmt.Sprintf("Unknown command %q. Try 'help'.", trimmed)
		return m, nil
	}

	// Navigation keeps the current view so details can be browsed; every
	// other command lands back on the main list.
	switch cmd {
	case cmdUp, cmdDown, cmdHome, cmdEnd:
	case cmdDetails:
		m.mode = modeDetails
	case cmdHelp:
		m.mode = modeHelp
	default:
		m.mode = modeMain
	}

	switch cmd {
	case cmdAdd:
		m.dialog = newAddDialog()
	case cmdDelete:
		idx := m.selectedStoreIndex()
		if idx < 0 {
			m.status = "Nothing selected"
			return m, nil
		}
		m.confirmDel = true
		m.pendingDel = idx
		m.status = fmt.Sprintf("Delete %q? y/n", m.store.Tasks()[idx].Title)
	case cmdEdit:
		idx := m.selectedStoreIndex()
		if idx < 0 {
			m.status = "Nothing selected"
			return m, nil
		}
		m.dialog = newEditDialog(idx)
	case cmdToggle:
		idx := m.selectedStoreIndex()
		if idx < 0 {
			m.status = "Nothing selected"
			return m, nil
		}
		if err := m.store.Toggle(idx); err != nil {
			m.status = commandFailed(err)
			return m, nil
		}
		// Report by title: the store index is not the row number shown
		// while a filter is active.
		toggled := m.store.Tasks()[idx]
		m.status = fmt.Sprintf("%q is now %s", toggled.Title, toggled.Status)
	case cmdSave:
		m.doSave()
	case cmdReload:
		m.doReload()
	case cmdSearch:
		if arg != "" {
			m.setSearch(arg)
		} else {
			m.dialog = newSearchDialog()
		}
	case cmdClear:
		m.setSearch("")
		m.status = "Filter cleared"
	case cmdDetails:
		m.status = "Details view. Any command returns to the list."
	case cmdHelp:
		m.status = "Command reference. Any command returns to the list."
	case cmdQuit:
		return m, tea.Quit
	case cmdUp:
		m.moveCursor(m.cursor - 1)
	case cmdDown:
		m.moveCursor(m.cursor + 1)
	case cmdHome:
		m.moveCursor(0)
	case cmdEnd:
		m.moveCursor(len(m.Filtered()) - 1)
	}
	return m, nil
}

func (m *Model) jumpTo(n int) {
	filtered := m.Filtered()
	if n < 1 || n > len(filtered) {
		m.status = fmt.Sprintf("No task %d in the current view (%d shown)", n, len(filtered))
		return
	}
	m.cursor = n - 1
	m.status = fmt.Sprintf("Selected %q", filtered[m.cursor].Title)
}

func (m *Model) moveCursor(to int) {
	m.cursor = task.Clamp(to, len(m.Filtered()))
}

func (m *Model) setSearch(term string) {
	m.search = term
	m.clampCursor()
	if term == "" {
		return
	}
	m.status = fmt.Sprintf("Filtering by %q (%d match(es))", term, len(m.Filtered()))
}

func (m *Model) doSave() {
	if m.gateway == nil {
		m.status = "No database configured; nothing saved"
		return
	}
	if err := m.gateway.Save(m.store.Tasks()); err != nil {
		m.status = fmt.Sprintf("Save failed: %v", err)
		return
	}
	m.status = fmt.Sprintf("Saved %d task(s)", m.store.Len())
}

func (m *Model) doReload() {
	if m.gateway == nil {
		m.status = "No database configured; nothing to reload"
		return
	}
	tasks, err := m.gateway.Load()
	if err != nil {
		m.status = fmt.Sprintf("Reload failed: %v", err)
		return
	}
	m.store.Replace(tasks)
	m.clampCursor()
	m.status = fmt.Sprintf("Loaded %d task(s)", m.store.Len())
}

func (m Model) updateDeleteConfirm(key string) (Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		m.confirmDel = false
		if err := m.store.Delete(m.pendingDel); err != nil {
			m.status = commandFailed(err)
			return m, nil
		}
		m.clampCursor()
		m.status = "Deleted task"
	case "n", "N", "esc":
		m.confirmDel = false
		m.status = "Delete cancelled"
	}
	return m, nil
}

// commandFailed hides contract violations behind a generic message so one
// bad command never ends the session.
func commandFailed(err error) string {
	if errors.Is(err, task.ErrOutOfRange) {
		return "Command failed"
	}
	return fmt.Sprintf("Command failed: %v", err)
}
