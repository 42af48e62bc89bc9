package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"taskpad/internal/config"
	"taskpad/internal/task"
)

func testModel(t *testing.T, titles ...string) Model {
	t.Helper()
	s := task.NewStore(nil)
	for _, title := range titles {
		if _, err := s.Add(title, task.PriorityNormal, "", nil); err != nil {
			t.Fatal(err)
		}
	}
	return NewModel(s, nil, config.Config{TitleWidth: 40})
}

// enter feeds one line through the interpreter, as if typed and confirmed.
func enter(m Model, line string) Model {
	next, _ := m.dispatch(line)
	return next
}

type fakeGateway struct {
	saved   []task.Task
	toLoad  []task.Task
	saveErr error
	loadErr error
}

func (f *fakeGateway) Save(tasks []task.Task) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append([]task.Task(nil), tasks...)
	return nil
}

func (f *fakeGateway) Load() ([]task.Task, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.toLoad, nil
}

func TestAliasesResolveToCanonicalCommand(t *testing.T) {
	for _, spec := range commandTable {
		got, ok := resolveCommand(spec.name)
		if !ok || got != spec.cmd {
			t.Errorf("resolve(%q) = %v, %v", spec.name, got, ok)
		}
		for _, alias := range spec.aliases {
			got, ok := resolveCommand(alias)
			if !ok || got != spec.cmd {
				t.Errorf("resolve(%q) = %v, want same as %q", alias, got, spec.name)
			}
		}
		got, ok = resolveCommand(strings.ToUpper(spec.name))
		if !ok || got != spec.cmd {
			t.Errorf("resolve is case-sensitive for %q", spec.name)
		}
	}
}

func TestHelpStaysInSyncWithCommandTable(t *testing.T) {
	help := renderHelp()
	for _, spec := range commandTable {
		if !strings.Contains(help, spec.name) {
			t.Errorf("help is missing command %q", spec.name)
		}
		for _, alias := range spec.aliases {
			if !strings.Contains(help, alias) {
				t.Errorf("help is missing alias %q of %q", alias, spec.name)
			}
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	m := enter(testModel(t), "frobnicate")
	if !strings.Contains(m.status, "Unknown command") {
		t.Errorf("status = %q, want unknown-command warning", m.status)
	}
}

func TestEmptyInputIsSilent(t *testing.T) {
	m := testModel(t, "one")
	before := m.status
	m = enter(m, "   ")
	if m.status != before {
		t.Errorf("status changed on empty input: %q", m.status)
	}
}

func TestIntegerJump(t *testing.T) {
	m := testModel(t, "one", "two", "three")
	m = enter(m, "2")
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}
	m = enter(m, "5")
	if m.cursor != 1 {
		t.Errorf("cursor moved on rejected jump: %d", m.cursor)
	}
	if !strings.Contains(m.status, "No task 5") {
		t.Errorf("status = %q, want out-of-range warning", m.status)
	}
}

func TestFilteredSelectionScenario(t *testing.T) {
	m := testModel(t, "Alpha", "Beta")
	m = enter(m, "search alp")

	filtered := m.Filtered()
	if len(filtered) != 1 || filtered[0].Title != "Alpha" {
		t.Fatalf("filtered = %+v, want only Alpha", filtered)
	}

	m = enter(m, "1")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
	m = enter(m, "2")
	if !strings.Contains(m.status, "No task 2") {
		t.Errorf("jump 2 not rejected: %q", m.status)
	}
}

func TestToggleActsOnFilteredSelection(t *testing.T) {
	m := testModel(t, "Beta", "Alpha")
	m = enter(m, "search alp")
	m = enter(m, "t")

	tasks := m.store.Tasks()
	if tasks[1].Status != task.StatusDone {
		t.Errorf("Alpha not toggled: %+v", tasks[1])
	}
	if tasks[0].Status != task.StatusOpen {
		t.Errorf("Beta toggled instead: %+v", tasks[0])
	}
}

func TestToggleStatusNamesTheTask(t *testing.T) {
	// Alpha is store position 2 but row 1 of the filtered view; the status
	// line must not echo a number that contradicts the visible row.
	m := testModel(t, "Beta", "Alpha")
	m = enter(m, "search alp")
	m = enter(m, "t")
	if !strings.Contains(m.status, "Alpha") {
		t.Errorf("status = %q, want the task title", m.status)
	}
	if strings.Contains(m.status, "Task 2") {
		t.Errorf("status = %q, leaks the store index", m.status)
	}
}

func TestSearchChangeClampsCursor(t *testing.T) {
	m := testModel(t, "one", "two", "three")
	m = enter(m, "end")
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}
	m = enter(m, "search one")
	if got := task.Clamp(m.cursor, len(m.Filtered())); got != 0 {
		t.Errorf("cursor not clamped after filter: %d", got)
	}
}

func TestNavigationBounds(t *testing.T) {
	m := testModel(t, "one", "two")
	m = enter(m, "up")
	if m.cursor != 0 {
		t.Errorf("up below zero: %d", m.cursor)
	}
	m = enter(m, "down")
	m = enter(m, "down")
	m = enter(m, "down")
	if m.cursor != 1 {
		t.Errorf("down past end: %d", m.cursor)
	}
	m = enter(m, "home")
	if m.cursor != 0 {
		t.Errorf("home: %d", m.cursor)
	}
	m = enter(m, "end")
	if m.cursor != 1 {
		t.Errorf("end: %d", m.cursor)
	}
}

func TestAddDialogWalk(t *testing.T) {
	m := testModel(t)
	m = enter(m, "add")
	if m.dialog == nil {
		t.Fatal("add did not open a dialog")
	}
	m = enter(m, "Pay rent")
	m = enter(m, "high")
	m = enter(m, "1.3.2024")
	m = enter(m, "bills, home")

	if m.dialog != nil {
		t.Fatal("dialog still open after last field")
	}
	if m.store.Len() != 1 {
		t.Fatalf("len = %d, want 1", m.store.Len())
	}
	got := m.store.Tasks()[0]
	if got.Title != "Pay rent" || got.Priority != task.PriorityHigh || got.Due != "2024-03-01" {
		t.Errorf("unexpected task: %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "bills" || got.Tags[1] != "home" {
		t.Errorf("tags = %v", got.Tags)
	}
}

func TestAddAbortsWithoutTitle(t *testing.T) {
	m := testModel(t)
	m = enter(m, "add")
	m = enter(m, "   ")
	if m.dialog != nil {
		t.Error("dialog not closed on empty title")
	}
	if m.store.Len() != 0 {
		t.Errorf("task created without title: %d", m.store.Len())
	}
	if !strings.Contains(m.status, "no title") {
		t.Errorf("status = %q, want abort message", m.status)
	}
}

func TestAddInvalidPriorityFallsBackToNormal(t *testing.T) {
	m := testModel(t)
	m = enter(m, "add")
	m = enter(m, "task")
	m = enter(m, "urgent")
	if !strings.Contains(m.status, "Invalid priority") {
		t.Errorf("no warning for invalid priority: %q", m.status)
	}
	m = enter(m, "")
	m = enter(m, "")
	if got := m.store.Tasks()[0].Priority; got != task.PriorityNormal {
		t.Errorf("priority = %q, want normal", got)
	}
}

func TestAddInvalidDateLeftEmpty(t *testing.T) {
	m := testModel(t)
	m = enter(m, "add")
	m = enter(m, "task")
	m = enter(m, "")
	m = enter(m, "31.02.2024")
	if !strings.Contains(m.status, "Invalid date") {
		t.Errorf("no warning for invalid date: %q", m.status)
	}
	m = enter(m, "")
	if got := m.store.Tasks()[0].Due; got != "" {
		t.Errorf("due = %q, want empty", got)
	}
}

func TestEditEmptyEntriesKeepFields(t *testing.T) {
	m := testModel(t)
	if _, err := m.store.Add("task", task.PriorityHigh, "2024-03-01", []string{"bills"}); err != nil {
		t.Fatal(err)
	}
	before := m.store.Tasks()[0]

	m = enter(m, "edit")
	for i := 0; i < 4; i++ {
		m = enter(m, "")
	}
	after := m.store.Tasks()[0]
	if after.Title != before.Title || after.Priority != before.Priority || after.Due != before.Due {
		t.Errorf("fields changed on empty entries: %+v", after)
	}
}

func TestEditClearTokens(t *testing.T) {
	m := testModel(t)
	if _, err := m.store.Add("task", task.PriorityHigh, "2024-03-01", []string{"bills"}); err != nil {
		t.Fatal(err)
	}
	m = enter(m, "edit")
	m = enter(m, "")      // keep title
	m = enter(m, "")      // keep priority
	m = enter(m, "keine") // clear due
	m = enter(m, "none")  // clear tags

	got := m.store.Tasks()[0]
	if got.Due != "" {
		t.Errorf("due = %q, want cleared", got.Due)
	}
	if len(got.Tags) != 0 {
		t.Errorf("tags = %v, want cleared", got.Tags)
	}
	if got.Title != "task" || got.Priority != task.PriorityHigh {
		t.Errorf("kept fields changed: %+v", got)
	}
}

func TestEditInvalidDateKeepsCurrent(t *testing.T) {
	m := testModel(t)
	if _, err := m.store.Add("task", task.PriorityNormal, "2024-03-01", nil); err != nil {
		t.Fatal(err)
	}
	m = enter(m, "edit")
	m = enter(m, "")
	m = enter(m, "")
	m = enter(m, "13.13.2024")
	m = enter(m, "")
	if got := m.store.Tasks()[0].Due; got != "2024-03-01" {
		t.Errorf("due = %q, want unchanged", got)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m := testModel(t, "one", "two")
	m = enter(m, "delete")
	if !m.confirmDel {
		t.Fatal("delete did not ask for confirmation")
	}
	m, _ = m.updateDeleteConfirm("n")
	if m.store.Len() != 2 {
		t.Errorf("task deleted despite cancel: %d", m.store.Len())
	}

	m = enter(m, "delete")
	m, _ = m.updateDeleteConfirm("y")
	if m.store.Len() != 1 {
		t.Errorf("len = %d, want 1", m.store.Len())
	}
	if m.store.Tasks()[0].ID != 1 {
		t.Errorf("ids not renumbered: %+v", m.store.Tasks()[0])
	}
}

func TestDeleteWithEmptyList(t *testing.T) {
	m := enter(testModel(t), "delete")
	if m.confirmDel {
		t.Error("confirmation opened with nothing selected")
	}
	if !strings.Contains(m.status, "Nothing selected") {
		t.Errorf("status = %q", m.status)
	}
}

func TestQuitReturnsQuit(t *testing.T) {
	m := testModel(t)
	for _, word := range []string{"quit", "q", "exit"} {
		_, cmd := m.dispatch(word)
		if cmd == nil {
			t.Fatalf("%q returned no command", word)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q did not quit", word)
		}
	}
}

func TestSaveWithoutGateway(t *testing.T) {
	m := enter(testModel(t, "one"), "save")
	if !strings.Contains(m.status, "No database configured") {
		t.Errorf("status = %q", m.status)
	}
}

func TestSaveAndReloadThroughGateway(t *testing.T) {
	gw := &fakeGateway{}
	s := task.NewStore(nil)
	if _, err := s.Add("one", task.PriorityNormal, "", nil); err != nil {
		t.Fatal(err)
	}
	m := NewModel(s, gw, config.Config{TitleWidth: 40})

	m = enter(m, "save")
	if len(gw.saved) != 1 || gw.saved[0].Title != "one" {
		t.Errorf("saved = %+v", gw.saved)
	}

	gw.toLoad = []task.Task{{Title: "fresh", Status: task.StatusOpen, Priority: task.PriorityNormal}}
	m = enter(m, "reload")
	if m.store.Len() != 1 || m.store.Tasks()[0].Title != "fresh" {
		t.Errorf("reload did not replace the list: %+v", m.store.Tasks())
	}
	if m.store.Tasks()[0].ID != 1 {
		t.Errorf("loaded tasks not renumbered: %+v", m.store.Tasks()[0])
	}
}

func TestPersistenceErrorsAreNonFatal(t *testing.T) {
	gw := &fakeGateway{saveErr: errors.New("disk full"), loadErr: errors.New("locked")}
	m := NewModel(task.NewStore(nil), gw, config.Config{TitleWidth: 40})

	m = enter(m, "save")
	if !strings.Contains(m.status, "Save failed") {
		t.Errorf("status = %q", m.status)
	}
	m = enter(m, "reload")
	if !strings.Contains(m.status, "Reload failed") {
		t.Errorf("status = %q", m.status)
	}
}

func TestSearchDialog(t *testing.T) {
	m := testModel(t, "Alpha", "Beta")
	m = enter(m, "search")
	if m.dialog == nil {
		t.Fatal("bare search did not prompt")
	}
	m = enter(m, "beta")
	if m.search != "beta" {
		t.Errorf("search = %q", m.search)
	}
	m = enter(m, "clear")
	if m.search != "" {
		t.Errorf("clear left search = %q", m.search)
	}
}

func TestViewEmptyStatesAreDistinct(t *testing.T) {
	empty := testModel(t)
	if v := empty.View(); !strings.Contains(v, "No tasks yet") {
		t.Errorf("empty-list state missing:\n%s", v)
	}

	m := enter(testModel(t, "Alpha"), "search zzz")
	if v := m.View(); !strings.Contains(v, "No tasks match") {
		t.Errorf("no-match state missing:\n%s", v)
	}
}

func TestDetailsGuardedWhenNothingSelected(t *testing.T) {
	m := enter(testModel(t), "details")
	if v := m.View(); !strings.Contains(v, "Nothing selected") {
		t.Errorf("details not guarded:\n%s", v)
	}
}

func TestDetailsShowsFilteredSelection(t *testing.T) {
	m := testModel(t, "Beta", "Alpha")
	m = enter(m, "search alp")
	m = enter(m, "details")
	v := m.View()
	if !strings.Contains(v, "Alpha") || strings.Contains(v, "Beta") {
		t.Errorf("details shows wrong task:\n%s", v)
	}
}

func TestLongTitlesAreTruncated(t *testing.T) {
	long := strings.Repeat("x", 60)
	m := testModel(t, long)
	v := m.View()
	if strings.Contains(v, long) {
		t.Error("title not truncated")
	}
	if !strings.Contains(v, "…") {
		t.Error("no ellipsis marker")
	}
}
