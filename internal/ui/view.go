package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskpad/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("taskpad"))
	b.WriteString("\n\n")

	switch m.mode {
	case modeDetails:
		b.WriteString(m.renderDetails())
	case modeHelp:
		b.WriteString(renderHelp())
	default:
		b.WriteString(m.renderMain())
	}

	b.WriteString("\n")
	b.WriteString(m.prompt())
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderMain() string {
	tasks := m.store.Tasks()
	filtered := m.Filtered()

	var b strings.Builder
	open := 0
	for _, t := range tasks {
		if t.Status == task.StatusOpen {
			open++
		}
	}
	b.WriteString(fmt.Sprintf("%d task(s) • %d open • %d done", len(tasks), open, len(tasks)-open))
	if m.search != "" {
		b.WriteString(fmt.Sprintf(" • filter: %q", m.search))
	}
	b.WriteString("\n\n")

	switch {
	case len(tasks) == 0:
		b.WriteString("No tasks yet. Type 'add' to create one.\n")
	case len(filtered) == 0:
		b.WriteString(fmt.Sprintf("No tasks match %q. Type 'clear' to drop the filter.\n", m.search))
	default:
		cur := task.Clamp(m.cursor, len(filtered))
		for i, t := range filtered {
			row := m.renderRow(i+1, t)
			if i == cur {
				row = selectedStyle.Render("> " + row)
			} else {
				row = "  " + row
			}
			b.WriteString(row)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderRow(pos int, t task.Task) string {
	checkbox := "[ ]"
	if t.Status == task.StatusDone {
		checkbox = "[x]"
	}
	due := t.Due
	if due == "" {
		due = "          "
	}
	row := fmt.Sprintf("%3d %s %-6s %s %s", pos, checkbox, t.Priority, due, truncate(t.Title, m.cfg.TitleWidth))
	if t.Status == task.StatusDone {
		return doneStyle.Render(row)
	}
	return row
}

func (m Model) renderDetails() string {
	filtered := m.Filtered()
	if len(filtered) == 0 {
		return "Nothing selected.\n"
	}
	t := filtered[task.Clamp(m.cursor, len(filtered))]

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Task %d\n", t.ID))
	b.WriteString(fmt.Sprintf("Title    : %s\n", t.Title))
	b.WriteString(fmt.Sprintf("Status   : %s\n", t.Status))
	b.WriteString(fmt.Sprintf("Priority : %s\n", t.Priority))
	b.WriteString(fmt.Sprintf("Due      : %s\n", emptyPlaceholder(t.Due)))
	b.WriteString(fmt.Sprintf("Tags     : %s\n", emptyPlaceholder(task.JoinTags(t.Tags))))
	return b.String()
}

// renderHelp is generated from the command table so it cannot drift.
func renderHelp() string {
	var b strings.Builder
	b.WriteString("Commands\n\n")
	for _, spec := range commandTable {
		name := spec.name
		if len(spec.aliases) > 0 {
			name += " (" + strings.Join(spec.aliases, ", ") + ")"
		}
		b.WriteString(fmt.Sprintf("  %-22s %s\n", name, spec.usage))
	}
	b.WriteString("  <number>               select that row in the current view\n")
	return b.String()
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width]) + "…"
}

func emptyPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return "(empty)"
	}
	return v
}
