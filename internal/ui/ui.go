package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskpad/internal/config"
	"taskpad/internal/task"
)

type viewMode int

const (
	modeMain viewMode = iota
	modeDetails
	modeHelp
)

// Gateway is the persistence boundary; nil means degraded no-remote mode.
type Gateway interface {
	Load() ([]task.Task, error)
	Save([]task.Task) error
}

type Model struct {
	store   *task.Store
	gateway Gateway
	cfg     config.Config

	mode   viewMode
	search string
	cursor int

	input  textinput.Model
	status string

	dialog     *dialog
	confirmDel bool
	pendingDel int // store index awaiting y/n
}

func NewModel(store *task.Store, gw Gateway, cfg config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "command (help for a list)"
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()

	if cfg.TitleWidth <= 0 {
		cfg.TitleWidth = config.DefaultTitleWidth
	}
	return Model{
		store:   store,
		gateway: gw,
		cfg:     cfg,
		mode:    modeMain,
		search:  cfg.DefaultSearch,
		cursor:  0,
		input:   ti,
		status:  "Type a command and press Enter. 'help' lists everything.",
	}
}

func Run(store *task.Store, gw Gateway, cfg config.Config) error {
	program := tea.NewProgram(NewModel(store, gw, cfg))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(key)
		}
		switch key {
		case "esc":
			if m.dialog != nil {
				m.dialog = nil
				m.input.SetValue("")
				m.status = "Cancelled"
				return m, nil
			}
			if m.mode != modeMain {
				m.mode = modeMain
			}
			return m, nil
		case "enter":
			line := m.input.Value()
			m.input.SetValue("")
			return m.dispatch(line)
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) dispatch(line string) (Model, tea.Cmd) {
	if m.dialog != nil {
		return m.advanceDialog(line), nil
	}
	return m.execCommand(line)
}

// Filtered returns the current filtered view; the cursor indexes into it.
func (m Model) Filtered() []task.Task {
	return task.Filter(m.store.Tasks(), m.search)
}

// selectedStoreIndex maps the cursor back to a store index via the
// positional id, or -1 when the filtered view is empty.
func (m Model) selectedStoreIndex() int {
	filtered := m.Filtered()
	if len(filtered) == 0 {
		return -1
	}
	cur := task.Clamp(m.cursor, len(filtered))
	return filtered[cur].ID - 1
}

func (m *Model) clampCursor() {
	m.cursor = task.Clamp(m.cursor, len(m.Filtered()))
}
