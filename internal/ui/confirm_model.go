package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/example/sanename/internal/rename"
	"github.com/example/sanename/pkg/ui" // Import the shared styles
)

type sessionState int

const (
	stateReviewing sessionState = iota
	stateConfirmed
	stateDeclined
)

var (
	confirmKey = key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "rename all"))
	declineKey = key.NewBinding(key.WithKeys("n", "N", "q", "esc", "ctrl+c"), key.WithHelp("n", "abort"))
)

type entryItem struct {
	entry rename.Entry
}

func (i entryItem) Title() string { return i.entry.From }
func (i entryItem) Description() string {
	if i.entry.Action == rename.ActionSkip {
		return "skipped: " + i.entry.Reason
	}
	return "-> " + i.entry.To
}
func (i entryItem) FilterValue() string { return i.entry.From }

// Model is the confirmation screen shown before anything is renamed.
type Model struct {
	state  sessionState
	list   list.Model
	width  int
	height int
}

func NewConfirmModel(plan *rename.Plan) Model {
	var items []list.Item
	for _, e := range plan.Entries {
		if e.Action != rename.ActionUnchanged {
			items = append(items, entryItem{entry: e})
		}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = fmt.Sprintf("About to rename %d files in %s", plan.Pending(), plan.Dir)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{confirmKey, declineKey}
	}

	return Model{
		state: stateReviewing,
		list:  l,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, confirmKey):
			m.state = stateConfirmed
			return m, tea.Quit
		case key.Matches(msg, declineKey):
			m.state = stateDeclined
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.state != stateReviewing {
		return ""
	}
	return "\n" + m.list.View() + "\n" + ui.Subtle("y: rename all • n: abort")
}

// Confirmed reports whether the user accepted the plan.
func (m Model) Confirmed() bool {
	return m.state == stateConfirmed
}

// RunConfirm shows the plan full screen and waits for y or n.
func RunConfirm(plan *rename.Plan, in io.Reader, out io.Writer) (bool, error) {
	p := tea.NewProgram(NewConfirmModel(plan), tea.WithInput(in), tea.WithOutput(out), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("failed to run confirmation screen: %w", err)
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, fmt.Errorf("internal error: invalid model")
	}
	return m.Confirmed(), nil
}
