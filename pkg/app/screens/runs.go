package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/ucfprep/pkg/app/components"
	"github.com/kerbaras/ucfprep/pkg/app/styles"
)

type RunsScreen struct {
	history History
	limit   int
	runList *components.RunList
	width   int
	height  int
	err     error
}

func NewRunsScreen(history History, limit int) *RunsScreen {
	return &RunsScreen{
		history: history,
		limit:   limit,
		runList: components.NewRunList(),
	}
}

func (s *RunsScreen) Init() tea.Cmd {
	return s.loadRuns
}

func (s *RunsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.runList.Width = msg.Width - 4
		s.runList.Height = msg.Height - 8

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.runList.Prev()
		case "down", "j":
			s.runList.Next()
		case "r":
			return s, s.loadRuns
		case "d":
			selected := s.runList.Selected()
			if selected != nil {
				return s, s.deleteRun(selected.Run.ID)
			}
		case "enter":
			selected := s.runList.Selected()
			if selected != nil {
				id := selected.Run.ID
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "operations", Data: id}
				}
			}
		}

	case runsLoadedMsg:
		s.runList.SetItems(msg.items)
		s.err = msg.err

	case runDeletedMsg:
		if msg.err != nil {
			s.err = msg.err
		}
		return s, s.loadRuns
	}

	return s, nil
}

func (s *RunsScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render(fmt.Sprintf("🗂  Runs (%d)", len(s.runList.Items)))

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err))
		errorMsg += "\n\n"
	}

	help := styles.HelpStyle.Render(
		"↑/k: up • ↓/j: down • enter: operations • d: delete • r: refresh • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s%s\n%s", header, errorMsg, s.runList.View(), help)
}

// Messages
type runsLoadedMsg struct {
	items []components.RunListItem
	err   error
}

type runDeletedMsg struct {
	err error
}

// Commands
func (s *RunsScreen) loadRuns() tea.Msg {
	runs, err := s.history.ListRuns(s.limit)
	if err != nil {
		return runsLoadedMsg{err: err}
	}

	items := make([]components.RunListItem, len(runs))
	for i, run := range runs {
		counts, _ := s.history.CountOperations(run.ID)
		items[i] = components.RunListItem{Run: run, Operations: counts}
	}

	return runsLoadedMsg{items: items}
}

func (s *RunsScreen) deleteRun(id string) tea.Cmd {
	return func() tea.Msg {
		return runDeletedMsg{err: s.history.DeleteRun(id)}
	}
}
