package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/ucfprep/pkg/app/components"
	"github.com/kerbaras/ucfprep/pkg/app/styles"
	"github.com/kerbaras/ucfprep/pkg/data"
)

const operationsPerPage = 15

type OperationsScreen struct {
	history    History
	runID      string
	run        *data.Run
	operations []*data.Operation
	selected   int
	width      int
	height     int
	err        error
}

func NewOperationsScreen(history History, runID string) *OperationsScreen {
	return &OperationsScreen{
		history: history,
		runID:   runID,
	}
}

func (s *OperationsScreen) Init() tea.Cmd {
	return s.loadOperations
}

func (s *OperationsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.operations)-1 {
				s.selected++
			}
		case "r":
			return s, s.loadOperations
		case "esc", "backspace":
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "runs", Data: nil}
			}
		}

	case operationsLoadedMsg:
		s.run = msg.run
		s.operations = msg.operations
		s.err = msg.err
		if s.selected >= len(s.operations) {
			s.selected = 0
		}
	}

	return s, nil
}

func (s *OperationsScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}
	if s.run == nil {
		if s.err != nil {
			return styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err))
		}
		return "Loading..."
	}

	header := styles.TitleStyle.Render(fmt.Sprintf("🧾 %s %s", s.run.Tool, s.run.ID))

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err))
		errorMsg += "\n\n"
	}

	help := styles.HelpStyle.Render("↑/k ↓/j: navigate • r: refresh • esc: back • q: quit")

	return fmt.Sprintf("%s\n\n%s%s\n%s\n%s",
		header,
		errorMsg,
		s.renderRunInfo(),
		s.renderOperations(),
		help,
	)
}

func (s *OperationsScreen) renderRunInfo() string {
	args := s.run.Args
	if args == "" {
		args = "(defaults)"
	}

	info := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.StatusStyle(s.run.Status).Render(s.run.Status),
		styles.MutedStyle.Render(fmt.Sprintf("Args: %s", args)),
		styles.MutedStyle.Render(fmt.Sprintf("Started: %s", s.run.StartedAt.Local().Format("2006-01-02 15:04:05"))),
		styles.TextStyle.Render(components.RunSummary(s.run)),
	)

	return styles.CardStyle.Width(s.width - 4).Render(info)
}

func (s *OperationsScreen) renderOperations() string {
	if len(s.operations) == 0 {
		return styles.MutedStyle.Render("No operations recorded")
	}

	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Operations (%d total):", len(s.operations))))
	b.WriteString("\n\n")

	start, end := 0, len(s.operations)
	if end > operationsPerPage {
		start = s.selected - operationsPerPage/2
		if start < 0 {
			start = 0
		}
		end = start + operationsPerPage
		if end > len(s.operations) {
			end = len(s.operations)
			start = end - operationsPerPage
		}
	}

	for i := start; i < end; i++ {
		op := s.operations[i]
		line := fmt.Sprintf("%-6s %-8s %s", op.Kind, op.Status, op.Source)
		if op.Detail != "" {
			line += "  " + op.Detail
		}

		if i == s.selected {
			line = styles.SelectedStyle.Render("▸ " + line)
		} else {
			line = styles.StatusStyle(op.Status).Render("  " + line)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(s.operations) > operationsPerPage {
		b.WriteString("\n")
		b.WriteString(styles.MutedStyle.Render(
			fmt.Sprintf("Showing %d-%d of %d operations", start+1, end, len(s.operations)),
		))
	}

	return b.String()
}

// Messages
type operationsLoadedMsg struct {
	run        *data.Run
	operations []*data.Operation
	err        error
}

// Commands
func (s *OperationsScreen) loadOperations() tea.Msg {
	run, err := s.history.GetRun(s.runID)
	if err != nil {
		return operationsLoadedMsg{err: err}
	}
	if run == nil {
		return operationsLoadedMsg{err: fmt.Errorf("run %s not found", s.runID)}
	}

	ops, err := s.history.GetOperations(s.runID)
	if err != nil {
		return operationsLoadedMsg{run: run, err: err}
	}

	return operationsLoadedMsg{run: run, operations: ops}
}
