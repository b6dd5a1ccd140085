package screens

import (
	tea "github.com/charmbracelet/bubbletea"
)

type screenType int

const (
	runsView screenType = iota
	operationsView
)

type RootScreen struct {
	history History

	currentView screenType
	runs        *RunsScreen
	operations  *OperationsScreen

	width  int
	height int
}

func NewRootScreen(history History, limit int) *RootScreen {
	return &RootScreen{
		history:     history,
		currentView: runsView,
		runs:        NewRunsScreen(history, limit),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return r.runs.Init()
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		// both screens need the size, not just the active one
		if r.operations != nil {
			r.operations.Update(msg)
		}
		_, cmd = r.runs.Update(msg)
		return r, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return r, tea.Quit
		}

	case SwitchScreenMsg:
		switch msg.Screen {
		case "runs":
			r.currentView = runsView
			cmd = r.runs.Init()
		case "operations":
			if runID, ok := msg.Data.(string); ok {
				r.operations = NewOperationsScreen(r.history, runID)
				r.operations.width = r.width
				r.operations.height = r.height
				r.currentView = operationsView
				cmd = r.operations.Init()
			}
		}
		return r, cmd
	}

	switch r.currentView {
	case runsView:
		newModel, newCmd := r.runs.Update(msg)
		r.runs = newModel.(*RunsScreen)
		return r, newCmd
	case operationsView:
		if r.operations != nil {
			newModel, newCmd := r.operations.Update(msg)
			r.operations = newModel.(*OperationsScreen)
			return r, newCmd
		}
	}

	return r, cmd
}

func (r *RootScreen) View() string {
	switch r.currentView {
	case operationsView:
		if r.operations != nil {
			return r.operations.View()
		}
	}
	return r.runs.View()
}
