package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/ucfprep/pkg/app/screens"
)

type App struct {
	history screens.History
	limit   int
}

func NewApp(history screens.History, limit int) *App {
	return &App{history: history, limit: limit}
}

func (a *App) Run() error {
	model := screens.NewRootScreen(a.history, a.limit)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
