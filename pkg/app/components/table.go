package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/kerbaras/ucfprep/pkg/data"
)

// RunsTable renders runs as a static table, newest first as given.
func RunsTable(runs []*data.Run) string {
	columns := []table.Column{
		{Title: "ID", Width: 36},
		{Title: "Tool", Width: 7},
		{Title: "Status", Width: 10},
		{Title: "Started", Width: 19},
		{Title: "Processed", Width: 10},
		{Title: "Skipped", Width: 8},
		{Title: "Size", Width: 9},
	}

	rows := make([]table.Row, 0, len(runs))
	for _, run := range runs {
		size := ""
		if run.Bytes > 0 {
			size = humanize.Bytes(uint64(run.Bytes))
		}
		rows = append(rows, table.Row{
			run.ID,
			run.Tool,
			run.Status,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			humanize.Comma(int64(run.Processed)),
			humanize.Comma(int64(run.Skipped)),
			size,
		})
	}

	return staticTable(columns, rows)
}

// OperationsTable renders the operations of one run in recording order.
func OperationsTable(ops []*data.Operation) string {
	columns := []table.Column{
		{Title: "#", Width: 6},
		{Title: "Kind", Width: 8},
		{Title: "Status", Width: 8},
		{Title: "Source", Width: 50},
		{Title: "Detail", Width: 40},
	}

	rows := make([]table.Row, 0, len(ops))
	for i, op := range ops {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			op.Kind,
			op.Status,
			truncateString(op.Source, 48),
			truncateString(op.Detail, 38),
		})
	}

	return staticTable(columns, rows)
}

func staticTable(columns []table.Column, rows []table.Row) string {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Bold(false)
	t.SetStyles(s)

	return t.View()
}

// truncateString keeps the tail of long paths, which is the part that
// identifies the file.
func truncateString(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return "…" + string(r[len(r)-max+1:])
}
