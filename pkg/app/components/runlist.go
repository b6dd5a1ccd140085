package components

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/kerbaras/ucfprep/pkg/app/styles"
	"github.com/kerbaras/ucfprep/pkg/data"
)

type RunListItem struct {
	Run        *data.Run
	Operations map[string]int // operation count by status
}

type RunList struct {
	Items         []RunListItem
	SelectedIndex int
	Width         int
	Height        int
}

func NewRunList() *RunList {
	return &RunList{
		Items:         []RunListItem{},
		SelectedIndex: 0,
		Width:         80,
		Height:        20,
	}
}

func (m *RunList) SetItems(items []RunListItem) {
	m.Items = items
	if m.SelectedIndex >= len(items) && len(items) > 0 {
		m.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		m.SelectedIndex = 0
	}
}

func (m *RunList) Next() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex++
	if m.SelectedIndex >= len(m.Items) {
		m.SelectedIndex = 0
	}
}

func (m *RunList) Prev() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex--
	if m.SelectedIndex < 0 {
		m.SelectedIndex = len(m.Items) - 1
	}
}

func (m *RunList) Selected() *RunListItem {
	if len(m.Items) == 0 || m.SelectedIndex >= len(m.Items) {
		return nil
	}
	return &m.Items[m.SelectedIndex]
}

// visible returns the window of items that fits the list height, keeping the
// selection in view. Each card takes four lines.
func (m *RunList) visible() (int, int) {
	per := m.Height / 4
	if per < 1 {
		per = 1
	}
	if len(m.Items) <= per {
		return 0, len(m.Items)
	}
	start := m.SelectedIndex - per/2
	if start < 0 {
		start = 0
	}
	end := start + per
	if end > len(m.Items) {
		end = len(m.Items)
		start = end - per
	}
	return start, end
}

func (m *RunList) View() string {
	if len(m.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render("No runs recorded yet")
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	var b strings.Builder
	start, end := m.visible()
	for i := start; i < end; i++ {
		item := m.Items[i]
		cardStyle := styles.CardStyle
		if i == m.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}

		run := item.Run
		title := lipgloss.JoinHorizontal(lipgloss.Top,
			styles.SelectedStyle.Render(run.Tool),
			" ",
			styles.StatusStyle(run.Status).Render(run.Status),
			" ",
			styles.MutedStyle.Render(humanize.Time(run.StartedAt)),
		)

		card := cardStyle.Width(m.Width - 4).Render(lipgloss.JoinVertical(
			lipgloss.Left,
			title,
			styles.MutedStyle.Render(RunSummary(run)+"  "+OperationSummary(item.Operations)),
		))
		b.WriteString(card)
		b.WriteString("\n")
	}

	if start > 0 || end < len(m.Items) {
		b.WriteString(styles.MutedStyle.Render(
			fmt.Sprintf("Showing %d-%d of %d runs", start+1, end, len(m.Items)),
		))
	}

	return b.String()
}

// RunSummary renders the counters of a run on one line.
func RunSummary(run *data.Run) string {
	parts := []string{
		fmt.Sprintf("%s processed", humanize.Comma(int64(run.Processed))),
		fmt.Sprintf("%s skipped", humanize.Comma(int64(run.Skipped))),
	}
	if run.Bytes > 0 {
		parts = append(parts, humanize.Bytes(uint64(run.Bytes)))
	}
	if run.Finished() {
		parts = append(parts, run.Duration().Round(time.Millisecond).String())
	}
	return strings.Join(parts, ", ")
}

// OperationSummary renders per-status operation counts in a stable order.
func OperationSummary(counts map[string]int) string {
	if len(counts) == 0 {
		return ""
	}
	statuses := make([]string, 0, len(counts))
	for status := range counts {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)

	parts := make([]string, 0, len(statuses))
	for _, status := range statuses {
		parts = append(parts, fmt.Sprintf("%s:%d", status, counts[status]))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
