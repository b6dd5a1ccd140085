package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/kerbaras/ucfprep/pkg/app/styles"
	"github.com/kerbaras/ucfprep/pkg/services"
)

var statusIcons = map[string]string{
	services.StatusOK:      "✅",
	services.StatusMissing: "⚠️ ",
	services.StatusFailed:  "❌",
	services.StatusSkipped: "⏭️ ",
}

var doneVerbs = map[string]string{
	services.KindDownload:  "Downloaded",
	services.KindExtract:   "Extracted",
	services.KindCopy:      "Copied",
	services.KindMove:      "Moved",
	services.KindRemoveDir: "Removed",
}

// EventLine renders one event as a status line for the terminal.
func EventLine(ev services.Event) string {
	icon, ok := statusIcons[ev.Status]
	if !ok {
		icon = "•"
	}

	subject := ev.Source
	if ev.Target != "" && ev.Target != ev.Source {
		subject = fmt.Sprintf("%s → %s", ev.Source, ev.Target)
	}

	var text string
	if verb, ok := doneVerbs[ev.Kind]; ok && ev.Status == services.StatusOK {
		text = fmt.Sprintf("%s %s", verb, subject)
	} else {
		text = fmt.Sprintf("%s %s: %s", ev.Kind, ev.Status, subject)
	}

	detail := ev.Detail
	if ev.Err != nil && detail != ev.Err.Error() {
		if detail != "" {
			detail += ": "
		}
		detail += ev.Err.Error()
	}
	if detail != "" {
		text += " (" + detail + ")"
	}

	return icon + " " + styles.StatusStyle(ev.Status).Render(text)
}

// ProgressTracker tallies events by status as a tool runs.
type ProgressTracker struct {
	counts map[string]int
	total  int
	width  int
}

func NewProgressTracker(width int) *ProgressTracker {
	return &ProgressTracker{
		counts: make(map[string]int),
		width:  width,
	}
}

func (p *ProgressTracker) Update(ev services.Event) {
	p.counts[ev.Status]++
	p.total++
}

func (p *ProgressTracker) Count(status string) int {
	return p.counts[status]
}

// View renders the share of successful operations and a count per status.
func (p *ProgressTracker) View() string {
	if p.total == 0 {
		return styles.MutedStyle.Render("nothing to do")
	}

	var b strings.Builder
	b.WriteString(renderProgressBar(p.counts[services.StatusOK], p.total, p.width))
	b.WriteString("\n")

	statuses := make([]string, 0, len(p.counts))
	for status := range p.counts {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)

	parts := make([]string, 0, len(statuses))
	for _, status := range statuses {
		parts = append(parts, styles.StatusStyle(status).Render(
			fmt.Sprintf("%s %s", humanize.Comma(int64(p.counts[status])), status)))
	}
	b.WriteString(strings.Join(parts, styles.MutedStyle.Render(" • ")))
	return b.String()
}

func renderProgressBar(current, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}

	return styles.ProgressBarStyle.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}
