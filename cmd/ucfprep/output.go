package cmd

import (
	"fmt"
	"io"

	"github.com/kerbaras/ucfprep/pkg/app/components"
	"github.com/kerbaras/ucfprep/pkg/app/styles"
	"github.com/kerbaras/ucfprep/pkg/services"
)

const summaryWidth = 40

// eventPrinter prints each event as it happens and tallies it for the
// closing summary.
type eventPrinter struct {
	out     io.Writer
	tracker *components.ProgressTracker
}

func newEventPrinter(out io.Writer) *eventPrinter {
	return &eventPrinter{out: out, tracker: components.NewProgressTracker(summaryWidth)}
}

func (p *eventPrinter) OnEvent(ev services.Event) {
	p.tracker.Update(ev)
	fmt.Fprintln(p.out, components.EventLine(ev))
}

// Summary prints the tally followed by the closing line.
func (p *eventPrinter) Summary(closing string) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.tracker.View())
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, styles.TitleStyle.UnsetMarginBottom().Render(closing))
}

func (p *eventPrinter) RunID(id string) {
	if id == "" {
		return
	}
	fmt.Fprintln(p.out, styles.MutedStyle.Render("Recorded as run "+id))
}
