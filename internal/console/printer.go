package console

import (
	"fmt"
	"io"

	"github.com/jwebster45206/dialog-engine/pkg/conversation"
	"github.com/muesli/reflow/wordwrap"
)

// Printer writes engine notices below the menu. Spoken lines and replies
// are already on screen from the menu, so it skips those.
type Printer struct {
	Out   io.Writer
	Width int
}

func (p *Printer) Report(e conversation.Event) {
	var styled string
	switch e.Kind {
	case conversation.EventGreeting:
		styled = promptStyle.Render(p.wrap(e.Text)) + "\n"
	case conversation.EventGateFailed:
		styled = errorStyle.Render(p.wrap(e.Text))
	case conversation.EventStateChanged:
		styled = stateStyle.Render(p.wrap(e.Text))
	case conversation.EventNotImplemented:
		styled = warnStyle.Render(p.wrap("warning: " + e.Text))
	default:
		return
	}
	_, _ = fmt.Fprintln(p.Out, styled)
}

func (p *Printer) wrap(s string) string {
	w := p.Width
	if w <= 0 {
		w = defaultWidth
	}
	return wordwrap.String(s, w)
}
