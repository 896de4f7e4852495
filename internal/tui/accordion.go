package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/institutions-in-your-pocket/overview/internal/model"
	"github.com/institutions-in-your-pocket/overview/internal/render"
	"github.com/institutions-in-your-pocket/overview/internal/ui"
)

// accordion is a single-open, collapsible list. open is -1 when every item
// is collapsed.
type accordion struct {
	n      int
	cursor int
	open   int
}

func newAccordion(n int) accordion { return accordion{n: n, open: -1} }

func (a *accordion) up() {
	if a.cursor > 0 {
		a.cursor--
	}
}

func (a *accordion) down() {
	if a.cursor < a.n-1 {
		a.cursor++
	}
}

// toggle opens the item under the cursor, closing any other; toggling the
// open item collapses it.
func (a *accordion) toggle() {
	if a.n == 0 {
		return
	}
	if a.open == a.cursor {
		a.open = -1
		return
	}
	a.open = a.cursor
}

func (a accordion) view(items []model.FAQ, width int) string {
	t := ui.Current()
	rows := make([]string, 0, len(items))
	for i, f := range items {
		marker := "  "
		if i == a.cursor {
			marker = t.Selected.Render(">") + " "
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, marker, render.FAQItem(f, i == a.open, width-2)))
	}
	return strings.Join(rows, "\n\n")
}
