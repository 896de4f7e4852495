package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/institutions-in-your-pocket/overview/internal/model"
	"github.com/institutions-in-your-pocket/overview/internal/ui"
)

// listItem adapts model.UseCase to bubbles/list.Item
type listItem struct {
	uc model.UseCase
}

// Implement list.Item interface
func (i listItem) Title() string       { return i.uc.Title }
func (i listItem) Description() string { return i.uc.Subtitle }
func (i listItem) FilterValue() string { return i.uc.Title }

// Custom delegate: title line plus a muted tags line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 2 }
func (d itemDelegate) Spacing() int                              { return 1 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()

	title := it.uc.Title
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(">") + " "
		title = t.Title.Render(title)
	}
	tags := t.Muted.Render(strings.Join(it.uc.Tags, " · "))
	fmt.Fprintf(w, "%s%s\n  %s", prefix, title, tags)
}

func toItems(cases []model.UseCase) []list.Item {
	li := make([]list.Item, 0, len(cases))
	for _, uc := range cases {
		li = append(li, listItem{uc: uc})
	}
	return li
}

func newUseCaseList(cases []model.UseCase) list.Model {
	l := list.New(toItems(cases), itemDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	// Filtering is ours (substring, not fuzzy); the list only displays.
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.PaginationStyle = ui.Current().Muted
	return l
}
