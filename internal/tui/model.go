// Package tui is the interactive overview session.
package tui

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/institutions-in-your-pocket/overview/internal/logging"
	"github.com/institutions-in-your-pocket/overview/internal/model"
	"github.com/institutions-in-your-pocket/overview/internal/render"
	"github.com/institutions-in-your-pocket/overview/internal/ui"
	"github.com/institutions-in-your-pocket/overview/internal/usecase"
)

// Section indexes follow model.Nav.
const (
	SectionOverview = iota
	SectionUseCases
	SectionCollaboration
	SectionFAQ
	SectionContact
	sectionCount
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// rows taken by the frame, header and help line
	chromeHeight = 6
)

// Options seed a session.
type Options struct {
	Query   string
	Section int
	Logger  *slog.Logger
}

// Model is one page session. The query, active section and accordion state
// live here only and are dropped when the program exits.
type Model struct {
	site   *model.Site
	filter *usecase.Filterer
	keys   keyMap
	log    *slog.Logger

	width, height int
	section       int

	// use cases
	search    textinput.Model
	searching bool
	query     string
	matches   []model.UseCase
	list      list.Model

	collabTab int
	faq       accordion

	vp   viewport.Model
	help help.Model
}

// New builds a session over site.
func New(site *model.Site, opt Options) Model {
	lg := opt.Logger
	if lg == nil {
		lg = logging.Discard()
	}
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search use cases"
	ti.CharLimit = 120

	// the session never writes through to the caller's content
	site = site.Clone()
	m := Model{
		site:   site,
		filter: usecase.NewFilterer(site.UseCases),
		keys:   defaultKeys(),
		log:    lg,
		width:  defaultWidth,
		height: defaultHeight,
		search: ti,
		faq:    newAccordion(len(site.FAQ)),
		vp:     viewport.New(defaultWidth, defaultHeight-chromeHeight),
		help:   help.New(),
	}
	m.matches = m.filter.Filter("")
	m.list = newUseCaseList(m.matches)
	if opt.Query != "" {
		m.search.SetValue(opt.Query)
		m.applyQuery(opt.Query)
	}
	if opt.Section >= 0 && opt.Section < sectionCount {
		m.section = opt.Section
	}
	m.resize()
	return m
}

// Query is the current search input.
func (m Model) Query() string { return m.query }

// Matches is a copy of the filtered use-case list shown in the session.
func (m Model) Matches() []model.UseCase { return slices.Clone(m.matches) }

// Section is the active nav index.
func (m Model) Section() int { return m.section }

// Searching reports whether the search input has focus.
func (m Model) Searching() bool { return m.searching }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		switch {
		case key.Matches(msg, m.keys.NextSection):
			m.setSection((m.section + 1) % sectionCount)
			return m, nil
		case key.Matches(msg, m.keys.PrevSection):
			m.setSection((m.section + sectionCount - 1) % sectionCount)
			return m, nil
		case key.Matches(msg, m.keys.Jump):
			m.setSection(int(msg.String()[0] - '1'))
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
			return m, nil
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m.updateSection(msg)
	}

	var cmd tea.Cmd
	switch {
	case m.searching:
		// cursor blink
		m.search, cmd = m.search.Update(msg)
	case m.section == SectionUseCases:
		m.list, cmd = m.list.Update(msg)
	default:
		m.vp, cmd = m.vp.Update(msg)
	}
	return m, cmd
}

// updateSearch routes keys while the search input has focus: every edit
// re-filters immediately, arrows still move the selection.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyTab:
		m.searching = false
		m.search.Blur()
		m.setSection((m.section + 1) % sectionCount)
		return m, nil
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != m.query {
		m.applyQuery(v)
	}
	return m, cmd
}

func (m Model) updateSection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.section {
	case SectionUseCases:
		if key.Matches(msg, m.keys.Search) {
			m.searching = true
			return m, m.search.Focus()
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd

	case SectionCollaboration:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.collabTab = (m.collabTab + len(render.CollaborationTabs) - 1) % len(render.CollaborationTabs)
			m.refresh(true)
			return m, nil
		case key.Matches(msg, m.keys.Right):
			m.collabTab = (m.collabTab + 1) % len(render.CollaborationTabs)
			m.refresh(true)
			return m, nil
		}

	case SectionFAQ:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.faq.up()
			m.refresh(false)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.faq.down()
			m.refresh(false)
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.faq.toggle()
			m.log.Debug("faq toggled", "index", m.faq.cursor, "open", m.faq.open == m.faq.cursor)
			m.refresh(false)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *Model) applyQuery(q string) {
	m.query = q
	m.matches = m.filter.Filter(q)
	m.list.SetItems(toItems(m.matches))
	m.list.ResetSelected()
	m.log.Debug("use cases filtered", "query", q, "matches", len(m.matches), "total", m.filter.Len())
}

func (m *Model) setSection(i int) {
	if i < 0 || i >= sectionCount || i == m.section {
		return
	}
	m.section = i
	m.log.Debug("section", "anchor", model.Nav()[i].Anchor)
	m.refresh(true)
}

func (m *Model) innerWidth() int {
	// border + padding on both sides
	return max(m.width-4, ui.MinWidth)
}

func (m *Model) bodyHeight() int {
	h := m.height - chromeHeight
	if m.help.ShowAll {
		h -= 3
	}
	return max(h, 3)
}

func (m *Model) resize() {
	w := m.innerWidth()
	h := m.bodyHeight()
	m.help.Width = w
	m.search.Width = max(w-4, 10)
	m.vp.Width = w
	m.vp.Height = h
	// search line + meter + blank line
	m.list.SetSize(w, max(h/2, 3))
	m.refresh(false)
}

// refresh re-renders the scrollable body of the active section.
func (m *Model) refresh(top bool) {
	w := m.innerWidth()
	var content string
	switch m.section {
	case SectionOverview:
		content = render.Overview(m.site, w)
	case SectionCollaboration:
		content = ui.Tabs(render.CollaborationTabs, m.collabTab) + "\n\n" + render.CollaborationTab(m.site, m.collabTab, w)
	case SectionFAQ:
		content = ui.SectionHeader("FAQ", "Drop these into grant proposals and partner memos.") + "\n\n" + m.faq.view(m.site.FAQ, w)
	case SectionContact:
		content = render.Contact(m.site, w)
	default:
		return
	}
	m.vp.SetContent(content)
	if top {
		m.vp.GotoTop()
	}
}

func (m Model) View() string {
	t := ui.Current()
	w := m.innerWidth()

	header := t.Title.Render(m.site.Project.Name) + "  " + t.Muted.Render("Collaborator overview") +
		"\n" + ui.Tabs(render.NavLabels(), m.section)

	var body string
	if m.section == SectionUseCases {
		body = m.useCasesView(w)
	} else {
		body = m.vp.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, "", body, m.help.View(m.keys))
	return ui.Panel(content, m.width)
}

func (m Model) useCasesView(w int) string {
	t := ui.Current()
	lines := []string{
		m.search.View(),
		ui.Meter(len(m.matches), m.filter.Len(), 20),
		"",
	}
	if len(m.matches) == 0 {
		lines = append(lines, t.Muted.Render(render.NoMatches))
		return strings.Join(lines, "\n")
	}
	lines = append(lines, m.list.View())
	if it, ok := m.list.SelectedItem().(listItem); ok {
		lines = append(lines, render.UseCaseCard(it.uc, w))
	}
	return strings.Join(lines, "\n")
}
