package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/institutions-in-your-pocket/overview/internal/model"
	"github.com/institutions-in-your-pocket/overview/internal/render"
	"github.com/institutions-in-your-pocket/overview/internal/store/sitestore"
	"github.com/institutions-in-your-pocket/overview/internal/ui"
	"github.com/institutions-in-your-pocket/overview/internal/usecase"
)

func newTestModel(t *testing.T, opt Options) Model {
	t.Helper()
	ui.SetColorMode("never")
	ui.SetTheme("mono")
	t.Cleanup(func() { ui.SetTheme("classic") })

	site, err := sitestore.Default()
	require.NoError(t, err)
	return New(site, opt)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds msgs through Update and returns the final model and the last
// command.
func press(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func typeText(s string) []tea.Msg {
	out := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		out = append(out, runes(string(r)))
	}
	return out
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNew_Defaults(t *testing.T) {
	m := newTestModel(t, Options{})
	assert.Equal(t, SectionOverview, m.Section())
	assert.Equal(t, "", m.Query())
	assert.Len(t, m.Matches(), 3)
	assert.False(t, m.Searching())
	assert.Nil(t, m.Init())
}

func TestMatches_ReturnsACopy(t *testing.T) {
	m := newTestModel(t, Options{})
	got := m.Matches()
	want := got[0].Title
	got[0].Title = "changed"
	got[1] = model.UseCase{}

	assert.Equal(t, want, m.Matches()[0].Title)
	assert.NotEmpty(t, m.Matches()[1].Title)
}

func TestNew_DoesNotShareContent(t *testing.T) {
	ui.SetColorMode("never")
	site, err := sitestore.Default()
	require.NoError(t, err)
	m := New(site, Options{})

	site.UseCases[0].Title = "changed"
	site.UseCases[0].Tags[0] = "changed"
	assert.NotEqual(t, "changed", m.Matches()[0].Title)
	assert.NotEqual(t, "changed", m.Matches()[0].Tags[0])
}

func TestSectionNavigation(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, SectionUseCases, m.Section())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, SectionContact, m.Section(), "shift+tab wraps")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, SectionOverview, m.Section(), "tab wraps")

	m, _ = press(t, m, runes("3"))
	assert.Equal(t, SectionCollaboration, m.Section())
	m, _ = press(t, m, runes("5"))
	assert.Equal(t, SectionContact, m.Section())
	assert.Contains(t, m.View(), "Email contacts")
}

func TestSearch_FiltersOnEveryKeystroke(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(t, m, runes("2"), runes("/"))
	require.True(t, m.Searching())

	m, _ = press(t, m, runes("a"))
	assert.Equal(t, "a", m.Query())
	assert.Equal(t, usecase.Filter("a", m.site.UseCases), m.Matches())

	m, _ = press(t, m, runes("i"), runes("d"))
	assert.Equal(t, "aid", m.Query())
	assert.Equal(t, []string{
		"Citizen-facing land law guidance",
		"Support for legal aid organizations",
	}, usecase.Titles(m.Matches()))

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "", m.Query())
	assert.Len(t, m.Matches(), 3, "blank query restores every record")
}

func TestSearch_CaseInsensitive(t *testing.T) {
	upper := newTestModel(t, Options{})
	upper, _ = press(t, upper, append([]tea.Msg{runes("2"), runes("/")}, typeText("LAND")...)...)
	lower := newTestModel(t, Options{})
	lower, _ = press(t, lower, append([]tea.Msg{runes("2"), runes("/")}, typeText("land")...)...)
	assert.Equal(t, usecase.Titles(lower.Matches()), usecase.Titles(upper.Matches()))
}

func TestSearch_NoMatchesIsEmptyState(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(t, m, append([]tea.Msg{runes("2"), runes("/")}, typeText("zzz-no-match")...)...)
	assert.Empty(t, m.Matches())
	view := m.View()
	assert.Contains(t, view, render.NoMatches)
	assert.Contains(t, view, "0/3")
}

func TestSearch_KeysTypeInsteadOfCommands(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(t, m, runes("2"), runes("/"))

	m, _ = press(t, m, runes("q"), runes("3"))
	assert.Equal(t, "q3", m.Query())
	assert.Equal(t, SectionUseCases, m.Section())
	assert.True(t, m.Searching())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Searching())
	assert.Equal(t, "q3", m.Query(), "blurring keeps the query")

	_, cmd := press(t, m, runes("q"))
	assert.True(t, isQuit(cmd))
}

func TestSearch_ArrowsMoveSelection(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(t, m, runes("2"), runes("/"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.list.Index())
	assert.True(t, m.Searching())
	assert.Equal(t, "", m.Query())
}

func TestOptions_SeedQueryAndSection(t *testing.T) {
	m := newTestModel(t, Options{Query: "paralegal", Section: SectionUseCases})
	assert.Equal(t, SectionUseCases, m.Section())
	assert.Equal(t, []string{"Support for legal aid organizations"}, usecase.Titles(m.Matches()))
	view := m.View()
	assert.Contains(t, view, "Support for legal aid organizations")
	assert.NotContains(t, view, "Institutional evaluation")

	bad := newTestModel(t, Options{Section: 42})
	assert.Equal(t, SectionOverview, bad.Section())
}

func TestCollaborationTabs(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(t, m, runes("3"))
	assert.Contains(t, m.View(), "Local legal-aid partnerships")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.collabTab)
	assert.Contains(t, m.View(), "From idea to evidence")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 2, m.collabTab, "left wraps")
	assert.Contains(t, m.View(), "Minimum requirements")
}

func TestFAQAccordion(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(t, m, runes("4"))
	assert.Equal(t, -1, m.faq.open)
	assert.NotContains(t, m.View(), "data minimization")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, m.faq.open)
	assert.Contains(t, m.View(), "data minimization")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, runes(" "))
	assert.Equal(t, 0, m.faq.open, "opening another item closes the first")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, -1, m.faq.open, "toggling the open item collapses it")
}

func TestAccordion(t *testing.T) {
	a := newAccordion(3)
	a.up()
	assert.Equal(t, 0, a.cursor)
	a.down()
	a.down()
	a.down()
	assert.Equal(t, 2, a.cursor)
	a.toggle()
	assert.Equal(t, 2, a.open)

	empty := newAccordion(0)
	empty.toggle()
	empty.down()
	assert.Equal(t, -1, empty.open)
	assert.Equal(t, 0, empty.cursor)
}

func TestHelpAndQuit(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "prev section")

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))
}

func TestWindowSize(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 100, m.width)

	for _, sec := range []string{"1", "2", "3", "4", "5"} {
		m, _ = press(t, m, runes(sec))
		for _, line := range strings.Split(m.View(), "\n") {
			assert.LessOrEqual(t, lipgloss.Width(line), 100, "section %s", sec)
		}
	}
}

func TestListItem(t *testing.T) {
	it := listItem{uc: model.UseCase{Title: "T", Subtitle: "S"}}
	assert.Equal(t, "T", it.Title())
	assert.Equal(t, "S", it.Description())
	assert.Equal(t, "T", it.FilterValue())
}
