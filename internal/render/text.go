// Package render prints the overview page outside the interactive session.
package render

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/institutions-in-your-pocket/overview/internal/model"
	"github.com/institutions-in-your-pocket/overview/internal/ui"
)

// Section names accepted by Text.
const (
	SectionAll = "all"
)

// Sections lists the printable sections in page order.
func Sections() []string {
	out := []string{}
	for _, n := range model.Nav() {
		out = append(out, n.Anchor)
	}
	return out
}

// NoMatches is printed for an empty filter result.
const NoMatches = "No use cases match your search."

// Text writes one section (or all of them) as themed cards.
func Text(w io.Writer, site *model.Site, section string, width int) error {
	if section == "" || section == SectionAll {
		for i, s := range Sections() {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if err := Text(w, site, s, width); err != nil {
				return err
			}
		}
		return nil
	}
	var out string
	switch section {
	case model.AnchorOverview:
		out = Overview(site, width)
	case model.AnchorUseCases:
		out = ui.SectionHeader("Use cases", "Filter and reuse these modules when pitching to different collaborator types.") +
			"\n\n" + UseCaseCards(site.UseCases, width)
		if a := Artifacts(site, width); a != "" {
			out += "\n" + a
		}
	case model.AnchorCollaboration:
		out = Collaboration(site, width)
	case model.AnchorFAQ:
		out = FAQ(site, width)
	case model.AnchorContact:
		out = Contact(site, width)
	default:
		return fmt.Errorf("unknown section %q (want one of %s)", section, strings.Join(append(Sections(), SectionAll), ", "))
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

// Hero is the project name, tagline, one-liner and research areas.
func Hero(site *model.Site, width int) string {
	t := ui.Current()
	p := site.Project
	wrap := lipgloss.NewStyle().Width(max(width, ui.MinWidth))
	return strings.Join([]string{
		t.Title.Render(p.Name) + "  " + t.Muted.Render("Collaborator overview"),
		"",
		wrap.Inherit(t.Accent).Render(p.Tagline),
		"",
		wrap.Render(p.OneLiner),
		"",
		wrap.Render(ui.Pills(p.Areas)),
	}, "\n")
}

// AtAGlance is the location / affiliation / links / fit card.
func AtAGlance(site *model.Site, width int) string {
	t := ui.Current()
	c := site.Contact
	body := []string{
		ui.KeyValue("Base", c.Location),
		ui.KeyValue("Affiliation", c.Affiliation),
		"",
		ui.KeyValue("Site", c.Links.Website),
		ui.KeyValue("Code", c.Links.GitHub),
		ui.KeyValue("Paper", c.Links.Preprint),
	}
	if len(site.Project.Fit) > 0 {
		body = append(body, "", t.Muted.Render("Suggested collaborator fit"))
		body = append(body, ui.Bullets(site.Project.Fit, width-4)...)
	}
	return ui.Card("At a glance", "", body, width)
}

// Overview is the whole #overview anchor.
func Overview(site *model.Site, width int) string {
	parts := []string{Hero(site, width), ""}
	for _, h := range site.Project.Highlights {
		parts = append(parts, ui.Card(h.Title, "", []string{h.Desc}, width))
	}
	parts = append(parts, AtAGlance(site, width))
	for _, s := range site.Sections.All() {
		if s.Title == "" && len(s.Bullets) == 0 {
			continue
		}
		parts = append(parts, ui.Card(s.Title, "", ui.Bullets(s.Bullets, width-4), width))
	}
	return strings.Join(parts, "\n")
}

// UseCaseCard renders one use case.
func UseCaseCard(uc model.UseCase, width int) string {
	body := []string{ui.Pills(uc.Tags), ""}
	body = append(body, ui.Bullets(uc.Points, width-4)...)
	return ui.Card(uc.Title, uc.Subtitle, body, width)
}

// UseCaseCards renders a filtered list; an empty list yields NoMatches.
func UseCaseCards(cases []model.UseCase, width int) string {
	if len(cases) == 0 {
		return ui.Current().Muted.Render(NoMatches)
	}
	cards := make([]string, 0, len(cases))
	for _, uc := range cases {
		cards = append(cards, UseCaseCard(uc, width))
	}
	return strings.Join(cards, "\n")
}

// Artifacts is the call-out card linking demo material. It is empty when the
// content has neither a title nor links.
func Artifacts(site *model.Site, width int) string {
	t := ui.Current()
	a := site.Artifacts
	if a.Title == "" && len(a.Links) == 0 {
		return ""
	}
	body := make([]string, 0, len(a.Links))
	for _, l := range a.Links {
		if l.URL == "" {
			body = append(body, t.Muted.Render(t.Bullet+" "+l.Label))
			continue
		}
		body = append(body, ui.KeyValue(l.Label, l.URL))
	}
	return ui.Card(a.Title, a.Desc, body, width)
}

// CollaborationTabs are the inner tabs of the #collaboration anchor.
var CollaborationTabs = []string{"Opportunities", "Typical process", "What we need"}

// Opportunities renders the first collaboration tab.
func Opportunities(site *model.Site, width int) string {
	t := ui.Current()
	cards := make([]string, 0, len(site.Opportunities))
	for _, o := range site.Opportunities {
		body := []string{t.Muted.Render(o.Who), ""}
		body = append(body, ui.Bullets(o.Bullets, width-4)...)
		cards = append(cards, ui.Card(o.Title, o.Desc, body, width))
	}
	return strings.Join(cards, "\n")
}

// Process renders the second collaboration tab.
func Process(site *model.Site, width int) string {
	t := ui.Current()
	p := site.Process
	body := make([]string, 0, len(p.Steps)+len(p.Outcomes)+2)
	for _, s := range p.Steps {
		body = append(body, t.Accent.Render(s.Title)+"  "+s.Desc)
	}
	if len(p.Outcomes) > 0 {
		body = append(body, "", t.Title.Render("Evaluation outcomes"))
		for _, o := range p.Outcomes {
			body = append(body, ui.KeyValue(o.Title, o.Desc))
		}
	}
	return ui.Card(p.Title, p.Desc, body, width)
}

// Requirements renders the third collaboration tab.
func Requirements(site *model.Site, width int) string {
	cards := make([]string, 0, len(site.Requirements))
	for _, r := range site.Requirements {
		cards = append(cards, ui.Card(r.Title, r.Desc, ui.Bullets(r.Items, width-4), width))
	}
	return strings.Join(cards, "\n")
}

// CollaborationTab renders inner tab i.
func CollaborationTab(site *model.Site, i, width int) string {
	switch i {
	case 1:
		return Process(site, width)
	case 2:
		return Requirements(site, width)
	default:
		return Opportunities(site, width)
	}
}

// Collaboration prints all three inner tabs one after the other.
func Collaboration(site *model.Site, width int) string {
	t := ui.Current()
	parts := []string{ui.SectionHeader("Collaboration paths", "Choose the path that matches your organization.")}
	for i, name := range CollaborationTabs {
		parts = append(parts, "", t.Accent.Render(name), CollaborationTab(site, i, width))
	}
	return strings.Join(parts, "\n")
}

// FAQItem renders one accordion entry, open or closed.
func FAQItem(f model.FAQ, open bool, width int) string {
	t := ui.Current()
	sym := t.SymClosed
	if open {
		sym = t.SymOpen
	}
	head := t.Title.Render(sym + " " + f.Q)
	if !open {
		return head
	}
	body := lipgloss.NewStyle().PaddingLeft(2).Width(max(width, ui.MinWidth)).Render(f.A)
	return head + "\n" + body
}

// FAQ prints every entry expanded.
func FAQ(site *model.Site, width int) string {
	parts := []string{ui.SectionHeader("FAQ", "Drop these into grant proposals and partner memos."), ""}
	for _, f := range site.FAQ {
		parts = append(parts, FAQItem(f, true, width), "")
	}
	return strings.TrimRight(strings.Join(parts, "\n"), "\n")
}

// Contact is the #contact anchor plus the footer.
func Contact(site *model.Site, width int) string {
	t := ui.Current()
	c := site.Contact
	emails := make([]string, 0, len(c.Emails)+3)
	for _, e := range c.Emails {
		emails = append(emails, ui.KeyValue("Email", e))
	}
	emails = append(emails, "", ui.KeyValue("Website", c.Links.Website), ui.KeyValue("GitHub", c.Links.GitHub))

	note := ui.Bullets(c.Note.Paragraphs, width-4)
	return strings.Join([]string{
		ui.SectionHeader("Contact", "Reach us directly for collaboration or research inquiries."),
		"",
		ui.Card("Email contacts", "Best for agencies, NGOs, and research groups.", emails, width),
		ui.Card(c.Note.Title, c.Note.Desc, note, width),
		"",
		t.Muted.Render(Footer(site)),
	}, "\n")
}

// Footer is the copyright line.
func Footer(site *model.Site) string {
	return fmt.Sprintf("© %d %s. Edit and deploy.", year(), site.Project.Name)
}

// NavLabels returns the labels of model.Nav.
func NavLabels() []string {
	nav := model.Nav()
	out := make([]string, len(nav))
	for i, n := range nav {
		out[i] = n.Label
	}
	return out
}

// SectionIndex maps an anchor or label to its nav position, -1 if unknown.
func SectionIndex(name string) int {
	name = strings.ToLower(strings.TrimSpace(name))
	return slices.IndexFunc(model.Nav(), func(n model.NavItem) bool {
		return n.Anchor == name || strings.ToLower(n.Label) == name
	})
}
