package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/institutions-in-your-pocket/overview/internal/model"
)

// now is swapped in tests so the footer year is stable.
var now = time.Now

func year() int { return now().Year() }

// Markdown writes the whole page. Each nav section is a level-two heading
// preceded by an HTML anchor so in-page links work on GitHub and in the
// HTML export alike.
func Markdown(w io.Writer, site *model.Site) error {
	return writeMarkdown(w, site, mdOptions{anchors: true, nav: true})
}

type mdOptions struct {
	anchors bool // <a id> before each section heading
	nav     bool // nav link line under the title and in the footer
}

func writeMarkdown(w io.Writer, site *model.Site, o mdOptions) error {
	var b bytes.Buffer
	heading := func(title, anchor string) {
		if o.anchors {
			fmt.Fprintf(&b, "<a id=\"%s\"></a>\n\n", anchor)
		}
		fmt.Fprintf(&b, "## %s\n\n", title)
	}
	para := func(s string) {
		if s != "" {
			fmt.Fprintf(&b, "%s\n\n", escapeBlock(s))
		}
	}
	p := site.Project

	fmt.Fprintf(&b, "# %s\n\n", escapeMD(p.Name))
	fmt.Fprintf(&b, "_Collaborator overview_\n\n")
	if o.nav {
		b.WriteString(navLine() + "\n\n")
	}

	heading("Overview", model.AnchorOverview)
	if p.Tagline != "" {
		fmt.Fprintf(&b, "**%s**\n\n", escapeMD(p.Tagline))
	}
	para(p.OneLiner)
	if codes := inlineCodes(p.Areas); codes != "" {
		fmt.Fprintf(&b, "%s\n\n", codes)
	}
	for _, h := range p.Highlights {
		fmt.Fprintf(&b, "- **%s.** %s\n", escapeMD(h.Title), escapeMD(h.Desc))
	}
	if len(p.Highlights) > 0 {
		b.WriteString("\n")
	}

	c := site.Contact
	b.WriteString("### At a glance\n\n")
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Base | %s |\n", escapeMD(c.Location))
	fmt.Fprintf(&b, "| Affiliation | %s |\n", escapeMD(c.Affiliation))
	fmt.Fprintf(&b, "| Site | %s |\n", link(c.Links.Website))
	fmt.Fprintf(&b, "| Code | %s |\n", link(c.Links.GitHub))
	fmt.Fprintf(&b, "| Paper | %s |\n\n", link(c.Links.Preprint))
	if len(p.Fit) > 0 {
		b.WriteString("Suggested collaborator fit:\n\n")
		bullets(&b, p.Fit)
	}
	for _, s := range site.Sections.All() {
		if s.Title == "" {
			continue
		}
		fmt.Fprintf(&b, "### %s\n\n", escapeMD(s.Title))
		bullets(&b, s.Bullets)
	}

	heading("Use cases", model.AnchorUseCases)
	b.WriteString("Filter and reuse these modules when pitching to different collaborator types.\n\n")
	UseCasesMarkdown(&b, site.UseCases)
	if a := site.Artifacts; a.Title != "" || len(a.Links) > 0 {
		if a.Title != "" {
			fmt.Fprintf(&b, "### %s\n\n", escapeMD(a.Title))
		}
		para(a.Desc)
		for _, l := range a.Links {
			fmt.Fprintf(&b, "- %s\n", artifactLink(l))
		}
		if len(a.Links) > 0 {
			b.WriteString("\n")
		}
	}

	heading("Collaboration paths", model.AnchorCollaboration)
	b.WriteString("Choose the path that matches your organization.\n\n")
	b.WriteString("### Opportunities\n\n")
	for _, o := range site.Opportunities {
		fmt.Fprintf(&b, "#### %s\n\n", escapeMD(o.Title))
		if o.Who != "" {
			fmt.Fprintf(&b, "*%s*. %s\n\n", escapeMD(o.Who), escapeMD(o.Desc))
		} else {
			para(o.Desc)
		}
		bullets(&b, o.Bullets)
	}
	b.WriteString("### Typical process\n\n")
	if site.Process.Title != "" {
		fmt.Fprintf(&b, "#### %s\n\n", escapeMD(site.Process.Title))
	}
	para(site.Process.Desc)
	for _, s := range site.Process.Steps {
		fmt.Fprintf(&b, "- **%s** %s\n", escapeMD(s.Title), escapeMD(s.Desc))
	}
	if len(site.Process.Steps) > 0 {
		b.WriteString("\n")
	}
	if len(site.Process.Outcomes) > 0 {
		b.WriteString("**Evaluation outcomes**\n\n")
		for _, o := range site.Process.Outcomes {
			fmt.Fprintf(&b, "- **%s:** %s\n", escapeMD(o.Title), escapeMD(o.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString("### What we need\n\n")
	for _, r := range site.Requirements {
		fmt.Fprintf(&b, "#### %s\n\n", escapeMD(r.Title))
		para(r.Desc)
		bullets(&b, r.Items)
	}

	heading("FAQ", model.AnchorFAQ)
	b.WriteString("Drop these into grant proposals and partner memos.\n\n")
	for _, f := range site.FAQ {
		fmt.Fprintf(&b, "**%s**\n\n", escapeMD(f.Q))
		para(f.A)
	}

	heading("Contact", model.AnchorContact)
	b.WriteString("Reach us directly for collaboration or research inquiries.\n\n")
	for _, e := range c.Emails {
		fmt.Fprintf(&b, "- Email: %s\n", mailLink(e))
	}
	fmt.Fprintf(&b, "- Website: %s\n- GitHub: %s\n\n", link(c.Links.Website), link(c.Links.GitHub))
	if c.Note.Title != "" {
		fmt.Fprintf(&b, "### %s\n\n", escapeMD(c.Note.Title))
		para(c.Note.Desc)
		for _, s := range c.Note.Paragraphs {
			para(s)
		}
	}
	b.WriteString("---\n\n")
	if o.nav {
		fmt.Fprintf(&b, "%s %s\n", escapeMD(Footer(site)), navLine())
	} else {
		fmt.Fprintf(&b, "%s\n", escapeMD(Footer(site)))
	}

	_, err := w.Write(b.Bytes())
	return err
}

// UseCasesMarkdown writes use-case cards; empty input writes NoMatches.
func UseCasesMarkdown(b io.Writer, cases []model.UseCase) {
	if len(cases) == 0 {
		fmt.Fprintf(b, "_%s_\n\n", NoMatches)
		return
	}
	for _, uc := range cases {
		fmt.Fprintf(b, "### %s\n\n", escapeMD(uc.Title))
		if uc.Subtitle != "" {
			fmt.Fprintf(b, "*%s*\n\n", escapeMD(uc.Subtitle))
		}
		if codes := inlineCodes(uc.Tags); codes != "" {
			fmt.Fprintf(b, "%s\n\n", codes)
		}
		bullets(b, uc.Points)
	}
}

func navLine() string {
	nav := model.Nav()
	links := make([]string, len(nav))
	for i, n := range nav {
		links[i] = fmt.Sprintf("[%s](#%s)", n.Label, n.Anchor)
	}
	return strings.Join(links, " · ")
}

func bullets(w io.Writer, items []string) {
	if len(items) == 0 {
		return
	}
	for _, it := range items {
		fmt.Fprintf(w, "- %s\n", escapeBlock(it))
	}
	fmt.Fprintln(w)
}

// mdEscaper turns inline markup and raw HTML into character references.
// Backslash escapes would do for goldmark, but glamour prints the backslash;
// both decode references.
var mdEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`\`, "&#92;",
	"`", "&#96;",
	"*", "&#42;",
	"_", "&#95;",
	"[", "&#91;",
	"]", "&#93;",
	"#", "&#35;",
	"|", "&#124;",
	"~", "&#126;",
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

// escapeMD makes s literal text inside a Markdown line or table cell.
func escapeMD(s string) string {
	return mdEscaper.Replace(s)
}

// escapeBlock is escapeMD for text that starts a line, where a leading
// "-", "+", "=" or "1." would open a list or heading.
func escapeBlock(s string) string {
	s = escapeMD(strings.TrimLeft(s, " \t"))
	if s == "" {
		return s
	}
	switch s[0] {
	case '-':
		return "&#45;" + s[1:]
	case '+':
		return "&#43;" + s[1:]
	case '=':
		return "&#61;" + s[1:]
	}
	n := 0
	for n < len(s) && n < 10 && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n > 0 && n < len(s) {
		switch s[n] {
		case '.':
			return s[:n] + "&#46;" + s[n+1:]
		case ')':
			return s[:n] + "&#41;" + s[n+1:]
		}
	}
	return s
}

// inlineCodes renders items as code spans. The fence is one backtick longer
// than the longest run inside the item.
func inlineCodes(items []string) string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.Join(strings.Fields(it), " ")
		if it == "" {
			continue
		}
		fence := strings.Repeat("`", longestRun(it, '`')+1)
		if strings.HasPrefix(it, "`") || strings.HasSuffix(it, "`") {
			it = " " + it + " "
		}
		out = append(out, fence+it+fence)
	}
	return strings.Join(out, " ")
}

func longestRun(s string, c byte) int {
	best, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] != c {
			cur = 0
			continue
		}
		cur++
		best = max(best, cur)
	}
	return best
}

// safeURL reports whether u can be written as an autolink.
func safeURL(u string) bool {
	if strings.ContainsAny(u, " \t\r\n<>\"") {
		return false
	}
	for _, scheme := range []string{"https://", "http://", "mailto:"} {
		if strings.HasPrefix(strings.ToLower(u), scheme) && len(u) > len(scheme) {
			return true
		}
	}
	return false
}

// link autolinks web URLs; anything else is printed as text.
func link(u string) string {
	if safeURL(u) {
		return "<" + u + ">"
	}
	return escapeMD(u)
}

func mailLink(addr string) string {
	if strings.Count(addr, "@") == 1 && !strings.ContainsAny(addr, " \t\r\n<>\"\\`") {
		return "<" + addr + ">"
	}
	return escapeMD(addr)
}

func artifactLink(a model.Artifact) string {
	if !safeURL(a.URL) {
		return escapeBlock(a.Label)
	}
	return fmt.Sprintf("[%s](<%s>)", escapeMD(a.Label), a.URL)
}
