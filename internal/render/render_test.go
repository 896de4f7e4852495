package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/institutions-in-your-pocket/overview/internal/model"
	"github.com/institutions-in-your-pocket/overview/internal/store/sitestore"
	"github.com/institutions-in-your-pocket/overview/internal/ui"
	"github.com/institutions-in-your-pocket/overview/internal/usecase"
)

func setup(t *testing.T) *model.Site {
	t.Helper()
	ui.SetColorMode("never")
	ui.SetTheme("mono")
	t.Cleanup(func() { ui.SetTheme("classic") })

	prev := now
	now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = prev })

	site, err := sitestore.Default()
	require.NoError(t, err)
	return site
}

func TestText_Sections(t *testing.T) {
	site := setup(t)

	tests := []struct {
		section string
		want    []string
	}{
		{model.AnchorOverview, []string{"Institutions in Your Pocket", "[Legal empowerment]", "At a glance", "Stockholm, Sweden", "Research approach", "Institutional gap"}},
		{model.AnchorUseCases, []string{"Use cases", "Citizen-facing land law guidance", "[Paralegals]", "Field experiment in Kenya"}},
		{model.AnchorCollaboration, []string{"Collaboration paths", "Opportunities", "Typical process", "What we need", "1) Discovery", "Evaluation outcomes", "Optional enhancements"}},
		{model.AnchorFAQ, []string{"FAQ", "v How do you handle privacy and sensitive data?", "data minimization"}},
		{model.AnchorContact, []string{"Email contacts", "felix.hasselblad@iies.su.se", "Coordination note", "© 2026 Institutions in Your Pocket."}},
	}
	for _, tt := range tests {
		t.Run(tt.section, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Text(&buf, site, tt.section, 100))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestText_AllAndUnknown(t *testing.T) {
	site := setup(t)

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, site, "", 100))
	out := buf.String()
	assert.Less(t, strings.Index(out, "At a glance"), strings.Index(out, "Citizen-facing land law guidance"))
	assert.Less(t, strings.Index(out, "Collaboration paths"), strings.Index(out, "Email contacts"))

	err := Text(&buf, site, "pricing", 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown section "pricing"`)
}

func TestUseCaseCards_Empty(t *testing.T) {
	setup(t)
	assert.Equal(t, NoMatches, UseCaseCards(nil, 80))
}

func TestUseCaseCards_Filtered(t *testing.T) {
	site := setup(t)
	out := UseCaseCards(usecase.Filter("paralegal", site.UseCases), 80)
	assert.Contains(t, out, "Support for legal aid organizations")
	assert.NotContains(t, out, "Institutional evaluation")
}

func TestFAQItem_Closed(t *testing.T) {
	setup(t)
	out := FAQItem(model.FAQ{Q: "Question?", A: "Answer."}, false, 60)
	assert.Equal(t, "> Question?", out)
	open := FAQItem(model.FAQ{Q: "Question?", A: "Answer."}, true, 60)
	assert.Contains(t, open, "v Question?")
	assert.Contains(t, open, "Answer.")
}

func TestMarkdown(t *testing.T) {
	site := setup(t)
	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, site))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# Institutions in Your Pocket\n"))
	for _, n := range model.Nav() {
		assert.Contains(t, out, `<a id="`+n.Anchor+`"></a>`)
		assert.Contains(t, out, "(#"+n.Anchor+")")
	}
	for _, uc := range site.UseCases {
		assert.Contains(t, out, "### "+uc.Title)
	}
	assert.Contains(t, out, "`Rural & peri-urban`")
	assert.Contains(t, out, "| Base | Stockholm, Sweden |")
	assert.Contains(t, out, "- **1) Discovery** Workflow mapping")
	assert.Contains(t, out, "**Can you share code or materials?**")
	assert.Contains(t, out, "© 2026 Institutions in Your Pocket.")
}

func TestUseCasesMarkdown_Empty(t *testing.T) {
	setup(t)
	var buf bytes.Buffer
	UseCasesMarkdown(&buf, nil)
	assert.Equal(t, "_"+NoMatches+"_\n\n", buf.String())
}

func TestHTML(t *testing.T) {
	site := setup(t)
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, site))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, "<title>Institutions in Your Pocket</title>")
	assert.Contains(t, out, `<nav><a href="#overview">Overview</a>`)
	assert.Contains(t, out, `<a id="use-cases"></a>`)
	assert.Contains(t, out, "<h2>Use cases</h2>")
	assert.Contains(t, out, "<code>Rural &amp; peri-urban</code>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "© 2026 Institutions in Your Pocket.")
	assert.Equal(t, 1, strings.Count(out, "<nav>"))
	assert.True(t, strings.HasSuffix(out, "</html>\n"))
}

func TestUseCaseTable(t *testing.T) {
	site := setup(t)
	var buf bytes.Buffer
	require.NoError(t, UseCaseTable(&buf, site.UseCases))
	out := buf.String()
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Institutional evaluation")
	assert.Contains(t, out, "RCT, Institutions, Development")
	assert.Contains(t, out, "(3 use cases)")

	buf.Reset()
	require.NoError(t, UseCaseTable(&buf, nil))
	assert.Equal(t, NoMatches+"\n", buf.String())
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, []model.UseCase{{Title: "A", Tags: []string{"x"}}}))
	assert.Contains(t, buf.String(), `"title": "A"`)
	assert.Contains(t, buf.String(), `"tags": [`)
}

func TestTerminal(t *testing.T) {
	site := setup(t)
	out, err := Terminal(site, 120, false)
	require.NoError(t, err)
	assert.Contains(t, out, "Institutions in Your Pocket")
	assert.Contains(t, out, "Citizen-facing land law guidance")
	assert.NotContains(t, out, "<a id=")
	assert.NotContains(t, out, "\x1b[")

	colored, err := Terminal(site, 120, true)
	require.NoError(t, err)
	assert.Contains(t, colored, "\x1b[")
	assert.Contains(t, colored, "Citizen-facing land law guidance")
}

// hostileSite returns content whose strings look like Markdown or HTML.
func hostileSite(t *testing.T) *model.Site {
	t.Helper()
	site := setup(t)
	site.UseCases[0].Title = "Courts <script>alert(1)</script>"
	site.UseCases[0].Points = []string{"*not emphasis*", "2. not a list"}
	site.UseCases[0].Tags = []string{"a`b", "`edge"}
	site.FAQ[0].A = "1. first line"
	site.Contact.Links.Preprint = "javascript:alert(1)"
	return site
}

func TestMarkdown_ContentIsLiteral(t *testing.T) {
	site := hostileSite(t)
	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, site))
	out := buf.String()

	assert.Contains(t, out, "### Courts &lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, out, "- &#42;not emphasis&#42;")
	assert.Contains(t, out, "- 2&#46; not a list")
	assert.Contains(t, out, "1&#46; first line")
	assert.Contains(t, out, "``a`b`` `` `edge ``")
	assert.Contains(t, out, "| Paper | javascript:alert(1) |")
}

func TestHTML_ContentIsLiteral(t *testing.T) {
	site := hostileSite(t)
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, site))
	out := buf.String()

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "Courts &lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, out, "<em>not emphasis</em>")
	assert.Contains(t, out, "<li>*not emphasis*</li>")
	assert.NotContains(t, out, "<ol>")
	assert.Contains(t, out, "<p>1. first line</p>")
	assert.Contains(t, out, "<code>a`b</code>")
	assert.Contains(t, out, "<code>`edge</code>")
	assert.NotContains(t, out, `href="javascript:`)
	// the page's own anchors still pass through
	assert.Contains(t, out, `<a id="faq"></a>`)
}

func TestTerminal_ContentIsLiteral(t *testing.T) {
	site := hostileSite(t)
	out, err := Terminal(site, 120, false)
	require.NoError(t, err)
	assert.Contains(t, out, "Courts <script>alert(1)</script>")
	assert.Contains(t, out, "*not emphasis*")
	assert.NotContains(t, out, "&#42;")
	assert.NotContains(t, out, "&lt;")
}

func TestEscapeBlock(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"- dash", "&#45; dash"},
		{"+ plus", "&#43; plus"},
		{"=== rule", "&#61;== rule"},
		{"  12) item", "12&#41; item"},
		{"3.5 percent", "3&#46;5 percent"},
		{"2026 was", "2026 was"},
		{"# not a heading", "&#35; not a heading"},
		{"> not a quote", "&gt; not a quote"},
		{"line one\nline two", "line one line two"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeBlock(tt.in))
		})
	}
}

func TestLink(t *testing.T) {
	assert.Equal(t, "<https://example.org/a_b>", link("https://example.org/a_b"))
	assert.Equal(t, "", link(""))
	assert.Equal(t, "javascript:alert(1)", link("javascript:alert(1)"))
	assert.Equal(t, "https://x.org/&lt;b&gt;", link("https://x.org/<b>"))
	assert.Equal(t, "<team@example.org>", mailLink("team@example.org"))
	assert.Equal(t, "a&lt;b@example.org", mailLink("a<b@example.org"))
}

func TestArtifacts(t *testing.T) {
	site := setup(t)
	require.Len(t, site.Artifacts.Links, 3)

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, site, model.AnchorUseCases, 100))
	out := buf.String()
	assert.Contains(t, out, "Add your artifacts")
	assert.Contains(t, out, "Data dictionary")
	assert.Less(t, strings.Index(out, "Institutional evaluation"), strings.Index(out, "Add your artifacts"))

	site.Artifacts.Links[0].URL = "https://example.org/demo"
	buf.Reset()
	require.NoError(t, Markdown(&buf, site))
	md := buf.String()
	assert.Contains(t, md, "### Add your artifacts")
	assert.Contains(t, md, "- [Demo video](<https://example.org/demo>)")
	assert.Contains(t, md, "- Protocol\n")
	assert.Less(t, strings.Index(md, "### Add your artifacts"), strings.Index(md, `<a id="collaboration">`))

	site.Artifacts = model.Artifacts{}
	assert.Empty(t, Artifacts(site, 80))
}

func TestFooter(t *testing.T) {
	site := setup(t)
	assert.Equal(t, "© 2026 Institutions in Your Pocket. Edit and deploy.", Footer(site))
}

func TestSectionIndex(t *testing.T) {
	assert.Equal(t, 0, SectionIndex("overview"))
	assert.Equal(t, 1, SectionIndex("use-cases"))
	assert.Equal(t, 1, SectionIndex("Use cases"))
	assert.Equal(t, 3, SectionIndex(" FAQ "))
	assert.Equal(t, -1, SectionIndex("pricing"))
	assert.Equal(t, []string{"Overview", "Use cases", "Collaboration", "FAQ", "Contact"}, NavLabels())
}
