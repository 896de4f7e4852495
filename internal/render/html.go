package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/institutions-in-your-pocket/overview/internal/model"
)

// The converter configuration never changes; goldmark.Markdown is safe to
// share between conversions.
var (
	mdOnce sync.Once
	md     goldmark.Markdown
)

func converter() goldmark.Markdown {
	mdOnce.Do(func() {
		md = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			// The page's own <a id> anchors are raw HTML.
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		)
	})
	return md
}

const htmlHead = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>
body{font-family:system-ui,-apple-system,"Segoe UI",sans-serif;max-width:60rem;margin:0 auto;padding:1rem 1.5rem;line-height:1.55;color:#111}
nav{position:sticky;top:0;background:#fffc;backdrop-filter:blur(6px);padding:.5rem 0;border-bottom:1px solid #ddd}
nav a{margin-right:1rem;text-decoration:none}
code{background:#eee;border-radius:.75rem;padding:.1rem .5rem;font-family:inherit;font-size:.85em}
table{border-collapse:collapse}td{padding:.2rem .8rem .2rem 0}
h2{margin-top:2.5rem;border-top:1px solid #eee;padding-top:1.5rem}
</style>
</head>
<body>
`

const htmlFoot = `</body>
</html>
`

// HTML writes a standalone page: a sticky nav of in-page anchors followed by
// the Markdown page converted with goldmark.
func HTML(w io.Writer, site *model.Site) error {
	var src bytes.Buffer
	if err := writeMarkdown(&src, site, mdOptions{anchors: true}); err != nil {
		return err
	}
	var body bytes.Buffer
	if err := converter().Convert(src.Bytes(), &body); err != nil {
		return fmt.Errorf("convert markdown: %w", err)
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, htmlHead, html.EscapeString(site.Project.Name))
	out.WriteString("<nav>")
	for _, n := range model.Nav() {
		fmt.Fprintf(&out, `<a href="#%s">%s</a>`, n.Anchor, html.EscapeString(n.Label))
	}
	out.WriteString("</nav>\n<main>\n")
	out.Write(body.Bytes())
	out.WriteString("</main>\n")
	out.WriteString(htmlFoot)

	_, err := w.Write(out.Bytes())
	return err
}
