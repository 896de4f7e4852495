package render

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"

	"github.com/institutions-in-your-pocket/overview/internal/model"
)

// Terminal renders the page Markdown with glamour. color=false selects the
// plain "notty" style. color=true forces the dark or light style even when
// stdout is not a terminal; callers decide whether color is wanted.
func Terminal(site *model.Site, width int, color bool) (string, error) {
	var src bytes.Buffer
	if err := writeMarkdown(&src, site, mdOptions{}); err != nil {
		return "", err
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(max(width-4, 20))}
	if color {
		opts = append(opts,
			glamour.WithStandardStyle(colorStyle()),
			glamour.WithColorProfile(termenv.ANSI256),
		)
	} else {
		opts = append(opts, glamour.WithStandardStyle(styles.NoTTYStyle))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(src.String())
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

func colorStyle() string {
	if termenv.HasDarkBackground() {
		return styles.DarkStyle
	}
	return styles.LightStyle
}
