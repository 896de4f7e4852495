package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MinWidth is the narrowest frame the helpers will draw.
const MinWidth = 24

// Meter renders a bar with an n/total count, e.g. for filter matches.
func Meter(n, total, width int) string {
	t := Current()
	if width < 5 {
		width = 5
	}
	filled := 0
	if total > 0 {
		filled = int(float64(n) / float64(total) * float64(width))
	}
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(t.MeterFull, filled) + strings.Repeat(t.MeterVoid, width-filled)
	return fmt.Sprintf("%s %d/%d", t.Muted.Render(bar), n, total)
}

// Panel draws a framed box using the current theme. width <= 0 sizes the
// box to its content.
func Panel(content string, width int) string {
	t := Current()
	s := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	if width > 0 {
		// Width excludes the border.
		s = s.Width(max(width, MinWidth) - 2)
	}
	return s.Render(content)
}

// Card is a Panel with a title, an optional description and a body.
func Card(title, desc string, body []string, width int) string {
	t := Current()
	lines := []string{t.Title.Render(title)}
	if desc != "" {
		lines = append(lines, t.Subtitle.Render(desc))
	}
	if len(body) > 0 {
		lines = append(lines, "")
		lines = append(lines, body...)
	}
	return Panel(strings.Join(lines, "\n"), width)
}

// Pills renders labels as badges on one line; lipgloss wraps them when the
// enclosing block is narrower.
func Pills(items []string) string {
	t := Current()
	out := make([]string, 0, len(items))
	for _, it := range items {
		if t.Name == "mono" {
			out = append(out, "["+it+"]")
			continue
		}
		out = append(out, t.Pill.Render(it))
	}
	return strings.Join(out, " ")
}

// Bullets prefixes each item with the theme bullet and hangs wrapped lines
// under the text. width <= 0 disables wrapping.
func Bullets(items []string, width int) []string {
	t := Current()
	out := make([]string, 0, len(items))
	for _, it := range items {
		prefix := t.Bullet + " "
		if width > 0 {
			body := lipgloss.NewStyle().Width(max(width-lipgloss.Width(prefix), 8)).Render(it)
			out = append(out, lipgloss.JoinHorizontal(lipgloss.Top, t.Muted.Render(prefix), body))
			continue
		}
		out = append(out, t.Muted.Render(prefix)+it)
	}
	return out
}

// SectionHeader is the title + subtitle line shown above each anchor.
func SectionHeader(title, subtitle string) string {
	t := Current()
	if subtitle == "" {
		return t.Title.Render(title)
	}
	return t.Title.Render(title) + "\n" + t.Subtitle.Render(subtitle)
}

// Tabs renders a row of labels with the active one highlighted.
func Tabs(labels []string, active int) string {
	t := Current()
	out := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			if t.Name == "mono" {
				l = "[" + l + "]"
			}
			out[i] = t.TabActive.Render(l)
			continue
		}
		if t.Name == "mono" {
			l = " " + l + " "
		}
		out[i] = t.Tab.Render(l)
	}
	return strings.Join(out, " ")
}

// KeyValue renders "label  value" rows used by the at-a-glance card.
func KeyValue(label, value string) string {
	t := Current()
	return t.Muted.Render(label+":") + " " + value
}
