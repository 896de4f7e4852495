package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Subtitle, Muted, Accent lipgloss.Style
	Success, Error                 lipgloss.Style
	Pill, Selected, TabActive      lipgloss.Style
	Tab                            lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor

	Bullet               string
	SymOpen, SymClosed   string
	SymCheck, SymCross   string
	MeterFull, MeterVoid string
}

var current = classic()

func classic() Theme {
	return Theme{
		Name:      "classic",
		Title:     lipgloss.NewStyle().Bold(true),
		Subtitle:  lipgloss.NewStyle().Faint(true),
		Muted:     lipgloss.NewStyle().Faint(true),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pill:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")).Padding(0, 1),
		Selected:  lipgloss.NewStyle().Bold(true).Reverse(true),
		TabActive: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("12")).Padding(0, 1),
		Tab:       lipgloss.NewStyle().Faint(true).Padding(0, 1),

		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("8"),

		Bullet:    "•",
		SymOpen:   "▾",
		SymClosed: "▸",
		SymCheck:  "✔",
		SymCross:  "✖",
		MeterFull: "█",
		MeterVoid: "░",
	}
}

// SetTheme switches the palette. Unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		t := classic()
		t.Name = "neon"
		t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
		t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		t.Pill = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("14")).Padding(0, 1)
		t.TabActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("13")).Padding(0, 1)
		t.BorderColor = lipgloss.Color("13")
		t.Bullet = "◆"
		current = t
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Name:      "mono",
			Title:     plain,
			Subtitle:  plain,
			Muted:     plain,
			Accent:    plain,
			Success:   plain,
			Error:     plain,
			Pill:      plain,
			Selected:  plain,
			TabActive: plain,
			Tab:       plain,

			Border:      lipgloss.ASCIIBorder(),
			BorderColor: lipgloss.NoColor{},

			Bullet:    "-",
			SymOpen:   "v",
			SymClosed: ">",
			SymCheck:  "ok",
			SymCross:  "x",
			MeterFull: "#",
			MeterVoid: ".",
		}
	default: // classic
		current = classic()
	}
}

// Expose what renderers need
func Current() Theme { return current }
