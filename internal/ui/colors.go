package ui

import "github.com/charmbracelet/lipgloss"

// Brand colors. Accent follows setlist.fm, link follows YouTube Music.
const (
	accent  = lipgloss.Color("#E4572E")
	success = lipgloss.Color("#04B575")
	failure = lipgloss.Color("#FF5F5F")
	caution = lipgloss.Color("#FFA500")
	muted   = lipgloss.Color("#626262")
	link    = lipgloss.Color("#FF0033")
)

// stylesheet names the [lipgloss.Style] of each kind of text the views render.
type stylesheet struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
	url   lipgloss.Style
}

var styles = newStylesheet()

func newStylesheet() stylesheet {
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	return stylesheet{
		title: fg(accent).Bold(true).MarginBottom(1),
		ok:    fg(success).Bold(true),
		err:   fg(failure).Bold(true),
		warn:  fg(caution),
		help:  fg(muted).Italic(true),
		url:   fg(link).Underline(true),
	}
}
