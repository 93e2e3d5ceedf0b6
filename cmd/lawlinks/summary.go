package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/iurcrowd/lawlinks/model"
	"github.com/iurcrowd/lawlinks/resolve"
)

var (
	resolvedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	degradedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00")).
			Bold(true)

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	anchorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	targetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)
)

// printSummary writes one line per link and a closing status line
func printSummary(w io.Writer, links []model.ResolvedLink, stats resolve.Stats) {
	for _, l := range links {
		var mark, span string
		switch {
		case l.Span == nil:
			mark = missingStyle.Render("✗")
			span = "       -"
		case l.Degraded:
			mark = degradedStyle.Render("~")
			span = fmt.Sprintf("%4d-%-4d", l.Span.Start, l.Span.End)
		default:
			mark = resolvedStyle.Render("✓")
			span = fmt.Sprintf("%4d-%-4d", l.Span.Start, l.Span.End)
		}
		fmt.Fprintf(w, "%s %s #%d %s %s\n",
			mark,
			span,
			l.Occurrence,
			anchorStyle.Render(fmt.Sprintf("%q", l.AnchorText)),
			targetStyle.Render(l.Target))
	}

	fmt.Fprintln(w, statusStyle.Render(fmt.Sprintf(
		"%d links: %d resolved, %d degraded, %d unresolved",
		stats.Total, stats.Resolved, stats.Degraded, stats.Unresolved)))
}
