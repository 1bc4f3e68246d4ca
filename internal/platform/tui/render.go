package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gunsim/internal/core"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	indexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	groundedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// RenderHeader renders the title bar with the simulation counters.
func RenderHeader(title string, st core.Status, width int) string {
	stats := fmt.Sprintf("bullets %d  shots %d  evicted %d  ticks %d",
		st.Bullets, st.Shots, st.Evicted, st.Ticks)

	left := titleStyle.Render(title)
	right := statStyle.Render(stats)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// RenderLines renders bullet lines, dimming bullets that have landed.
// Lines are expected in row order, as produced by the simulation.
func RenderLines(lines []core.Line) string {
	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteRune('\n')
		}

		if l.Grounded {
			sb.WriteString(groundedStyle.Render(l.Text))
			continue
		}
		idx, rest, ok := strings.Cut(l.Text, ". ")
		if !ok {
			sb.WriteString(l.Text)
			continue
		}
		sb.WriteString(indexStyle.Render(idx + "."))
		sb.WriteString(" ")
		sb.WriteString(rest)
	}
	return sb.String()
}
