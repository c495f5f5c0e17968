package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rjkroege/textpad/wind"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	fieldStyle = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	sepStyle   = lipgloss.NewStyle().Faint(true)
)

// statusLine renders what a window's status bar shows.
func statusLine(st wind.Status) string {
	enc := fieldStyle.Render(st.Encoding)
	if !st.EncodingValid {
		enc = errorStyle.Render(st.Encoding + "?")
	}
	bom := "no BOM"
	if st.BOM {
		bom = "BOM"
	}
	fields := []string{
		titleStyle.Render(st.Title),
		enc,
		fieldStyle.Render(st.LineEnding.String()),
		fieldStyle.Render(bom),
		fieldStyle.Render(st.Syntax.String()),
	}
	if st.OutOfDate {
		fields = append(fields, errorStyle.Render("changed on disk"))
	}
	return strings.Join(fields, sepStyle.Render(" | "))
}
