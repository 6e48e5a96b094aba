package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/tilewm/internal/core"
)

// renderPlugins lists the plugins of every output. Plugins holding a grab
// are highlighted.
func renderPlugins(outputs []core.OutputStatus, width, height int) string {
	if len(outputs) == 0 {
		return dimStyle.Width(width).Height(height).Align(lipgloss.Center, lipgloss.Center).Render("No outputs")
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	active := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	idle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	var b strings.Builder
	for i, o := range outputs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(header.Render(o.Name))
		b.WriteString("\n")
		grabbing := make(map[string]bool, len(o.ActivePlugins))
		for _, name := range o.ActivePlugins {
			grabbing[name] = true
		}
		for _, name := range o.Plugins {
			if grabbing[name] {
				b.WriteString("  " + active.Render("● "+name) + "\n")
			} else {
				b.WriteString("  " + idle.Render("· "+name) + "\n")
			}
		}
	}
	return lipgloss.NewStyle().Width(width).Height(height).Padding(0, 2).Render(b.String())
}
