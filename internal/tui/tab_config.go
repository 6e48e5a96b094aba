package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/tilewm/internal/config"
)

// renderConfig shows the effective configuration as YAML, clipped to height.
func renderConfig(cfg *config.Config, width, height int) string {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return dimStyle.Render(err.Error())
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if height > 0 && len(lines) > height {
		lines = append(lines[:height-1], "…")
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(0, 2).
		Foreground(lipgloss.Color("250")).
		Render(strings.Join(lines, "\n"))
}
