package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/tilewm/internal/core"
)

// outputItem is a list item for one output.
type outputItem struct {
	status core.OutputStatus
}

func (i outputItem) Title() string {
	if i.status.Active {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●") + " " + i.status.Name
	}
	return dimStyle.Render("·") + " " + i.status.Name
}

func (i outputItem) Description() string {
	g := i.status.Geometry
	return fmt.Sprintf("%dx%d+%d+%d  %d views", g.Width, g.Height, g.X, g.Y, i.status.Views)
}

func (i outputItem) FilterValue() string { return i.status.Name }

// OutputsTab lists outputs with a detail pane for the selected one.
type OutputsTab struct {
	list   list.Model
	width  int
	height int
}

func NewOutputsTab() OutputsTab {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("15")).
		BorderForeground(lipgloss.Color("62"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("250")).
		BorderForeground(lipgloss.Color("62"))

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Outputs"
	l.Styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	return OutputsTab{list: l}
}

// SetOutputs replaces the list content, keeping the selection in range.
func (o *OutputsTab) SetOutputs(outputs []core.OutputStatus) {
	o.list.SetItems(buildOutputItems(outputs))
}

// Selected returns the highlighted output.
func (o OutputsTab) Selected() (core.OutputStatus, bool) {
	item, ok := o.list.SelectedItem().(outputItem)
	return item.status, ok
}

func (o OutputsTab) Update(msg tea.Msg) (OutputsTab, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		o.width = msg.Width
		o.height = msg.Height
		o.list.SetSize(o.leftWidth(), o.height)
		return o, nil
	}
	var cmd tea.Cmd
	o.list, cmd = o.list.Update(msg)
	return o, cmd
}

func (o OutputsTab) leftWidth() int {
	return max(o.width*2/5, 20)
}

func (o OutputsTab) View() string {
	if o.width == 0 || o.height == 0 {
		return ""
	}
	leftWidth := o.leftWidth()
	rightWidth := max(o.width-leftWidth, 10)

	left := lipgloss.NewStyle().Width(leftWidth).Height(o.height).Render(o.list.View())

	var right string
	if s, ok := o.Selected(); ok {
		right = renderOutputDetail(s, rightWidth, o.height)
	} else {
		right = dimStyle.
			Width(rightWidth).
			Height(o.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No outputs")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func buildOutputItems(outputs []core.OutputStatus) []list.Item {
	items := make([]list.Item, 0, len(outputs))
	for _, s := range outputs {
		items = append(items, outputItem{status: s})
	}
	return items
}

func renderOutputDetail(s core.OutputStatus, width, height int) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d)", s.Name, s.ID)))
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("248")).Width(16)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	field := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	g, w := s.Geometry, s.Workarea
	field("geometry:", fmt.Sprintf("%dx%d+%d+%d", g.Width, g.Height, g.X, g.Y))
	field("workarea:", fmt.Sprintf("%dx%d+%d+%d", w.Width, w.Height, w.X, w.Y))
	field("transform:", s.Transform)
	field("workspace:", fmt.Sprintf("%d,%d", s.Workspace.X, s.Workspace.Y))
	field("views:", fmt.Sprint(s.Views))
	if s.ActiveView != 0 {
		field("active view:", fmt.Sprintf("0x%x", s.ActiveView))
	}
	if len(s.ActivePlugins) > 0 {
		field("grabs:", strings.Join(s.ActivePlugins, ", "))
	}

	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(lipgloss.Color("236"))
	return style.Render(b.String())
}
