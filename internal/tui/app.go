package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/core"
	"github.com/1broseidon/tilewm/internal/ipc"
)

const refreshInterval = time.Second

type tickMsg time.Time

type statusMsg struct {
	data *ipc.StatusData
	err  error
}

type actionMsg struct{ err error }

// model is the root bubbletea model for the TUI.
type model struct {
	cfg    *config.Config
	daemon Daemon

	activeTab  Tab
	outputsTab OutputsTab

	// Daemon state
	connected bool
	outputs   []core.OutputStatus
	views     int
	uptime    time.Duration
	lastErr   string

	// Run-command form
	form    *huh.Form
	command *string // bound to the form; survives model copies

	width  int
	height int
}

func newModel(cfg *config.Config, daemon Daemon) model {
	return model{
		cfg:        cfg,
		daemon:     daemon,
		activeTab:  TabOutputs,
		outputsTab: NewOutputsTab(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) fetchStatus() tea.Cmd {
	return func() tea.Msg {
		data, err := m.daemon.GetStatus()
		return statusMsg{data: data, err: err}
	}
}

func (m model) focusOutput(id uint32) tea.Cmd {
	return func() tea.Msg { return actionMsg{err: m.daemon.FocusOutput(id)} }
}

func (m model) runCommand(command string) tea.Cmd {
	return func() tea.Msg { return actionMsg{err: m.daemon.Run(command)} }
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.fetchStatus(), tick())
}

// contentHeight returns the height available for tab content.
func (m model) contentHeight() int {
	// status bar (1) + tab bar (2 with margin) + help bar (1)
	return max(m.height-4, 1)
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tea.Batch(m.fetchStatus(), tick())

	case statusMsg:
		m.applyStatus(msg)
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
		} else {
			m.lastErr = ""
		}
		return m, m.fetchStatus()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.outputsTab, _ = m.outputsTab.Update(tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()})
		return m, nil
	}

	// The form captures input while open; only ctrl+c escapes.
	if m.form != nil {
		return m.updateForm(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			return m, nil
		case "1":
			m.activeTab = TabOutputs
			return m, nil
		case "2":
			m.activeTab = TabPlugins
			return m, nil
		case "3":
			m.activeTab = TabConfig
			return m, nil
		case "f":
			if s, ok := m.outputsTab.Selected(); ok && m.activeTab == TabOutputs {
				return m, m.focusOutput(s.ID)
			}
			return m, nil
		case "r":
			if !m.connected {
				return m, nil
			}
			cmd := m.openRunForm()
			return m, cmd
		}
	}

	if m.activeTab == TabOutputs {
		var cmd tea.Cmd
		m.outputsTab, cmd = m.outputsTab.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) applyStatus(msg statusMsg) {
	if msg.err != nil {
		m.connected = false
		m.outputs = nil
		m.views = 0
		m.uptime = 0
		m.outputsTab.SetOutputs(nil)
		return
	}
	m.connected = true
	m.outputs = msg.data.Outputs
	m.views = msg.data.Views
	m.uptime = time.Duration(msg.data.UptimeSeconds) * time.Second
	m.outputsTab.SetOutputs(m.outputs)
}

func (m *model) openRunForm() tea.Cmd {
	m.command = new(string)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("command").
				Title("Run command").
				Placeholder("xterm").
				Value(m.command),
		),
	).WithWidth(max(m.width/2, 30)).WithShowHelp(true)
	return m.form.Init()
}

func (m model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		if command := strings.TrimSpace(*m.command); command != "" {
			return m, m.runCommand(command)
		}
		return m, nil
	case huh.StateAborted:
		m.form = nil
		return m, nil
	}
	return m, cmd
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.connected, m.views, m.uptime, m.lastErr, m.width)
	tabBar := renderTabBar(m.activeTab, m.width)
	helpBar := renderHelpBar(m.width)

	usedHeight := lipgloss.Height(statusBar) + lipgloss.Height(tabBar) + lipgloss.Height(helpBar)
	contentHeight := max(m.height-usedHeight, 1)

	var content string
	switch {
	case m.form != nil:
		content = lipgloss.NewStyle().
			Width(m.width).
			Height(contentHeight).
			Align(lipgloss.Center, lipgloss.Center).
			Render(m.form.View())
	case m.activeTab == TabOutputs:
		content = m.outputsTab.View()
	case m.activeTab == TabPlugins:
		content = renderPlugins(m.outputs, m.width, contentHeight)
	case m.activeTab == TabConfig:
		content = renderConfig(m.cfg, m.width, contentHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		tabBar,
		content,
		helpBar,
	)
}
