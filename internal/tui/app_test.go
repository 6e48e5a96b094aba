package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/core"
	"github.com/1broseidon/tilewm/internal/ipc"
	"github.com/1broseidon/tilewm/internal/platform"
)

type fakeDaemon struct {
	status   *ipc.StatusData
	err      error
	focused  []uint32
	commands []string
}

func (f *fakeDaemon) GetStatus() (*ipc.StatusData, error) { return f.status, f.err }

func (f *fakeDaemon) FocusOutput(id uint32) error {
	f.focused = append(f.focused, id)
	return nil
}

func (f *fakeDaemon) Run(command string) error {
	f.commands = append(f.commands, command)
	return errors.New("spawn failed")
}

func sampleStatus() *ipc.StatusData {
	return &ipc.StatusData{
		Status: core.Status{
			ActiveOutput: 7,
			Views:        3,
			Outputs: []core.OutputStatus{
				{ID: 7, Name: "DP-1", Active: true, Geometry: platform.Rect{Width: 1920, Height: 1080}, Views: 2, Plugins: []string{"focus", "tile"}},
				{ID: 9, Name: "HDMI-1", Geometry: platform.Rect{X: 1920, Width: 1280, Height: 1024}, Views: 1, Plugins: []string{"focus"}, ActivePlugins: []string{"focus"}},
			},
		},
		UptimeSeconds: 90,
		DaemonRunning: true,
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(model)
	require.True(t, ok)
	return nm, cmd
}

func TestModel_AppliesStatus(t *testing.T) {
	d := &fakeDaemon{status: sampleStatus()}
	m := newModel(config.DefaultConfig(), d)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m, _ = update(t, m, m.fetchStatus()())

	assert.True(t, m.connected)
	assert.Equal(t, 3, m.views)
	assert.Len(t, m.outputs, 2)
	sel, ok := m.outputsTab.Selected()
	require.True(t, ok)
	assert.Equal(t, "DP-1", sel.Name)
	assert.Contains(t, m.View(), "daemon connected")
}

func TestModel_DisconnectedClearsOutputs(t *testing.T) {
	d := &fakeDaemon{status: sampleStatus()}
	m := newModel(config.DefaultConfig(), d)
	m, _ = update(t, m, m.fetchStatus()())

	d.err = errors.New("connection refused")
	m, _ = update(t, m, m.fetchStatus()())

	assert.False(t, m.connected)
	assert.Empty(t, m.outputs)
	_, ok := m.outputsTab.Selected()
	assert.False(t, ok)
}

func TestModel_FocusSelectedOutput(t *testing.T) {
	d := &fakeDaemon{status: sampleStatus()}
	m := newModel(config.DefaultConfig(), d)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, m.fetchStatus()())

	m, cmd := update(t, m, key("f"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.Equal(t, []uint32{7}, d.focused)
	assert.Empty(t, m.lastErr)
}

func TestModel_ActionErrorShown(t *testing.T) {
	d := &fakeDaemon{status: sampleStatus()}
	m := newModel(config.DefaultConfig(), d)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m, _ = update(t, m, m.runCommand("xterm")())

	assert.Equal(t, []string{"xterm"}, d.commands)
	assert.Equal(t, "spawn failed", m.lastErr)
	assert.Contains(t, m.View(), "spawn failed")
}

func TestModel_TabSwitching(t *testing.T) {
	m := newModel(config.DefaultConfig(), &fakeDaemon{status: sampleStatus()})
	m, _ = update(t, m, key("3"))
	assert.Equal(t, TabConfig, m.activeTab)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabOutputs, m.activeTab)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, TabConfig, m.activeTab)
}

func TestRenderPlugins_MarksGrabs(t *testing.T) {
	out := renderPlugins(sampleStatus().Outputs, 60, 20)
	assert.Contains(t, out, "DP-1")
	assert.Contains(t, out, "● focus")
	assert.Contains(t, out, "· tile")
}

func TestRenderConfig_ShowsYAML(t *testing.T) {
	out := renderConfig(config.DefaultConfig(), 80, 40)
	assert.Contains(t, out, "log_level: info")
}
