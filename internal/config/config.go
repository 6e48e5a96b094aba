// Package config loads and validates the tilewm YAML configuration.
package config

import (
	"fmt"
	"strings"
)

const (
	DefaultPluginPath  = "/usr/local/lib"
	DefaultShaderSrc   = "/usr/local/share/tilewm/shaders"
	DefaultRefreshRate = 60
)

// WorkspaceGrid is the size of the per-output workspace grid.
type WorkspaceGrid struct {
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
}

// Config is the effective daemon configuration.
type Config struct {
	// Display overrides $DISPLAY for the X11 connection.
	Display  string `yaml:"display,omitempty"`
	LogLevel string `yaml:"log_level"`

	// PluginPath is the search directory for dynamic plugin modules.
	PluginPath string `yaml:"plugin_path"`
	// Plugins is the whitespace-separated list of dynamic plugin names.
	Plugins     string `yaml:"plugins"`
	ShaderSrc   string `yaml:"shader_src"`
	Background  string `yaml:"background,omitempty"`
	RefreshRate int    `yaml:"refresh_rate"`

	Workspaces WorkspaceGrid `yaml:"workspaces"`

	// Autostart commands run through the shell once the outputs are up.
	Autostart []string `yaml:"autostart,omitempty"`

	// Sections holds plugin options keyed by plugin name.
	Sections map[string]map[string]string `yaml:"sections,omitempty"`
}

// ValidationError reports a config value that failed validation.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:    "info",
		PluginPath:  DefaultPluginPath,
		ShaderSrc:   DefaultShaderSrc,
		RefreshRate: DefaultRefreshRate,
		Workspaces:  WorkspaceGrid{Columns: 3, Rows: 3},
		Sections:    map[string]map[string]string{},
	}
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	if c.RefreshRate <= 0 {
		return &ValidationError{Path: "refresh_rate", Err: fmt.Errorf("refresh_rate must be > 0")}
	}
	if c.Workspaces.Columns < 1 {
		return &ValidationError{Path: "workspaces.columns", Err: fmt.Errorf("columns must be >= 1")}
	}
	if c.Workspaces.Rows < 1 {
		return &ValidationError{Path: "workspaces.rows", Err: fmt.Errorf("rows must be >= 1")}
	}
	if strings.TrimSpace(c.PluginPath) == "" && len(c.PluginNames()) > 0 {
		return &ValidationError{Path: "plugin_path", Err: fmt.Errorf("plugin_path is required when plugins are listed")}
	}
	for _, cmd := range c.Autostart {
		if strings.TrimSpace(cmd) == "" {
			return &ValidationError{Path: "autostart", Err: fmt.Errorf("autostart contains an empty command")}
		}
	}
	for name := range c.Sections {
		if strings.TrimSpace(name) == "" {
			return &ValidationError{Path: "sections", Err: fmt.Errorf("sections contains an empty plugin name")}
		}
	}
	return nil
}

// PluginNames splits Plugins on whitespace.
func (c *Config) PluginNames() []string {
	return strings.Fields(c.Plugins)
}

// Section returns the options of the named plugin section. A missing section
// yields an empty one so callers always get defaults.
func (c *Config) Section(name string) *Section {
	rate := c.RefreshRate
	if rate <= 0 {
		rate = DefaultRefreshRate
	}
	return &Section{Name: name, RefreshRate: rate, Options: c.Sections[name]}
}
