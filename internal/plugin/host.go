package plugin

import (
	"log/slog"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/grab"
)

type HostOptions struct {
	Arbiter  *grab.Arbiter
	Builtins []Factory
	Loader   Loader
	Logger   *slog.Logger
	Quit     func()
}

type loaded struct {
	plugin Plugin
	grab   *grab.Interface
	handle *Handle
	module Module
}

// Host owns the plugins of one output.
type Host struct {
	out     Output
	arbiter *grab.Arbiter
	logger  *slog.Logger
	quit    func()
	plugins []loaded
}

// NewHost instantiates the built-ins, then every dynamic plugin named in
// cfg.Plugins, and initializes each one. Failures are logged and skip only
// the plugin concerned.
func NewHost(out Output, cfg *config.Config, opts HostOptions) *Host {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	loader := opts.Loader
	if loader == nil {
		loader = GoLoader{}
	}
	quit := opts.Quit
	if quit == nil {
		quit = func() {}
	}

	h := &Host{
		out:     out,
		arbiter: opts.Arbiter,
		logger:  logger,
		quit:    quit,
	}

	var candidates []loaded
	for _, factory := range opts.Builtins {
		candidates = append(candidates, loaded{plugin: factory()})
	}
	for _, name := range cfg.PluginNames() {
		p, mod, ok := h.loadDynamic(loader, cfg.PluginPath, name)
		if ok {
			candidates = append(candidates, loaded{plugin: p, module: mod})
		}
	}

	for i := range candidates {
		if h.init(&candidates[i], cfg) {
			h.plugins = append(h.plugins, candidates[i])
		}
	}
	return h
}

func (h *Host) loadDynamic(loader Loader, pluginPath, name string) (Plugin, Module, bool) {
	path := ModulePath(pluginPath, name)
	mod, err := loader.Open(path)
	if err != nil {
		h.logger.Error("failed to load plugin", "plugin", name, "path", path, "error", err)
		return nil, nil, false
	}
	factory, err := resolveFactory(mod)
	if err != nil {
		h.logger.Error("failed to load plugin", "plugin", name, "path", path, "error", err)
		_ = mod.Close()
		return nil, nil, false
	}
	p := factory()
	if p == nil {
		h.logger.Error("plugin factory returned nil", "plugin", name, "path", path)
		_ = mod.Close()
		return nil, nil, false
	}
	h.logger.Debug("loaded plugin module", "plugin", name, "path", path)
	return p, mod, true
}

func (h *Host) init(c *loaded, cfg *config.Config) bool {
	name := c.plugin.Name()
	iface := grab.NewInterface(name, h.arbiter)
	if g, ok := c.plugin.(Grabber); ok {
		iface.OnGrab = g.OnGrab
		iface.OnUngrab = g.OnUngrab
	}
	c.grab = iface

	c.handle = &Handle{
		Output: h.out,
		Grab:   iface,
		Logger: h.logger.With("plugin", name),
		Quit:   h.quit,
	}
	if err := c.plugin.Init(c.handle, cfg); err != nil {
		h.logger.Error("plugin init failed", "plugin", name, "error", err)
		h.release(c)
		if c.module != nil {
			_ = c.module.Close()
		}
		return false
	}
	return true
}

// release drops whatever grab and bindings the plugin still holds.
func (h *Host) release(c *loaded) {
	if h.arbiter != nil {
		h.arbiter.Deactivate(c.grab)
	} else {
		c.grab.Ungrab()
	}
	c.handle.unbind()
}

// Plugins returns the loaded plugins in load order.
func (h *Host) Plugins() []Plugin {
	out := make([]Plugin, len(h.plugins))
	for i, l := range h.plugins {
		out[i] = l.plugin
	}
	return out
}

func (h *Host) Len() int { return len(h.plugins) }

// Names lists the loaded plugin names in load order.
func (h *Host) Names() []string {
	names := make([]string, len(h.plugins))
	for i, l := range h.plugins {
		names[i] = l.plugin.Name()
	}
	return names
}

// Grab returns the grab interface of the named plugin, or nil.
func (h *Host) Grab(name string) *grab.Interface {
	for _, l := range h.plugins {
		if l.plugin.Name() == name {
			return l.grab
		}
	}
	return nil
}

// Close finalizes every plugin, releases its grab and closes dynamic
// modules. The host is empty afterwards.
func (h *Host) Close() {
	for i := range h.plugins {
		l := &h.plugins[i]
		l.plugin.Fini()
		h.release(l)
		if l.module != nil {
			if err := l.module.Close(); err != nil {
				h.logger.Warn("failed to close plugin module", "plugin", l.plugin.Name(), "error", err)
			}
		}
	}
	h.plugins = nil
}
