package plugin

import (
	"errors"
	"fmt"
	"path/filepath"
	goplugin "plugin"
)

// FactorySymbol is the symbol a plugin module must export.
const FactorySymbol = "NewInstance"

// ErrMissingFactory is returned when a module lacks a usable NewInstance.
var ErrMissingFactory = errors.New("plugin module has no " + FactorySymbol + " factory")

// Module is an opened plugin module.
type Module interface {
	Lookup(symbol string) (any, error)
	Close() error
}

// Loader opens plugin modules by path.
type Loader interface {
	Open(path string) (Module, error)
}

// ModulePath returns where the module for name is looked up.
func ModulePath(pluginPath, name string) string {
	return filepath.Join(pluginPath, "tilewm", "lib"+name+".so")
}

// resolveFactory finds the factory in mod. Both an exported function and an
// exported variable of function type are accepted.
func resolveFactory(mod Module) (Factory, error) {
	sym, err := mod.Lookup(FactorySymbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingFactory, err)
	}
	switch f := sym.(type) {
	case func() Plugin:
		return f, nil
	case *func() Plugin:
		if f != nil && *f != nil {
			return *f, nil
		}
	case Factory:
		return f, nil
	case *Factory:
		if f != nil && *f != nil {
			return *f, nil
		}
	}
	return nil, fmt.Errorf("%w: symbol has type %T", ErrMissingFactory, sym)
}

// GoLoader loads modules built with -buildmode=plugin.
type GoLoader struct{}

func (GoLoader) Open(path string) (Module, error) {
	p, err := goplugin.Open(path)
	if err != nil {
		return nil, err
	}
	return goModule{p: p}, nil
}

type goModule struct {
	p *goplugin.Plugin
}

func (m goModule) Lookup(symbol string) (any, error) {
	return m.p.Lookup(symbol)
}

// Close is a no-op: the Go runtime never unloads plugins.
func (goModule) Close() error { return nil }
