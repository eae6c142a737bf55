package imgcodecs

import (
	"context"
	"fmt"
	"plugin"

	"github.com/vk/imgcodecs/internal/ctxlog"
)

// EntrySymbol is the entry-point symbol every codec binary module must
// export. A module that opens but lacks the symbol is rejected at load time,
// before the surrounding read/write API ever dispatches into it.
const EntrySymbol = "CodecInit"

// Module is the handle of a loaded codec binary module. Go plugins cannot be
// unloaded, so there is no close operation; destroying a Context simply drops
// every reference it holds.
type Module struct {
	path string
	plug *plugin.Plugin
}

// Path returns the filesystem path the module was loaded from.
func (m *Module) Path() string {
	return m.path
}

// Lookup resolves an exported symbol from the module. The surrounding public
// API uses this to reach a codec's encode/decode entry points.
func (m *Module) Lookup(symbol string) (plugin.Symbol, error) {
	if m.plug == nil {
		return nil, fmt.Errorf("%w: %s: handle has no loaded plugin", ErrModuleLoad, m.path)
	}
	return m.plug.Lookup(symbol)
}

// openModule invokes the dynamic-module loader on path and verifies the
// required entry point is exported.
func openModule(path string) (*Module, error) {
	plug, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}

	if _, err := plug.Lookup(EntrySymbol); err != nil {
		return nil, fmt.Errorf("module does not export %s: %v", EntrySymbol, err)
	}

	return &Module{path: path, plug: plug}, nil
}

// Load returns the entry's binary module, loading it on first use. The
// resulting handle is cached in the entry and never reloaded; repeated calls
// return the same handle. Failures wrap ErrModuleLoad and are also recorded
// on the entry, but do not poison it: a later call retries the load.
func (c *Context) Load(ctx context.Context, entry *Entry) (*Module, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.load(ctx, entry)
}

// load is Load without the lock, for use inside the initialization pass.
func (c *Context) load(ctx context.Context, entry *Entry) (*Module, error) {
	if entry.Module != nil {
		return entry.Module, nil
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading codec module", "name", entry.Info.Name, "path", entry.Info.Path)

	module, err := c.open(entry.Info.Path)
	if err != nil {
		wrapped := fmt.Errorf("%w: %s: %v", ErrModuleLoad, entry.Info.Path, err)
		entry.LoadErr = wrapped
		return nil, wrapped
	}

	entry.Module = module
	entry.LoadErr = nil
	return module, nil
}

// preload eagerly loads every registered codec. Individual load failures are
// deliberately not propagated: a codec that fails to preload stays registered
// with its metadata queryable, recorded as unusable via Entry.LoadErr.
func (c *Context) preload(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Preloading codecs")

	for _, entry := range c.registry.Entries() {
		if _, err := c.load(ctx, entry); err != nil {
			logger.Warn("Failed to preload codec", "name", entry.Info.Name, "error", err)
		}
	}
}
