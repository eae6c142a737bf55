package imgcodecs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/vk/imgcodecs/internal/ctxlog"
	"github.com/vk/imgcodecs/internal/fsutil"
	"github.com/vk/imgcodecs/internal/platform"
)

// InitFlags is the bitmask accepted by EnsureInitialized.
type InitFlags int

const (
	// FlagPreloadCodecs makes initialization eagerly load every discovered
	// codec's binary module instead of deferring to the first use.
	FlagPreloadCodecs InitFlags = 1 << iota
)

// Option configures a Context at construction time.
type Option func(*Context)

// WithLogger sets the logger used by the Context and everything it calls.
// Without it the process default logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		c.logger = logger
	}
}

// WithCodecsPath overrides the primary codec search directory, bypassing the
// environment and the install-relative derivation.
func WithCodecsPath(path string) Option {
	return func(c *Context) {
		c.resolver.primaryOverride = path
	}
}

// WithMyCodecsPath configures the additional user codec search directory,
// bypassing the environment.
func WithMyCodecsPath(path string) Option {
	return func(c *Context) {
		c.resolver.secondaryOverride = path
	}
}

// Context owns the codec registry and runs the discovery pass at most once.
// All mutation happens during that single pass, guarded by an internal mutex,
// so a Context is safe for concurrent use.
type Context struct {
	mu          sync.Mutex
	initialized bool

	logger   *slog.Logger
	resolver *pathResolver
	registry *Registry

	// open invokes the platform dynamic-module loader. Swappable in tests.
	open func(path string) (*Module, error)

	// extendPath extends the dynamic loader's search path for one codecs
	// directory. Swappable in tests.
	extendPath func(ctx context.Context, codecsPath string) error
}

// NewContext constructs an empty, uninitialized Context with its own search
// path resolver and registry. Most callers use the ambient Allocate/Fetch/
// Destroy entry points instead; NewContext exists for embedders and tests
// that want an isolated instance with caller-controlled lifetime.
func NewContext(opts ...Option) *Context {
	c := &Context{
		logger:   slog.Default(),
		resolver: newPathResolver(),
		registry: NewRegistry(),
		open:     openModule,
	}
	c.extendPath = extendLoaderPath

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// The ambient singleton is process-wide, guarded by a package mutex plus the
// Context's own initialization guard. This is a deliberate strengthening of
// the original per-thread model: discovery runs once per process instead of
// once per thread, at the cost of the locks below.
var (
	globalMu sync.Mutex
	global   *Context
)

// Allocate returns the process-wide Context, constructing an empty,
// uninitialized one if none exists yet.
func Allocate() *Context {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global == nil {
		global = NewContext()
		slog.Default().Debug("Allocated a new process-wide context")
	}

	return global
}

// Fetch returns the current process-wide Context without creating one. It
// returns nil when no Context has been allocated.
func Fetch() *Context {
	globalMu.Lock()
	defer globalMu.Unlock()

	return global
}

// Destroy releases the process-wide Context: the registry and every module
// handle reachable from it are dropped and the singleton slot is cleared.
// Calling Destroy when no Context exists is a no-op.
func Destroy() {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global == nil {
		return
	}

	global.reset()
	global = nil
	slog.Default().Debug("Destroyed the process-wide context")
}

// Current returns the process-wide Context, allocating and initializing it
// on first use. The surrounding image read/write API funnels every operation
// through this call.
func Current(ctx context.Context, flags InitFlags) (*Context, error) {
	c := Allocate()
	if err := c.EnsureInitialized(ctx, flags); err != nil {
		return nil, err
	}

	return c, nil
}

// reset drops the registry and with it every loaded module handle. Entries
// whose module was never loaded hold a nil slot, which is naturally
// tolerated.
func (c *Context) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.registry = NewRegistry()
	c.initialized = false
}

// EnsureInitialized runs the codec discovery pass once per Context. It is
// idempotent: once the Context is initialized, it returns immediately.
//
// The pass resolves the configured search paths, extends the dynamic loader's
// search path for each, scans every path for codec metadata files, and
// registers each successfully parsed descriptor in encounter order. With
// FlagPreloadCodecs it then eagerly loads every registered codec's module.
//
// Partial failures never fail the pass: the Context is marked initialized
// unconditionally, and an error is returned only when nothing could be
// scanned at all, i.e. the loader path extension failed on the primary
// search path (ErrEnvUpdate).
func (c *Context) EnsureInitialized(ctx context.Context, flags InitFlags) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	c.initialized = true

	ctx = ctxlog.WithLogger(ctx, c.logger)
	logger := c.logger
	start := time.Now()

	primary := c.resolver.primaryPath(ctx)
	if err := c.extendPath(ctx, primary); err != nil {
		return err
	}

	searchPaths := []string{primary}
	if secondary, ok := c.resolver.secondaryPath(ctx); ok {
		// A loader path failure on the user path is not fatal: discovery
		// continues with the primary path alone.
		if err := c.extendPath(ctx, secondary); err != nil {
			logger.Error("Skipping the user codecs path", "path", secondary, "error", err)
		} else {
			searchPaths = append(searchPaths, secondary)
		}
	}

	for _, searchPath := range searchPaths {
		if err := c.registry.Discover(ctx, searchPath); err != nil {
			logger.Error("Failed to scan codecs directory", "path", searchPath, "error", err)
		}
	}

	if flags&FlagPreloadCodecs != 0 {
		c.preload(ctx)
	}

	logger.Debug("Enumerated codecs:")
	for i, entry := range c.registry.Entries() {
		logger.Debug(fmt.Sprintf("%d. %s [%s] %s",
			i+1, entry.Info.Name, entry.Info.Description, entry.Info.Version))
	}
	logger.Debug("Context initialized", "duration", time.Since(start))

	return nil
}

// Initialized reports whether the discovery pass has run on this Context.
func (c *Context) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.initialized
}

// Registry returns the Context's codec registry for capability queries.
func (c *Context) Registry() *Registry {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.registry
}

// Codecs returns the registered codecs in discovery order.
func (c *Context) Codecs() []*Entry {
	return c.Registry().Entries()
}

// extendLoaderPath appends the optional lib/ subdirectory of a codecs path to
// the dynamic loader's search path, so that modules loaded later can resolve
// private dependencies from it. A missing lib/ subdirectory is not an error.
func extendLoaderPath(ctx context.Context, codecsPath string) error {
	logger := ctxlog.FromContext(ctx)

	libPath := filepath.Join(codecsPath, "lib")
	if !fsutil.IsDir(libPath) {
		logger.Debug("Optional lib directory doesn't exist, not loading modules from it", "path", libPath)
		return nil
	}

	logger.Debug("Appending to the module search path", "path", libPath)
	if err := platform.ExtendLoaderPath(libPath); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEnvUpdate, libPath, err)
	}

	return nil
}
