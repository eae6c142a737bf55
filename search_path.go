package imgcodecs

import (
	"context"
	"os"
	"sync"

	"github.com/vk/imgcodecs/internal/ctxlog"
	"github.com/vk/imgcodecs/internal/platform"
)

const (
	// EnvCodecsPath overrides the primary codec search directory.
	EnvCodecsPath = "IMGCODECS_CODECS_PATH"

	// EnvMyCodecsPath configures an additional, optional codec search
	// directory for user-installed codecs. When absent, the source is simply
	// skipped during discovery.
	EnvMyCodecsPath = "IMGCODECS_MY_CODECS_PATH"
)

// DefaultCodecsPath is the compiled-in primary codec search directory, used
// when neither the environment override nor the install-relative derivation
// yields a path. Overridable at build time:
//
//	go build -ldflags "-X github.com/vk/imgcodecs.DefaultCodecsPath=/opt/imgcodecs/codecs"
var DefaultCodecsPath = "/usr/local/lib/imgcodecs/codecs"

// pathResolver memoizes the resolution of the two codec search path sources.
// Each source is resolved once per resolver lifetime, including the "not
// configured" outcome; the underlying environment is never re-read.
type pathResolver struct {
	lookupEnv     func(string) (string, bool)
	deriveInstall func() (string, error)

	primaryOverride   string
	secondaryOverride string

	primaryOnce sync.Once
	primary     string

	secondaryOnce sync.Once
	secondary     string
	secondarySet  bool
}

func newPathResolver() *pathResolver {
	return &pathResolver{
		lookupEnv:     os.LookupEnv,
		deriveInstall: platform.DeriveInstallPath,
	}
}

// primaryPath resolves the primary codec search directory: an explicit
// option override, then the environment, then a path derived from the running
// binary's location, then the compiled-in default. Resolution never fails;
// each degraded fallback is logged.
func (r *pathResolver) primaryPath(ctx context.Context) string {
	r.primaryOnce.Do(func() {
		logger := ctxlog.FromContext(ctx)

		if r.primaryOverride != "" {
			r.primary = r.primaryOverride
			logger.Debug("Primary codecs path set by option", "path", r.primary)
			return
		}

		if env, ok := r.lookupEnv(EnvCodecsPath); ok && env != "" {
			r.primary = env
			logger.Debug("Codecs path environment variable is set. Loading codecs from it",
				"variable", EnvCodecsPath, "path", env)
			return
		}

		derived, err := r.deriveInstall()
		if err != nil {
			logger.Error("Failed to derive the codecs path from the binary location. Falling back to the compiled-in path",
				"error", err, "path", DefaultCodecsPath)
			r.primary = DefaultCodecsPath
			return
		}

		r.primary = derived
		logger.Debug("Codecs path environment variable is not set. Loading codecs from the install-relative path",
			"variable", EnvCodecsPath, "path", derived)
	})

	return r.primary
}

// secondaryPath resolves the optional user codec search directory. The second
// return value reports whether the source is configured at all; there is no
// fallback for this source.
func (r *pathResolver) secondaryPath(ctx context.Context) (string, bool) {
	r.secondaryOnce.Do(func() {
		logger := ctxlog.FromContext(ctx)

		if r.secondaryOverride != "" {
			r.secondary = r.secondaryOverride
			r.secondarySet = true
			logger.Debug("User codecs path set by option", "path", r.secondary)
			return
		}

		env, ok := r.lookupEnv(EnvMyCodecsPath)
		if !ok || env == "" {
			logger.Debug("User codecs path environment variable is not set. Not loading codecs from it",
				"variable", EnvMyCodecsPath)
			return
		}

		r.secondary = env
		r.secondarySet = true
		logger.Debug("User codecs path environment variable is set. Loading codecs from it",
			"variable", EnvMyCodecsPath, "path", env)
	})

	return r.secondary, r.secondarySet
}
