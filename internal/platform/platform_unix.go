//go:build !windows

package platform

// ModuleSuffix is the file suffix of a loadable codec module, without the dot.
const ModuleSuffix = "so"

// loaderPathEnv is the environment variable consulted by the dynamic loader
// when resolving a module's private dependencies.
const loaderPathEnv = "LD_LIBRARY_PATH"

// ExtendLoaderPath appends dir to the dynamic loader's search path so that
// subsequently loaded modules may resolve private dependencies from it.
func ExtendLoaderPath(dir string) error {
	return appendLoaderPath(loaderPathEnv, dir)
}

// DeriveInstallPath returns the codecs directory derived from the location of
// the running binary.
func DeriveInstallPath() (string, error) {
	return deriveInstallPath()
}
