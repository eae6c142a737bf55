//go:build windows

package platform

// ModuleSuffix is the file suffix of a loadable codec module, without the dot.
const ModuleSuffix = "dll"

// loaderPathEnv is the environment variable consulted when resolving a
// module's private dependency DLLs.
const loaderPathEnv = "PATH"

// ExtendLoaderPath appends dir to the DLL search path so that subsequently
// loaded modules may resolve private dependencies from it.
func ExtendLoaderPath(dir string) error {
	return appendLoaderPath(loaderPathEnv, dir)
}

// DeriveInstallPath returns the codecs directory derived from the location of
// the running binary.
func DeriveInstallPath() (string, error) {
	return deriveInstallPath()
}
