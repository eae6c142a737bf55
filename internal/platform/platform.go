// Package platform isolates the operating-system-conditional pieces of codec
// discovery: the dynamic-module file suffix, extension of the dynamic loader's
// search path, and derivation of the installation-relative codecs directory.
//
// The discovery algorithm itself is platform-independent; everything that
// would otherwise become an in-line GOOS branch lives here, one file per
// platform family.
package platform

import (
	"os"
	"path/filepath"
)

// deriveInstallPath resolves the codecs directory relative to the running
// binary: the binary's file component is stripped and a fixed relative offset
// is appended. Shared by every platform family; only the offset's siblings
// (lib layout) differ and those are identical across supported targets.
func deriveInstallPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}

	// "/prefix/bin/tool" -> "/prefix/bin" -> "/prefix/lib/imgcodecs/codecs".
	binDir := filepath.Dir(exe)
	return filepath.Join(binDir, "..", "lib", "imgcodecs", "codecs"), nil
}

// appendLoaderPath appends dir to the given path-list environment variable,
// preserving any existing value.
func appendLoaderPath(envVar, dir string) error {
	combined := dir
	if current, ok := os.LookupEnv(envVar); ok && current != "" {
		combined = current + string(os.PathListSeparator) + dir
	}
	return os.Setenv(envVar, combined)
}
