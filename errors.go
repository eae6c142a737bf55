package imgcodecs

import "errors"

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrEnvUpdate indicates the dynamic loader's search path could not be
	// extended. Fatal to initialization when it happens on the primary
	// codecs path.
	ErrEnvUpdate = errors.New("failed to update loader search path")

	// ErrListDir indicates a configured codecs directory could not be
	// enumerated. The directory contributes zero codecs; discovery continues
	// with the remaining sources.
	ErrListDir = errors.New("failed to list directory")

	// ErrPathBuild indicates a module path could not be derived from a
	// metadata file path.
	ErrPathBuild = errors.New("failed to build module path")

	// ErrParse indicates a codec metadata file could not be parsed.
	ErrParse = errors.New("failed to parse codec info")

	// ErrModuleLoad indicates a codec's binary module could not be opened or
	// does not export the required entry point.
	ErrModuleLoad = errors.New("failed to load codec module")
)
