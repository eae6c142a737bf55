// Package imgcodecs implements the runtime core of an image-format
// abstraction library: discovery, registration, and dynamic loading of
// pluggable format codecs.
//
// A codec installation is a directory of paired files: a metadata file with
// the ".codec.info" suffix describing one codec, and a co-located binary
// module implementing it. On first initialization the Context resolves the
// configured search paths, extends the dynamic loader's search path with each
// path's optional lib/ subdirectory, scans each directory for metadata files,
// and appends every successfully parsed descriptor to its registry. Binary
// modules are loaded lazily on first use, or eagerly when initialization is
// given FlagPreloadCodecs.
//
// Discovery is best-effort by design: a malformed or stale codec installation
// is skipped (and recorded as a Diagnostic) without preventing other valid
// codecs from being registered.
//
// The ambient entry points Allocate, Fetch and Destroy manage a process-wide
// Context singleton. Callers that want an isolated instance, for example in
// tests, construct one with NewContext.
package imgcodecs
