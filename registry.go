package imgcodecs

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/imgcodecs/internal/ctxlog"
	"github.com/vk/imgcodecs/internal/fsutil"
)

// Diagnostic records one contained discovery failure: a metadata file that
// was found but could not be turned into a registry entry. Diagnostics exist
// so that best-effort discovery stays inspectable; they never abort the walk.
type Diagnostic struct {
	// Path is the metadata file that failed.
	Path string

	// Err is the failure, wrapping ErrPathBuild or ErrParse.
	Err error
}

// Entry is one registered codec: its parsed descriptor plus the load state of
// its binary module. Module stays nil until the first successful load and is
// never replaced afterwards.
type Entry struct {
	Info *CodecInfo

	// Module is the cached handle of the loaded binary module, nil until the
	// first successful load.
	Module *Module

	// LoadErr is the most recent load failure. A failed preload leaves the
	// codec registered but records the failure here; a later successful
	// on-demand load clears it.
	LoadErr error
}

// Loaded reports whether the entry's binary module has been loaded.
func (e *Entry) Loaded() bool {
	return e.Module != nil
}

// Registry is the ordered, append-only collection of discovered codec
// descriptors. Order reflects discovery order: search-path order first, then
// directory enumeration order within a path.
type Registry struct {
	entries []*Entry
	diags   []Diagnostic
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Discover scans one codecs directory and appends every successfully parsed
// descriptor, in encounter order. A directory that cannot be enumerated fails
// with ErrListDir and contributes zero codecs; per-entry failures are
// recorded as Diagnostics and skipped so that one broken codec installation
// never hides its valid siblings.
func (r *Registry) Discover(ctx context.Context, dir string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Scanning codecs directory", "path", dir)

	files, err := fsutil.ListBySuffix(dir, MetadataSuffix)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrListDir, dir, err)
	}

	for _, infoPath := range files {
		logger.Debug("Found codec info", "path", infoPath)

		entry, err := buildEntry(ctx, infoPath)
		if err != nil {
			// Ignore the failure and register as much as possible.
			logger.Warn("Skipping codec info", "path", infoPath, "error", err)
			r.diags = append(r.diags, Diagnostic{Path: infoPath, Err: err})
			continue
		}

		r.entries = append(r.entries, entry)
	}

	return nil
}

// buildEntry turns a single metadata file into a registry entry: the module
// path is derived first, then the metadata is parsed. Either step failing
// fails the whole entry.
func buildEntry(ctx context.Context, infoPath string) (*Entry, error) {
	modulePath, err := DeriveModulePath(infoPath)
	if err != nil {
		return nil, err
	}

	info, err := ParseCodecInfo(ctx, infoPath)
	if err != nil {
		return nil, err
	}
	info.Path = modulePath

	return &Entry{Info: info}, nil
}

// Entries returns the registered codecs in discovery order. The returned
// slice is shared; callers must treat it as read-only.
func (r *Registry) Entries() []*Entry {
	return r.entries
}

// Len returns the number of registered codecs.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Diagnostics returns the contained per-entry failures collected during
// discovery, in encounter order.
func (r *Registry) Diagnostics() []Diagnostic {
	return r.diags
}

// ByExtension returns the first registered codec claiming the given file
// extension, or nil. Matching is case-insensitive and tolerates a leading
// dot.
func (r *Registry) ByExtension(ext string) *Entry {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))

	for _, entry := range r.entries {
		for _, candidate := range entry.Info.Extensions {
			if candidate == ext {
				return entry
			}
		}
	}

	return nil
}

// ByMimeType returns the first registered codec claiming the given MIME
// type, or nil. Matching is case-insensitive.
func (r *Registry) ByMimeType(mimeType string) *Entry {
	mimeType = strings.ToLower(mimeType)

	for _, entry := range r.entries {
		for _, candidate := range entry.Info.MimeTypes {
			if candidate == mimeType {
				return entry
			}
		}
	}

	return nil
}
