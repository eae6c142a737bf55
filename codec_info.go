package imgcodecs

// CodecInfo is the in-memory descriptor for one installed codec, parsed from
// its metadata file. It exists independently of whether the codec's binary
// module has been loaded.
type CodecInfo struct {
	// Name is the codec's short identifier, e.g. "jpeg". Taken from the
	// metadata block label.
	Name string

	// Description is a human-readable summary of the format.
	Description string

	// Version is the codec's own version string.
	Version string

	// Extensions lists the file extensions the codec handles, lowercased,
	// without leading dots.
	Extensions []string

	// MimeTypes lists the MIME types the codec handles, lowercased.
	MimeTypes []string

	// MagicNumbers lists hex-encoded magic-number signatures used to detect
	// the format from file contents.
	MagicNumbers []string

	// Priority is an optional scheduling hint for formats claiming the same
	// extension or signature.
	Priority string

	// CompressionLevel is the codec's tunable compression range, or nil when
	// the codec does not advertise one.
	CompressionLevel *CompressionLevelRange

	// Path is the derived filesystem path of the codec's loadable binary
	// module, co-located with the metadata file.
	Path string
}
