package imgcodecs

// CompressionLevelRange describes the valid compression or quality tuning
// range advertised by a codec. It is plain value metadata: codecs that do not
// support tunable compression simply omit it from their metadata files.
type CompressionLevelRange struct {
	// Min is the lowest accepted compression level.
	Min float64

	// Max is the highest accepted compression level.
	Max float64

	// Default is the level used when the caller does not specify one.
	Default float64

	// Step is the granularity of meaningful level increments.
	Step float64
}

// IsValid reports whether the range is internally consistent: Min must be
// strictly less than Max and Default must fall within [Min, Max]. Validity is
// a predicate, not a construction invariant; metadata files are allowed to
// carry a nonsensical range and callers decide how to treat it.
func (c CompressionLevelRange) IsValid() bool {
	return c.Min < c.Max && c.Default >= c.Min && c.Default <= c.Max
}
