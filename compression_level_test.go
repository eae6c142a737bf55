package imgcodecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompressionLevelRange_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level CompressionLevelRange
		want  bool
	}{
		{
			name:  "typical zlib-style range",
			level: CompressionLevelRange{Min: 1, Max: 9, Default: 6, Step: 1},
			want:  true,
		},
		{
			name:  "min equal to max is invalid",
			level: CompressionLevelRange{Min: 5, Max: 5, Default: 5, Step: 1},
			want:  false,
		},
		{
			name:  "default above max is invalid",
			level: CompressionLevelRange{Min: 0, Max: 10, Default: 15, Step: 1},
			want:  false,
		},
		{
			name:  "default below min is invalid",
			level: CompressionLevelRange{Min: 2, Max: 10, Default: 1, Step: 1},
			want:  false,
		},
		{
			name:  "default on the boundary is valid",
			level: CompressionLevelRange{Min: 0, Max: 100, Default: 100, Step: 5},
			want:  true,
		},
		{
			name:  "inverted range is invalid",
			level: CompressionLevelRange{Min: 9, Max: 1, Default: 5, Step: 1},
			want:  false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.level.IsValid())
		})
	}
}

func TestCompressionLevelRange_CopyOverwritesAllFields(t *testing.T) {
	t.Parallel()

	src := CompressionLevelRange{Min: 1, Max: 9, Default: 6, Step: 1}
	dst := CompressionLevelRange{Min: 0, Max: 100, Default: 50, Step: 10}

	dst = src

	assert.Equal(t, src, dst)
}
