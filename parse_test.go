package imgcodecs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeCodecInfo writes a metadata file with the given contents into dir and
// returns its full path.
func writeCodecInfo(t *testing.T, dir, fileName, contents string) string {
	t.Helper()

	path := filepath.Join(dir, fileName)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

const jpegCodecInfo = `
codec "jpeg" {
  description   = "Joint Photographic Experts Group"
  version       = "1.2.0"
  extensions    = ["jpg", "JPEG", "jpe"]
  mime_types    = ["image/jpeg", "IMAGE/PJPEG"]
  magic_numbers = ["FF D8"]
  priority      = "normal"

  compression_level {
    min     = 1
    max     = 9
    default = 6
    step    = 1
  }
}
`

func TestParseCodecInfo(t *testing.T) {
	t.Parallel()

	path := writeCodecInfo(t, t.TempDir(), "jpeg.codec.info", jpegCodecInfo)

	info, err := ParseCodecInfo(context.Background(), path)
	require.NoError(t, err)

	want := &CodecInfo{
		Name:             "jpeg",
		Description:      "Joint Photographic Experts Group",
		Version:          "1.2.0",
		Extensions:       []string{"jpg", "jpeg", "jpe"},
		MimeTypes:        []string{"image/jpeg", "image/pjpeg"},
		MagicNumbers:     []string{"FF D8"},
		Priority:         "normal",
		CompressionLevel: &CompressionLevelRange{Min: 1, Max: 9, Default: 6, Step: 1},
	}

	if diff := cmp.Diff(want, info); diff != "" {
		t.Fatalf("parsed codec info mismatch (-want +got):\n%s", diff)
	}

	// Path derivation is not the parser's job.
	assert.Empty(t, info.Path)
}

func TestParseCodecInfo_MinimalMetadata(t *testing.T) {
	t.Parallel()

	path := writeCodecInfo(t, t.TempDir(), "bmp.codec.info", `
codec "bmp" {
  description = "Windows Bitmap"
  version     = "0.9"
}
`)

	info, err := ParseCodecInfo(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "bmp", info.Name)
	assert.Nil(t, info.CompressionLevel)
	assert.Empty(t, info.Extensions)
}

func TestParseCodecInfo_NameLabelIsFolded(t *testing.T) {
	t.Parallel()

	path := writeCodecInfo(t, t.TempDir(), "png.codec.info", `codec "PNG" {}`+"\n")

	info, err := ParseCodecInfo(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "png", info.Name)
}

func TestParseCodecInfo_OptionalStepDefaultsToOne(t *testing.T) {
	t.Parallel()

	path := writeCodecInfo(t, t.TempDir(), "webp.codec.info", `
codec "webp" {
  compression_level {
    min     = 0
    max     = 100
    default = 75
  }
}
`)

	info, err := ParseCodecInfo(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, info.CompressionLevel)
	assert.Equal(t, float64(1), info.CompressionLevel.Step)
}

func TestParseCodecInfo_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		contents string
	}{
		{
			name:     "hcl syntax error",
			contents: `codec "jpeg" { description = `,
		},
		{
			name:     "no codec block",
			contents: `# just a comment` + "\n",
		},
		{
			name:     "two codec blocks",
			contents: `codec "a" {}` + "\n" + `codec "b" {}` + "\n",
		},
		{
			name:     "unknown attribute",
			contents: `codec "a" {` + "\n" + `  colour_space = "rgb"` + "\n" + `}` + "\n",
		},
		{
			name:     "extensions not a list",
			contents: `codec "a" {` + "\n" + `  extensions = 42` + "\n" + `}` + "\n",
		},
		{
			name:     "incomplete compression level",
			contents: `codec "a" {` + "\n" + `  compression_level { min = 1 }` + "\n" + `}` + "\n",
		},
		{
			name: "duplicate compression level",
			contents: `codec "a" {
  compression_level {
    min     = 1
    max     = 2
    default = 1
  }
  compression_level {
    min     = 3
    max     = 4
    default = 3
  }
}
`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeCodecInfo(t, t.TempDir(), "broken.codec.info", tt.contents)

			_, err := ParseCodecInfo(context.Background(), path)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestParseCodecInfo_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := ParseCodecInfo(context.Background(), filepath.Join(t.TempDir(), "absent.codec.info"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}
