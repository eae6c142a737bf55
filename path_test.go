package imgcodecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/imgcodecs/internal/platform"
)

func TestDeriveModulePath(t *testing.T) {
	t.Parallel()

	got, err := DeriveModulePath("/x/jpeg.codec.info")
	require.NoError(t, err)
	assert.Equal(t, "/x/jpeg."+platform.ModuleSuffix, got)
}

func TestDeriveModulePath_NoMetadataSuffix(t *testing.T) {
	t.Parallel()

	_, err := DeriveModulePath("/x/jpeg.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPathBuild)
}

func TestDeriveModulePath_SuffixOnly(t *testing.T) {
	t.Parallel()

	// A bare suffix still derives a (degenerate) module path; the original
	// substitutes after whatever precedes the suffix, even nothing.
	got, err := DeriveModulePath(".codec.info")
	require.NoError(t, err)
	assert.Equal(t, "."+platform.ModuleSuffix, got)
}
