package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendLoaderPath(t *testing.T) {
	const envVar = "IMGCODECS_TEST_LOADER_PATH"
	t.Setenv(envVar, "")

	require.NoError(t, appendLoaderPath(envVar, "/a"))
	assert.Equal(t, "/a", os.Getenv(envVar))

	// Appending preserves the existing value.
	require.NoError(t, appendLoaderPath(envVar, "/b"))
	assert.Equal(t, "/a"+string(os.PathListSeparator)+"/b", os.Getenv(envVar))
}

func TestDeriveInstallPath(t *testing.T) {
	t.Parallel()

	got, err := deriveInstallPath()
	require.NoError(t, err)

	want := filepath.Join("lib", "imgcodecs", "codecs")
	assert.True(t, strings.HasSuffix(got, want), "derived path %q should end with %q", got, want)
}
