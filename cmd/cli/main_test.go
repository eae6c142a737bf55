package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ListsDiscoveredCodecs(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	info := `
codec "jpeg" {
  description = "Joint Photographic Experts Group"
  version     = "1.2.0"
  extensions  = ["jpg", "jpeg"]
  mime_types  = ["image/jpeg"]
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jpeg.codec.info"), []byte(info), 0o600))

	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, []string{"-codecs-path", dir, "-log-level", "error"})

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "jpeg 1.2.0")
	assert.Contains(t, out.String(), "extensions=jpg,jpeg")
	assert.Contains(t, out.String(), "(lazy)")
}

func TestRun_ReportsSkippedEntries(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.codec.info"), []byte("codec {"), 0o600))

	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, []string{"-codecs-path", dir, "-log-level", "error"})

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No codecs found.")
	assert.Contains(t, out.String(), "skipped:")
}

func TestRun_ShouldExit(t *testing.T) {
	// The "-h" (help) flag should cause cli.Parse to return shouldExit=true.
	out := &bytes.Buffer{}

	err := run(out, []string{"-h"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:", "expected help text to be printed")
}

func TestRun_ParseError(t *testing.T) {
	out := &bytes.Buffer{}

	err := run(out, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
