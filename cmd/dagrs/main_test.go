package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExecutesYamlDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.yaml")
	doc := `
dagrs:
  a:
    name: A
    cmd: "echo -n hi"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	code := run([]string{"--yaml", path, "--log-level", "none"})
	assert.Equal(t, 0, code)
}

func TestRunFailsOnMissingYamlFlag(t *testing.T) {
	code := run([]string{"--log-level", "none"})
	assert.Equal(t, 2, code)
}

func TestResolveSourceRejectsUnknownKind(t *testing.T) {
	_, err := resolveSource("carrier-pigeon", "", "", "", "", "", "")
	assert.Error(t, err)
}
