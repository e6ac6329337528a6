package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(append([]string{}, args...))
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestDump(t *testing.T) {
	path := writeFile(t, "tags.txt", "TITLE=Hello\nLYRICS=\n\tone\n\ttwo\n")

	out, err := run(t, path)
	require.NoError(t, err)

	assert.Contains(t, out, "(2 entries)")
	assert.Contains(t, out, `[0] TITLE = "Hello"`)
	assert.Contains(t, out, `[1] LYRICS = "one"`)
	assert.Contains(t, out, `"two"`)
}

func TestDump_JSON(t *testing.T) {
	path := writeFile(t, "tags.txt", "A=1\nB=\n\tx\n\ty\n")

	out, err := run(t, "--json", path)
	require.NoError(t, err)

	var doc struct {
		Path    string      `json:"path"`
		Entries []jsonEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, []jsonEntry{{Tag: "A", Value: "1"}, {Tag: "B", Value: "x\ny"}}, doc.Entries)
}

func TestDump_Error(t *testing.T) {
	path := writeFile(t, "bad.txt", "=x\n")

	_, err := run(t, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty tags are not permitted")
}

func TestCheck(t *testing.T) {
	ok := writeFile(t, "ok.txt", "A=1\n")
	bad := writeFile(t, "bad.txt", "A\t=1\n")

	out, err := run(t, "--check", ok, bad)
	require.Error(t, err)
	assert.Contains(t, out, "FAIL "+bad)
	assert.Contains(t, out, "1/2 files ok")

	out, err = run(t, "--check", ok)
	require.NoError(t, err)
	assert.Contains(t, out, "1/1 files ok")
}

func TestRequiresArgs(t *testing.T) {
	_, err := run(t)
	assert.Error(t, err)
}
