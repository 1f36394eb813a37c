package tools

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsaDocString(t *testing.T) {
	doc := isaDocString()

	assert.Contains(t, doc, "add <r0> <r1>")
	assert.Contains(t, doc, "sll <r0> <r1> <r2>")
	assert.Contains(t, doc, "halt")
	assert.NotContains(t, doc, "nop")
	assert.Contains(t, doc, "x0 to x15")
}

func TestStorageDocString(t *testing.T) {
	doc := storageDocString()

	assert.Contains(t, doc, "x0.bin")
	assert.Contains(t, doc, "x15.bin")
	assert.Contains(t, doc, "exactly 4 bytes")
}

func TestDocsCmd(t *testing.T) {
	var out bytes.Buffer
	ToolsCmd.SetOut(&out)
	ToolsCmd.SetArgs([]string{"docs", "cpu.isa"})

	require.NoError(t, ToolsCmd.Execute())
	assert.Contains(t, out.String(), "Instruction set")

	ToolsCmd.SetArgs([]string{"docs", "cpu.unknown"})
	assert.Error(t, ToolsCmd.Execute())
}

func TestDocsCmd_Output(t *testing.T) {
	fs := afero.NewMemMapFs()
	Fs = fs
	t.Cleanup(func() {
		Fs = afero.NewOsFs()
		docsCmd.Flags().Set("output", "")
	})

	var out bytes.Buffer
	ToolsCmd.SetOut(&out)
	ToolsCmd.SetArgs([]string{"docs", "cpu.storage", "--output", "storage.txt"})

	require.NoError(t, ToolsCmd.Execute())
	assert.Empty(t, out.String())

	data, err := afero.ReadFile(fs, "storage.txt")
	require.NoError(t, err)
	assert.Contains(t, string(data), "Register storage")
	assert.Contains(t, string(data), "x15.bin")
}
