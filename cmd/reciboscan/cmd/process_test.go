package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessCommand(t *testing.T) {
	cmd := GetProcessCommand()
	assert.Equal(t, "process <file>", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("format"))
	assert.NotNil(t, cmd.Flags().Lookup("output"))
	assert.NotNil(t, cmd.Flags().Lookup("media-type"))
}

func TestProcessCommand_NoArgs(t *testing.T) {
	cmd := rootCmd

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	cmd.SetArgs([]string{"process"})
	err := cmd.Execute()
	assert.Error(t, err)
}

func TestProcessCommand_MissingFile(t *testing.T) {
	cmd := rootCmd

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	missing := filepath.Join(t.TempDir(), "nope.pdf")
	cmd.SetArgs([]string{"process", missing})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestBatchCommand_MissingPath(t *testing.T) {
	cmd := rootCmd

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	missing := filepath.Join(t.TempDir(), "nope")
	cmd.SetArgs([]string{"batch", missing})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot access")
}
