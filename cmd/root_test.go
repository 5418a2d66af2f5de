package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	SetupTestStore(t)

	// Test --help to ensure the command tree is wired
	output, err := runCmd(t, "", "--help")
	require.NoError(t, err)

	assert.Contains(t, output, "taskman is a command-line task tracker") // Long desc
	assert.Contains(t, output, "Usage:")
	for _, sub := range []string{"add", "list", "show", "complete", "delete", "update", "export", "import", "backup", "restore", "doctor", "watch"} {
		assert.Contains(t, output, sub)
	}
}

func TestVersion(t *testing.T) {
	SetupTestStore(t)

	assert.Equal(t, "0.3.0", version)

	output, err := runCmd(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, output, version)
}

func TestRootCmd_UnknownCommand(t *testing.T) {
	SetupTestStore(t)

	_, err := runCmd(t, "", "frobnicate")
	assert.Error(t, err)
}

func TestRootCmd_VerboseLogsToStderr(t *testing.T) {
	SetupTestStore(t)

	output, err := runCmd(t, "", "add", "Logged task", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, output, "task added")
	assert.Contains(t, output, "Added: Logged task")
}

func TestPriorityFlagCompletion(t *testing.T) {
	SetupTestStore(t)

	for _, sub := range []string{"add", "list", "update", "watch"} {
		t.Run(sub, func(t *testing.T) {
			output, err := runCmd(t, "", "__complete", sub, "--priority", "")
			require.NoError(t, err)
			assert.Contains(t, output, "low\nmedium\nhigh\n")
		})
	}
}
