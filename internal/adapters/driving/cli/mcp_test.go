package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPCmd_Use(t *testing.T) {
	assert.Equal(t, "mcp", mcpCmd.Use)
	assert.NotEmpty(t, mcpCmd.Short)
}

func TestMCPCmd_HTTPFlag(t *testing.T) {
	flag := mcpCmd.Flags().Lookup("http")
	require.NotNil(t, flag, "http flag should exist")
	assert.Equal(t, "", flag.DefValue)
}

func TestMCPCmd_RejectsArgs(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "mcp", "extra")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
