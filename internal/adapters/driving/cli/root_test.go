package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/noteflow/internal/app"
)

// setupTestServices wires an App over a temp config dir and an in-memory
// record store, with no AI endpoint.
func setupTestServices(t *testing.T) *app.App {
	t.Helper()
	for _, k := range []string{"AI_API_KEY", "AI_ENDPOINT", "AI_PROVIDER", "AI_MODEL", "AI_RATE_LIMIT", "AI_MAX_RETRIES",
		"AI_TIMEOUT", "AI_CACHE_SIZE", "AI_CACHE_DIR", "AI_CACHE_TTL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	dir := t.TempDir()
	a, err := app.New(app.Options{
		ConfigDir:   dir,
		DotenvFiles: []string{filepath.Join(dir, "missing.env")},
		Store:       app.StoreMemory,
	})
	require.NoError(t, err)

	old := services
	SetServices(ServicesFromApp(a))
	t.Cleanup(func() {
		services = old
		resetFlags(rootCmd)
		_ = a.Close()
	})
	return a
}

// resetFlags restores every flag to its default so values do not leak
// between executions of the shared command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// writeFile writes content to a temp file named name and returns its path.
func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0600))
	return path
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "noteflow", rootCmd.Use)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "config-dir", "store"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"process", "workflow", "categorize", "search", "models", "mcp", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestServicesFromApp(t *testing.T) {
	a := setupTestServices(t)

	s := ServicesFromApp(a)
	assert.Same(t, a, s.Ingester)
	assert.NotNil(t, s.Processor)
	assert.NotNil(t, s.Workflows)
	assert.NotNil(t, s.Models)
	assert.NotNil(t, s.Categorizer)
	assert.NotNil(t, s.Records)
	assert.NotNil(t, s.WatchWorkflows)
	assert.NotNil(t, s.SaveWorkflow)
}

func TestUseJSON_NonFileOutput(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(new(bytes.Buffer))

	assert.False(t, useJSON(cmd, false))
	assert.True(t, useJSON(cmd, true))
}

func TestTeardownServices_NoOpWithoutOwnedServices(t *testing.T) {
	assert.NoError(t, teardownServices())
}
