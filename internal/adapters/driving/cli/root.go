// Package cli provides the noteflow command-line interface.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/noteflow/internal/app"
	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driving"
	"github.com/custodia-labs/noteflow/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// annotationNoServices marks commands that run without the service graph.
const annotationNoServices = "noServices"

var (
	verbose      bool
	configDir    string
	storeBackend string
)

// Ingester runs content through processing, workflows and indexing.
// *app.App satisfies it.
type Ingester interface {
	Process(ctx context.Context, req app.ProcessRequest) (app.ProcessResult, error)
}

// Services holds the ports the commands drive.
type Services struct {
	Ingester    Ingester
	Processor   driving.ContentProcessor
	Workflows   driving.WorkflowEngine
	Models      driving.ModelRegistry
	Categorizer driving.Categorizer
	Records     driving.RecordService

	// WatchWorkflows hot-reloads workflow definitions for long-running
	// commands. Optional.
	WatchWorkflows func(ctx context.Context) error

	// SaveWorkflow persists and registers a workflow. Optional.
	SaveWorkflow func(category string, def domain.WorkflowDefinition) error
}

// services is the active service graph. Commands build it from
// configuration on first use unless SetServices was called.
var (
	services      *Services
	closeServices func() error
)

// SetServices injects the service graph, bypassing configuration.
func SetServices(s *Services) {
	services = s
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// ServicesFromApp exposes an App's services to the commands.
func ServicesFromApp(a *app.App) *Services {
	return &Services{
		Ingester:       a,
		Processor:      a.Processor,
		Workflows:      a.Workflows,
		Models:         a.Models,
		Categorizer:    a.Categorizer,
		Records:        a.Records,
		WatchWorkflows: a.WatchWorkflows,
		SaveWorkflow:   a.SaveWorkflow,
	}
}

var rootCmd = &cobra.Command{
	Use:   "noteflow",
	Short: "Process notes, images, recordings and tables into structured content",
	Long: `noteflow turns raw content into structured, categorised notes.

Content is analysed by a model backend for its type, chunked into a
relationship graph, run through configurable workflows and optionally
indexed for search.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.noteflow)")
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", "", "record store: sqlite, bluge or memory")
}

// Execute runs the root command and releases any services it opened.
// Output goes to stdout so it can be piped.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	err := rootCmd.ExecuteContext(ctx)
	return errors.Join(err, teardownServices())
}

func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if services != nil || cmd.Annotations[annotationNoServices] == "true" {
		return nil
	}

	a, err := app.New(app.Options{ConfigDir: configDir, Store: storeBackend})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	services = ServicesFromApp(a)
	closeServices = a.Close
	return nil
}

func teardownServices() error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	closeServices = nil
	services = nil
	return err
}

// useJSON reports whether output should be JSON: when requested, or when
// stdout is a file or pipe rather than a terminal.
func useJSON(cmd *cobra.Command, requested bool) bool {
	if requested {
		return true
	}
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return !term.IsTerminal(int(f.Fd()))
	}
	return false
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// newTable returns a borderless, left-aligned table writing to w.
func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	return table
}
