package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/noteflow/internal/app"
	"github.com/custodia-labs/noteflow/internal/core/domain"
)

var (
	processType     string
	processWorkflow string
	processAuto     bool
	processJSON     bool
	processIndex    bool
)

var processCmd = &cobra.Command{
	Use:   "process [file]",
	Short: "Process a file into structured content",
	Long: `Analyses a file with the model backend for its content type and
prints the structured result.

The content type is detected from the file when --type is not given.
Use --workflow to apply a registered workflow, --auto to apply every
workflow whose trigger matches, and --index to store the result for search.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&processType, "type", "t", "", "content type: text, image, video, audio or table")
	processCmd.Flags().StringVarP(&processWorkflow, "workflow", "w", "", "workflow category to apply")
	processCmd.Flags().BoolVar(&processAuto, "auto", false, "apply every workflow whose trigger matches")
	processCmd.Flags().BoolVar(&processJSON, "json", false, "output result as JSON")
	processCmd.Flags().BoolVar(&processIndex, "index", false, "index the result for search")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	if services == nil || services.Ingester == nil {
		return errors.New("processor not configured")
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	ct, err := resolveContentType(processType, path, data)
	if err != nil {
		return err
	}

	result, err := services.Ingester.Process(cmd.Context(), app.ProcessRequest{
		URI:         path,
		Data:        data,
		ContentType: ct,
		Workflow:    processWorkflow,
		Auto:        processAuto,
		Index:       processIndex,
	})
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	if useJSON(cmd, processJSON) {
		return printJSON(cmd, result)
	}
	printResult(cmd, path, result)
	return nil
}

// resolveContentType parses explicit when set, otherwise detects the type
// from the file's content and extension.
func resolveContentType(explicit, path string, data []byte) (domain.ContentType, error) {
	if explicit != "" {
		return domain.ParseContentType(explicit)
	}
	return DetectContentType(path, data)
}

// DetectContentType maps a file's MIME type onto a content type.
func DetectContentType(path string, data []byte) (domain.ContentType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return domain.ContentTypeTable, nil
	case ".md", ".markdown", ".txt", ".html", ".htm", ".eml":
		return domain.ContentTypeText, nil
	}

	mime := mimetype.Detect(data)
	for m := mime; m != nil; m = m.Parent() {
		switch {
		case m.Is("text/csv"), m.Is("text/tab-separated-values"):
			return domain.ContentTypeTable, nil
		case strings.HasPrefix(m.String(), "image/"):
			return domain.ContentTypeImage, nil
		case strings.HasPrefix(m.String(), "video/"):
			return domain.ContentTypeVideo, nil
		case strings.HasPrefix(m.String(), "audio/"):
			return domain.ContentTypeAudio, nil
		case m.Is("text/plain"):
			return domain.ContentTypeText, nil
		}
	}
	return "", fmt.Errorf("%w: cannot detect type of %s (%s), use --type",
		domain.ErrUnsupportedContentType, path, mime.String())
}

func printResult(cmd *cobra.Command, path string, result app.ProcessResult) {
	meta := result.Content.Metadata
	cmd.Printf("Processed %s as %s\n", path, meta.ContentType)
	if meta.Title != "" {
		cmd.Printf("  Title:     %s\n", meta.Title)
	}
	if meta.Description != "" {
		cmd.Printf("  Summary:   %s\n", meta.Description)
	}
	if meta.Category != "" {
		cmd.Printf("  Category:  %s\n", meta.Category)
	}
	if len(meta.Tags) > 0 {
		cmd.Printf("  Tags:      %s\n", strings.Join(meta.Tags, ", "))
	}
	if meta.Location != "" {
		cmd.Printf("  Location:  %s\n", meta.Location)
	}
	if len(result.Applied) > 0 {
		cmd.Printf("  Workflows: %s\n", strings.Join(result.Applied, ", "))
	}
	cmd.Printf("  Chunks:    %d (%d edges)\n", len(result.Content.Relationships.Nodes), len(result.Content.Relationships.Edges))
	if result.RecordID != "" {
		cmd.Printf("  Indexed:   %s\n", result.RecordID)
	}
	if result.Content.Content != "" {
		cmd.Println()
		cmd.Println(result.Content.Content)
	}
}
