package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var categorizeJSON bool

var categorizeCmd = &cobra.Command{
	Use:   "categorize [text]",
	Short: "Suggest categories for text",
	Long: `Scores text against the configured category rules and lists the
categories whose confidence exceeds the threshold, best first.

Pass "-" to read the text from stdin.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCategorize,
}

func init() {
	categorizeCmd.Flags().BoolVar(&categorizeJSON, "json", false, "output suggestions as JSON")
	rootCmd.AddCommand(categorizeCmd)
}

func runCategorize(cmd *cobra.Command, args []string) error {
	if services == nil || services.Categorizer == nil {
		return errors.New("categorizer not configured")
	}

	text := strings.Join(args, " ")
	if text == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}

	scores, err := services.Categorizer.Categorize(cmd.Context(), text)
	if err != nil {
		return fmt.Errorf("categorization failed: %w", err)
	}

	if useJSON(cmd, categorizeJSON) {
		return printJSON(cmd, scores)
	}

	if len(scores) == 0 {
		cmd.Println("No matching categories.")
		return nil
	}

	table := newTable(cmd.OutOrStdout(), "Category", "Name", "Confidence")
	for _, s := range scores {
		table.Append([]string{s.Category.ID, s.Category.Name, fmt.Sprintf("%.2f", s.Confidence)})
	}
	table.Render()
	return nil
}
