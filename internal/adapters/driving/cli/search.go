package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/noteflow/internal/core/domain"
)

var (
	searchLimit    int
	searchJSON     bool
	searchCategory string
	searchTag      string
	searchType     string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed records",
	Long: `Searches records indexed with "process --index".
Results are ranked by how often the query terms occur in the title,
description, tags and content.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "only records in this category")
	searchCmd.Flags().StringVar(&searchTag, "tag", "", "only records with this tag")
	searchCmd.Flags().StringVar(&searchType, "type", "", "only records of this content type")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if services == nil || services.Records == nil {
		return errors.New("search service not configured")
	}

	filter := domain.RecordFilter{Category: searchCategory, Tag: searchTag}
	if searchType != "" {
		ct, err := domain.ParseContentType(searchType)
		if err != nil {
			return err
		}
		filter.ContentType = ct
	}

	results, err := services.Records.Search(cmd.Context(), query, searchLimit, filter)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if useJSON(cmd, searchJSON) {
		return printJSON(cmd, results)
	}

	return outputSearchList(cmd, results)
}

func outputSearchList(cmd *cobra.Command, results []domain.Record) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		// Format: [N] Title (Score)
		title := results[i].Metadata.Title
		if title == "" {
			title = results[i].ID
		}

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, title, results[i].Score)
		if results[i].URI != "" {
			cmd.Printf("      Source: %s\n", results[i].URI)
		}
		if results[i].Metadata.Category != "" {
			cmd.Printf("      Category: %s\n", results[i].Metadata.Category)
		}
		if snippet := snippet(results[i].Content, 120); snippet != "" {
			cmd.Printf("      %s\n", snippet)
		}
		cmd.Println()
	}

	return nil
}

// snippet returns the first non-empty line of content, shortened to limit runes.
func snippet(content string, limit int) string {
	line := strings.TrimSpace(content)
	for _, l := range strings.Split(line, "\n") {
		if l = strings.TrimSpace(strings.TrimLeft(l, "# ")); l != "" {
			line = l
			break
		}
	}
	runes := []rune(line)
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return line
}
