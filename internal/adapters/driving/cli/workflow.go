package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/noteflow/internal/app"
	"github.com/custodia-labs/noteflow/internal/core/domain"
)

var (
	workflowJSON      bool
	workflowApplyType string

	workflowAddTypes      string
	workflowAddTransform  string
	workflowAddCategorize string
	workflowAddTags       string
	workflowAddMove       string
)

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Manage workflows",
	Long: `Commands for listing, adding and applying workflows.

Workflows are defined per category in workflows.yaml in the
configuration directory, in addition to the built-in notes and
images workflows.`,
}

var workflowListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered workflows",
	Args:  cobra.NoArgs,
	RunE:  runWorkflowList,
}

var workflowApplyCmd = &cobra.Command{
	Use:   "apply [category] [file]",
	Short: "Process a file and apply the workflow for a category",
	Args:  cobra.ExactArgs(2),
	RunE:  runWorkflowApply,
}

var workflowAddCmd = &cobra.Command{
	Use:   "add [category]",
	Short: "Add or replace a workflow in workflows.yaml",
	Long: `Adds a workflow for a category and saves it to workflows.yaml.

Actions run in the order transform, categorize, tag, move. At least one
action flag is required.`,
	Example: `  noteflow workflow add meetings --types text --transform meeting-notes --tags meeting,inbox`,
	Args: cobra.ExactArgs(1),
	RunE: runWorkflowAdd,
}

func init() {
	workflowListCmd.Flags().BoolVar(&workflowJSON, "json", false, "output workflows as JSON")
	workflowApplyCmd.Flags().StringVarP(&workflowApplyType, "type", "t", "", "content type (detected when empty)")

	flags := workflowAddCmd.Flags()
	flags.StringVar(&workflowAddTypes, "types", "", "comma-separated content types that trigger the workflow (any when empty)")
	flags.StringVar(&workflowAddTransform, "transform", "", "template to transform content with")
	flags.StringVar(&workflowAddCategorize, "categorize", "", "category to assign")
	flags.StringVar(&workflowAddTags, "tags", "", "comma-separated tags to add")
	flags.StringVar(&workflowAddMove, "move", "", "location to move content to")

	workflowCmd.AddCommand(workflowListCmd, workflowApplyCmd, workflowAddCmd)
	rootCmd.AddCommand(workflowCmd)
}

// workflowInfo is the listing form of a workflow.
type workflowInfo struct {
	Category     string   `json:"category"`
	ContentTypes []string `json:"contentTypes"`
	Conditions   int      `json:"conditions"`
	Actions      []string `json:"actions"`
}

func runWorkflowList(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Workflows == nil {
		return errors.New("workflow engine not configured")
	}

	var infos []workflowInfo
	for _, category := range services.Workflows.Categories() {
		wf, err := services.Workflows.Get(category)
		if err != nil {
			return err
		}
		infos = append(infos, workflowInfo{
			Category:     category,
			ContentTypes: lo.Map(wf.Trigger.ContentTypes, func(ct domain.ContentType, _ int) string { return ct.String() }),
			Conditions:   len(wf.Trigger.Conditions),
			Actions:      lo.Map(wf.Actions, func(a domain.Action, _ int) string { return string(a.Kind()) }),
		})
	}

	if useJSON(cmd, workflowJSON) {
		return printJSON(cmd, infos)
	}

	if len(infos) == 0 {
		cmd.Println("No workflows registered.")
		return nil
	}

	table := newTable(cmd.OutOrStdout(), "Category", "Content types", "Conditions", "Actions")
	for _, info := range infos {
		types := strings.Join(info.ContentTypes, ",")
		if types == "" {
			types = "any"
		}
		table.Append([]string{info.Category, types, fmt.Sprint(info.Conditions), strings.Join(info.Actions, " > ")})
	}
	table.Render()
	return nil
}

func runWorkflowApply(cmd *cobra.Command, args []string) error {
	if services == nil || services.Ingester == nil {
		return errors.New("processor not configured")
	}

	category, path := args[0], args[1]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	ct, err := resolveContentType(workflowApplyType, path, data)
	if err != nil {
		return err
	}

	result, err := services.Ingester.Process(cmd.Context(), app.ProcessRequest{
		URI:         path,
		Data:        data,
		ContentType: ct,
		Workflow:    category,
	})
	if err != nil {
		return fmt.Errorf("applying workflow %q: %w", category, err)
	}

	cmd.Print(result.Content.Content)
	if !strings.HasSuffix(result.Content.Content, "\n") {
		cmd.Println()
	}
	return nil
}

func runWorkflowAdd(cmd *cobra.Command, args []string) error {
	if services == nil || services.SaveWorkflow == nil {
		return errors.New("workflow storage not configured")
	}

	def, err := workflowFromFlags()
	if err != nil {
		return err
	}
	if err := services.SaveWorkflow(args[0], def); err != nil {
		return fmt.Errorf("saving workflow %q: %w", args[0], err)
	}

	cmd.Printf("Saved workflow %q (%s)\n", args[0],
		strings.Join(lo.Map(def.Actions, func(a domain.Action, _ int) string { return string(a.Kind()) }), " > "))
	return nil
}

// workflowFromFlags builds a definition from the workflow add flags.
func workflowFromFlags() (domain.WorkflowDefinition, error) {
	var def domain.WorkflowDefinition

	for _, name := range strings.Split(workflowAddTypes, ",") {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		ct, err := domain.ParseContentType(name)
		if err != nil {
			return def, err
		}
		def.Trigger.ContentTypes = append(def.Trigger.ContentTypes, ct)
	}

	specs := []domain.ActionSpec{
		{Type: string(domain.ActionTransform), Params: map[string]any{"template": workflowAddTransform}},
		{Type: string(domain.ActionCategorize), Params: map[string]any{"category": workflowAddCategorize}},
		{Type: string(domain.ActionTag), Params: map[string]any{"tags": workflowAddTags}},
		{Type: string(domain.ActionMove), Params: map[string]any{"destination": workflowAddMove}},
	}
	values := []string{workflowAddTransform, workflowAddCategorize, workflowAddTags, workflowAddMove}
	for i, spec := range specs {
		if strings.TrimSpace(values[i]) == "" {
			continue
		}
		action, err := domain.ParseAction(spec)
		if err != nil {
			return def, err
		}
		def.Actions = append(def.Actions, action)
	}

	if len(def.Actions) == 0 {
		return def, fmt.Errorf("%w: at least one of --transform, --categorize, --tags or --move is required",
			domain.ErrInvalidConfig)
	}
	return def, nil
}
