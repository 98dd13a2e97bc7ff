package cli

import (
	"fmt"

	"github.com/cadre-oss/recall/internal/prompt"
	"github.com/cadre-oss/recall/internal/telemetry"
	"github.com/spf13/cobra"
)

var (
	promptQuery string
	promptMax   int
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the assembled prompt for a query",
	Long: `Combine the persona, the recent memory block and a new user query
into the prompt sent to the generation call. Storage is not modified.

Examples:
  recall prompt --query "What did I tell you about coffee?"`,
	Args: cobra.NoArgs,
	RunE: runPrompt,
}

func init() {
	promptCmd.Flags().StringVarP(&promptQuery, "query", "q", "", "current user query")
	promptCmd.Flags().IntVarP(&promptMax, "max", "n", 0, "number of exchanges (default: configured max_exchanges)")
}

func runPrompt(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close(telemetry.EventRecalled)

	builder, err := prompt.LoadBuilder(s.cfg.Prompt.PersonaFile, s.cfg.Prompt.TemplateFile)
	if err != nil {
		return err
	}

	block, err := s.manager.GetRecentMemory(promptMax)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), builder.Build(block, promptQuery))
	return nil
}
