package cli

import (
	"fmt"

	"github.com/cadre-oss/recall/internal/telemetry"
	"github.com/spf13/cobra"
)

var showMax int

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the recent memory block",
	Long: `Print the last N exchanges formatted as a context block.
Prints nothing when the log is empty or does not exist.

Examples:
  recall show
  recall show -n 3`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	showCmd.Flags().IntVarP(&showMax, "max", "n", 0, "number of exchanges (default: configured max_exchanges)")
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close(telemetry.EventRecalled)

	block, err := s.manager.GetRecentMemory(showMax)
	if err != nil {
		return err
	}
	if block != "" {
		fmt.Fprintln(cmd.OutOrStdout(), block)
	}
	return nil
}
