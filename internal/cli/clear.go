package cli

import (
	"fmt"

	"github.com/cadre-oss/recall/internal/telemetry"
	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the memory log",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm clearing the log")
}

func runClear(cmd *cobra.Command, args []string) error {
	if !clearYes {
		return fmt.Errorf("refusing to clear the memory log without --yes")
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close(telemetry.EventCleared)

	if err := s.manager.Clear(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", s.manager.Store().Path())
	return nil
}
