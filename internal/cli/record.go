package cli

import (
	"fmt"

	"github.com/cadre-oss/recall/internal/telemetry"
	"github.com/spf13/cobra"
)

var (
	recordUser      string
	recordAssistant string
	recordMax       int
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record one user/assistant exchange",
	Long: `Append an exchange to the memory log and trim the log to the
recency window. Both texts are trimmed and may be empty.

Examples:
  recall record --user "Hi" --assistant "Hello!"
  recall record -u "How are you?" -a "Great, thanks." -n 2`,
	Args: cobra.NoArgs,
	RunE: runRecord,
}

func init() {
	recordCmd.Flags().StringVarP(&recordUser, "user", "u", "", "user message")
	recordCmd.Flags().StringVarP(&recordAssistant, "assistant", "a", "", "assistant reply")
	recordCmd.Flags().IntVarP(&recordMax, "max", "n", 0, "cap for this write (default: configured max_exchanges)")
}

func runRecord(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close(telemetry.EventRecorded)

	if err := s.manager.RecordExchange(recordUser, recordAssistant, recordMax); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Recorded exchange in %s\n", s.manager.Store().Path())
	}
	return nil
}
