package cli

import (
	"fmt"
	"runtime"

	"github.com/cadre-oss/recall/internal/memory"
	"github.com/spf13/cobra"
)

// These are set at build time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "recall %s\n", Version)
		fmt.Fprintf(out, "  Build time:    %s\n", BuildTime)
		fmt.Fprintf(out, "  Git commit:    %s\n", GitCommit)
		fmt.Fprintf(out, "  Go version:    %s\n", runtime.Version())
		fmt.Fprintf(out, "  OS/Arch:       %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "  Default cap:   %d exchanges\n", memory.DefaultMaxExchanges)
	},
}
