package cli

import (
	"fmt"
	"os"
	"strings"

	recallErrors "github.com/cadre-oss/recall/internal/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Bounded conversation memory for chat assistants",
	Long: `recall - a rolling window of the last N user/assistant exchanges.

Records exchanges to a line-oriented log, trims it to a fixed size and
renders the recent window as a context block for prompt assembly.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if s := recallErrors.Suggestion(err); s != "" {
			fmt.Fprintln(os.Stderr, "  →", s)
		}
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./recall.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.String("memory-file", "", "memory log path (overrides memory.path)")
	flags.String("driver", "", "storage driver: file, jsonl, sqlite (overrides memory.driver)")
	flags.Int("max-exchanges", 0, "default recency window (overrides memory.max_exchanges)")

	_ = viper.BindPFlag("memory.path", flags.Lookup("memory-file"))
	_ = viper.BindPFlag("memory.driver", flags.Lookup("driver"))
	_ = viper.BindPFlag("memory.max_exchanges", flags.Lookup("max-exchanges"))

	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

// initConfig wires RECALL_* environment overrides. The YAML file itself is
// parsed by the config package so ${VAR} interpolation applies.
func initConfig() {
	viper.SetEnvPrefix("RECALL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if verbose && cfgFile != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", cfgFile)
	}
}
