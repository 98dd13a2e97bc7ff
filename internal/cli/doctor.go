package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/cadre-oss/recall/internal/memory"
	"github.com/cadre-oss/recall/internal/prompt"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and storage",
	Long:  "Validate that the configuration loads and the memory log can be read and written.",
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "recall doctor: checking your environment")
	fmt.Fprintln(w)
	allOK := true

	fmt.Fprintf(w, "  Go version: %s ✓\n", runtime.Version())
	fmt.Fprintf(w, "  Platform:   %s/%s ✓\n", runtime.GOOS, runtime.GOARCH)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(w, "  Config:     FAILED (%s) ✗\n", err)
		fmt.Fprintln(w, "\nSome checks failed. See above for details.")
		return nil
	}
	fmt.Fprintf(w, "  Config:     %s (driver=%s, max_exchanges=%d) ✓\n",
		configPath(), cfg.Memory.Driver, cfg.Memory.MaxExchanges)

	if _, err := prompt.LoadBuilder(cfg.Prompt.PersonaFile, cfg.Prompt.TemplateFile); err != nil {
		fmt.Fprintf(w, "  Prompt:     FAILED (%s) ✗\n", err)
		allOK = false
	} else {
		fmt.Fprintln(w, "  Prompt:     OK ✓")
	}

	store, err := memory.Open(cfg.Memory.Driver, cfg.Memory.Path)
	if err != nil {
		fmt.Fprintf(w, "  Storage:    FAILED (%s) ✗\n", err)
		allOK = false
	} else {
		defer store.Close()

		if log, stats, err := store.Recent(cfg.Memory.MaxExchanges); err != nil {
			fmt.Fprintf(w, "  Read:       FAILED (%s) ✗\n", err)
			allOK = false
		} else {
			fmt.Fprintf(w, "  Read:       %d stored, %d in window, %d malformed lines ✓\n",
				stats.Stored, len(log), stats.Skipped)
		}

		if err := checkWritable(filepath.Dir(store.Path())); err != nil {
			fmt.Fprintf(w, "  Write:      FAILED (%s) ✗\n", err)
			fmt.Fprintln(w, "    → Create the directory or fix its permissions")
			allOK = false
		} else {
			fmt.Fprintf(w, "  Write:      %s writable ✓\n", filepath.Dir(store.Path()))
		}
	}

	fmt.Fprintln(w)
	if allOK {
		fmt.Fprintln(w, "All checks passed!")
	} else {
		fmt.Fprintln(w, "Some checks failed. See above for details.")
	}
	return nil
}

// checkWritable creates and removes a probe file in dir.
func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".recall-doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
