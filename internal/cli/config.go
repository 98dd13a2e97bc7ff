package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/cadre-oss/recall/internal/config"
	"github.com/cadre-oss/recall/internal/prompt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and modifying configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value (e.g. memory.max_exchanges 20)",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file and prompt overrides",
	RunE:  runConfigValidate,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configValidateCmd)
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.FileName
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Current Configuration:")
	fmt.Fprintln(w, "----------------------")
	fmt.Fprintln(w, string(out))

	if _, err := os.Stat(configPath()); err == nil {
		fmt.Fprintf(w, "Config file: %s\n", configPath())
	} else {
		fmt.Fprintln(w, "Config file: none (defaults)")
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	path := configPath()

	cfg := map[string]interface{}{}
	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if len(content) > 0 {
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Decode the value as YAML so numbers and booleans keep their type.
	var value interface{}
	if err := yaml.Unmarshal([]byte(args[1]), &value); err != nil || value == nil {
		value = args[1]
	}
	setNestedValue(cfg, key, value)

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Refuse to write a file that would no longer load.
	var check config.Config
	if err := yaml.Unmarshal(out, &check); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, value)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	var problems []string

	cfg, err := loadConfig()
	if err != nil {
		problems = append(problems, fmt.Sprintf("%s: %v", configPath(), err))
	} else {
		fmt.Fprintf(w, "%s: OK\n", configPath())

		if _, err := prompt.LoadBuilder(cfg.Prompt.PersonaFile, cfg.Prompt.TemplateFile); err != nil {
			problems = append(problems, fmt.Sprintf("prompt: %v", err))
		} else {
			fmt.Fprintln(w, "prompt: OK")
		}
	}

	if len(problems) > 0 {
		fmt.Fprintln(w, "\nValidation Errors:")
		for _, p := range problems {
			fmt.Fprintf(w, "  - %s\n", p)
		}
		return fmt.Errorf("validation failed with %d errors", len(problems))
	}

	fmt.Fprintln(w, "\nConfiguration valid.")
	return nil
}

func setNestedValue(m map[string]interface{}, key string, value interface{}) {
	parts := strings.FieldsFunc(key, func(r rune) bool { return r == '.' })
	if len(parts) == 0 {
		return
	}

	current := m
	for _, part := range parts[:len(parts)-1] {
		if _, ok := current[part]; !ok {
			current[part] = make(map[string]interface{})
		}
		next, ok := current[part].(map[string]interface{})
		if !ok {
			return
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
