package config

// Config represents the project configuration (recall.yaml)
type Config struct {
	Name    string        `yaml:"name" json:"name"`
	Memory  MemoryConfig  `yaml:"memory" json:"memory"`
	Prompt  PromptConfig  `yaml:"prompt" json:"prompt"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
}

// MemoryConfig configures the conversation memory store
type MemoryConfig struct {
	Driver       string `yaml:"driver" json:"driver"`               // file, jsonl, sqlite
	Path         string `yaml:"path" json:"path"`                   // log file or database path
	MaxExchanges int    `yaml:"max_exchanges" json:"max_exchanges"` // recency window
}

// PromptConfig points at optional overrides for prompt assembly
type PromptConfig struct {
	PersonaFile  string `yaml:"persona_file,omitempty" json:"persona_file,omitempty"`
	TemplateFile string `yaml:"template_file,omitempty" json:"template_file,omitempty"` // must contain {memory_block} and {user_prompt}
}

// LoggingConfig configures logging
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`   // debug, info, warn, error
	Format string `yaml:"format" json:"format"` // text, json
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// MetricsConfig configures metrics export
type MetricsConfig struct {
	ExportPath string `yaml:"export_path,omitempty" json:"export_path,omitempty"` // JSONL snapshots; empty disables
}
