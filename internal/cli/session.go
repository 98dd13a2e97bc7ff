package cli

import (
	"fmt"
	"os"

	"github.com/cadre-oss/recall/internal/config"
	"github.com/cadre-oss/recall/internal/memory"
	"github.com/cadre-oss/recall/internal/telemetry"
	"github.com/spf13/viper"
)

// session bundles what one command invocation needs.
type session struct {
	cfg      *config.Config
	logger   *telemetry.Logger
	metrics  *telemetry.Metrics
	exporter telemetry.MetricsExporter
	manager  *memory.Manager
}

// loadConfig reads the config file and applies flag and RECALL_* overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadFile(cfgFile)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return nil, err
	}

	if viper.IsSet("memory.path") && viper.GetString("memory.path") != "" {
		cfg.Memory.Path = viper.GetString("memory.path")
	}
	if viper.IsSet("memory.driver") && viper.GetString("memory.driver") != "" {
		cfg.Memory.Driver = viper.GetString("memory.driver")
	}
	if viper.IsSet("memory.max_exchanges") && viper.GetInt("memory.max_exchanges") != 0 {
		cfg.Memory.MaxExchanges = viper.GetInt("memory.max_exchanges")
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*telemetry.Logger, error) {
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger := telemetry.NewLoggerWithOptions(level, cfg.Logging.Format, os.Stderr)
	if cfg.Logging.File != "" {
		if err := logger.WithFile(cfg.Logging.File); err != nil {
			return nil, err
		}
	}
	return logger, nil
}

func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, logger: logger, metrics: telemetry.NewMetrics()}

	if cfg.Metrics.ExportPath != "" {
		exporter, err := telemetry.NewJSONFileExporter(cfg.Metrics.ExportPath)
		if err != nil {
			logger.Close()
			return nil, fmt.Errorf("failed to open metrics exporter: %w", err)
		}
		s.exporter = exporter
		s.metrics.SetExporter(exporter)
	}

	store, err := memory.Open(cfg.Memory.Driver, cfg.Memory.Path)
	if err != nil {
		s.close("")
		return nil, err
	}

	s.manager = memory.NewManager(store, memory.ManagerOptions{
		MaxExchanges: cfg.Memory.MaxExchanges,
		Logger:       logger.WithFields(map[string]interface{}{"driver": cfg.Memory.Driver}),
		Metrics:      s.metrics,
	})
	return s, nil
}

// close flushes metrics under event (skipped when empty) and releases resources.
func (s *session) close(event string) {
	if event != "" {
		s.metrics.Flush(event, map[string]string{
			"driver": s.cfg.Memory.Driver,
			"path":   s.cfg.Memory.Path,
		})
	}
	if s.exporter != nil {
		_ = s.exporter.Close()
	}
	if s.manager != nil {
		_ = s.manager.Close()
	}
	_ = s.logger.Close()
}
