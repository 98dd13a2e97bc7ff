package memory

import (
	"time"

	"github.com/cadre-oss/recall/internal/telemetry"
)

// ManagerOptions configures a Manager. Zero values select defaults.
type ManagerOptions struct {
	MaxExchanges int // default recency window; DefaultMaxExchanges if <= 0
	Finder       Finder
	Logger       *telemetry.Logger
	Metrics      *telemetry.Metrics
}

// Manager is the conversation memory surface used by request-handling code.
type Manager struct {
	store        Store
	maxExchanges int
	finder       Finder
	logger       *telemetry.Logger
	metrics      *telemetry.Metrics
}

// NewManager creates a Manager over store.
func NewManager(store Store, opts ManagerOptions) *Manager {
	m := &Manager{
		store:        store,
		maxExchanges: resolveMax(opts.MaxExchanges),
		finder:       opts.Finder,
		logger:       opts.Logger,
		metrics:      opts.Metrics,
	}
	if m.finder == nil {
		m.finder = NoopFinder{}
	}
	if m.logger == nil {
		m.logger = telemetry.NewLogger(false)
	}
	if m.metrics == nil {
		m.metrics = telemetry.NewMetrics()
	}
	return m
}

// Store returns the underlying Store.
func (m *Manager) Store() Store {
	return m.store
}

// MaxExchanges returns the default recency window.
func (m *Manager) MaxExchanges() int {
	return m.maxExchanges
}

// Metrics returns the metrics collector.
func (m *Manager) Metrics() *telemetry.Metrics {
	return m.metrics
}

// RecordExchange stores one exchange and trims the log to maxExchanges
// entries (the manager default when maxExchanges <= 0). Inputs are trimmed
// of surrounding whitespace. A storage failure is returned to the caller.
func (m *Manager) RecordExchange(userInput, assistantOutput string, maxExchanges int) error {
	limit := m.window(maxExchanges)
	start := time.Now()

	stats, err := m.store.Record(NewExchange(userInput, assistantOutput), limit)
	m.metrics.AddSkipped(stats.Skipped)
	if err != nil {
		m.metrics.IncWriteFailures()
		m.logger.Error("failed to record exchange", "path", m.store.Path(), "error", err)
		return err
	}

	m.metrics.RecordWriteLatency(time.Since(start))
	m.metrics.IncRecorded()
	m.metrics.AddEvicted(stats.Evicted)

	m.logger.Debug("recorded exchange",
		"path", m.store.Path(),
		"max_exchanges", limit,
		"stored", stats.Stored,
		"evicted", stats.Evicted,
		"skipped", stats.Skipped,
	)
	return nil
}

// Recent returns the last maxExchanges exchanges, oldest first.
func (m *Manager) Recent(maxExchanges int) ([]Exchange, error) {
	limit := m.window(maxExchanges)

	log, stats, err := m.store.Recent(limit)
	m.metrics.AddSkipped(stats.Skipped)
	if err != nil {
		m.logger.Error("failed to read memory log", "path", m.store.Path(), "error", err)
		return nil, err
	}
	m.metrics.IncReads()

	m.logger.Debug("read memory window",
		"path", m.store.Path(),
		"max_exchanges", limit,
		"stored", stats.Stored,
		"returned", len(log),
		"skipped", stats.Skipped,
	)
	return log, nil
}

// GetRecentMemory renders the recency window as a context block.
// It returns "" when the log is empty or absent.
func (m *Manager) GetRecentMemory(maxExchanges int) (string, error) {
	log, err := m.Recent(maxExchanges)
	if err != nil {
		return "", err
	}
	return Format(log), nil
}

// MemoryFinder delegates to the configured Finder, a NoopFinder by default.
func (m *Manager) MemoryFinder(userInput string) string {
	return m.finder.Find(userInput)
}

// Clear empties the log.
func (m *Manager) Clear() error {
	if err := m.store.Clear(); err != nil {
		m.logger.Error("failed to clear memory log", "path", m.store.Path(), "error", err)
		return err
	}
	m.logger.Info("cleared memory log", "path", m.store.Path())
	return nil
}

// Close closes the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}

func (m *Manager) window(maxExchanges int) int {
	if maxExchanges > 0 {
		return maxExchanges
	}
	return m.maxExchanges
}
