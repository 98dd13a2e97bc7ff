package telemetry

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot event labels.
const (
	EventRecorded = "memory.recorded"
	EventRecalled = "memory.recalled"
	EventCleared  = "memory.cleared"
)

// Metrics collects memory store counters for one process.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	ExchangesRecorded int64
	ExchangesEvicted  int64
	Reads             int64
	LinesSkipped      int64
	WriteFailures     int64

	writeLatencies []time.Duration

	// Exporter (optional)
	exporter MetricsExporter
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	return &Metrics{
		writeLatencies: make([]time.Duration, 0, 64),
	}
}

// IncRecorded counts one successfully persisted exchange.
func (m *Metrics) IncRecorded() {
	atomic.AddInt64(&m.ExchangesRecorded, 1)
}

// AddEvicted counts exchanges dropped from the front of the log.
func (m *Metrics) AddEvicted(n int) {
	atomic.AddInt64(&m.ExchangesEvicted, int64(n))
}

// IncReads counts one recency-window read.
func (m *Metrics) IncReads() {
	atomic.AddInt64(&m.Reads, 1)
}

// AddSkipped counts storage lines that did not parse as exchanges.
func (m *Metrics) AddSkipped(n int) {
	atomic.AddInt64(&m.LinesSkipped, int64(n))
}

// IncWriteFailures counts a write that could not be persisted.
func (m *Metrics) IncWriteFailures() {
	atomic.AddInt64(&m.WriteFailures, 1)
}

// RecordWriteLatency records the duration of one read-modify-write.
func (m *Metrics) RecordWriteLatency(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeLatencies = append(m.writeLatencies, d)
}

// GetSummary returns a summary of collected metrics
func (m *Metrics) GetSummary() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summary := map[string]interface{}{
		"exchanges_recorded": atomic.LoadInt64(&m.ExchangesRecorded),
		"exchanges_evicted":  atomic.LoadInt64(&m.ExchangesEvicted),
		"reads":              atomic.LoadInt64(&m.Reads),
		"lines_skipped":      atomic.LoadInt64(&m.LinesSkipped),
		"write_failures":     atomic.LoadInt64(&m.WriteFailures),
	}

	if len(m.writeLatencies) > 0 {
		var total time.Duration
		for _, d := range m.writeLatencies {
			total += d
		}
		summary["avg_write_latency_us"] = total.Microseconds() / int64(len(m.writeLatencies))
	}

	return summary
}

// Reset resets all metrics
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	atomic.StoreInt64(&m.ExchangesRecorded, 0)
	atomic.StoreInt64(&m.ExchangesEvicted, 0)
	atomic.StoreInt64(&m.Reads, 0)
	atomic.StoreInt64(&m.LinesSkipped, 0)
	atomic.StoreInt64(&m.WriteFailures, 0)

	m.writeLatencies = m.writeLatencies[:0]
}

// SetExporter attaches a metrics exporter.
func (m *Metrics) SetExporter(e MetricsExporter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exporter = e
}

// Flush exports the current metrics snapshot with the given event label.
func (m *Metrics) Flush(event string, labels map[string]string) {
	m.mu.RLock()
	exporter := m.exporter
	m.mu.RUnlock()

	if exporter == nil {
		return
	}

	snapshot := MetricsSnapshot{
		Timestamp: time.Now(),
		Event:     event,
		Metrics:   m.GetSummary(),
		Labels:    labels,
	}
	// Best-effort export.
	_ = exporter.Export(snapshot)
}
