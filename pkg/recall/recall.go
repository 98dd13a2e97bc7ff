// Package recall provides a public API for the bounded conversation memory store.
//
// Example usage:
//
//	import "github.com/cadre-oss/recall/pkg/recall"
//
//	mem, err := recall.Open("memory.jsonl")
//	if err != nil {
//		return err
//	}
//	defer mem.Close()
//
//	block, err := mem.GetRecentMemory()
//	// ... call the model with block and the user's message ...
//	err = mem.RecordExchange(userMessage, reply)
package recall

import (
	"log/slog"

	"github.com/cadre-oss/recall/internal/memory"
	"github.com/cadre-oss/recall/internal/prompt"
	"github.com/cadre-oss/recall/internal/telemetry"
)

// Exchange is one user message paired with one assistant reply.
type Exchange = memory.Exchange

// DefaultMaxExchanges is the recency window used unless overridden.
const DefaultMaxExchanges = memory.DefaultMaxExchanges

type options struct {
	driver       string
	maxExchanges int
	logger       *slog.Logger
	finder       memory.Finder
}

// Option configures Open.
type Option func(*options)

// WithDriver selects the storage driver: "file" (default), "jsonl" or "sqlite".
func WithDriver(driver string) Option {
	return func(o *options) { o.driver = driver }
}

// WithMaxExchanges sets the default recency window.
func WithMaxExchanges(n int) Option {
	return func(o *options) { o.maxExchanges = n }
}

// WithLogger routes store logging to logger. The default logs at info
// level to stderr.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithFinder replaces the no-op legacy extraction finder.
func WithFinder(f memory.Finder) Option {
	return func(o *options) { o.finder = f }
}

// Memory is a handle on one memory log.
type Memory struct {
	manager *memory.Manager
}

// Open returns a handle on the memory log at path. Nothing is written
// until the first RecordExchange.
func Open(path string, opts ...Option) (*Memory, error) {
	o := &options{driver: memory.DriverFile}
	for _, opt := range opts {
		opt(o)
	}

	store, err := memory.Open(o.driver, path)
	if err != nil {
		return nil, err
	}

	var logger *telemetry.Logger
	if o.logger != nil {
		logger = telemetry.FromSlog(o.logger)
	}

	return &Memory{manager: memory.NewManager(store, memory.ManagerOptions{
		MaxExchanges: o.maxExchanges,
		Logger:       logger,
		Finder:       o.finder,
	})}, nil
}

// RecordExchange stores one exchange and trims the log to the default window.
func (m *Memory) RecordExchange(userInput, assistantOutput string) error {
	return m.manager.RecordExchange(userInput, assistantOutput, 0)
}

// RecordExchangeN stores one exchange and trims the log to maxExchanges.
func (m *Memory) RecordExchangeN(userInput, assistantOutput string, maxExchanges int) error {
	return m.manager.RecordExchange(userInput, assistantOutput, maxExchanges)
}

// GetRecentMemory returns the default window formatted as a context block.
func (m *Memory) GetRecentMemory() (string, error) {
	return m.manager.GetRecentMemory(0)
}

// GetRecentMemoryN returns the last maxExchanges exchanges formatted as a context block.
func (m *Memory) GetRecentMemoryN(maxExchanges int) (string, error) {
	return m.manager.GetRecentMemory(maxExchanges)
}

// Recent returns the default window as exchanges, oldest first.
func (m *Memory) Recent() ([]Exchange, error) {
	return m.manager.Recent(0)
}

// MemoryFinder is kept for callers of the retired extraction path.
// It returns "" unless a Finder was supplied with WithFinder.
func (m *Memory) MemoryFinder(userInput string) string {
	return m.manager.MemoryFinder(userInput)
}

// BuildPrompt renders the default persona and template around the recent
// memory block and query.
func (m *Memory) BuildPrompt(query string) (string, error) {
	block, err := m.GetRecentMemory()
	if err != nil {
		return "", err
	}
	return prompt.NewBuilder("", "").Build(block, query), nil
}

// Close releases the underlying store.
func (m *Memory) Close() error {
	return m.manager.Close()
}
