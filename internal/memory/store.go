package memory

import (
	"fmt"
	"strings"

	recallErrors "github.com/cadre-oss/recall/internal/errors"
)

// Stats describes the storage side of one operation.
type Stats struct {
	Stored  int // exchanges in storage after the operation
	Evicted int // exchanges dropped from the front of the log
	Skipped int // storage lines that did not parse as exchanges
}

// Store persists the memory log. Implementations guard every operation
// with a mutual-exclusion scope so concurrent callers never lose an update
// or observe a partially written log.
type Store interface {
	// Record appends ex and trims the log to the last maxExchanges entries.
	Record(ex Exchange, maxExchanges int) (Stats, error)

	// Recent returns the last maxExchanges entries, oldest first.
	Recent(maxExchanges int) ([]Exchange, Stats, error)

	// Clear empties the log.
	Clear() error

	// Path returns the storage location.
	Path() string

	// Close releases any resources held by the store.
	Close() error
}

// Drivers accepted by Open.
const (
	DriverFile   = "file"
	DriverJSONL  = "jsonl"
	DriverSQLite = "sqlite"
)

// Open returns the Store for driver at path. An empty driver selects the
// line-oriented file store.
func Open(driver, path string) (Store, error) {
	switch strings.ToLower(driver) {
	case DriverFile, DriverJSONL, "":
		return NewFileStore(path)
	case DriverSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, recallErrors.New(recallErrors.CodeDriverUnsupported,
			fmt.Sprintf("unsupported memory driver: %s", driver)).
			WithSuggestion("Set memory.driver to one of: file, jsonl, sqlite")
	}
}

func writeError(path string, err error) error {
	return recallErrors.Wrap(recallErrors.CodeStorageIO,
		fmt.Sprintf("failed to persist memory log %s", path), err).
		WithSuggestion("Check that the parent directory exists and is writable")
}

func readError(path string, err error) error {
	return recallErrors.Wrap(recallErrors.CodeStorageRead,
		fmt.Sprintf("failed to read memory log %s", path), err).
		WithSuggestion("Check the file permissions of the memory log")
}
