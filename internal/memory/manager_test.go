package memory

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	recallErrors "github.com/cadre-oss/recall/internal/errors"
	"github.com/cadre-oss/recall/internal/telemetry"
)

func newTestManager(t *testing.T, opts ManagerOptions) (*Manager, *bytes.Buffer) {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "memory.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if opts.Logger == nil {
		opts.Logger = telemetry.NewLoggerWithOptions("debug", "text", &buf)
	}
	return NewManager(store, opts), &buf
}

func TestManager_FormattingScenario(t *testing.T) {
	m, _ := newTestManager(t, ManagerOptions{})

	if err := m.RecordExchange("Hi", "Hello!", 0); err != nil {
		t.Fatal(err)
	}
	if err := m.RecordExchange("How are you?", "Great, thanks.", 0); err != nil {
		t.Fatal(err)
	}

	got, err := m.GetRecentMemory(0)
	if err != nil {
		t.Fatal(err)
	}
	want := "User: Hi\nAssistant: Hello!\n\nUser: How are you?\nAssistant: Great, thanks."
	if got != want {
		t.Errorf("unexpected memory block\nwant %q\ngot  %q", want, got)
	}
}

func TestManager_EmptyMemory(t *testing.T) {
	m, _ := newTestManager(t, ManagerOptions{})

	got, err := m.GetRecentMemory(0)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestManager_TrimsInputs(t *testing.T) {
	m, _ := newTestManager(t, ManagerOptions{})

	if err := m.RecordExchange("  padded question \n", "\t reply  ", 0); err != nil {
		t.Fatal(err)
	}
	log, err := m.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if log[0] != (Exchange{User: "padded question", Assistant: "reply"}) {
		t.Errorf("expected trimmed exchange, got %+v", log[0])
	}
}

func TestManager_DefaultCap(t *testing.T) {
	m, _ := newTestManager(t, ManagerOptions{})
	if m.MaxExchanges() != DefaultMaxExchanges {
		t.Fatalf("expected default cap %d, got %d", DefaultMaxExchanges, m.MaxExchanges())
	}

	for i := 1; i <= 15; i++ {
		if err := m.RecordExchange(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i), 0); err != nil {
			t.Fatal(err)
		}
	}

	_, stats, err := m.Store().Recent(100)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Stored != 10 {
		t.Errorf("expected 10 stored, got %d", stats.Stored)
	}

	got, _ := m.GetRecentMemory(0)
	if !strings.HasPrefix(got, "User: q6\n") || !strings.HasSuffix(got, "Assistant: a15") {
		t.Errorf("expected window q6..q15, got %q", got)
	}
}

func TestManager_ConfiguredCapAndOverride(t *testing.T) {
	m, _ := newTestManager(t, ManagerOptions{MaxExchanges: 3})

	for i := 1; i <= 5; i++ {
		m.RecordExchange(fmt.Sprint(i), "", 0)
	}
	log, _ := m.Recent(0)
	if len(log) != 3 || log[0].User != "3" {
		t.Errorf("expected configured cap of 3, got %+v", log)
	}

	one, err := m.GetRecentMemory(1)
	if err != nil {
		t.Fatal(err)
	}
	if one != "User: 5\nAssistant:" {
		t.Errorf("expected only newest exchange, got %q", one)
	}

	// Per-call override on write.
	m.RecordExchange("6", "", 1)
	log, _ = m.Recent(0)
	if len(log) != 1 || log[0].User != "6" {
		t.Errorf("expected override cap of 1, got %+v", log)
	}
}

func TestManager_MetricsAndLogging(t *testing.T) {
	metrics := telemetry.NewMetrics()
	m, buf := newTestManager(t, ManagerOptions{MaxExchanges: 2, Metrics: metrics})

	m.RecordExchange("a", "1", 0)
	m.RecordExchange("b", "2", 0)
	m.RecordExchange("c", "3", 0)
	m.GetRecentMemory(0)

	summary := metrics.GetSummary()
	if summary["exchanges_recorded"] != int64(3) {
		t.Errorf("expected 3 recorded, got %v", summary["exchanges_recorded"])
	}
	if summary["exchanges_evicted"] != int64(1) {
		t.Errorf("expected 1 evicted, got %v", summary["exchanges_evicted"])
	}
	if summary["reads"] != int64(1) {
		t.Errorf("expected 1 read, got %v", summary["reads"])
	}

	out := buf.String()
	if !strings.Contains(out, "recorded exchange") || !strings.Contains(out, "evicted=1") {
		t.Errorf("expected debug log of the eviction, got:\n%s", out)
	}
}

func TestManager_WriteFailurePropagates(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "missing", "memory.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	metrics := telemetry.NewMetrics()
	m := NewManager(store, ManagerOptions{
		Logger:  telemetry.NewLoggerWithOptions("info", "text", &buf),
		Metrics: metrics,
	})

	err = m.RecordExchange("Hi", "Hello!", 0)
	if recallErrors.AsCode(err) != recallErrors.CodeStorageIO {
		t.Fatalf("expected %s error, got %v", recallErrors.CodeStorageIO, err)
	}
	if metrics.GetSummary()["write_failures"] != int64(1) {
		t.Error("expected write failure to be counted")
	}
	if !strings.Contains(buf.String(), "failed to record exchange") {
		t.Errorf("expected error log, got %q", buf.String())
	}
}

type recordingFinder struct{ calls []string }

func (f *recordingFinder) Find(in string) string {
	f.calls = append(f.calls, in)
	return "User likes tests."
}

func TestManager_MemoryFinder(t *testing.T) {
	m, _ := newTestManager(t, ManagerOptions{})
	if got := m.MemoryFinder("I don't like drinking coffee."); got != "" {
		t.Errorf("default finder should return empty string, got %q", got)
	}
	// The stub never touches storage.
	if _, stats, _ := m.Store().Recent(10); stats.Stored != 0 {
		t.Error("finder must not write to storage")
	}

	f := &recordingFinder{}
	m2, _ := newTestManager(t, ManagerOptions{Finder: f})
	if got := m2.MemoryFinder("hi"); got != "User likes tests." || len(f.calls) != 1 {
		t.Errorf("expected custom finder to be used, got %q", got)
	}
}

func TestManager_Clear(t *testing.T) {
	m, buf := newTestManager(t, ManagerOptions{})
	m.RecordExchange("a", "b", 0)
	if err := m.Clear(); err != nil {
		t.Fatal(err)
	}
	got, _ := m.GetRecentMemory(0)
	if got != "" {
		t.Errorf("expected empty memory after clear, got %q", got)
	}
	if !strings.Contains(buf.String(), "cleared memory log") {
		t.Error("expected clear to be logged")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	for _, driver := range []string{"", DriverFile, DriverJSONL, "JSONL"} {
		s, err := Open(driver, filepath.Join(dir, "memory.jsonl"))
		if err != nil {
			t.Fatalf("driver %q: %v", driver, err)
		}
		if _, ok := s.(*FileStore); !ok {
			t.Errorf("driver %q: expected *FileStore, got %T", driver, s)
		}
	}

	s, err := Open(DriverSQLite, filepath.Join(dir, "memory.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, ok := s.(*SQLiteStore); !ok {
		t.Errorf("expected *SQLiteStore, got %T", s)
	}

	_, err = Open("redis", "x")
	if recallErrors.AsCode(err) != recallErrors.CodeDriverUnsupported {
		t.Errorf("expected %s, got %v", recallErrors.CodeDriverUnsupported, err)
	}
}
