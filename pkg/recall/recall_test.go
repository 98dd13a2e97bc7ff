package recall

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestOpen_RoundTrip(t *testing.T) {
	mem, err := Open(filepath.Join(t.TempDir(), "memory.jsonl"), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	defer mem.Close()

	if err := mem.RecordExchange("Hi", "Hello!"); err != nil {
		t.Fatal(err)
	}
	if err := mem.RecordExchange("How are you?", "Great, thanks."); err != nil {
		t.Fatal(err)
	}

	got, err := mem.GetRecentMemory()
	if err != nil {
		t.Fatal(err)
	}
	want := "User: Hi\nAssistant: Hello!\n\nUser: How are you?\nAssistant: Great, thanks."
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}

	if mem.MemoryFinder("anything") != "" {
		t.Error("expected legacy finder to return empty string")
	}
}

func TestOpen_MaxExchanges(t *testing.T) {
	mem, err := Open(filepath.Join(t.TempDir(), "memory.db"),
		WithDriver("sqlite"), WithMaxExchanges(2), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	defer mem.Close()

	for _, s := range []string{"A", "B", "C"} {
		if err := mem.RecordExchange(s, s); err != nil {
			t.Fatal(err)
		}
	}
	log, err := mem.Recent()
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 2 || log[0].User != "B" || log[1].User != "C" {
		t.Errorf("expected [B C], got %+v", log)
	}

	one, err := mem.GetRecentMemoryN(1)
	if err != nil {
		t.Fatal(err)
	}
	if one != "User: C\nAssistant: C" {
		t.Errorf("unexpected window: %q", one)
	}
}

func TestBuildPrompt(t *testing.T) {
	mem, err := Open(filepath.Join(t.TempDir(), "memory.jsonl"), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	mem.RecordExchangeN("I like tea", "Noted.", 5)

	p, err := mem.BuildPrompt("What do I like?")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(p, "User: I like tea\nAssistant: Noted.") || !strings.Contains(p, "What do I like?") {
		t.Errorf("unexpected prompt:\n%s", p)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open("x", WithDriver("mongo")); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
