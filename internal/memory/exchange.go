// Package memory implements the bounded conversation memory log: a recency
// window of user/assistant exchanges persisted to durable storage and
// rendered as a context block for prompt assembly.
package memory

import "strings"

// DefaultMaxExchanges is the recency window used when no cap is configured.
const DefaultMaxExchanges = 10

// Exchange is one user message paired with one assistant reply.
type Exchange struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// NewExchange builds an Exchange from raw text, trimming surrounding whitespace.
func NewExchange(user, assistant string) Exchange {
	return Exchange{
		User:      strings.TrimSpace(user),
		Assistant: strings.TrimSpace(assistant),
	}
}

// Window returns the last n exchanges of log, oldest first.
// If log holds n or fewer exchanges the whole log is returned.
func Window(log []Exchange, n int) []Exchange {
	if n <= 0 || len(log) <= n {
		return log
	}
	return log[len(log)-n:]
}

// trim keeps the last limit exchanges and reports how many were dropped.
func trim(log []Exchange, limit int) ([]Exchange, int) {
	if len(log) <= limit {
		return log, 0
	}
	evicted := len(log) - limit
	kept := make([]Exchange, limit)
	copy(kept, log[evicted:])
	return kept, evicted
}

// Format renders exchanges as "User: ..." / "Assistant: ..." blocks separated
// by a blank line. An empty log renders as "".
func Format(log []Exchange) string {
	blocks := make([]string, 0, len(log))
	for _, ex := range log {
		blocks = append(blocks, "User: "+ex.User+"\nAssistant: "+ex.Assistant)
	}
	return strings.TrimSpace(strings.Join(blocks, "\n\n"))
}

// resolveMax returns n, or DefaultMaxExchanges when n is not positive.
func resolveMax(n int) int {
	if n <= 0 {
		return DefaultMaxExchanges
	}
	return n
}
