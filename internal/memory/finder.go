package memory

// Finder extracts memory-worthy facts from a user message.
type Finder interface {
	Find(userInput string) string
}

// NoopFinder satisfies Finder for callers written against the retired
// extraction path. Find always returns "" and touches nothing.
type NoopFinder struct{}

// Find returns "".
func (NoopFinder) Find(string) string { return "" }
