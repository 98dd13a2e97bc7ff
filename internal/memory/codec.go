package memory

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// DecodeLine parses one storage line. It reports false for blank lines and
// for anything that is not a JSON object carrying string "user" and
// "assistant" fields. Extra fields are ignored.
func DecodeLine(line []byte) (Exchange, bool) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return Exchange{}, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(line, &fields); err != nil {
		return Exchange{}, false
	}

	user, ok := stringField(fields, "user")
	if !ok {
		return Exchange{}, false
	}
	assistant, ok := stringField(fields, "assistant")
	if !ok {
		return Exchange{}, false
	}
	return Exchange{User: user, Assistant: assistant}, true
}

func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	// null would unmarshal into a string without error
	if !ok || len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Decode reads newline-delimited records from r. Lines that fail DecodeLine
// are filtered out; the count of skipped non-blank lines is returned with
// the parsed log. Only read errors from r are returned as errors.
func Decode(r io.Reader) ([]Exchange, int, error) {
	var (
		log     []Exchange
		skipped int
	)

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			if ex, ok := DecodeLine(line); ok {
				log = append(log, ex)
			} else if len(bytes.TrimSpace(line)) > 0 {
				skipped++
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return log, skipped, nil
			}
			return log, skipped, err
		}
	}
}

// Encode writes log to w as one JSON object per line, each newline-terminated.
// Non-ASCII text and HTML characters are written as-is.
func Encode(w io.Writer, log []Exchange) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, ex := range log {
		if err := enc.Encode(ex); err != nil {
			return err
		}
	}
	return nil
}
