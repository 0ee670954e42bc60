package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSON is returned when a reply holds no well-formed JSON object or
// array.
var ErrNoJSON = errors.New("no JSON value found in model reply")

var fenceRe = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*\\n?(.*?)```")

// ExtractJSON recovers the first complete, well-formed JSON object or array
// from a free-text model reply. Fenced code blocks are searched first, then
// the whole text. Bracketed text that does not parse as JSON is skipped.
func ExtractJSON(text string) (json.RawMessage, error) {
	for _, m := range fenceRe.FindAllStringSubmatch(text, -1) {
		if raw, ok := firstValue(m[1]); ok {
			return raw, nil
		}
	}
	if raw, ok := firstValue(text); ok {
		return raw, nil
	}
	return nil, ErrNoJSON
}

// firstValue scans for '{' or '[' and returns the first position that
// decodes as a complete JSON value.
func firstValue(s string) (json.RawMessage, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] != '{' && s[i] != '[' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(s[i:]))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			continue
		}
		return bytes.TrimSpace(raw), true
	}
	return nil, false
}
