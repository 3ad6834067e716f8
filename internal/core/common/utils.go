package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrNoPayload is returned when a response contains no bracketed structure.
var ErrNoPayload = errors.New("no structured payload in response")

// ParseJSON extracts the first top-level JSON object from an LLM response
// and unmarshals it into T. Surrounding prose and markdown fences are ignored.
func ParseJSON[T any](response string) (T, error) {
	return parseBracketed[T](response, '{', '}')
}

// ParseJSONArray is ParseJSON for responses whose payload is a JSON array.
func ParseJSONArray[T any](response string) ([]T, error) {
	return parseBracketed[[]T](response, '[', ']')
}

func parseBracketed[T any](response string, open, close byte) (T, error) {
	var zero T

	jsonStr, ok := FirstBracketed(response, open, close)
	if !ok {
		return zero, fmt.Errorf("%w (missing '%c')", ErrNoPayload, open)
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, truncate(jsonStr, 200))
	}
	return result, nil
}

// FirstBracketed returns the first balanced open..close span in s. Brackets
// inside JSON string literals are skipped. An unterminated span is not found.
func FirstBracketed(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// TruncateRunes shortens s to at most n runes without splitting a character.
func TruncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
