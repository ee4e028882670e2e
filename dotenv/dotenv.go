// Package dotenv reads KEY=VALUE files in the common .env format.
// It keeps entries in file order and reports malformed lines without
// discarding the entries that parsed cleanly.
package dotenv

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// Entry is a single key/value pair, ordered as encountered in the file.
type Entry struct {
	Key   string
	Value string
}

// Parse reads dotenv content from r. Comment lines start with '#'
// (leading whitespace allowed), blank lines are skipped, and an
// "export " prefix before the key is tolerated. Values may be
// double-quoted (backslash escapes interpreted), single-quoted
// (taken literally), or bare; a '#' preceded by whitespace ends a bare
// value. Malformed lines are skipped and reported together in the
// returned error, one ParseError per line, while every well-formed
// entry is still returned.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	var errs []error

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, reason := parseLine(trimmed)
		if reason != "" {
			errs = append(errs, &ParseError{Line: lineNo, Text: trimmed, Reason: reason})
			continue
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, err)
	}

	return entries, errors.Join(errs...)
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Map folds entries into a plain mapping. Later occurrences of a key
// win over earlier ones.
func Map(entries []Entry) map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Key] = e.Value
	}
	return m
}

// parseLine splits one non-comment line into key and value. A non-empty
// reason marks the line as malformed.
func parseLine(line string) (key, value, reason string) {
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return "", "", "missing '='"
	}
	key = strings.TrimSpace(line[:eq])
	if key == "" {
		return "", "", "empty key"
	}
	value, reason = parseValue(line[eq+1:])
	return key, value, reason
}

// parseValue decodes the text to the right of '='. The input keeps its
// leading whitespace so an inline comment directly after '=' is still
// recognized.
func parseValue(raw string) (string, string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ""
	}

	switch trimmed[0] {
	case '"':
		value, end := scanDoubleQuoted(trimmed)
		if end < 0 {
			return "", "unterminated double quote"
		}
		return value, ""
	case '\'':
		end := strings.IndexByte(trimmed[1:], '\'')
		if end < 0 {
			return "", "unterminated single quote"
		}
		return trimmed[1 : 1+end], ""
	}

	// Bare value: a '#' that follows whitespace starts a comment.
	for i := 1; i < len(raw); i++ {
		if raw[i] == '#' && (raw[i-1] == ' ' || raw[i-1] == '\t') {
			raw = raw[:i]
			break
		}
	}
	return strings.TrimSpace(raw), ""
}

// scanDoubleQuoted decodes a double-quoted value starting at s[0]. It
// returns the decoded content and the index just past the closing
// quote, or -1 when the quote never closes. Text after the closing
// quote is ignored.
func scanDoubleQuoted(s string) (string, int) {
	var b strings.Builder
	i := 1
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte('\\')
				b.WriteByte(s[i+1])
			}
			i += 2
			continue
		}
		if c == '"' {
			return b.String(), i + 1
		}
		b.WriteByte(c)
		i++
	}
	return "", -1
}
