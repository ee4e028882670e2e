package dotenv

import "fmt"

// ParseError describes one dotenv line that could not be parsed.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dotenv: line %d: %s: %q", e.Line, e.Reason, e.Text)
}
