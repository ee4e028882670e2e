package envault

import "strings"

const defaultExpandDepth = 10

// Expand replaces ${NAME} and $NAME references in s using lookup,
// re-expanding substituted text up to the default depth bound.
// References lookup cannot resolve, and references that form a cycle,
// stay literal.
func Expand(s string, lookup func(string) (string, bool)) string {
	x := expander{lookup: lookup, maxDepth: defaultExpandDepth}
	return x.expand(s, 0)
}

type expander struct {
	lookup       func(string) (string, bool)
	maxDepth     int
	missingEmpty bool
	active       map[string]bool
}

func (x *expander) expand(s string, depth int) string {
	if depth > x.maxDepth {
		return s
	}
	if strings.IndexByte(s, '$') < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '$' {
			j := strings.IndexByte(s[i:], '$')
			if j < 0 {
				b.WriteString(s[i:])
				break
			}
			b.WriteString(s[i : i+j])
			i += j
			continue
		}

		name, width := scanRef(s[i:])
		if width == 0 {
			b.WriteByte('$')
			i++
			continue
		}

		if replacement, ok := x.resolve(name, depth); ok {
			b.WriteString(replacement)
		} else {
			b.WriteString(s[i : i+width])
		}
		i += width
	}
	return b.String()
}

// resolve looks up one referenced name and expands its value in turn.
// A false result leaves the reference token literal: the name is
// missing (unless the empty-substitution policy is on) or it is already
// being expanded further up the stack.
func (x *expander) resolve(name string, depth int) (string, bool) {
	if x.active[name] {
		return "", false
	}
	value, ok := x.lookup(name)
	if !ok {
		if x.missingEmpty {
			return "", true
		}
		return "", false
	}

	if x.active == nil {
		x.active = make(map[string]bool)
	}
	x.active[name] = true
	value = x.expand(value, depth+1)
	delete(x.active, name)
	return value, true
}

// scanRef reads a reference token at the start of s, which begins with
// '$'. It returns the referenced name and the token width, or width 0
// when the '$' does not start a well-formed reference.
func scanRef(s string) (string, int) {
	if len(s) < 2 {
		return "", 0
	}
	if s[1] == '{' {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return "", 0
		}
		name := s[2:end]
		if !validRefName(name) {
			return "", 0
		}
		return name, end + 1
	}
	if !refNameStart(s[1]) {
		return "", 0
	}
	j := 2
	for j < len(s) && refNameChar(s[j]) {
		j++
	}
	return s[1:j], j
}

func refNameStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func refNameChar(c byte) bool {
	return refNameStart(c) || ('0' <= c && c <= '9')
}

func validRefName(s string) bool {
	if s == "" || !refNameStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !refNameChar(s[i]) {
			return false
		}
	}
	return true
}
