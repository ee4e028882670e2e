package envault

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

func TestExpandTokens(t *testing.T) {
	lookup := mapLookup(map[string]string{
		"HOST": "db",
		"PORT": "5432",
		"_X":   "u",
		"A1":   "a1",
	})

	for _, tc := range []struct {
		name string
		in   string
		want string
	}{
		{"braced", "${HOST}", "db"},
		{"bare", "$HOST", "db"},
		{"mixed", "${HOST}:$PORT", "db:5432"},
		{"embedded", "x${HOST}y", "xdby"},
		{"bare stops at non-name", "$HOST/db", "db/db"},
		{"underscore name", "$_X", "u"},
		{"digits in name", "$A1", "a1"},
		{"no references", "plain", "plain"},
		{"lone dollar", "a$b c", "a$b c"},
		{"trailing dollar", "end$", "end$"},
		{"dollar digit", "$5", "$5"},
		{"empty braces", "${}", "${}"},
		{"bad braced name", "${1X}", "${1X}"},
		{"unterminated brace", "${HOST", "${HOST"},
		{"missing braced", "${NOPE}", "${NOPE}"},
		{"missing bare", "$NOPE", "$NOPE"},
		{"missing embedded", "a${NOPE}b", "a${NOPE}b"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Expand(tc.in, lookup))
		})
	}
}

func TestExpandRecursive(t *testing.T) {
	lookup := mapLookup(map[string]string{
		"HOST": "db",
		"PORT": "5432",
		"ADDR": "${HOST}:${PORT}",
		"DSN":  "postgres://${ADDR}/app",
	})

	assert.Equal(t, "postgres://db:5432/app", Expand("${DSN}", lookup))
}

func TestExpandSelfReference(t *testing.T) {
	lookup := mapLookup(map[string]string{"X": "${X}"})
	assert.Equal(t, "${X}", Expand("${X}", lookup))
}

func TestExpandMutualCycle(t *testing.T) {
	lookup := mapLookup(map[string]string{
		"A": "a-${B}",
		"B": "b-${A}",
	})

	// The walk substitutes until a name already on the stack comes
	// around again, then leaves that reference literal.
	assert.Equal(t, "a-b-${A}", Expand("${A}", lookup))
}

func TestExpandDepthBound(t *testing.T) {
	values := map[string]string{"V15": "end"}
	for i := 1; i < 15; i++ {
		values[fmt.Sprintf("V%d", i)] = fmt.Sprintf("${V%d}", i+1)
	}
	lookup := mapLookup(values)

	// Ten links resolve fully.
	assert.Equal(t, "end", Expand("${V6}", lookup))

	// A longer chain is cut at the depth bound, leaving the rest
	// literal.
	assert.Equal(t, "${V12}", Expand("${V1}", lookup))
}

func TestExpandMissingEmpty(t *testing.T) {
	x := expander{
		lookup:       mapLookup(map[string]string{"A": "1"}),
		maxDepth:     defaultExpandDepth,
		missingEmpty: true,
	}

	assert.Equal(t, "1--1", x.expand("${A}-${NOPE}-${A}", 0))
	assert.Equal(t, "", x.expand("$NOPE", 0))
}

func TestExpandIdempotent(t *testing.T) {
	lookup := mapLookup(map[string]string{
		"HOST": "db",
		"ADDR": "${HOST}:1",
	})

	once := Expand("${ADDR} ${NOPE} $5", lookup)
	assert.Equal(t, once, Expand(once, lookup))
}
