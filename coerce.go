package envault

import (
	"strconv"
	"strings"
)

// Kind selects a coercion target for Coerce and Value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat64
	KindBool
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	}
	return "unknown"
}

// AsInt converts s to an int. Surrounding whitespace is ignored.
func AsInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &CoerceError{Value: s, Kind: KindInt, Err: err}
	}
	return n, nil
}

// AsFloat converts s to a float64. Surrounding whitespace is ignored.
func AsFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &CoerceError{Value: s, Kind: KindFloat64, Err: err}
	}
	return f, nil
}

// AsBool converts s to a bool. It recognizes true/1/yes/on and
// false/0/no/off case-insensitively; the empty string is false.
func AsBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off", "":
		return false, nil
	}
	return false, &CoerceError{Value: s, Kind: KindBool}
}

// AsList splits s on commas that sit outside quoted segments, trimming
// whitespace and one pair of surrounding quotes from each element, so
// `1,"two",3,"four"` becomes [1 two 3 four]. The empty string yields
// nil.
func AsList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var (
		items   []string
		current strings.Builder
		quote   byte
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			current.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
			current.WriteByte(c)
		case c == ',':
			items = append(items, cleanListItem(current.String()))
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	return append(items, cleanListItem(current.String()))
}

func cleanListItem(item string) string {
	item = strings.TrimSpace(item)
	if len(item) >= 2 {
		first, last := item[0], item[len(item)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return item[1 : len(item)-1]
		}
	}
	return item
}

// Coerce converts s to the Go type behind kind: string, int, float64,
// bool, or []string.
func Coerce(s string, kind Kind) (interface{}, error) {
	switch kind {
	case KindString:
		return s, nil
	case KindInt:
		n, err := AsInt(s)
		if err != nil {
			return nil, err
		}
		return n, nil
	case KindFloat64:
		f, err := AsFloat(s)
		if err != nil {
			return nil, err
		}
		return f, nil
	case KindBool:
		b, err := AsBool(s)
		if err != nil {
			return nil, err
		}
		return b, nil
	case KindList:
		return AsList(s), nil
	}
	return nil, &CoerceError{Value: s, Kind: kind}
}
