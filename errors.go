package envault

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a key with no value in the mapping or the secret
// overlay. Typed getters return it wrapped in a *KeyError.
var ErrNotFound = errors.New("envault: key not found")

// KeyError records which key a lookup failed on. It matches ErrNotFound
// under errors.Is.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("envault: key %q not found", e.Key)
}

func (e *KeyError) Unwrap() error { return ErrNotFound }

// CoerceError records a value that could not be converted to the
// requested Kind. Key is set when the failure came through a keyed
// accessor rather than a bare conversion.
type CoerceError struct {
	Key   string
	Value string
	Kind  Kind
	Err   error
}

func (e *CoerceError) Error() string {
	msg := fmt.Sprintf("envault: cannot coerce %q to %s", e.Value, e.Kind)
	if e.Key != "" {
		msg = fmt.Sprintf("envault: cannot coerce %s=%q to %s", e.Key, e.Value, e.Kind)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CoerceError) Unwrap() error { return e.Err }

// coerceKey stamps key onto a CoerceError bubbling out of a conversion
// helper.
func coerceKey(err error, key string) {
	var ce *CoerceError
	if errors.As(err, &ce) {
		ce.Key = key
	}
}
