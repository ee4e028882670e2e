package envault

// GetString retrieves the expanded string value for the given key.
func (e *Env) GetString(key string) (string, error) {
	value, ok := e.Lookup(key)
	if !ok {
		return "", &KeyError{Key: key}
	}
	return value, nil
}

// GetStringWithDefault retrieves a string value for the given key, with a default value.
func (e *Env) GetStringWithDefault(key string, defaultValue string) string {
	value, err := e.GetString(key)
	if err != nil {
		return defaultValue
	}
	return value
}

// GetBool retrieves a boolean value for the given key.
func (e *Env) GetBool(key string) (bool, error) {
	value, ok := e.Lookup(key)
	if !ok {
		return false, &KeyError{Key: key}
	}
	b, err := AsBool(value)
	if err != nil {
		coerceKey(err, key)
		return false, err
	}
	return b, nil
}

// GetBoolWithDefault retrieves a boolean value for the given key, with a default value.
func (e *Env) GetBoolWithDefault(key string, defaultValue bool) bool {
	value, err := e.GetBool(key)
	if err != nil {
		return defaultValue
	}
	return value
}

// GetInt retrieves an integer value for the given key.
func (e *Env) GetInt(key string) (int, error) {
	value, ok := e.Lookup(key)
	if !ok {
		return 0, &KeyError{Key: key}
	}
	n, err := AsInt(value)
	if err != nil {
		coerceKey(err, key)
		return 0, err
	}
	return n, nil
}

// GetIntWithDefault retrieves an integer value for the given key, with a default value.
func (e *Env) GetIntWithDefault(key string, defaultValue int) int {
	value, err := e.GetInt(key)
	if err != nil {
		return defaultValue
	}
	return value
}

// GetFloat64 retrieves a float64 value for the given key.
func (e *Env) GetFloat64(key string) (float64, error) {
	value, ok := e.Lookup(key)
	if !ok {
		return 0, &KeyError{Key: key}
	}
	f, err := AsFloat(value)
	if err != nil {
		coerceKey(err, key)
		return 0, err
	}
	return f, nil
}

// GetFloat64WithDefault retrieves a float64 value for the given key, with a default value.
func (e *Env) GetFloat64WithDefault(key string, defaultValue float64) float64 {
	value, err := e.GetFloat64(key)
	if err != nil {
		return defaultValue
	}
	return value
}

// GetStringSlice retrieves a comma-separated list value for the given key.
func (e *Env) GetStringSlice(key string) ([]string, error) {
	value, ok := e.Lookup(key)
	if !ok {
		return nil, &KeyError{Key: key}
	}
	return AsList(value), nil
}

// GetStringSliceWithDefault retrieves a list value for the given key, with a default value.
func (e *Env) GetStringSliceWithDefault(key string, defaultValue []string) []string {
	value, err := e.GetStringSlice(key)
	if err != nil {
		return defaultValue
	}
	return value
}

// IsEnabled is a convenience method to check if a key holds a
// recognized true literal.
func (e *Env) IsEnabled(key string) bool {
	enabled, err := e.GetBool(key)
	if err != nil {
		return false
	}
	return enabled
}
