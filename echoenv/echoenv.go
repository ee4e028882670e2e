// Package echoenv provides an Echo handler that reports an Env's
// current mapping as JSON, masking values whose keys look sensitive.
// Mount it on a diagnostics route to inspect what a service resolved
// at runtime.
package echoenv

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/presbrey/envault"
)

// DefaultMaskPatterns lists the key substrings masked out of the box.
var DefaultMaskPatterns = []string{"token", "secret", "password", "key", "credential"}

// Config holds configuration for the handler
type Config struct {
	// Keys limits the response to the listed keys. Empty means every
	// key in the mapping.
	Keys []string

	// MaskPatterns are case-insensitive substrings; a key containing
	// any of them has its value replaced by Mask.
	MaskPatterns []string

	// Mask is the replacement for masked values
	Mask string
}

// DefaultConfig provides default configuration
func DefaultConfig() Config {
	return Config{
		MaskPatterns: DefaultMaskPatterns,
		Mask:         "****",
	}
}

// Handler returns an Echo handler serving env's mapping with the
// default masking rules
func Handler(env *envault.Env) echo.HandlerFunc {
	return HandlerWithConfig(env, DefaultConfig())
}

// HandlerWithConfig returns an Echo handler with config
func HandlerWithConfig(env *envault.Env, config Config) echo.HandlerFunc {
	// Use default config if necessary
	if config.MaskPatterns == nil {
		config.MaskPatterns = DefaultConfig().MaskPatterns
	}
	if config.Mask == "" {
		config.Mask = DefaultConfig().Mask
	}

	patterns := make([]string, len(config.MaskPatterns))
	for i, p := range config.MaskPatterns {
		patterns[i] = strings.ToLower(p)
	}

	var allowed map[string]bool
	if len(config.Keys) > 0 {
		allowed = make(map[string]bool, len(config.Keys))
		for _, k := range config.Keys {
			allowed[k] = true
		}
	}

	return func(c echo.Context) error {
		out := map[string]string{}
		for key, value := range env.Environ() {
			if allowed != nil && !allowed[key] {
				continue
			}
			if masked(key, patterns) {
				value = config.Mask
			}
			out[key] = value
		}
		return c.JSON(http.StatusOK, out)
	}
}

// masked reports whether key matches any of the lowercased patterns
func masked(key string, patterns []string) bool {
	lower := strings.ToLower(key)
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
