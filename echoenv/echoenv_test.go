package echoenv

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/presbrey/envault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnv(t *testing.T, values map[string]string) *envault.Env {
	t.Helper()
	return envault.Must(envault.New(&envault.Config{
		SkipWorkingDir: true,
		Environ:        values,
	}))
}

func serve(t *testing.T, handler echo.HandlerFunc) map[string]string {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/env", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandlerMasksSensitiveKeys(t *testing.T) {
	env := newEnv(t, map[string]string{
		"APP_NAME":     "checkout",
		"API_TOKEN":    "abc123",
		"DB_PASSWORD":  "hunter2",
		"SSH_KEY_PATH": "/etc/ssh/id",
		"aws_secret":   "s3cr3t",
	})

	body := serve(t, Handler(env))

	assert.Equal(t, "checkout", body["APP_NAME"])
	assert.Equal(t, "****", body["API_TOKEN"])
	assert.Equal(t, "****", body["DB_PASSWORD"])
	assert.Equal(t, "****", body["SSH_KEY_PATH"])
	assert.Equal(t, "****", body["aws_secret"])
}

func TestHandlerExpandsValues(t *testing.T) {
	env := newEnv(t, map[string]string{
		"HOST": "db",
		"ADDR": "${HOST}:5432",
	})

	body := serve(t, Handler(env))
	assert.Equal(t, "db:5432", body["ADDR"])
}

func TestHandlerWithConfigKeys(t *testing.T) {
	env := newEnv(t, map[string]string{
		"KEEP":   "1",
		"OTHER":  "2",
		"SECRET": "3",
	})

	body := serve(t, HandlerWithConfig(env, Config{
		Keys: []string{"KEEP", "SECRET"},
	}))

	assert.Len(t, body, 2)
	assert.Equal(t, "1", body["KEEP"])
	assert.Equal(t, "****", body["SECRET"], "the allow-list does not bypass masking")
}

func TestHandlerWithConfigCustomPatterns(t *testing.T) {
	env := newEnv(t, map[string]string{
		"API_TOKEN":  "abc",
		"INTERNAL_X": "y",
	})

	body := serve(t, HandlerWithConfig(env, Config{
		MaskPatterns: []string{"internal"},
		Mask:         "[redacted]",
	}))

	assert.Equal(t, "abc", body["API_TOKEN"], "custom patterns replace the defaults")
	assert.Equal(t, "[redacted]", body["INTERNAL_X"])
}

func TestMasked(t *testing.T) {
	patterns := []string{"token", "secret"}

	assert.True(t, masked("API_TOKEN", patterns))
	assert.True(t, masked("client_secret", patterns))
	assert.False(t, masked("APP_NAME", patterns))
}
